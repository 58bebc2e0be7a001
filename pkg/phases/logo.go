package phases

import (
	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// 标志线条的最终位置与滑入距离
const (
	logoLineX     = 81
	logoLineSlide = 180
	logoLine1Y    = 55
	logoLine2Y    = 84
	logoTextX     = 60
	logoTextY     = 163
)

// LogoPhase 开场标志：两条线从左侧滑入，文字淡入，停留后结束；任意动作键跳过
type LogoPhase struct {
	ctx   *game.PhaseContext
	bg    host.Background
	text  host.Sprite
	line1 host.Sprite
	line2 host.Sprite
	frame uint16
	done  bool
}

// NewLogoPhase 创建开场标志阶段
func NewLogoPhase() *LogoPhase {
	return &LogoPhase{}
}

func (p *LogoPhase) Name() string { return PhaseLogo }

func (p *LogoPhase) Init(ctx *game.PhaseContext) error {
	p.ctx = ctx
	p.bg = loadBackground(ctx, host.BackgroundLogo, host.PlaneA)
	p.text = acquireSprite(ctx, host.SpriteLogoText, depthHUD)
	p.line1 = acquireSprite(ctx, host.SpriteLogoLine, depthHUD)
	p.line2 = acquireSprite(ctx, host.SpriteLogoLine, depthHUD)
	if p.line2 != nil {
		p.line2.SetFrame(host.FrameAlt)
	}
	ctx.Host.Audio.PlayMusic(host.MusicTitle)
	return nil
}

func (p *LogoPhase) Update() {
	p.frame++
	if p.ctx.Input.Pressed(host.ButtonAnyAction) {
		p.done = true
		return
	}
	t := p.ctx.Tuning.Logo
	if p.frame >= t.SlideFrames+t.HoldFrames {
		p.done = true
	}
}

// lineX 线条当前 X：SlideFrames 内线性滑到终点
func (p *LogoPhase) lineX() int16 {
	slide := p.ctx.Tuning.Logo.SlideFrames
	if slide == 0 || p.frame >= slide {
		return logoLineX
	}
	remaining := int32(slide-p.frame) * logoLineSlide / int32(slide)
	return logoLineX - int16(remaining)
}

func (p *LogoPhase) Render() {
	x := p.lineX()
	showSprite(p.line1, x, logoLine1Y, true)
	showSprite(p.line2, x, logoLine2Y, true)
	showSprite(p.text, logoTextX, logoTextY, p.frame >= p.ctx.Tuning.Logo.SlideFrames/3)
}

func (p *LogoPhase) IsComplete() bool { return p.done }

func (p *LogoPhase) Shutdown() {
	releaseBackground(p.bg)
	p.bg = nil
}
