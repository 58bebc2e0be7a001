package phases

import (
	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

type titleStage uint8

const (
	titleWaiting titleStage = iota
	titleScrolling
	titleChoosing
)

// 语言菜单位置（字符格）
const (
	titleMenuColumn = 16
	titleMenuRow    = 19
	titlePromptRow  = 25
)

// TitlePhase 标题画面：等待、标题自下而上滚入、选择语言
type TitlePhase struct {
	ctx     *game.PhaseContext
	sky     host.Background
	logo    host.Background
	cursor  host.Sprite
	stage   titleStage
	frame   uint16
	scrollY int16
	codes   []string
	choice  int
	blink   uint16
	done    bool
}

// NewTitlePhase 创建标题阶段
func NewTitlePhase() *TitlePhase {
	return &TitlePhase{}
}

func (p *TitlePhase) Name() string { return PhaseTitle }

func (p *TitlePhase) Init(ctx *game.PhaseContext) error {
	p.ctx = ctx
	p.sky = loadBackground(ctx, host.BackgroundNight, host.PlaneB)
	p.logo = loadBackground(ctx, host.BackgroundTitle, host.PlaneA)
	p.cursor = acquireSprite(ctx, host.SpriteLanguageCursor, depthHUD)
	p.scrollY = ctx.Tuning.Title.StartY
	p.codes = ctx.Texts.Codes()
	for i, c := range p.codes {
		if c == ctx.State.Language {
			p.choice = i
		}
	}
	return nil
}

func (p *TitlePhase) Update() {
	in := p.ctx.Input
	t := p.ctx.Tuning.Title

	switch p.stage {
	case titleWaiting:
		p.frame++
		if in.Pressed(host.ButtonAnyAction) {
			p.scrollY = 0
			p.stage = titleChoosing
			return
		}
		if p.frame >= t.WaitFrames {
			p.ctx.Host.Audio.PlaySFX(host.SFXHoHoHo)
			p.stage = titleScrolling
		}
	case titleScrolling:
		p.scrollY -= t.ScrollStep
		if p.scrollY <= 0 || t.ScrollStep <= 0 {
			p.scrollY = 0
			p.stage = titleChoosing
		}
	case titleChoosing:
		p.blink++
		switch {
		case in.Pressed(host.ButtonUp | host.ButtonLeft):
			p.move(-1)
		case in.Pressed(host.ButtonDown | host.ButtonRight):
			p.move(1)
		case in.Pressed(host.ButtonAnyAction):
			if len(p.codes) > 0 {
				p.ctx.State.Language = p.codes[p.choice]
			}
			p.ctx.Host.Audio.PlaySFX(host.SFXMenuConfirm)
			p.done = true
		}
	}
}

func (p *TitlePhase) move(delta int) {
	if len(p.codes) < 2 {
		return
	}
	p.choice = (p.choice + delta + len(p.codes)) % len(p.codes)
	p.ctx.Host.Audio.PlaySFX(host.SFXMenuMove)
}

// Choice 当前光标所在的语言代码
func (p *TitlePhase) Choice() string {
	if len(p.codes) == 0 {
		return ""
	}
	return p.codes[p.choice]
}

func (p *TitlePhase) Render() {
	if p.logo != nil {
		p.logo.ScrollTo(0, p.scrollY)
	}
	if p.stage != titleChoosing {
		showSprite(p.cursor, 0, 0, false)
		return
	}

	text := p.ctx.Host.Text
	for i, code := range p.codes {
		text.DrawText(p.ctx.Texts.For(code).Name, titleMenuColumn, titleMenuRow+i)
	}
	showSprite(p.cursor, titleMenuColumn*8-16, int16(titleMenuRow+p.choice)*8, true)

	prompt := p.ctx.Texts.For(p.Choice()).TitlePrompt
	text.ClearText(0, titlePromptRow, textColumns)
	if (p.blink/30)%2 == 0 {
		drawCentered(text, prompt, titlePromptRow)
	}
}

func (p *TitlePhase) IsComplete() bool { return p.done }

func (p *TitlePhase) Shutdown() {
	releaseBackground(p.sky)
	releaseBackground(p.logo)
	p.sky, p.logo = nil, nil
}
