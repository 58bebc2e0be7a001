package phases

import (
	"fmt"

	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

type celebrationStage uint8

const (
	celebrationMessage celebrationStage = iota
	celebrationTimes
	celebrationDone
)

// CelebrationPhase 第四阶段：祝福语 → 各阶段用时 → 结束
type CelebrationPhase struct {
	ctx   *game.PhaseContext
	bg    host.Background
	stage celebrationStage
	frame uint16
	dirty bool
}

// NewCelebrationPhase 创建庆祝阶段
func NewCelebrationPhase() *CelebrationPhase {
	return &CelebrationPhase{}
}

func (p *CelebrationPhase) Name() string { return PhaseCelebration }

func (p *CelebrationPhase) Init(ctx *game.PhaseContext) error {
	p.ctx = ctx
	p.bg = loadBackground(ctx, host.BackgroundParty, host.PlaneB)
	p.stage = celebrationMessage
	p.dirty = true
	ctx.Host.Audio.PlayMusic(host.MusicCelebration)
	return nil
}

func (p *CelebrationPhase) Update() {
	p.frame++
	if !p.ctx.Input.Pressed(host.ButtonAnyAction) {
		return
	}
	switch p.stage {
	case celebrationMessage:
		if p.frame < p.ctx.Tuning.Celebration.MinMessageFrames {
			return
		}
		p.stage = celebrationTimes
		p.dirty = true
	case celebrationTimes:
		p.stage = celebrationDone
	}
}

// Stage 当前子状态（0 祝福语，1 用时，2 完成）
func (p *CelebrationPhase) Stage() int {
	return int(p.stage)
}

func (p *CelebrationPhase) Render() {
	if !p.dirty {
		return
	}
	p.dirty = false

	text := p.ctx.Host.Text
	text.ClearAll()
	lang := p.ctx.Lang()

	switch p.stage {
	case celebrationMessage:
		const startRow = 5
		for i, line := range lang.Celebration {
			drawCentered(text, line, startRow+i)
		}
		drawCentered(text, lang.TimesPrompt, startRow+len(lang.Celebration)+2)
	case celebrationTimes:
		state := p.ctx.State
		drawCentered(text, lang.TimesTitle, 4)
		for i, name := range TimedPhases {
			drawCentered(text, fmt.Sprintf(lang.TimesPhase, i+1, state.PhaseSeconds(name)), 7+i)
		}
		drawCentered(text, fmt.Sprintf(lang.TimesTotal, state.TotalSeconds(TimedPhases...)), 11)
		drawCentered(text, lang.TimesImprove, 14)
		drawCentered(text, lang.RestartPrompt, 16)
	}
}

func (p *CelebrationPhase) IsComplete() bool { return p.stage == celebrationDone }

func (p *CelebrationPhase) Shutdown() {
	releaseBackground(p.bg)
	p.bg = nil
}
