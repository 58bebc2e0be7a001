package phases

import (
	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// EndPhase 结束画面：静止文字，按键后结束（序列器随后复位到开头）
type EndPhase struct {
	ctx  *game.PhaseContext
	done bool
}

// NewEndPhase 创建结束画面
func NewEndPhase() *EndPhase {
	return &EndPhase{}
}

func (p *EndPhase) Name() string { return PhaseEnd }

func (p *EndPhase) Init(ctx *game.PhaseContext) error {
	p.ctx = ctx
	ctx.Host.Audio.StopMusic()
	text := ctx.Host.Text
	text.ClearAll()
	for i, line := range ctx.Lang().EndLines {
		drawCentered(text, line, 10+4*i)
	}
	return nil
}

func (p *EndPhase) Update() {
	if p.ctx.Input.Pressed(host.ButtonAnyAction) {
		p.done = true
	}
}

func (p *EndPhase) Render() {}

func (p *EndPhase) IsComplete() bool { return p.done }

func (p *EndPhase) Shutdown() {}
