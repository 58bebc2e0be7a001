package phases

import (
	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// 过场文字起始位置（字符格）
const (
	cutsceneColumn = 14
	cutsceneRow    = 4
)

// CutscenePhase 阶段前的过场：背景 + 逐字显示文字 + 闪烁提示
type CutscenePhase struct {
	key    string
	ctx    *game.PhaseContext
	bg     host.Background
	reveal *TextReveal
	prompt string
}

// NewCutscenePhase 创建过场阶段，key 对应 texts.yaml 中的 cutscenes 键
func NewCutscenePhase(key string) *CutscenePhase {
	return &CutscenePhase{key: key}
}

func (p *CutscenePhase) Name() string { return "cutscene_" + p.key }

func (p *CutscenePhase) Init(ctx *game.PhaseContext) error {
	p.ctx = ctx
	ctx.Host.Audio.StopMusic()
	p.bg = loadBackground(ctx, host.BackgroundCutscene, host.PlaneB)

	lang := ctx.Lang()
	t := ctx.Tuning.Cutscene
	lines := lang.Cutscenes[p.key]
	if t.MaxLines > 0 && len(lines) > t.MaxLines {
		lines = lines[:t.MaxLines]
	}
	p.reveal = NewTextReveal(lines, t.FramesPerLetter, t.PromptBlinkFrames, t.MaxLineLength)
	p.prompt = lang.Prompt
	return nil
}

func (p *CutscenePhase) Update() {
	p.reveal.Update(p.ctx.Input.Pressed(host.ButtonAnyAction))
}

// Reveal 返回文字显示器
func (p *CutscenePhase) Reveal() *TextReveal {
	return p.reveal
}

func (p *CutscenePhase) Render() {
	text := p.ctx.Host.Text
	for i := 0; i < p.reveal.Lines(); i++ {
		if s := p.reveal.Visible(i); s != "" {
			text.DrawText(s, cutsceneColumn, cutsceneRow+i)
		}
	}
	row := cutsceneRow + p.reveal.Lines() + 2
	if p.reveal.PromptVisible() {
		text.DrawText(p.prompt, cutsceneColumn, row)
	} else {
		text.ClearText(cutsceneColumn, row, len([]rune(p.prompt)))
	}
}

func (p *CutscenePhase) IsComplete() bool {
	return p.reveal != nil && p.reveal.State() == RevealDone
}

func (p *CutscenePhase) Shutdown() {
	releaseBackground(p.bg)
	p.bg = nil
}
