package phases

import "github.com/Ganso/Sleigh-Chase/pkg/components"

// RevealState 过场文字的显示状态
type RevealState uint8

const (
	RevealPending    RevealState = iota // 逐字显示中
	RevealWaitPrompt                    // 全部显示，等待按键
	RevealDone
)

// TextReveal 逐字显示若干行文字，然后闪烁提示等待按键
// 显示过程中按键会立即显示全部文字（Skipped 为 true）
type TextReveal struct {
	lines           [][]rune
	framesPerLetter uint16
	promptBlink     uint16

	state   RevealState
	line    int
	shown   int
	wait    components.Countdown
	skipped bool

	promptTimer   uint16
	promptVisible bool
}

// NewTextReveal 创建文字显示器，每行最多 maxLineLength 个字符
func NewTextReveal(lines []string, framesPerLetter, promptBlink uint16, maxLineLength int) *TextReveal {
	r := &TextReveal{
		framesPerLetter: framesPerLetter,
		promptBlink:     promptBlink,
		promptVisible:   true,
	}
	for _, l := range lines {
		runes := []rune(l)
		if maxLineLength > 0 && len(runes) > maxLineLength {
			runes = runes[:maxLineLength]
		}
		r.lines = append(r.lines, runes)
	}
	r.normalize()
	return r
}

// Update 推进一帧；pressed 为本帧是否刚按下动作键
func (r *TextReveal) Update(pressed bool) {
	switch r.state {
	case RevealPending:
		if pressed {
			r.skipped = true
			r.line = len(r.lines)
			r.shown = 0
			r.state = RevealWaitPrompt
			return
		}
		if r.wait.Active() {
			r.wait.Tick()
			return
		}
		r.shown++
		r.normalize()
		if r.framesPerLetter > 1 {
			r.wait.Start(r.framesPerLetter - 1)
		}
	case RevealWaitPrompt:
		if pressed {
			r.state = RevealDone
			return
		}
		r.promptTimer++
		if r.promptBlink > 0 && r.promptTimer >= r.promptBlink {
			r.promptTimer = 0
			r.promptVisible = !r.promptVisible
		}
	}
}

// normalize 跳过已显示完的行；全部显示完时进入等待提示
func (r *TextReveal) normalize() {
	for r.line < len(r.lines) && r.shown >= len(r.lines[r.line]) {
		r.line++
		r.shown = 0
	}
	if r.line >= len(r.lines) && r.state == RevealPending {
		r.state = RevealWaitPrompt
	}
}

// State 当前状态
func (r *TextReveal) State() RevealState {
	return r.state
}

// Skipped 是否通过按键跳过了逐字显示
func (r *TextReveal) Skipped() bool {
	return r.skipped
}

// Lines 行数
func (r *TextReveal) Lines() int {
	return len(r.lines)
}

// Visible 第 i 行当前可见的部分
func (r *TextReveal) Visible(i int) string {
	switch {
	case i < 0 || i >= len(r.lines):
		return ""
	case i < r.line:
		return string(r.lines[i])
	case i == r.line:
		return string(r.lines[i][:r.shown])
	}
	return ""
}

// PromptVisible 等待提示当前是否可见（逐字显示期间不显示）
func (r *TextReveal) PromptVisible() bool {
	return r.state == RevealWaitPrompt && r.promptVisible
}
