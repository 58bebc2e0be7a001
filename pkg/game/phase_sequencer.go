package game

import (
	"fmt"
	"log"
)

// PhaseFactory creates a fresh phase instance each time the sequence reaches it.
type PhaseFactory func() Phase

// PhaseEntry is one slot of the game sequence.
type PhaseEntry struct {
	Name string
	New  PhaseFactory
}

// PhaseSequencer runs the phases in order. It polls IsComplete after every
// Update, records the frames each phase took, and returns the sprite and tile
// arenas to a clean state between phases.
type PhaseSequencer struct {
	ctx     *PhaseContext
	entries []PhaseEntry
	index   int
	current Phase
	frames  uint32
	loop    bool
	done    bool
}

// NewPhaseSequencer creates a sequencer positioned on the first entry.
// No phase is initialized until the first Update.
func NewPhaseSequencer(ctx *PhaseContext, entries []PhaseEntry) *PhaseSequencer {
	return &PhaseSequencer{
		ctx:     ctx,
		entries: entries,
	}
}

// SetLoop 设置序列结束后是否回到第一个阶段（模拟主机复位）
func (ps *PhaseSequencer) SetLoop(loop bool) {
	ps.loop = loop
}

// JumpTo 跳到指定名称的阶段（用于 -phase 参数）
func (ps *PhaseSequencer) JumpTo(name string) error {
	for i, e := range ps.entries {
		if e.Name == name {
			ps.finishCurrent(false)
			ps.index = i
			log.Printf("[Sequencer] jump to %s", name)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", name)
}

// Update reads input once, advances the active phase by one frame and moves
// to the next phase when the active one reports completion.
func (ps *PhaseSequencer) Update() {
	if ps.done {
		return
	}
	if ps.current == nil && !ps.startCurrent() {
		return
	}

	if ps.ctx.Input != nil && ps.ctx.Host.Input != nil {
		ps.ctx.Input.Update(ps.ctx.Host.Input.ReadButtons())
	}

	ps.current.Update()
	ps.frames++

	if ps.current.IsComplete() {
		ps.finishCurrent(true)
		ps.advance()
	}
}

// Render renders the active phase. With no active phase it does nothing.
func (ps *PhaseSequencer) Render() {
	if ps.current != nil {
		ps.current.Render()
	}
}

// Done reports whether a non-looping sequence has run past its last phase.
func (ps *PhaseSequencer) Done() bool {
	return ps.done
}

// CurrentName returns the name of the active (or next) phase.
func (ps *PhaseSequencer) CurrentName() string {
	if ps.index < len(ps.entries) {
		return ps.entries[ps.index].Name
	}
	return ""
}

// Current returns the active phase, or nil between phases.
func (ps *PhaseSequencer) Current() Phase {
	return ps.current
}

// startCurrent initializes the phase at ps.index, skipping phases whose Init fails.
func (ps *PhaseSequencer) startCurrent() bool {
	if len(ps.entries) == 0 {
		ps.done = true
		return false
	}
	// 每个阶段最多尝试一次，避免循环模式下全部失败时死循环
	for attempts := 0; !ps.done && attempts < len(ps.entries); attempts++ {
		entry := ps.entries[ps.index]
		phase := entry.New()
		if err := phase.Init(ps.ctx); err != nil {
			log.Printf("[Sequencer] %s init failed, skipping: %v", entry.Name, err)
			phase.Shutdown()
			ps.resetArenas()
			ps.advance()
			continue
		}
		log.Printf("[Sequencer] %s started", entry.Name)
		ps.current = phase
		ps.frames = 0
		return true
	}
	return false
}

func (ps *PhaseSequencer) finishCurrent(record bool) {
	if ps.current == nil {
		return
	}
	name := ps.entries[ps.index].Name
	if record {
		ps.ctx.State.RecordPhase(name, ps.frames)
		log.Printf("[Sequencer] %s complete after %d frames", name, ps.frames)
	}
	ps.current.Shutdown()
	ps.current = nil
	ps.resetArenas()
}

func (ps *PhaseSequencer) resetArenas() {
	if ps.ctx.Sprites != nil {
		ps.ctx.Sprites.ReleaseAll()
	}
	if ps.ctx.Tiles != nil {
		ps.ctx.Tiles.Reset()
	}
	if ps.ctx.Host.Text != nil {
		ps.ctx.Host.Text.ClearAll()
	}
}

func (ps *PhaseSequencer) advance() {
	ps.index++
	if ps.index < len(ps.entries) {
		return
	}
	if ps.loop && len(ps.entries) > 0 {
		log.Printf("[Sequencer] sequence finished, restarting")
		ps.index = 0
		ps.ctx.State.ResetTimes()
		return
	}
	ps.index = len(ps.entries)
	ps.done = true
}
