package game

import (
	"errors"
	"testing"

	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// MockPhase 用于测试的阶段：运行 length 帧后完成
type MockPhase struct {
	name     string
	length   int
	initErr  error
	sprites  int
	frames   int
	inits    int
	renders  int
	shutdown bool
	pressed  int
	ctx      *PhaseContext
}

func (m *MockPhase) Name() string { return m.name }

func (m *MockPhase) Init(ctx *PhaseContext) error {
	m.inits++
	m.ctx = ctx
	if m.initErr != nil {
		return m.initErr
	}
	for i := 0; i < m.sprites; i++ {
		if _, err := ctx.Sprites.Acquire(host.SpriteGift); err != nil {
			return err
		}
	}
	if _, err := ctx.Tiles.Reserve(100); err != nil {
		return err
	}
	return nil
}

func (m *MockPhase) Update() {
	m.frames++
	if m.ctx.Input.Pressed(host.ButtonA) {
		m.pressed++
	}
}

func (m *MockPhase) Render()          { m.renders++ }
func (m *MockPhase) IsComplete() bool { return m.frames >= m.length }
func (m *MockPhase) Shutdown()        { m.shutdown = true }

// entriesFor 把固定的 MockPhase 实例包成序列表项
func entriesFor(phases ...*MockPhase) []PhaseEntry {
	entries := make([]PhaseEntry, len(phases))
	for i, p := range phases {
		p := p
		entries[i] = PhaseEntry{Name: p.name, New: func() Phase { return p }}
	}
	return entries
}

// TestNewPhaseSequencer verifies that no phase starts before the first Update.
func TestNewPhaseSequencer(t *testing.T) {
	ctx, _, _ := newTestContext()
	a := &MockPhase{name: "a", length: 1}
	ps := NewPhaseSequencer(ctx, entriesFor(a))

	if ps.Current() != nil {
		t.Error("Expected no active phase before the first Update")
	}
	if ps.CurrentName() != "a" {
		t.Errorf("Expected current name a, got %q", ps.CurrentName())
	}
	if a.inits != 0 {
		t.Errorf("Expected Init not to be called yet, got %d calls", a.inits)
	}
}

// TestPhaseSequencerAdvances verifies completion, timing and arena reset.
func TestPhaseSequencerAdvances(t *testing.T) {
	ctx, _, _ := newTestContext()
	a := &MockPhase{name: "a", length: 3, sprites: 4}
	b := &MockPhase{name: "b", length: 2, sprites: 8}
	ps := NewPhaseSequencer(ctx, entriesFor(a, b))

	for i := 0; i < 3; i++ {
		ps.Update()
		ps.Render()
	}

	if !a.shutdown {
		t.Error("Expected phase a to be shut down after completion")
	}
	if a.renders != 2 {
		t.Errorf("Expected 2 renders of a (the completing frame is not rendered), got %d", a.renders)
	}
	if got := ctx.State.PhaseFrames("a"); got != 3 {
		t.Errorf("Expected 3 recorded frames for a, got %d", got)
	}
	if ctx.Sprites.InUse() != 0 {
		t.Errorf("Expected sprite arena to be empty between phases, got %d", ctx.Sprites.InUse())
	}
	if ctx.Tiles.Used() != 0 {
		t.Errorf("Expected tile arena to be reset, got %d", ctx.Tiles.Used())
	}
	if ps.CurrentName() != "b" {
		t.Errorf("Expected next phase b, got %q", ps.CurrentName())
	}

	// b needs the whole budget, which only works if a released its sprites
	ps.Update()
	if b.inits != 1 {
		t.Fatalf("Expected b to be initialized once, got %d", b.inits)
	}
	if ctx.Sprites.InUse() != 8 {
		t.Errorf("Expected 8 sprites in use, got %d", ctx.Sprites.InUse())
	}
	ps.Update()

	if !ps.Done() {
		t.Error("Expected sequence to be done after the last phase")
	}
	ps.Update()
	ps.Render()
	if b.frames != 2 {
		t.Errorf("Expected b to stop updating after completion, got %d frames", b.frames)
	}
}

// TestPhaseSequencerSkipsFailedInit verifies that a failing phase is skipped.
func TestPhaseSequencerSkipsFailedInit(t *testing.T) {
	ctx, _, _ := newTestContext()
	bad := &MockPhase{name: "bad", length: 1, initErr: errors.New("boom")}
	good := &MockPhase{name: "good", length: 1}
	ps := NewPhaseSequencer(ctx, entriesFor(bad, good))

	ps.Update()

	if bad.frames != 0 {
		t.Errorf("Expected failed phase never to update, got %d frames", bad.frames)
	}
	if !bad.shutdown {
		t.Error("Expected failed phase to be shut down")
	}
	if good.frames != 1 {
		t.Errorf("Expected good phase to run in the same frame, got %d frames", good.frames)
	}
}

// TestPhaseSequencerLoop verifies that a looping sequence restarts and clears times.
func TestPhaseSequencerLoop(t *testing.T) {
	ctx, _, _ := newTestContext()
	a := &MockPhase{name: "a", length: 1}
	ps := NewPhaseSequencer(ctx, entriesFor(a))
	ps.SetLoop(true)

	ps.Update()
	if ps.Done() {
		t.Fatal("Expected looping sequence never to be done")
	}
	if got := ctx.State.PhaseFrames("a"); got != 0 {
		t.Errorf("Expected times to be cleared on restart, got %d", got)
	}
	if ps.CurrentName() != "a" {
		t.Errorf("Expected to restart at a, got %q", ps.CurrentName())
	}
}

// TestPhaseSequencerJumpTo verifies named jumps.
func TestPhaseSequencerJumpTo(t *testing.T) {
	ctx, _, _ := newTestContext()
	a := &MockPhase{name: "a", length: 10}
	b := &MockPhase{name: "b", length: 10}
	ps := NewPhaseSequencer(ctx, entriesFor(a, b))

	if err := ps.JumpTo("missing"); err == nil {
		t.Error("Expected error for unknown phase")
	}

	ps.Update()
	if err := ps.JumpTo("b"); err != nil {
		t.Fatalf("Expected jump to succeed, got %v", err)
	}
	if !a.shutdown {
		t.Error("Expected active phase to be shut down on jump")
	}
	if got := ctx.State.PhaseFrames("a"); got != 0 {
		t.Errorf("Expected an interrupted phase not to be timed, got %d", got)
	}
	ps.Update()
	if b.frames != 1 {
		t.Errorf("Expected b to run after the jump, got %d frames", b.frames)
	}
}

// TestPhaseSequencerReadsInputOncePerFrame verifies edge detection across frames.
func TestPhaseSequencerReadsInputOncePerFrame(t *testing.T) {
	ctx, _, input := newTestContext()
	input.Frames = []host.Buttons{host.ButtonA, host.ButtonA, 0, host.ButtonA}
	a := &MockPhase{name: "a", length: 100}
	ps := NewPhaseSequencer(ctx, entriesFor(a))

	for i := 0; i < 4; i++ {
		ps.Update()
	}

	if input.Frame() != 4 {
		t.Errorf("Expected 4 input reads, got %d", input.Frame())
	}
	if a.pressed != 2 {
		t.Errorf("Expected 2 press edges, got %d", a.pressed)
	}
}

// TestPhaseSequencerRenderNoPhase verifies that Render is nil-safe.
func TestPhaseSequencerRenderNoPhase(t *testing.T) {
	ctx, _, _ := newTestContext()
	ps := NewPhaseSequencer(ctx, nil)
	ps.Render()
	ps.Update()
	if !ps.Done() {
		t.Error("Expected an empty sequence to be done")
	}
}
