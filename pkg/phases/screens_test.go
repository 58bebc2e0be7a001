package phases

import (
	"fmt"
	"testing"

	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

func TestSequenceNames(t *testing.T) {
	entries := Sequence()
	if entries[0].Name != PhaseLogo || entries[len(entries)-1].Name != PhaseEnd {
		t.Errorf("Expected sequence from %s to %s, got %v", PhaseLogo, PhaseEnd, Names())
	}
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Name] {
			t.Errorf("Duplicate phase name %q", e.Name)
		}
		seen[e.Name] = true
		if got := e.New().Name(); got != e.Name {
			t.Errorf("Expected phase %q to report its own name, got %q", e.Name, got)
		}
	}
	for _, name := range TimedPhases {
		if !seen[name] {
			t.Errorf("Timed phase %q missing from the sequence", name)
		}
	}
}

// TestSequenceInitsEveryPhase 每个阶段都能在真实配置下初始化并跑几帧
func TestSequenceInitsEveryPhase(t *testing.T) {
	for _, e := range Sequence() {
		t.Run(e.Name, func(t *testing.T) {
			rig := newTestRig(t)
			p := e.New()
			rig.initPhase(t, p)
			for i := 0; i < 30; i++ {
				rig.step(p, 0)
			}
			p.Shutdown()
		})
	}
}

func TestLogoSkipAndTimeout(t *testing.T) {
	rig := newTestRig(t)
	p := NewLogoPhase()
	rig.initPhase(t, p)
	rig.step(p, host.ButtonStart)
	if !p.IsComplete() {
		t.Error("Expected a press to skip the logo")
	}

	rig = newTestRig(t)
	p = NewLogoPhase()
	rig.initPhase(t, p)
	total := int(rig.ctx.Tuning.Logo.SlideFrames + rig.ctx.Tuning.Logo.HoldFrames)
	for i := 0; i < total-1; i++ {
		rig.step(p, 0)
	}
	if p.IsComplete() {
		t.Fatal("Expected logo to still be showing")
	}
	rig.step(p, 0)
	if !p.IsComplete() {
		t.Errorf("Expected logo to finish after %d frames", total)
	}
	if rig.audio.Playing != host.MusicTitle {
		t.Errorf("Expected title music, got %q", rig.audio.Playing)
	}
}

func TestTitleChoosesLanguage(t *testing.T) {
	rig := newTestRig(t)
	p := NewTitlePhase()
	rig.initPhase(t, p)

	if p.Choice() != "es" {
		t.Fatalf("Expected cursor on the current language, got %q", p.Choice())
	}
	// 第一次按键跳过滚动，直接进入菜单
	rig.step(p, host.ButtonA)
	rig.step(p, 0)
	rig.step(p, host.ButtonUp)
	if p.Choice() != "en" {
		t.Errorf("Expected cursor on en, got %q", p.Choice())
	}
	rig.step(p, 0)
	rig.step(p, host.ButtonStart)

	if !p.IsComplete() {
		t.Fatal("Expected title to complete on confirm")
	}
	if rig.ctx.State.Language != "en" {
		t.Errorf("Expected language en, got %q", rig.ctx.State.Language)
	}
	if rig.audio.Count(host.SFXMenuMove) != 1 || rig.audio.Count(host.SFXMenuConfirm) != 1 {
		t.Errorf("Expected one move and one confirm sound, got %v", rig.audio.SFX)
	}
}

func TestTitleScrollsIn(t *testing.T) {
	rig := newTestRig(t)
	p := NewTitlePhase()
	rig.initPhase(t, p)

	tt := rig.ctx.Tuning.Title
	frames := int(tt.WaitFrames) + int(tt.StartY/tt.ScrollStep) + 1
	for i := 0; i < frames; i++ {
		rig.step(p, 0)
	}
	if p.stage != titleChoosing {
		t.Errorf("Expected menu after the scroll, stage %d", p.stage)
	}
	if rig.audio.Count(host.SFXHoHoHo) != 1 {
		t.Errorf("Expected ho ho ho once, got %d", rig.audio.Count(host.SFXHoHoHo))
	}
	if got := rig.driver.TextAt(titleMenuColumn, titleMenuRow); got != rig.ctx.Texts.For("en").Name {
		t.Errorf("Expected first menu entry %q, got %q", rig.ctx.Texts.For("en").Name, got)
	}
}

func TestCutsceneRevealAndConfirm(t *testing.T) {
	rig := newTestRig(t)
	p := NewCutscenePhase(PhaseDelivery)
	rig.initPhase(t, p)

	lines := rig.ctx.Lang().Cutscenes[PhaseDelivery]
	if p.Reveal().Lines() != len(lines) {
		t.Fatalf("Expected %d lines, got %d", len(lines), p.Reveal().Lines())
	}
	rig.step(p, host.ButtonA)
	if got := rig.driver.TextAt(cutsceneColumn, cutsceneRow); got != lines[0] {
		t.Errorf("Expected first line %q after skipping, got %q", lines[0], got)
	}
	if p.IsComplete() {
		t.Fatal("Expected cutscene to wait for the prompt")
	}
	rig.step(p, 0)
	rig.step(p, host.ButtonB)
	if !p.IsComplete() {
		t.Error("Expected cutscene complete after confirming")
	}
}

func TestCelebrationShowsTimes(t *testing.T) {
	rig := newTestRig(t)
	state := rig.ctx.State
	state.RecordPhase(PhasePickup, 600)
	state.RecordPhase(PhaseDelivery, 1200)
	state.RecordPhase(PhaseBells, 1800)

	p := NewCelebrationPhase()
	rig.initPhase(t, p)
	rig.step(p, 0)
	lang := rig.ctx.Lang()
	if got := rig.driver.TextAt(centerColumn(lang.Celebration[0]), 5); got != lang.Celebration[0] {
		t.Errorf("Expected message %q, got %q", lang.Celebration[0], got)
	}

	// 祝福语至少显示 MinMessageFrames 帧
	rig.step(p, host.ButtonA)
	if p.Stage() != 0 {
		t.Fatalf("Expected early press to be ignored, stage %d", p.Stage())
	}
	for i := 0; i < int(rig.ctx.Tuning.Celebration.MinMessageFrames); i++ {
		rig.step(p, 0)
	}
	rig.step(p, host.ButtonA)
	if p.Stage() != 1 {
		t.Fatalf("Expected times board, stage %d", p.Stage())
	}

	total := fmt.Sprintf(lang.TimesTotal, 60)
	if got := rig.driver.TextAt(centerColumn(total), 11); got != total {
		t.Errorf("Expected total %q, got %q", total, got)
	}
	first := fmt.Sprintf(lang.TimesPhase, 1, 10)
	if got := rig.driver.TextAt(centerColumn(first), 7); got != first {
		t.Errorf("Expected %q, got %q", first, got)
	}

	rig.step(p, 0)
	rig.step(p, host.ButtonC)
	if !p.IsComplete() {
		t.Error("Expected celebration complete")
	}
}

func TestEndWaitsForPress(t *testing.T) {
	rig := newTestRig(t)
	p := NewEndPhase()
	rig.initPhase(t, p)
	for i := 0; i < 10; i++ {
		rig.step(p, 0)
	}
	if p.IsComplete() {
		t.Fatal("Expected end screen to wait")
	}
	rig.step(p, host.ButtonA)
	if !p.IsComplete() {
		t.Error("Expected end screen to finish on a press")
	}
}

// TestFullRunHeadless 完整流程：脚本化按键一路通关到结束画面
func TestFullRunHeadless(t *testing.T) {
	rig := newTestRig(t)
	seq := game.NewPhaseSequencer(rig.ctx, Sequence())
	// 在三个小游戏里不断送出按键，依靠状态注入推进
	rig.ctx.Host.Input = &host.ScriptedInput{Fallback: func(frame int) host.Buttons {
		if frame%2 == 0 {
			return host.ButtonStart
		}
		return 0
	}}

	for i := 0; i < 2000 && !seq.Done(); i++ {
		switch p := seq.Current().(type) {
		case *PickupPhase:
			if p.objective != nil {
				p.objective.OnGiftSuccess()
			}
		case *DeliveryPhase:
			if p.objective != nil {
				p.objective.OnGiftSuccess()
			}
		case *BellsPhase:
			if p.stage == StageBells {
				p.bellsCompleted = p.cfg.BellTarget
			} else if p.stage == StageLetters {
				p.hitLetter(p.TargetSlot())
			}
		}
		seq.Update()
		seq.Render()
	}

	if !seq.Done() {
		t.Fatalf("Expected the whole sequence to finish, stuck in %s", seq.CurrentName())
	}
	for _, name := range TimedPhases {
		if rig.ctx.State.PhaseFrames(name) == 0 {
			t.Errorf("Expected recorded frames for %s", name)
		}
	}
}
