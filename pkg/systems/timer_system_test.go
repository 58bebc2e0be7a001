package systems

import (
	"testing"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
)

func TestTimerCountsDownToDefeat(t *testing.T) {
	var timer components.GameTimer
	InitTimer(&timer, 2)

	if timer.MaxFrames != 120 {
		t.Fatalf("expected 120 frames, got %d", timer.MaxFrames)
	}
	if RemainingSeconds(&timer) != 2 {
		t.Errorf("expected 2 seconds remaining, got %d", RemainingSeconds(&timer))
	}

	var remaining uint32
	for i := 0; i < 119; i++ {
		remaining = UpdateTimer(&timer)
	}
	if remaining != 1 || timer.State != components.TimerRunning {
		t.Fatalf("expected 1 frame left while running, got %d (state %d)", remaining, timer.State)
	}
	if RemainingSeconds(&timer) != 1 {
		t.Errorf("expected partial seconds to round up, got %d", RemainingSeconds(&timer))
	}

	remaining = UpdateTimer(&timer)
	if remaining != 0 || timer.State != components.TimerDefeat {
		t.Errorf("expected defeat with 0 frames left, got %d (state %d)", remaining, timer.State)
	}
	if UpdateTimer(&timer) != 0 {
		t.Error("expected a finished timer to stay at 0")
	}
}

func TestTimerVictoryFreezes(t *testing.T) {
	var timer components.GameTimer
	InitTimer(&timer, 1)
	UpdateTimer(&timer)
	timer.State = components.TimerVictory
	before := timer.Elapsed
	UpdateTimer(&timer)
	if timer.Elapsed != before {
		t.Error("expected a finished timer to stop counting")
	}
}

func TestCountdown(t *testing.T) {
	var c components.Countdown
	if c.Tick() {
		t.Error("expected an idle countdown to never expire")
	}
	c.Start(3)
	expired := []bool{c.Tick(), c.Tick(), c.Tick()}
	if expired[0] || expired[1] || !expired[2] {
		t.Errorf("expected expiry exactly on the third tick, got %v", expired)
	}
	if c.Active() {
		t.Error("expected countdown inactive after expiry")
	}
}
