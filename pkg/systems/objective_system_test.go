package systems

import (
	"testing"

	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

func newTestObjective(capacity int) *ObjectiveSystem {
	return NewObjectiveSystem(ObjectiveConfig{
		Target:          10,
		LossFloorOffset: 3,
		BlinkFrames:     48,
		BlinkInterval:   6,
		Ramp:            EnemyRamp{Base: 1, Thresholds: []uint16{3, 6, 8}},
	}, capacity)
}

func TestObjectiveTargetTenScenario(t *testing.T) {
	const capacity = 3
	obj := newTestObjective(capacity)
	enemies := newTestEnemyPool(capacity, utils.NewRNG(10))
	enemies.SetActiveCount(obj.RequiredEnemies())

	for i := 0; i < 10; i++ {
		if obj.IsComplete() {
			t.Fatalf("expected incomplete after %d deliveries", i)
		}
		enemies.SetActiveCount(obj.OnGiftSuccess())
		if enemies.ActiveCount() > capacity {
			t.Fatalf("active enemies %d exceed capacity", enemies.ActiveCount())
		}
	}

	if !obj.IsComplete() {
		t.Error("expected the objective to be complete after 10 deliveries")
	}
	if enemies.ActiveCount() != capacity {
		t.Errorf("expected the capped maximum of %d enemies, got %d", capacity, enemies.ActiveCount())
	}
}

func TestObjectiveClampsAtMax(t *testing.T) {
	obj := newTestObjective(2)
	for i := 0; i < 15; i++ {
		obj.OnGiftSuccess()
	}
	if obj.Value() != 10 {
		t.Errorf("expected value clamped at 10, got %d", obj.Value())
	}
}

func TestObjectiveLossFloor(t *testing.T) {
	tests := []struct {
		name      string
		successes int
		losses    []uint16
		want      uint16
	}{
		{"floor at zero early", 2, []uint16{1, 1, 1}, 0},
		{"floor below historical max", 7, []uint16{1, 1, 1, 1, 1}, 4},
		{"bulk loss clamps to floor", 9, []uint16{20}, 6},
		{"loss within allowance", 6, []uint16{2}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := newTestObjective(3)
			for i := 0; i < tt.successes; i++ {
				obj.OnGiftSuccess()
			}
			for _, n := range tt.losses {
				obj.ApplyGiftLoss(n)
				if obj.Value() < obj.Floor() {
					t.Fatalf("value %d dropped below floor %d", obj.Value(), obj.Floor())
				}
			}
			if obj.Value() != tt.want {
				t.Errorf("expected %d, got %d", tt.want, obj.Value())
			}
		})
	}
}

func TestObjectiveFloorFollowsHistoricalMax(t *testing.T) {
	obj := newTestObjective(3)
	for i := 0; i < 5; i++ {
		obj.OnGiftSuccess()
	}
	obj.ApplyGiftLoss(3)
	obj.OnGiftSuccess()
	if got := obj.Counter().HistoricalMax; got != 5 {
		t.Errorf("expected historical max 5, got %d", got)
	}
	if obj.Floor() != 2 {
		t.Errorf("expected floor 2, got %d", obj.Floor())
	}
}

func TestObjectiveBlink(t *testing.T) {
	obj := newTestObjective(3)
	obj.OnGiftSuccess()
	if !obj.Blinking() {
		t.Fatal("expected the counter to blink after a success")
	}
	if got := obj.DisplayValue(0); got != 1 {
		t.Errorf("expected new value on even intervals, got %d", got)
	}
	if got := obj.DisplayValue(6); got != 0 {
		t.Errorf("expected previous value on odd intervals, got %d", got)
	}
	for i := 0; i < 48; i++ {
		obj.Update()
	}
	if obj.Blinking() {
		t.Error("expected the blink to stop after BlinkFrames")
	}
	if got := obj.DisplayValue(6); got != 1 {
		t.Errorf("expected the steady value after the blink, got %d", got)
	}
}

func TestEnemyRampRequired(t *testing.T) {
	ramp := EnemyRamp{Base: 1, Thresholds: []uint16{4, 8}}
	tests := []struct {
		value    uint16
		capacity int
		want     int
	}{
		{0, 3, 1}, {4, 3, 2}, {7, 3, 2}, {8, 3, 3}, {10, 2, 2}, {10, 0, 0},
	}
	for _, tt := range tests {
		if got := ramp.Required(tt.value, tt.capacity); got != tt.want {
			t.Errorf("Required(%d, %d): expected %d, got %d", tt.value, tt.capacity, tt.want, got)
		}
	}
}

func TestSplitRows(t *testing.T) {
	tests := []struct {
		value, row, top, bottom uint16
	}{
		{0, 5, 0, 0}, {3, 5, 3, 0}, {5, 5, 5, 0}, {7, 5, 5, 2}, {10, 5, 5, 5}, {15, 5, 5, 5}, {4, 0, 4, 0},
	}
	for _, tt := range tests {
		top, bottom := SplitRows(tt.value, tt.row)
		if top != tt.top || bottom != tt.bottom {
			t.Errorf("SplitRows(%d,%d): expected (%d,%d), got (%d,%d)", tt.value, tt.row, tt.top, tt.bottom, top, bottom)
		}
	}
}
