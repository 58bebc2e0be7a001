package systems

import (
	"testing"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
)

func TestApplyInertiaAxisAccelerationSequence(t *testing.T) {
	cfg := &components.InertiaConfig{Accel: 1, Friction: 1, FrictionDelay: 2, MaxVelocity: 5}
	var pos int16 = 100
	var vel int8

	want := []int8{1, 2, 3, 4, 5, 5, 5}
	for i, w := range want {
		ApplyInertiaAxis(&pos, &vel, 0, 300, 1, uint16(i), cfg)
		if vel != w {
			t.Fatalf("frame %d: expected velocity %d, got %d", i, w, vel)
		}
	}
	if pos != 100+1+2+3+4+5+5+5 {
		t.Errorf("expected position %d, got %d", 100+25, pos)
	}
}

func TestApplyInertiaAxisNeverExceedsMax(t *testing.T) {
	tests := []struct {
		name string
		cfg  components.InertiaConfig
		dir  int8
	}{
		{"accel divides max", components.InertiaConfig{Accel: 1, MaxVelocity: 5}, 1},
		{"accel overshoots max", components.InertiaConfig{Accel: 2, MaxVelocity: 5}, 1},
		{"negative direction", components.InertiaConfig{Accel: 3, MaxVelocity: 6}, -1},
		{"accel larger than max", components.InertiaConfig{Accel: 9, MaxVelocity: 4}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pos int16 = 150
			var vel int8
			for frame := uint16(0); frame < 50; frame++ {
				ApplyInertiaAxis(&pos, &vel, -1000, 1000, tt.dir, frame, &tt.cfg)
				if vel > tt.cfg.MaxVelocity || vel < -tt.cfg.MaxVelocity {
					t.Fatalf("frame %d: |velocity| %d exceeds max %d", frame, vel, tt.cfg.MaxVelocity)
				}
			}
			if vel != tt.dir*tt.cfg.MaxVelocity {
				t.Errorf("expected velocity to settle at %d, got %d", tt.dir*tt.cfg.MaxVelocity, vel)
			}
		})
	}
}

func TestApplyInertiaAxisFrictionMonotonic(t *testing.T) {
	tests := []struct {
		name  string
		start int8
		cfg   components.InertiaConfig
	}{
		{"positive every frame", 5, components.InertiaConfig{Friction: 1, FrictionDelay: 1, MaxVelocity: 5}},
		{"negative every other frame", -5, components.InertiaConfig{Friction: 1, FrictionDelay: 2, MaxVelocity: 5}},
		{"friction larger than speed", 3, components.InertiaConfig{Friction: 2, FrictionDelay: 1, MaxVelocity: 5}},
		{"zero delay treated as one", -4, components.InertiaConfig{Friction: 3, FrictionDelay: 0, MaxVelocity: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pos int16 = 100
			vel := tt.start
			for frame := uint16(0); frame < 40; frame++ {
				prev := vel
				ApplyInertiaAxis(&pos, &vel, -1000, 1000, 0, frame, &tt.cfg)
				if abs8(vel) > abs8(prev) {
					t.Fatalf("frame %d: |velocity| grew from %d to %d", frame, prev, vel)
				}
				if prev > 0 && vel < 0 || prev < 0 && vel > 0 {
					t.Fatalf("frame %d: velocity crossed zero (%d -> %d)", frame, prev, vel)
				}
			}
			if vel != 0 {
				t.Errorf("expected velocity to decay to 0, got %d", vel)
			}
		})
	}
}

func TestApplyInertiaAxisFrictionDelay(t *testing.T) {
	cfg := &components.InertiaConfig{Friction: 1, FrictionDelay: 3, MaxVelocity: 5}
	var pos int16
	var vel int8 = 4

	ApplyInertiaAxis(&pos, &vel, -100, 100, 0, 1, cfg)
	if vel != 4 {
		t.Errorf("expected no friction on frame 1, got %d", vel)
	}
	ApplyInertiaAxis(&pos, &vel, -100, 100, 0, 3, cfg)
	if vel != 3 {
		t.Errorf("expected friction on frame 3, got %d", vel)
	}
}

func TestApplyInertiaAxisClampsPosition(t *testing.T) {
	cfg := &components.InertiaConfig{Accel: 5, MaxVelocity: 5}
	var pos int16 = 8
	var vel int8
	for frame := uint16(0); frame < 10; frame++ {
		ApplyInertiaAxis(&pos, &vel, 4, 236, -1, frame, cfg)
	}
	if pos != 4 {
		t.Errorf("expected position clamped to 4, got %d", pos)
	}
}

func TestApplyInertiaNilSafe(t *testing.T) {
	var pos int16 = 10
	var vel int8 = 2
	ApplyInertiaAxis(&pos, &vel, 0, 100, 1, 0, nil)
	ApplyInertiaAxis(nil, &vel, 0, 100, 1, 0, &components.InertiaConfig{})
	ApplyInertiaMovement(nil, components.Rect{}, 1, 1, 0, &components.InertiaConfig{})
	if pos != 10 || vel != 2 {
		t.Errorf("expected untouched state, got pos=%d vel=%d", pos, vel)
	}
}

func TestApplyInertiaMovementNoDiagonalNormalization(t *testing.T) {
	cfg := &components.InertiaConfig{Accel: 1, Friction: 1, FrictionDelay: 1, MaxVelocity: 5}
	body := components.Body{X: 100, Y: 100}
	bounds := components.Rect{X: 0, Y: 0, W: 240, H: 96}
	for frame := uint16(0); frame < 10; frame++ {
		ApplyInertiaMovement(&body, bounds, 1, 1, frame, cfg)
	}
	if body.VX != 5 || body.VY != 5 {
		t.Errorf("expected both axes at full speed, got (%d,%d)", body.VX, body.VY)
	}
	if body.Y != 96 {
		t.Errorf("expected Y clamped to 96, got %d", body.Y)
	}
}

func abs8(v int8) int8 {
	if v < 0 {
		return -v
	}
	return v
}
