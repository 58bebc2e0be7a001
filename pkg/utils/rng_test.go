package utils

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("step %d: expected identical sequences, got %d and %d", i, x, y)
		}
	}
}

func TestRNGZeroSeed(t *testing.T) {
	r := NewRNG(0)
	if r.Seed() != 1 {
		t.Errorf("expected seed 0 to be replaced by 1, got %d", r.Seed())
	}
	if r.Next() == 0 {
		t.Error("expected a non-zero value from a zero seed")
	}
}

func TestRNGRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"positive range", 4, 284},
		{"negative range", -224, -40},
		{"single value", 7, 8},
		{"empty range", 10, 10},
		{"inverted range", 10, 5},
	}

	r := NewRNG(1234)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				v := r.Range(tt.min, tt.max)
				if tt.max <= tt.min {
					if v != tt.min {
						t.Fatalf("expected %d for an empty range, got %d", tt.min, v)
					}
					continue
				}
				if v < tt.min || v >= tt.max {
					t.Fatalf("expected value in [%d, %d), got %d", tt.min, tt.max, v)
				}
			}
		})
	}
}

func TestRNGChanceBounds(t *testing.T) {
	r := NewRNG(99)
	for i := 0; i < 200; i++ {
		if r.Chance(0) {
			t.Fatal("expected Chance(0) to never succeed")
		}
		if !r.Chance(100) {
			t.Fatal("expected Chance(100) to always succeed")
		}
	}
}

func TestFixedConversions(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{"whole", 2.0, 2},
		{"half", 0.5, 0},
		{"one and a half", 1.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixedFromFloat(tt.in).Int(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
	if FixedFromInt(3) != 3*FixedOne {
		t.Error("expected FixedFromInt(3) == 3*FixedOne")
	}
}
