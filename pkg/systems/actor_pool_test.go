package systems

import (
	"testing"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

func TestPoolSpawnWithinRanges(t *testing.T) {
	pool := newTestEnemyPool(8, utils.NewRNG(7))
	for round := 0; round < 50; round++ {
		pool.SpawnAll()
		pool.Each(func(i int, s *Slot[components.Enemy]) {
			if s.X < 0 || s.X >= testScreenWidth-48 {
				t.Fatalf("slot %d: X %d outside [0, %d)", i, s.X, testScreenWidth-48)
			}
			if s.Y > -48 || s.Y <= -160 {
				t.Fatalf("slot %d: Y %d outside (-160, -48]", i, s.Y)
			}
		})
	}
}

func TestPoolRecyclingIdempotence(t *testing.T) {
	pool := newTestEnemyPool(3, utils.NewRNG(11))
	pool.SpawnAll()
	pool.SpawnAt(1, 10, testScreenHeight-2)

	recycled := pool.Update(4)
	if recycled != 1 {
		t.Fatalf("expected 1 recycled actor, got %d", recycled)
	}
	s := pool.Slot(1)
	if !s.Active {
		t.Fatal("expected recycled actor to stay active")
	}
	if s.Y >= 0 {
		t.Errorf("expected recycled actor above the screen in the same call, got Y=%d", s.Y)
	}
	for i := 0; i < pool.Len(); i++ {
		if pool.Slot(i).Y > testScreenHeight {
			t.Errorf("slot %d left below the screen at Y=%d", i, pool.Slot(i).Y)
		}
	}
}

func TestPoolRespawnDeactivatePolicy(t *testing.T) {
	spec := ActorSpec{Name: "drop", Width: 16, Height: 16, MinX: 0, MaxX: 100,
		SpawnMinAbove: 16, SpawnMaxAbove: 32, ScreenHeight: testScreenHeight, Respawn: RespawnDeactivate}
	pool := NewPool[struct{}](spec, 1, utils.NewRNG(1))
	pool.SpawnAt(0, 50, testScreenHeight)
	pool.Update(1)
	if pool.Slot(0).Active {
		t.Error("expected actor to deactivate after leaving the screen")
	}
}

func TestPoolInvalidRangeDeactivates(t *testing.T) {
	tests := []struct {
		name string
		spec ActorSpec
	}{
		{"collapsed horizontal", ActorSpec{Name: "tree", MinX: 200, MaxX: 120, SpawnMinAbove: 40, SpawnMaxAbove: 224}},
		{"empty horizontal", ActorSpec{Name: "tree", MinX: 64, MaxX: 64, SpawnMinAbove: 40, SpawnMaxAbove: 224}},
		{"collapsed vertical", ActorSpec{Name: "elf", MinX: 0, MaxX: 100, SpawnMinAbove: 224, SpawnMaxAbove: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool[struct{}](tt.spec, 2, utils.NewRNG(3))
			pool.SpawnAt(0, 10, 10)
			if pool.Spawn(0) {
				t.Fatal("expected spawn to fail")
			}
			if pool.Slot(0).Active {
				t.Error("expected slot to be deactivated")
			}
		})
	}
}

func TestPoolAttachSpritesBudget(t *testing.T) {
	driver := host.NewRecordingDriver()
	arena := host.NewSpriteArena(driver, 2)
	pool := newTestEnemyPool(3, utils.NewRNG(5))

	pool.AttachSprites(arena)
	pool.SpawnAll()

	if !pool.Slot(2).Disabled {
		t.Fatal("expected the third slot to be disabled once the budget ran out")
	}
	if pool.ActiveCount() != 2 {
		t.Errorf("expected 2 active slots, got %d", pool.ActiveCount())
	}

	pool.SyncSprites()
	for _, s := range driver.LiveSprites(host.SpriteEnemy) {
		if !s.Visible {
			t.Error("expected active sprites to be visible after sync")
		}
	}
}

func TestPoolSetActiveCount(t *testing.T) {
	pool := newTestEnemyPool(4, utils.NewRNG(9))
	tests := []struct {
		n, want int
	}{
		{1, 1}, {3, 3}, {10, 4}, {2, 2}, {0, 0},
	}
	for _, tt := range tests {
		pool.SetActiveCount(tt.n)
		if got := pool.ActiveCount(); got != tt.want {
			t.Errorf("SetActiveCount(%d): expected %d active, got %d", tt.n, tt.want, got)
		}
	}
}

func TestPoolOverlapsUsesInsetHitbox(t *testing.T) {
	pool := newTestEnemyPool(1, utils.NewRNG(1))
	pool.SpawnAt(0, 100, 100)

	tests := []struct {
		name string
		rect components.Rect
		want bool
	}{
		{"inside hitbox", components.Rect{X: 120, Y: 120, W: 4, H: 4}, true},
		{"inside sprite, outside hitbox", components.Rect{X: 101, Y: 101, W: 4, H: 4}, false},
		{"touching inset edge", components.Rect{X: 100, Y: 120, W: 8, H: 4}, false},
		{"far away", components.Rect{X: 0, Y: 0, W: 10, H: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pool.Overlaps(0, tt.rect); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	pool.Deactivate(0)
	if pool.FirstOverlap(components.Rect{X: 120, Y: 120, W: 4, H: 4}) != -1 {
		t.Error("expected inactive slots to never overlap")
	}
}

func TestPoolCollideByRole(t *testing.T) {
	player := components.Rect{X: 110, Y: 110, W: 30, H: 30}

	tests := []struct {
		name     string
		role     ActorRole
		expected int
		// remaining 接触后仍留在原位的对象数
		remaining int
	}{
		{"collectibles are all taken", RoleCollectible, 2, 0},
		{"one thief per contact", RoleThief, 1, 1},
		{"targets ignore the player", RoleTarget, 0, 2},
		{"decorations ignore the player", RoleDecorative, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newTestEnemyPool(2, utils.NewRNG(3))
			pool.spec.Role = tt.role
			pool.SpawnAt(0, 100, 100)
			pool.SpawnAt(1, 104, 104)

			if got := pool.Collide(player); got != tt.expected {
				t.Errorf("expected %d contacts, got %d", tt.expected, got)
			}
			remaining := 0
			for i := 0; i < pool.Len(); i++ {
				if s := pool.Slot(i); s.Active && s.Y >= 100 {
					remaining++
				}
			}
			if remaining != tt.remaining {
				t.Errorf("expected %d actors left in place, got %d", tt.remaining, remaining)
			}
		})
	}
}
