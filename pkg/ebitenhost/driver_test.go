package ebitenhost

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Ganso/Sleigh-Chase/pkg/config"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

func TestKindSizesCoverPalette(t *testing.T) {
	tuning, err := config.LoadTuning("../../data/tuning.yaml")
	if err != nil {
		t.Fatalf("Failed to load tuning: %v", err)
	}
	sizes := host.KindSizes(tuning)

	tests := []struct {
		kind host.SpriteKind
		w, h int
	}{
		{host.SpriteSanta, int(tuning.Delivery.Player.Width), int(tuning.Delivery.Player.Height)},
		{host.SpriteChimney, int(tuning.Delivery.Chimneys.Size), int(tuning.Delivery.Chimneys.Size)},
		{host.SpriteBullet, int(tuning.Bells.Bullets.Size), int(tuning.Bells.Bullets.Size)},
		{host.SpriteTargetLetter, host.LetterSize, host.LetterSize},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got := sizes[tt.kind]
			if got.X != tt.w || got.Y != tt.h {
				t.Errorf("Expected %dx%d, got %dx%d", tt.w, tt.h, got.X, got.Y)
			}
		})
	}

	for kind := range kindColors {
		if _, ok := sizes[kind]; !ok {
			t.Errorf("Expected a size for %s", kind)
		}
	}
}

func TestDrawOrderByDepthThenCreation(t *testing.T) {
	d := NewDriver(nil)
	back, _ := d.NewSprite(host.SpriteTree)
	front, _ := d.NewSprite(host.SpriteSanta)
	sameDepth, _ := d.NewSprite(host.SpriteElf)
	hidden, _ := d.NewSprite(host.SpriteGift)

	back.SetDepth(40)
	front.SetDepth(0)
	sameDepth.SetDepth(40)
	hidden.SetVisible(false)

	order := d.drawOrder()
	if len(order) != 3 {
		t.Fatalf("Expected 3 visible sprites, got %d", len(order))
	}
	if order[0] != back || order[1] != sameDepth || order[2] != front {
		t.Errorf("Expected tree, elf, santa order, got %s, %s, %s",
			order[0].kind, order[1].kind, order[2].kind)
	}
}

func TestReleaseRemovesSprite(t *testing.T) {
	d := NewDriver(nil)
	s, _ := d.NewSprite(host.SpriteBell)
	if d.LiveSprites() != 1 {
		t.Fatalf("Expected 1 live sprite, got %d", d.LiveSprites())
	}
	s.Release()
	s.Release()
	if d.LiveSprites() != 0 {
		t.Errorf("Expected 0 live sprites after release, got %d", d.LiveSprites())
	}
}

func TestUnknownKindFails(t *testing.T) {
	d := NewDriver(nil)
	if _, err := d.NewSprite(host.SpriteKind("reindeer")); err == nil {
		t.Error("Expected error for unknown sprite kind")
	}
	if _, err := d.LoadBackground(host.BackgroundKind("beach"), host.PlaneB); err == nil {
		t.Error("Expected error for unknown background")
	}
}

func TestBackgroundTilesFitTitleScreen(t *testing.T) {
	tuning, err := config.LoadTuning("../../data/tuning.yaml")
	if err != nil {
		t.Fatalf("Failed to load tuning: %v", err)
	}
	d := NewDriver(nil)
	tiles := host.NewTileArena(tuning.Screen.TileBase, tuning.Screen.TileLimit)
	for _, kind := range []host.BackgroundKind{host.BackgroundNight, host.BackgroundTitle} {
		bg, _ := d.LoadBackground(kind, host.PlaneB)
		if _, err := tiles.Reserve(bg.TileCount()); err != nil {
			t.Fatalf("Expected %s to fit the tile budget: %v", kind, err)
		}
	}
}

func TestTextLayer(t *testing.T) {
	d := NewDriver(nil)
	d.DrawText("REGALOS 3", 1, 1)
	d.DrawText("X", 20, 1)
	d.ClearText(4, 1, 20)

	if got := d.text[[2]int{1, 1}]; got != "REG" {
		t.Errorf("Expected truncated text %q, got %q", "REG", got)
	}
	if _, ok := d.text[[2]int{20, 1}]; ok {
		t.Error("Expected text inside the cleared range to be removed")
	}

	d.ClearAll()
	if len(d.text) != 0 {
		t.Errorf("Expected empty text layer, got %d entries", len(d.text))
	}
}

func TestButtonsFromKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []ebiten.Key
		want host.Buttons
	}{
		{"none", nil, 0},
		{"arrows", []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowUp}, host.ButtonLeft | host.ButtonUp},
		{"wasd", []ebiten.Key{ebiten.KeyD}, host.ButtonRight},
		{"actions", []ebiten.Key{ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyEnter},
			host.ButtonA | host.ButtonB | host.ButtonC | host.ButtonStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pressed := func(k ebiten.Key) bool {
				for _, want := range tt.keys {
					if k == want {
						return true
					}
				}
				return false
			}
			if got := buttonsFromKeys(pressed); got != tt.want {
				t.Errorf("Expected %b, got %b", tt.want, got)
			}
		})
	}
}

func TestButtonsFromStick(t *testing.T) {
	tests := []struct {
		x, y float64
		want host.Buttons
	}{
		{0, 0, 0},
		{-0.9, 0, host.ButtonLeft},
		{0.6, 0.7, host.ButtonRight | host.ButtonDown},
		{0.2, -0.4, 0},
		{0, -1, host.ButtonUp},
	}
	for _, tt := range tests {
		if got := buttonsFromStick(tt.x, tt.y); got != tt.want {
			t.Errorf("Stick (%.1f, %.1f): expected %b, got %b", tt.x, tt.y, tt.want, got)
		}
	}
}
