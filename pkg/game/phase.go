package game

import (
	"github.com/Ganso/Sleigh-Chase/pkg/config"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

// Phase represents one step of the game sequence (logo, title, a cutscene,
// a minigame, the celebration...). Exactly one phase is active at a time.
type Phase interface {
	// Name identifies the phase in logs and in the per-phase timing table.
	Name() string

	// Init acquires sprites, backgrounds and state. A returned error makes the
	// sequencer skip the phase.
	Init(ctx *PhaseContext) error

	// Update advances the simulation by exactly one frame.
	Update()

	// Render pushes the frame's sprite and text state to the host.
	Render()

	// IsComplete is polled by the sequencer after every Update.
	IsComplete() bool

	// Shutdown releases host resources that outlive the sprite arena,
	// such as background map handles.
	Shutdown()
}

// PhaseContext carries everything a phase may touch. The tile cursor, the
// sprite budget and the RNG live here and nowhere else.
type PhaseContext struct {
	Host    host.Host
	Input   *host.InputState
	Sprites *host.SpriteArena
	Tiles   *host.TileArena
	RNG     *utils.RNG
	Tuning  *config.Tuning
	Texts   *config.Texts
	State   *GameState
}

// Lang returns the texts for the language chosen on the title screen.
func (c *PhaseContext) Lang() config.LanguageTexts {
	return c.Texts.For(c.State.Language)
}
