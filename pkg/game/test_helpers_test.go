package game

import (
	"github.com/Ganso/Sleigh-Chase/pkg/config"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

// newTestContext 构造使用录制主机的阶段上下文
func newTestContext() (*PhaseContext, *host.RecordingDriver, *host.ScriptedInput) {
	driver := host.NewRecordingDriver()
	input := &host.ScriptedInput{}
	ctx := &PhaseContext{
		Host: host.Host{
			Sprites: driver,
			Text:    driver,
			Audio:   &host.RecordingAudio{},
			Input:   input,
		},
		Input:   &host.InputState{},
		Sprites: host.NewSpriteArena(driver, 8),
		Tiles:   host.NewTileArena(16, 1024),
		RNG:     utils.NewRNG(1),
		Tuning:  &config.Tuning{},
		Texts: &config.Texts{
			DefaultLanguage: "es",
			Languages:       map[string]config.LanguageTexts{"es": {Name: "Español"}},
		},
		State: NewGameState("es"),
	}
	return ctx, driver, input
}
