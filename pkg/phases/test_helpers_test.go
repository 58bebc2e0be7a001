package phases

import (
	"testing"

	"github.com/Ganso/Sleigh-Chase/pkg/config"
	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

// testRig 阶段测试用的录制主机
type testRig struct {
	ctx    *game.PhaseContext
	driver *host.RecordingDriver
	audio  *host.RecordingAudio
}

// newTestRig 使用 data/ 下的真实配置构造阶段上下文
func newTestRig(t *testing.T) *testRig {
	t.Helper()
	tuning, err := config.LoadTuning("../../data/tuning.yaml")
	if err != nil {
		t.Fatalf("Failed to load tuning: %v", err)
	}
	texts, err := config.LoadTexts("../../data/texts.yaml")
	if err != nil {
		t.Fatalf("Failed to load texts: %v", err)
	}

	driver := host.NewRecordingDriver()
	audio := &host.RecordingAudio{}
	ctx := &game.PhaseContext{
		Host: host.Host{
			Sprites: driver,
			Text:    driver,
			Audio:   audio,
			Input:   &host.ScriptedInput{},
		},
		Input:   &host.InputState{},
		Sprites: host.NewSpriteArena(driver, tuning.Screen.SpriteBudget),
		Tiles:   host.NewTileArena(tuning.Screen.TileBase, tuning.Screen.TileLimit),
		RNG:     utils.NewRNG(7),
		Tuning:  tuning,
		Texts:   texts,
		State:   game.NewGameState("es"),
	}
	return &testRig{ctx: ctx, driver: driver, audio: audio}
}

// step 以给定按键推进一帧（更新 + 渲染）
func (r *testRig) step(p game.Phase, b host.Buttons) {
	r.ctx.Input.Update(b)
	p.Update()
	p.Render()
}

// initPhase 初始化阶段，失败时终止测试
func (r *testRig) initPhase(t *testing.T, p game.Phase) {
	t.Helper()
	if err := p.Init(r.ctx); err != nil {
		t.Fatalf("Init(%s) failed: %v", p.Name(), err)
	}
}
