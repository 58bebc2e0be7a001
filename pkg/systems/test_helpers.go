package systems

import (
	"github.com/Ganso/Sleigh-Chase/pkg/components"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

// 测试用的屏幕尺寸
const (
	testScreenWidth  = 320
	testScreenHeight = 224
)

// newTestChimneyConfig 返回与交付阶段一致的烟囱参数
func newTestChimneyConfig() ChimneyConfig {
	return ChimneyConfig{
		Count:             4,
		Size:              32,
		HitboxInset:       4,
		MarginX:           4,
		ScreenWidth:       testScreenWidth,
		ScreenHeight:      testScreenHeight,
		RowOffset:         64,
		HouseHeight:       128,
		ProhibitedPercent: 0,
		ResetFrames:       90,
		BlinkInterval:     6,
	}
}

// newTestEnemyPool 创建一个敌人池（不生成）
func newTestEnemyPool(capacity int, rng *utils.RNG) *Pool[components.Enemy] {
	return NewPool[components.Enemy](ActorSpec{
		Name:          "enemy",
		Role:          RoleThief,
		Kind:          host.SpriteEnemy,
		Width:         48,
		Height:        48,
		HitboxInsetX:  8,
		HitboxInsetY:  8,
		MinX:          0,
		MaxX:          testScreenWidth - 48,
		SpawnMinAbove: 48,
		SpawnMaxAbove: 160,
		ScreenHeight:  testScreenHeight,
		Respawn:       RespawnAbove,
	}, capacity, rng)
}

// placeChimney 把烟囱 i 强制放到 (x, y) 并设置状态
func placeChimney(f *ChimneyField, i int, x, y int16, state components.ChimneyState) {
	s := f.Pool().Slot(i)
	s.Active = true
	s.X, s.Y = x, y
	s.Data.State = state
	s.Data.ToggleIn.Start(0)
}
