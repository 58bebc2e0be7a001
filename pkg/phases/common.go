package phases

import (
	"log"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
	"github.com/Ganso/Sleigh-Chase/pkg/config"
	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/systems"
)

// 文字层尺寸（8x8 字符格）
const (
	textColumns = 40
	textRows    = 28
)

// 精灵深度：数值越小越靠前
const (
	depthHUD     int16 = 0
	depthPlayer  int16 = 24
	depthEffects int16 = 32
	depthActors  int16 = 40
)

// inertiaConfig 把配置转换为惯性参数
func inertiaConfig(t config.InertiaTuning) components.InertiaConfig {
	return components.InertiaConfig{
		Accel:         t.Accel,
		Friction:      t.Friction,
		FrictionDelay: t.FrictionDelay,
		MaxVelocity:   t.MaxVelocity,
	}
}

// actorSpec 由对象池配置生成能力描述
func actorSpec(name string, role systems.ActorRole, kind host.SpriteKind, t config.ActorTuning,
	minX, maxX, screenHeight int16, respawn systems.RespawnPolicy, depth int16) systems.ActorSpec {
	return systems.ActorSpec{
		Name:          name,
		Role:          role,
		Kind:          kind,
		Width:         t.Width,
		Height:        t.Height,
		HitboxInsetX:  t.HitboxInset,
		HitboxInsetY:  t.HitboxInset,
		MinX:          minX,
		MaxX:          maxX,
		SpawnMinAbove: t.SpawnMinAbove,
		SpawnMaxAbove: t.SpawnMaxAbove,
		ScreenHeight:  screenHeight,
		Respawn:       respawn,
		Depth:         depth,
	}
}

// playerHitbox 玩家碰撞盒：水平居中，贴在精灵底部
func playerHitbox(b components.Body, p config.PlayerTuning) components.Rect {
	return components.Rect{
		X: b.X + (p.Width-p.HitboxWidth)/2,
		Y: b.Y + p.Height - p.HitboxHeight,
		W: p.HitboxWidth,
		H: p.HitboxHeight,
	}
}

// acquireSprite 申请单个精灵；失败时记录日志并返回 nil，阶段继续运行
func acquireSprite(ctx *game.PhaseContext, kind host.SpriteKind, depth int16) host.Sprite {
	s, err := ctx.Sprites.Acquire(kind)
	if err != nil {
		log.Printf("[Phase] sprite %s unavailable: %v", kind, err)
		return nil
	}
	s.SetDepth(depth)
	return s
}

// loadBackground 加载背景并从图块预算中扣除其图块
// 失败时返回 nil（只缺背景，不影响玩法）
func loadBackground(ctx *game.PhaseContext, kind host.BackgroundKind, plane host.Plane) host.Background {
	bg, err := ctx.Host.Sprites.LoadBackground(kind, plane)
	if err != nil {
		log.Printf("[Phase] background %s unavailable: %v", kind, err)
		return nil
	}
	if _, err := ctx.Tiles.Reserve(bg.TileCount()); err != nil {
		log.Printf("[Phase] background %s dropped: %v", kind, err)
		bg.Release()
		return nil
	}
	bg.ScrollTo(0, 0)
	return bg
}

func releaseBackground(bg host.Background) {
	if bg != nil {
		bg.Release()
	}
}

// showSprite 空句柄安全的位置/可见性设置
func showSprite(s host.Sprite, x, y int16, visible bool) {
	if s == nil {
		return
	}
	s.SetPosition(x, y)
	s.SetVisible(visible)
}

func centerColumn(s string) int {
	n := len([]rune(s))
	if n >= textColumns {
		return 0
	}
	return (textColumns - n) / 2
}

// drawCentered 在指定行居中绘制文字
func drawCentered(t host.TextLayer, s string, row int) {
	if s == "" {
		return
	}
	t.DrawText(s, centerColumn(s), row)
}

// blinkVisible 闪烁倒计时中的可见性：剩余帧为偶数时可见
func blinkVisible(c components.Countdown) bool {
	return !c.Active() || c.Frames%2 == 0
}
