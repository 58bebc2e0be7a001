package phases

import (
	"fmt"
	"log"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
	"github.com/Ganso/Sleigh-Chase/pkg/config"
	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/systems"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

// PickupPhase 第一阶段：在雪林中收集礼物
//
// 树和两侧的友方精灵提供礼物，小偷精灵缓慢横移靠近并偷走礼物。
// 集满特殊能量后按 B 驱散所有小偷。
type PickupPhase struct {
	ctx    *game.PhaseContext
	cfg    config.PickupTuning
	screen config.ScreenTuning
	frame  uint16

	// 中间可通行区域 [leftLimit, rightLimit)
	leftLimit  int16
	rightLimit int16

	bg     host.Background
	snow   *snowDrift
	scroll *systems.ScrollWorld

	santa       components.Body
	inertia     components.InertiaConfig
	santaSprite host.Sprite
	recovery    components.Countdown

	trees     *systems.Pool[struct{}]
	elves     *systems.Pool[struct{}]
	enemies   *systems.Pool[components.Enemy]
	objective *systems.ObjectiveSystem
	charge    uint16
}

// NewPickupPhase 创建收集阶段
func NewPickupPhase() *PickupPhase {
	return &PickupPhase{}
}

func (p *PickupPhase) Name() string { return PhasePickup }

func (p *PickupPhase) Init(ctx *game.PhaseContext) error {
	p.ctx = ctx
	p.cfg = ctx.Tuning.Pickup
	p.screen = ctx.Tuning.Screen
	w, h := p.screen.Width, p.screen.Height

	p.leftLimit = w * int16(p.cfg.ForbiddenMarginPercent) / 100
	p.rightLimit = w - p.leftLimit

	p.bg = loadBackground(ctx, host.BackgroundForest, host.PlaneB)
	p.snow = newSnowDrift(ctx, 1, -1)
	p.scroll = systems.NewScrollWorld(utils.FixedFromFloat(p.cfg.ScrollSpeed), p.cfg.ScrollLoop)

	p.inertia = inertiaConfig(p.cfg.Inertia)
	p.santa = components.Body{X: (w - p.cfg.Player.Width) / 2, Y: p.cfg.Player.StartY}
	p.santaSprite = acquireSprite(ctx, host.SpriteSleigh, depthPlayer)

	treeSpec := actorSpec("tree", systems.RoleCollectible, host.SpriteTree, p.cfg.Trees,
		p.leftLimit, p.rightLimit-p.cfg.Trees.Width, h, systems.RespawnAbove, depthActors)
	p.trees = systems.NewPool[struct{}](treeSpec, p.cfg.Trees.Capacity, ctx.RNG)
	p.trees.AttachSprites(ctx.Sprites)

	elfSpec := actorSpec("elf", systems.RoleCollectible, host.SpriteElf, p.cfg.Elves,
		0, w-p.cfg.Elves.Width, h, systems.RespawnAbove, depthActors)
	p.elves = systems.NewPool[struct{}](elfSpec, p.cfg.Elves.Capacity, ctx.RNG)
	p.elves.SetPlacer(p.placeElf)
	p.elves.AttachSprites(ctx.Sprites)

	enemySpec := actorSpec("thief", systems.RoleThief, host.SpriteEnemy, p.cfg.Enemies,
		p.leftLimit, p.rightLimit-p.cfg.Enemies.Width, h, systems.RespawnAbove, depthEffects)
	p.enemies = systems.NewPool[components.Enemy](enemySpec, p.cfg.Enemies.Capacity, ctx.RNG)
	p.enemies.SetOnSpawn(func(s *systems.Slot[components.Enemy]) {
		s.Data = components.Enemy{}
	})
	p.enemies.AttachSprites(ctx.Sprites)

	// 小偷数量不随进度变化：始终全部上场
	p.objective = systems.NewObjectiveSystem(systems.ObjectiveConfig{
		Target:          p.cfg.Target,
		LossFloorOffset: p.cfg.LossFloorOffset,
		BlinkFrames:     p.cfg.Blink.Frames,
		BlinkInterval:   p.cfg.Blink.Interval,
		Ramp:            systems.EnemyRamp{Base: p.enemies.Len()},
	}, p.enemies.Len())

	p.trees.SpawnAll()
	p.elves.SpawnAll()
	p.enemies.SetActiveCount(p.objective.RequiredEnemies())
	p.charge = 0

	ctx.Host.Audio.PlayMusic(host.MusicGameplay)
	log.Printf("[PickupPhase] init: target %d, lane [%d,%d)", p.cfg.Target, p.leftLimit, p.rightLimit)
	return nil
}

// placeElf 友方精灵交替出现在左右两侧的禁行带中
func (p *PickupPhase) placeElf(pool *systems.Pool[struct{}], i int) (int16, int16, bool) {
	spec := pool.Spec()
	minX, maxX := int16(0), p.leftLimit-spec.Width
	if i%2 == 1 {
		minX, maxX = p.rightLimit, p.screen.Width-spec.Width
	}
	if maxX <= minX || spec.SpawnMaxAbove <= spec.SpawnMinAbove {
		return 0, 0, false
	}
	rng := pool.RNG()
	x := int16(rng.Range(int(minX), int(maxX)))
	y := -int16(rng.Range(int(spec.SpawnMinAbove), int(spec.SpawnMaxAbove)))
	return x, y, true
}

func (p *PickupPhase) Update() {
	p.frame++
	p.snow.Update()
	in := p.ctx.Input

	if p.recovery.Active() {
		p.recovery.Tick()
	}
	dx, dy := in.Direction()
	bounds := components.Rect{
		X: p.leftLimit,
		W: p.rightLimit - p.cfg.Player.Width - p.leftLimit,
		H: p.screen.Height - p.cfg.Player.Height,
	}
	systems.ApplyInertiaMovement(&p.santa, bounds, dx, dy, p.frame, &p.inertia)

	if in.Pressed(host.ButtonB) {
		p.useSpecial()
	}

	step := p.scroll.Advance()
	if p.bg != nil {
		p.bg.ScrollTo(0, p.scroll.OffsetY())
	}

	p.trees.Update(step)
	p.elves.Each(func(i int, s *systems.Slot[struct{}]) {
		s.Y += p.cfg.Elves.SpeedY
	})
	p.elves.Update(step)
	p.updateEnemies(step)

	p.checkCollections()
	if !p.recovery.Active() {
		p.checkThieves()
	}
	p.objective.Update()
}

// updateEnemies 小偷每隔 MoveDelay 帧向雪橇横移 SpeedX
func (p *PickupPhase) updateEnemies(step int16) {
	santaCenter := p.santa.X + p.cfg.Player.Width/2
	delay := p.cfg.Enemies.MoveDelay
	if delay == 0 {
		delay = 1
	}
	minX, maxX := p.leftLimit, p.rightLimit-p.cfg.Enemies.Width

	p.enemies.Each(func(i int, s *systems.Slot[components.Enemy]) {
		s.Data.LateralTick++
		if s.Data.LateralTick%delay != 0 {
			return
		}
		center := s.X + p.cfg.Enemies.Width/2
		switch {
		case center < santaCenter:
			s.X += p.cfg.Enemies.SpeedX
			s.Data.FacingLeft = false
		case center > santaCenter:
			s.X -= p.cfg.Enemies.SpeedX
			s.Data.FacingLeft = true
		}
		if s.X < minX {
			s.X = minX
		} else if s.X > maxX {
			s.X = maxX
		}
	})
	p.enemies.Update(step)
}

func (p *PickupPhase) checkCollections() {
	hitbox := playerHitbox(p.santa, p.cfg.Player)
	for _, pool := range []*systems.Pool[struct{}]{p.trees, p.elves} {
		for n := pool.Collide(hitbox); n > 0; n-- {
			p.objective.OnGiftSuccess()
			p.charge++
			p.ctx.Host.Audio.PlaySFX(host.SFXGiftCollected)
		}
	}
}

// checkThieves 被小偷碰到：丢一个礼物并进入短暂无敌
func (p *PickupPhase) checkThieves() {
	if p.enemies.Collide(playerHitbox(p.santa, p.cfg.Player)) == 0 {
		return
	}
	if p.objective.ApplyGiftLoss(1) > 0 {
		p.ctx.Host.Audio.PlaySFX(host.SFXElfStealing)
	} else {
		p.ctx.Host.Audio.PlaySFX(host.SFXObstacleHit)
	}
	p.recovery.Start(p.cfg.HitRecoveryFrames)
}

// useSpecial 能量已满时把所有小偷送回屏幕上方
func (p *PickupPhase) useSpecial() {
	if p.charge < p.cfg.SpecialChargeGifts {
		return
	}
	p.charge = 0
	for i := 0; i < p.enemies.Len(); i++ {
		if s := p.enemies.Slot(i); s.Active {
			p.enemies.Recycle(i)
		}
	}
	p.ctx.Host.Audio.PlaySFX(host.SFXNetShot)
	log.Printf("[PickupPhase] special used")
}

func (p *PickupPhase) Render() {
	visible := !p.recovery.Active() || (p.recovery.Frames/4)%2 == 0
	showSprite(p.santaSprite, p.santa.X, p.santa.Y, visible)

	p.trees.SyncSprites()
	p.elves.SyncSprites()
	p.enemies.SyncSprites()
	p.enemies.Each(func(i int, s *systems.Slot[components.Enemy]) {
		if s.Sprite != nil {
			s.Sprite.SetHFlip(s.Data.FacingLeft)
		}
	})

	hud := p.ctx.Lang().HUD
	charge := p.charge
	if charge > p.cfg.SpecialChargeGifts {
		charge = p.cfg.SpecialChargeGifts
	}
	text := p.ctx.Host.Text
	text.ClearText(4, 2, 20)
	text.DrawText(fmt.Sprintf("%s %d/%d", hud.Gifts, p.objective.DisplayValue(p.frame), p.cfg.Target), 4, 2)
	text.ClearText(4, 4, 20)
	text.DrawText(fmt.Sprintf("%s %d/%d", hud.Special, charge, p.cfg.SpecialChargeGifts), 4, 4)
}

func (p *PickupPhase) IsComplete() bool {
	return p.objective != nil && p.objective.IsComplete()
}

func (p *PickupPhase) Shutdown() {
	releaseBackground(p.bg)
	p.bg = nil
	if p.snow != nil {
		p.snow.Release()
	}
}

// Collected 当前礼物数
func (p *PickupPhase) Collected() uint16 {
	return p.objective.Value()
}

// Charge 特殊能量
func (p *PickupPhase) Charge() uint16 {
	return p.charge
}
