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

const (
	// giftDropCapacity 同时下落的失手礼物
	giftDropCapacity = 3
	// giftDropSpeed 失手礼物自身的下落速度（像素/帧，卷轴之外）
	giftDropSpeed = 3
	giftDropSize  = 24
)

// HUD 礼物图标位置（相对屏幕右下角）
const (
	counterOffsetX = 140
	counterOffsetY = 40
)

// DeliveryPhase 第二阶段：在屋顶上空飞行，把礼物投进烟囱
type DeliveryPhase struct {
	ctx    *game.PhaseContext
	cfg    config.DeliveryTuning
	screen config.ScreenTuning
	frame  uint16

	bg     host.Background
	snow   *snowDrift
	scroll *systems.ScrollWorld

	santa       components.Body
	inertia     components.InertiaConfig
	santaSprite host.Sprite
	recovery    components.Countdown

	chimneys  *systems.ChimneyField
	enemies   *systems.Pool[components.Enemy]
	drops     *systems.Pool[struct{}]
	throw     *systems.ThrowResolver
	gift      host.Sprite
	objective *systems.ObjectiveSystem
	timer     components.GameTimer

	counterTop    host.Sprite
	counterBottom host.Sprite

	lastResult systems.ThrowResult
}

// NewDeliveryPhase 创建投递阶段
func NewDeliveryPhase() *DeliveryPhase {
	return &DeliveryPhase{}
}

func (p *DeliveryPhase) Name() string { return PhaseDelivery }

func (p *DeliveryPhase) Init(ctx *game.PhaseContext) error {
	p.ctx = ctx
	p.cfg = ctx.Tuning.Delivery
	p.screen = ctx.Tuning.Screen
	w, h := p.screen.Width, p.screen.Height

	p.bg = loadBackground(ctx, host.BackgroundRooftops, host.PlaneB)
	p.snow = newSnowDrift(ctx, 1, -2)
	p.scroll = systems.NewScrollWorld(utils.FixedFromFloat(p.cfg.ScrollSpeed), p.cfg.ScrollLoop)

	p.inertia = inertiaConfig(p.cfg.Inertia)
	p.resetSanta()
	p.santaSprite = acquireSprite(ctx, host.SpriteSanta, depthPlayer)

	p.chimneys = systems.NewChimneyField(systems.ChimneyConfig{
		Count:             p.cfg.Chimneys.Count,
		Size:              p.cfg.Chimneys.Size,
		HitboxInset:       p.cfg.Chimneys.HitboxInset,
		MarginX:           p.cfg.Chimneys.MarginX,
		ScreenWidth:       w,
		ScreenHeight:      h,
		RowOffset:         p.cfg.Chimneys.RowOffset,
		HouseHeight:       p.cfg.Chimneys.HouseHeight,
		ProhibitedPercent: p.cfg.Chimneys.ProhibitedPercent,
		ResetFrames:       p.cfg.Chimneys.ResetFrames,
		BlinkInterval:     p.cfg.Chimneys.BlinkInterval,
		ToggleMinFrames:   p.cfg.Chimneys.ToggleMinFrames,
		ToggleMaxFrames:   p.cfg.Chimneys.ToggleMaxFrames,
		Depth:             depthActors,
	}, ctx.RNG)
	p.chimneys.Pool().AttachSprites(ctx.Sprites)
	p.chimneys.Init()

	enemySpec := actorSpec("enemy", systems.RoleThief, host.SpriteFlyingEnemy, p.cfg.Enemies,
		0, w-p.cfg.Enemies.Width, h, systems.RespawnAbove, depthEffects)
	p.enemies = systems.NewPool[components.Enemy](enemySpec, p.cfg.Enemies.Capacity, ctx.RNG)
	p.enemies.SetOnSpawn(func(s *systems.Slot[components.Enemy]) {
		s.Data = components.Enemy{}
	})
	p.enemies.AttachSprites(ctx.Sprites)

	dropSpec := systems.ActorSpec{
		Name:         "gift_drop",
		Role:         systems.RoleDecorative,
		Kind:         host.SpriteGift,
		Width:        giftDropSize,
		Height:       giftDropSize,
		ScreenHeight: h,
		Respawn:      systems.RespawnDeactivate,
		Depth:        depthEffects,
	}
	p.drops = systems.NewPool[struct{}](dropSpec, giftDropCapacity, ctx.RNG)
	p.drops.AttachSprites(ctx.Sprites)

	p.throw = systems.NewThrowResolver(systems.ThrowConfig{
		Radius:            p.cfg.Throw.Radius,
		FlightSpeed:       p.cfg.Throw.FlightSpeed,
		CooldownFrames:    p.cfg.Throw.CooldownFrames,
		ArcHeight:         p.cfg.Throw.ArcHeight,
		ProjectileSize:    p.cfg.Throw.ProjectileSize,
		FallbackMinOffset: p.cfg.Throw.FallbackMinOffset,
		FallbackMaxOffset: p.cfg.Throw.FallbackMaxOffset,
		FallbackRise:      p.cfg.Throw.FallbackRise,
		ScreenWidth:       w,
		StealCooldown:     p.cfg.Throw.StealCooldown,
	}, ctx.RNG, p.chimneys, p.enemies)
	p.gift = acquireSprite(ctx, host.SpriteGift, depthEffects)

	p.objective = systems.NewObjectiveSystem(systems.ObjectiveConfig{
		Target:          p.cfg.Target,
		LossFloorOffset: p.cfg.LossFloorOffset,
		BlinkFrames:     p.cfg.Blink.Frames,
		BlinkInterval:   p.cfg.Blink.Interval,
		Ramp:            systems.EnemyRamp{Base: p.cfg.EnemyRamp.Base, Thresholds: p.cfg.EnemyRamp.Thresholds},
	}, p.enemies.Len())
	p.enemies.SetActiveCount(p.objective.RequiredEnemies())

	p.counterTop = acquireSprite(ctx, host.SpriteGiftIcon, depthHUD+1)
	p.counterBottom = acquireSprite(ctx, host.SpriteGiftIcon, depthHUD)

	systems.InitTimer(&p.timer, p.cfg.TimeLimitSeconds)
	p.lastResult = systems.ThrowResult{Outcome: systems.ThrowNone, Chimney: -1, Enemy: -1}

	ctx.Host.Audio.PlayMusic(host.MusicGameplay)
	ctx.Host.Audio.PlaySFX(host.SFXHoHoHo)
	log.Printf("[DeliveryPhase] init: target %d, %d chimneys, %d enemies active",
		p.cfg.Target, p.chimneys.Pool().ActiveCount(), p.enemies.ActiveCount())
	return nil
}

func (p *DeliveryPhase) resetSanta() {
	p.santa = components.Body{
		X: (p.screen.Width - p.cfg.Player.Width) / 2,
		Y: p.cfg.Player.StartY,
	}
}

func (p *DeliveryPhase) Update() {
	p.frame++
	p.snow.Update()
	in := p.ctx.Input

	if p.recovery.Active() {
		p.recovery.Tick()
	} else {
		dx, dy := in.Direction()
		bounds := components.Rect{W: p.screen.Width - p.cfg.Player.Width, H: p.screen.Height - p.cfg.Player.Height}
		systems.ApplyInertiaMovement(&p.santa, bounds, dx, dy, p.frame, &p.inertia)

		if in.Pressed(host.ButtonA) {
			x, y := p.throwOrigin()
			if p.throw.StartThrow(x, y) {
				p.ctx.Host.Audio.PlaySFX(host.SFXGiftThrown)
			}
		}
	}

	step := p.scroll.Advance()
	if p.bg != nil {
		p.bg.ScrollTo(0, p.scroll.OffsetY())
	}

	p.chimneys.Update(step)
	p.updateEnemies(step)
	p.updateDrops(step)
	p.handleThrow(p.throw.Update(step))

	if !p.recovery.Active() {
		p.checkEnemyCollision()
	}

	p.objective.Update()
	systems.UpdateTimer(&p.timer)
}

// throwOrigin 礼物从雪橇碰撞盒中心投出
func (p *DeliveryPhase) throwOrigin() (int16, int16) {
	return playerHitbox(p.santa, p.cfg.Player).Center()
}

// updateEnemies 敌人横向追踪圣诞老人中心，纵向自行下落并随卷轴移动
func (p *DeliveryPhase) updateEnemies(step int16) {
	santaCenter := p.santa.X + p.cfg.Player.Width/2
	maxX := p.screen.Width - p.cfg.Enemies.Width
	delay := p.cfg.Enemies.MoveDelay
	if delay == 0 {
		delay = 1
	}

	p.enemies.Each(func(i int, s *systems.Slot[components.Enemy]) {
		s.Data.StealCooldown.Tick()
		s.Data.LateralTick++
		enemyCenter := s.X + p.cfg.Enemies.Width/2
		if s.Data.LateralTick%delay == 0 {
			switch {
			case enemyCenter < santaCenter:
				s.X += p.cfg.Enemies.SpeedX
			case enemyCenter > santaCenter:
				s.X -= p.cfg.Enemies.SpeedX
			}
			if s.X < 0 {
				s.X = 0
			} else if s.X > maxX {
				s.X = maxX
			}
		}
		s.Y += p.cfg.Enemies.SpeedY
		s.Data.FacingLeft = santaCenter < enemyCenter
	})
	p.enemies.Update(step)
}

func (p *DeliveryPhase) updateDrops(step int16) {
	p.drops.Each(func(i int, s *systems.Slot[struct{}]) {
		s.Y += giftDropSpeed
	})
	p.drops.Update(step)
}

// spawnDrop 在 (x, y) 处放出一个下落的礼物（中心坐标）
func (p *DeliveryPhase) spawnDrop(x, y int16) {
	for i := 0; i < p.drops.Len(); i++ {
		s := p.drops.Slot(i)
		if s.Active || s.Disabled {
			continue
		}
		p.drops.SpawnAt(i, x-giftDropSize/2, y-giftDropSize/2)
		return
	}
}

func (p *DeliveryPhase) handleThrow(res systems.ThrowResult) {
	if res.Outcome == systems.ThrowNone {
		return
	}
	p.lastResult = res
	audio := p.ctx.Host.Audio

	switch res.Outcome {
	case systems.ThrowDelivered:
		required := p.objective.OnGiftSuccess()
		p.enemies.SetActiveCount(required)
		audio.PlaySFX(host.SFXDeliverySuccess)
	case systems.ThrowBurned:
		audio.PlaySFX(host.SFXGiftBurned)
	case systems.ThrowLost:
		x, y := p.throw.Position()
		p.spawnDrop(x, y)
		audio.PlaySFX(host.SFXGiftVanish)
	case systems.ThrowStolen:
		audio.PlaySFX(host.SFXFlyingElfStealing)
	}
}

// checkEnemyCollision 敌人撞到雪橇：扣一个礼物，回到起点并短暂无敌
func (p *DeliveryPhase) checkEnemyCollision() {
	if p.enemies.Collide(playerHitbox(p.santa, p.cfg.Player)) == 0 {
		return
	}
	lost := p.objective.ApplyGiftLoss(1)
	p.resetSanta()
	p.recovery.Start(p.cfg.RecoveryFrames)
	p.ctx.Host.Audio.PlaySFX(host.SFXElfCrash)
	log.Printf("[DeliveryPhase] enemy hit santa, lost %d gift(s)", lost)
}

func (p *DeliveryPhase) Render() {
	// 无敌期间每 4 帧切换一次可见性
	santaVisible := !p.recovery.Active() || (p.recovery.Frames/4)%2 == 0
	showSprite(p.santaSprite, p.santa.X, p.santa.Y, santaVisible)

	p.chimneys.Sync()
	p.enemies.SyncSprites()
	p.enemies.Each(func(i int, s *systems.Slot[components.Enemy]) {
		if s.Sprite != nil {
			s.Sprite.SetHFlip(s.Data.FacingLeft)
		}
	})
	p.drops.SyncSprites()

	proj := p.throw.Projectile()
	if p.gift != nil {
		x, y := p.throw.Position()
		half := p.cfg.Throw.ProjectileSize / 2
		showSprite(p.gift, x-half, y-half-p.throw.ArcOffset(), proj.Active)
	}

	p.renderHUD()
}

func (p *DeliveryPhase) renderHUD() {
	top, bottom := systems.SplitRows(p.objective.DisplayValue(p.frame), p.cfg.HUDRowSize)
	baseX := p.screen.Width - counterOffsetX
	baseY := p.screen.Height - counterOffsetY
	if p.counterTop != nil {
		p.counterTop.SetFrame(int(top))
		showSprite(p.counterTop, baseX, baseY-16, true)
	}
	if p.counterBottom != nil {
		p.counterBottom.SetFrame(int(bottom))
		showSprite(p.counterBottom, baseX+12, baseY, true)
	}

	hud := p.ctx.Lang().HUD
	text := p.ctx.Host.Text
	text.ClearText(1, 1, 20)
	if p.timer.State == components.TimerDefeat {
		text.DrawText(hud.TimeUp, 1, 1)
	} else {
		text.DrawText(fmt.Sprintf("%s %3d", hud.Time, systems.RemainingSeconds(&p.timer)), 1, 1)
	}
}

func (p *DeliveryPhase) IsComplete() bool {
	return p.objective != nil && p.objective.IsComplete()
}

func (p *DeliveryPhase) Shutdown() {
	releaseBackground(p.bg)
	p.bg = nil
	if p.snow != nil {
		p.snow.Release()
	}
}

// Delivered 已成功投递的礼物数
func (p *DeliveryPhase) Delivered() uint16 {
	return p.objective.Value()
}

// LastThrow 最近一次投掷的结果
func (p *DeliveryPhase) LastThrow() systems.ThrowResult {
	return p.lastResult
}
