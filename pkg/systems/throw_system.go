package systems

import (
	"log"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

// ThrowOutcome 一次投掷的结果
type ThrowOutcome uint8

const (
	ThrowNone      ThrowOutcome = iota // 无事发生（飞行中或未投掷）
	ThrowDelivered                     // 落入 ACTIVE 烟囱
	ThrowBurned                        // 落入禁用烟囱
	ThrowLost                          // 没有落进任何可投递的烟囱
	ThrowStolen                        // 飞行途中被敌人截走
)

// String 返回结果名（用于日志）
func (o ThrowOutcome) String() string {
	switch o {
	case ThrowNone:
		return "none"
	case ThrowDelivered:
		return "delivered"
	case ThrowBurned:
		return "burned"
	case ThrowLost:
		return "lost"
	case ThrowStolen:
		return "stolen"
	}
	return "unknown"
}

// ThrowResult 结果与相关槽位（-1 表示无）
type ThrowResult struct {
	Outcome ThrowOutcome
	Chimney int
	Enemy   int
}

// ThrowConfig 投掷参数
type ThrowConfig struct {
	Radius         int16 // 目标搜索半径
	FlightSpeed    int16 // 主轴每帧像素
	CooldownFrames uint16
	ArcHeight      int16
	ProjectileSize int16
	// 找不到目标时的随机落点：横向偏移 ±[FallbackMinOffset, FallbackMaxOffset)，向上 FallbackRise
	FallbackMinOffset int16
	FallbackMaxOffset int16
	FallbackRise      int16
	ScreenWidth       int16
	StealCooldown     uint16
}

// ThrowResolver 目标选择 + 抛物线飞行 + 落点判定
type ThrowResolver struct {
	cfg      ThrowConfig
	rng      *utils.RNG
	chimneys *ChimneyField
	enemies  *Pool[components.Enemy]
	proj     components.Projectile
	cooldown components.Countdown
	elapsed  uint16
}

// NewThrowResolver 创建投掷解析器，enemies 可为 nil（无拦截）
func NewThrowResolver(cfg ThrowConfig, rng *utils.RNG, chimneys *ChimneyField, enemies *Pool[components.Enemy]) *ThrowResolver {
	if cfg.FlightSpeed <= 0 {
		cfg.FlightSpeed = 1
	}
	return &ThrowResolver{cfg: cfg, rng: rng, chimneys: chimneys, enemies: enemies}
}

// PlanThrow 计算从 (sx,sy) 到 (tx,ty) 的直线飞行
// 帧数 = max(|dx|,|dy|) / speed，至少 1 帧
// 速度在 int64 中计算，int16 坐标的全范围跨度左移后不会溢出
func PlanThrow(sx, sy, tx, ty, speed int16) components.ThrowTarget {
	if speed <= 0 {
		speed = 1
	}
	dx := int32(tx) - int32(sx)
	dy := int32(ty) - int32(sy)
	major := abs32(dx)
	if ady := abs32(dy); ady > major {
		major = ady
	}
	frames := major / int32(speed)
	if frames < 1 {
		frames = 1
	}
	return components.ThrowTarget{
		TargetX:        tx,
		TargetY:        ty,
		FramesToTarget: uint16(frames),
		VX:             int32((int64(dx) << utils.FixedShift) / int64(frames)),
		VY:             int32((int64(dy) << utils.FixedShift) / int64(frames)),
	}
}

// CanThrow 冷却结束且没有礼物在飞
func (t *ThrowResolver) CanThrow() bool {
	return !t.cooldown.Active() && !t.proj.Active
}

// NearestTarget 返回半径内距离最近的 ACTIVE 烟囱，距离相同时先找到的优先；没有返回 -1
func (t *ThrowResolver) NearestTarget(ox, oy int16) int {
	if t.chimneys == nil {
		return -1
	}
	best := -1
	bestDist := int32(t.cfg.Radius) * int32(t.cfg.Radius)
	pool := t.chimneys.Pool()
	for i := 0; i < pool.Len(); i++ {
		s := pool.Slot(i)
		if !s.Active || s.Data.State != components.ChimneyActive {
			continue
		}
		cx, cy := t.chimneys.Center(i)
		d := DistanceSquared(ox, oy, cx, cy)
		if d <= bestDist && (best < 0 || d < bestDist) {
			best, bestDist = i, d
		}
	}
	return best
}

// StartThrow 从 (originX, originY) 投出礼物
// 冷却中或已有礼物在飞时返回 false
func (t *ThrowResolver) StartThrow(originX, originY int16) bool {
	if !t.CanThrow() {
		return false
	}

	tx, ty := originX, originY
	target := t.NearestTarget(originX, originY)
	if target >= 0 {
		tx, ty = t.chimneys.Center(target)
	} else {
		offset := int16(t.rng.Range(int(t.cfg.FallbackMinOffset), int(t.cfg.FallbackMaxOffset)))
		if t.rng.Bool() {
			offset = -offset
		}
		tx = clamp16(originX+offset, 0, t.cfg.ScreenWidth)
		ty = originY - t.cfg.FallbackRise
		if ty < 0 {
			ty = 0
		}
	}

	plan := PlanThrow(originX, originY, tx, ty, t.cfg.FlightSpeed)
	t.proj = components.Projectile{
		Active:      true,
		X:           int32(originX) << utils.FixedShift,
		Y:           int32(originY) << utils.FixedShift,
		Target:      plan,
		FramesLeft:  plan.FramesToTarget,
		ArcHeight:   t.cfg.ArcHeight,
		TargetIndex: target,
	}
	t.elapsed = 0
	t.cooldown.Start(t.cfg.CooldownFrames)
	log.Printf("[Throw] from (%d,%d) to (%d,%d) target=%d frames=%d",
		originX, originY, tx, ty, target, plan.FramesToTarget)
	return true
}

// Update 推进一帧；礼物与目标随卷轴一起下移
func (t *ThrowResolver) Update(scrollStep int16) ThrowResult {
	none := ThrowResult{Outcome: ThrowNone, Chimney: -1, Enemy: -1}
	t.cooldown.Tick()
	if !t.proj.Active {
		return none
	}

	p := &t.proj
	p.Y += int32(scrollStep) << utils.FixedShift
	p.Target.TargetY += scrollStep
	p.X += p.Target.VX
	p.Y += p.Target.VY
	p.FramesLeft--
	t.elapsed++

	if t.enemies != nil && t.enemies.Spec().Role == RoleThief {
		rect := t.rect()
		for i := 0; i < t.enemies.Len(); i++ {
			s := t.enemies.Slot(i)
			if s.Data.StealCooldown.Active() || !t.enemies.Overlaps(i, rect) {
				continue
			}
			s.Data.StealCooldown.Start(t.cfg.StealCooldown)
			p.Active = false
			log.Printf("[Throw] stolen by enemy %d", i)
			return ThrowResult{Outcome: ThrowStolen, Chimney: -1, Enemy: i}
		}
	}

	if p.FramesLeft > 0 {
		return none
	}
	p.X = int32(p.Target.TargetX) << utils.FixedShift
	p.Y = int32(p.Target.TargetY) << utils.FixedShift
	p.Active = false
	return t.Resolve(p.Target.TargetX, p.Target.TargetY)
}

// Resolve 判定落点 (x, y) 落在哪个烟囱
func (t *ThrowResolver) Resolve(x, y int16) ThrowResult {
	res := t.landing(x, y)
	log.Printf("[Throw] landed at (%d,%d): %s", x, y, res.Outcome)
	return res
}

// landing 找到落点所在的第一个可结算烟囱；冷却中的烟囱视为未命中
func (t *ThrowResolver) landing(x, y int16) ThrowResult {
	if t.chimneys != nil {
		pool := t.chimneys.Pool()
		for i := 0; i < pool.Len(); i++ {
			s := pool.Slot(i)
			if !s.Active || !pool.Hitbox(i).Contains(x, y) {
				continue
			}
			switch s.Data.State {
			case components.ChimneyActive:
				t.chimneys.Deliver(i)
				return ThrowResult{Outcome: ThrowDelivered, Chimney: i, Enemy: -1}
			case components.ChimneyProhibited:
				return ThrowResult{Outcome: ThrowBurned, Chimney: i, Enemy: -1}
			}
		}
	}
	return ThrowResult{Outcome: ThrowLost, Chimney: -1, Enemy: -1}
}

// Projectile 返回当前礼物状态
func (t *ThrowResolver) Projectile() components.Projectile {
	return t.proj
}

// Position 礼物当前整数坐标（中心），不含抛物线偏移
func (t *ThrowResolver) Position() (int16, int16) {
	return int16(t.proj.X >> utils.FixedShift), int16(t.proj.Y >> utils.FixedShift)
}

// ArcOffset 渲染用的抛物线高度 4·t·(1−t)·h
func (t *ThrowResolver) ArcOffset() int16 {
	total := int32(t.proj.Target.FramesToTarget)
	if !t.proj.Active || total == 0 {
		return 0
	}
	e := int32(t.elapsed)
	return int16(4 * e * (total - e) * int32(t.proj.ArcHeight) / (total * total))
}

func (t *ThrowResolver) rect() components.Rect {
	x, y := t.Position()
	half := t.cfg.ProjectileSize / 2
	return components.Rect{X: x - half, Y: y - half, W: t.cfg.ProjectileSize, H: t.cfg.ProjectileSize}
}

func clamp16(v, min, max int16) int16 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
