package systems

import (
	"log"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

// ActorRole 对象在玩法中的角色
type ActorRole uint8

const (
	RoleDecorative  ActorRole = iota // 只随卷轴移动
	RoleCollectible                  // 触碰后收集（树、友方精灵）
	RoleThief                        // 触碰后偷走礼物，也会截走飞行中的礼物
	RoleTarget                       // 只被投射物命中（烟囱、钟、炸弹、字母）
)

// RespawnPolicy 对象离开屏幕底部后的处理方式
type RespawnPolicy uint8

const (
	RespawnAbove      RespawnPolicy = iota // 立即在屏幕上方重新生成
	RespawnDeactivate                      // 直接失活
)

// ActorSpec 对象池的能力描述（尺寸、碰撞内缩、生成范围、回收策略）
type ActorSpec struct {
	Name   string
	Role   ActorRole
	Kind   host.SpriteKind
	Width  int16
	Height int16
	// HitboxInsetX/Y 碰撞盒相对精灵四边的内缩
	HitboxInsetX int16
	HitboxInsetY int16
	// MinX/MaxX 生成时 X 的取值范围 [MinX, MaxX)
	MinX, MaxX int16
	// SpawnMinAbove/SpawnMaxAbove 生成时 Y = -rand[SpawnMinAbove, SpawnMaxAbove)
	SpawnMinAbove, SpawnMaxAbove int16
	ScreenHeight                 int16
	Respawn                      RespawnPolicy
	Depth                        int16
}

// Hitbox 由内缩值得到的碰撞区域
func (s ActorSpec) Hitbox() components.Hitbox {
	return components.Hitbox{
		OffsetX: s.HitboxInsetX,
		OffsetY: s.HitboxInsetY,
		Width:   s.Width - 2*s.HitboxInsetX,
		Height:  s.Height - 2*s.HitboxInsetY,
	}
}

// Slot 对象池槽位
type Slot[T any] struct {
	Active bool
	// Disabled 精灵申请失败的槽位永久失活
	Disabled bool
	X, Y     int16
	Data     T
	Sprite   host.Sprite
}

// PlaceFunc 自定义生成位置；返回 false 表示无法放置
type PlaceFunc[T any] func(p *Pool[T], i int) (x, y int16, ok bool)

// Pool 固定容量的对象池
// 槽位在创建时一次性分配，之后只在原地生成/回收
type Pool[T any] struct {
	spec    ActorSpec
	slots   []Slot[T]
	rng     *utils.RNG
	placer  PlaceFunc[T]
	onSpawn func(s *Slot[T])
}

// NewPool 创建对象池
//
// 参数:
//   - spec: 能力描述
//   - capacity: 槽位数
//   - rng: 注入的随机数生成器
func NewPool[T any](spec ActorSpec, capacity int, rng *utils.RNG) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[T]{
		spec:  spec,
		slots: make([]Slot[T], capacity),
		rng:   rng,
	}
}

// SetPlacer 设置自定义生成位置（例如烟囱按楼层排列）
func (p *Pool[T]) SetPlacer(fn PlaceFunc[T]) {
	p.placer = fn
}

// SetOnSpawn 设置生成回调（用于重置 Data）
func (p *Pool[T]) SetOnSpawn(fn func(s *Slot[T])) {
	p.onSpawn = fn
}

// Spec 返回能力描述
func (p *Pool[T]) Spec() ActorSpec {
	return p.spec
}

// RNG 返回注入的随机数生成器
func (p *Pool[T]) RNG() *utils.RNG {
	return p.rng
}

// Len 槽位数
func (p *Pool[T]) Len() int {
	return len(p.slots)
}

// Slot 返回槽位指针，越界返回 nil
func (p *Pool[T]) Slot(i int) *Slot[T] {
	if i < 0 || i >= len(p.slots) {
		return nil
	}
	return &p.slots[i]
}

// ActiveCount 活跃槽位数
func (p *Pool[T]) ActiveCount() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].Active {
			n++
		}
	}
	return n
}

// AttachSprites 为每个槽位申请精灵
// 申请失败的槽位被标记为 Disabled，游戏继续运行
func (p *Pool[T]) AttachSprites(arena *host.SpriteArena) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.Sprite != nil {
			continue
		}
		spr, err := arena.Acquire(p.spec.Kind)
		if err != nil {
			log.Printf("[Pool:%s] slot %d disabled: %v", p.spec.Name, i, err)
			s.Disabled = true
			s.Active = false
			continue
		}
		spr.SetVisible(false)
		spr.SetDepth(p.spec.Depth)
		s.Sprite = spr
	}
}

// Spawn 在槽位 i 生成对象
// 生成范围无效时槽位失活并记录日志，返回 false
func (p *Pool[T]) Spawn(i int) bool {
	s := p.Slot(i)
	if s == nil || s.Disabled {
		return false
	}

	var x, y int16
	if p.placer != nil {
		var ok bool
		x, y, ok = p.placer(p, i)
		if !ok {
			p.invalidate(i, "placer found no free position")
			return false
		}
	} else {
		if p.spec.MaxX <= p.spec.MinX {
			p.invalidate(i, "invalid horizontal range")
			return false
		}
		if p.spec.SpawnMaxAbove <= p.spec.SpawnMinAbove {
			p.invalidate(i, "invalid vertical range")
			return false
		}
		x = int16(p.rng.Range(int(p.spec.MinX), int(p.spec.MaxX)))
		y = -int16(p.rng.Range(int(p.spec.SpawnMinAbove), int(p.spec.SpawnMaxAbove)))
	}

	p.SpawnAt(i, x, y)
	return true
}

// SpawnAt 在指定位置生成对象
func (p *Pool[T]) SpawnAt(i int, x, y int16) {
	s := p.Slot(i)
	if s == nil || s.Disabled {
		return
	}
	s.X, s.Y = x, y
	s.Active = true
	if p.onSpawn != nil {
		p.onSpawn(s)
	}
}

// SpawnAll 生成全部可用槽位
func (p *Pool[T]) SpawnAll() {
	for i := range p.slots {
		p.Spawn(i)
	}
}

// Deactivate 使槽位失活并隐藏精灵
func (p *Pool[T]) Deactivate(i int) {
	s := p.Slot(i)
	if s == nil {
		return
	}
	s.Active = false
	if s.Sprite != nil {
		s.Sprite.SetVisible(false)
	}
}

// Recycle 消费后回收：按回收策略重新生成或失活
func (p *Pool[T]) Recycle(i int) {
	if p.spec.Respawn == RespawnAbove {
		if p.Spawn(i) {
			return
		}
	}
	p.Deactivate(i)
}

// Update 所有活跃对象下移 scrollStep，越过屏幕底部的对象在同一次调用内回收
// 返回本次回收的数量
func (p *Pool[T]) Update(scrollStep int16) int {
	recycled := 0
	for i := range p.slots {
		s := &p.slots[i]
		if !s.Active {
			continue
		}
		s.Y += scrollStep
		if s.Y > p.spec.ScreenHeight {
			p.Recycle(i)
			recycled++
		}
	}
	return recycled
}

// Hitbox 返回槽位 i 的碰撞矩形
func (p *Pool[T]) Hitbox(i int) components.Rect {
	s := p.Slot(i)
	if s == nil {
		return components.Rect{}
	}
	return p.spec.Hitbox().At(s.X, s.Y)
}

// Bounds 返回槽位 i 的精灵矩形
func (p *Pool[T]) Bounds(i int) components.Rect {
	s := p.Slot(i)
	if s == nil {
		return components.Rect{}
	}
	return components.Rect{X: s.X, Y: s.Y, W: p.spec.Width, H: p.spec.Height}
}

// Overlaps 槽位 i 活跃且其碰撞盒与 r 重叠
func (p *Pool[T]) Overlaps(i int, r components.Rect) bool {
	s := p.Slot(i)
	if s == nil || !s.Active {
		return false
	}
	return CheckAABBCollision(p.Hitbox(i), r)
}

// FirstOverlap 返回第一个与 r 重叠的活跃槽位，没有则返回 -1
func (p *Pool[T]) FirstOverlap(r components.Rect) int {
	for i := range p.slots {
		if p.Overlaps(i, r) {
			return i
		}
	}
	return -1
}

// Collide 按角色处理与玩家碰撞盒 r 重叠的活跃对象，返回接触次数
//   - RoleCollectible: 每个重叠对象都被收集并回收
//   - RoleThief: 一帧只处理第一个重叠的小偷，随后回收
//   - RoleTarget, RoleDecorative: 不与玩家接触
func (p *Pool[T]) Collide(r components.Rect) int {
	switch p.spec.Role {
	case RoleCollectible:
		n := 0
		for i := range p.slots {
			if p.Overlaps(i, r) {
				p.Recycle(i)
				n++
			}
		}
		return n
	case RoleThief:
		if i := p.FirstOverlap(r); i >= 0 {
			p.Recycle(i)
			return 1
		}
	}
	return 0
}

// SetActiveCount 使活跃对象数量恰好为 n（受可用槽位限制）
// 多余的从高编号开始失活，不足的从低编号开始生成
func (p *Pool[T]) SetActiveCount(n int) {
	active := p.ActiveCount()
	for i := len(p.slots) - 1; i >= 0 && active > n; i-- {
		if p.slots[i].Active {
			p.Deactivate(i)
			active--
		}
	}
	for i := 0; i < len(p.slots) && active < n; i++ {
		s := &p.slots[i]
		if s.Active || s.Disabled {
			continue
		}
		if p.Spawn(i) {
			active++
		}
	}
}

// Each 遍历活跃槽位
func (p *Pool[T]) Each(fn func(i int, s *Slot[T])) {
	for i := range p.slots {
		if p.slots[i].Active {
			fn(i, &p.slots[i])
		}
	}
}

// SyncSprites 把槽位位置与可见性同步到精灵
func (p *Pool[T]) SyncSprites() {
	for i := range p.slots {
		s := &p.slots[i]
		if s.Sprite == nil {
			continue
		}
		if !s.Active {
			s.Sprite.SetVisible(false)
			continue
		}
		s.Sprite.SetPosition(s.X, s.Y)
		s.Sprite.SetVisible(true)
	}
}

// Release 释放全部精灵
func (p *Pool[T]) Release(arena *host.SpriteArena) {
	for i := range p.slots {
		if p.slots[i].Sprite != nil {
			arena.Release(p.slots[i].Sprite)
			p.slots[i].Sprite = nil
		}
		p.slots[i].Active = false
	}
}

func (p *Pool[T]) invalidate(i int, reason string) {
	log.Printf("[Pool:%s] slot %d deactivated: %s (x [%d,%d), above [%d,%d))",
		p.spec.Name, i, reason, p.spec.MinX, p.spec.MaxX, p.spec.SpawnMinAbove, p.spec.SpawnMaxAbove)
	p.Deactivate(i)
}
