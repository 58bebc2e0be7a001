package host

import (
	"errors"
	"fmt"
	"log"
)

// MaxHardwareSprites 硬件精灵上限
const MaxHardwareSprites = 80

var (
	// ErrSpriteBudget 精灵预算耗尽
	ErrSpriteBudget = errors.New("sprite budget exhausted")
	// ErrTileBudget 图块显存耗尽
	ErrTileBudget = errors.New("tile budget exhausted")
)

// SpriteArena 固定容量的精灵分配器
// 阶段通过它申请精灵，序列器在阶段之间调用 ReleaseAll
type SpriteArena struct {
	driver   SpriteDriver
	capacity int
	live     map[Sprite]struct{}
}

// NewSpriteArena 创建精灵分配器，capacity <= 0 时使用硬件上限
func NewSpriteArena(driver SpriteDriver, capacity int) *SpriteArena {
	if capacity <= 0 {
		capacity = MaxHardwareSprites
	}
	return &SpriteArena{
		driver:   driver,
		capacity: capacity,
		live:     make(map[Sprite]struct{}),
	}
}

// Acquire 申请一个精灵
// 预算耗尽返回 ErrSpriteBudget，驱动失败返回包装后的驱动错误
func (a *SpriteArena) Acquire(kind SpriteKind) (Sprite, error) {
	if len(a.live) >= a.capacity {
		return nil, fmt.Errorf("acquire %s: %w", kind, ErrSpriteBudget)
	}
	s, err := a.driver.NewSprite(kind)
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", kind, err)
	}
	a.live[s] = struct{}{}
	return s, nil
}

// Release 释放一个精灵（重复释放无副作用）
func (a *SpriteArena) Release(s Sprite) {
	if s == nil {
		return
	}
	if _, ok := a.live[s]; !ok {
		return
	}
	delete(a.live, s)
	s.Release()
}

// ReleaseAll 释放全部精灵
func (a *SpriteArena) ReleaseAll() {
	if n := len(a.live); n > 0 {
		log.Printf("[SpriteArena] releasing %d sprites", n)
	}
	for s := range a.live {
		s.Release()
	}
	a.live = make(map[Sprite]struct{})
}

// InUse 当前占用数量
func (a *SpriteArena) InUse() int {
	return len(a.live)
}

// Capacity 容量
func (a *SpriteArena) Capacity() int {
	return a.capacity
}

// TileArena 显存图块索引分配器（单调递增，阶段切换时整体重置）
type TileArena struct {
	base  uint32
	next  uint32
	limit uint32
}

// NewTileArena 创建图块分配器，可用索引为 [base, limit)
func NewTileArena(base, limit uint32) *TileArena {
	return &TileArena{base: base, next: base, limit: limit}
}

// Reserve 预留 n 个图块，返回起始索引
func (t *TileArena) Reserve(n uint32) (uint32, error) {
	if t.next+n > t.limit {
		return 0, fmt.Errorf("reserve %d tiles at %d (limit %d): %w", n, t.next, t.limit, ErrTileBudget)
	}
	start := t.next
	t.next += n
	return start, nil
}

// Reset 归还全部图块
func (t *TileArena) Reset() {
	t.next = t.base
}

// Used 已使用的图块数
func (t *TileArena) Used() uint32 {
	return t.next - t.base
}
