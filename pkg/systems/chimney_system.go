package systems

import (
	"log"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

// ChimneyConfig 烟囱参数
type ChimneyConfig struct {
	Count        int
	Size         int16
	HitboxInset  int16
	MarginX      int16 // 左右两侧到屏幕边缘的距离
	ScreenWidth  int16
	ScreenHeight int16
	// RowOffset 第一个烟囱的 Y；HouseHeight 楼层间距，新烟囱放在最上方烟囱之上 1~2 层
	RowOffset   int16
	HouseHeight int16
	// ProhibitedPercent 生成/切换时成为禁用烟囱的概率
	ProhibitedPercent int
	ResetFrames       uint16
	BlinkInterval     uint16
	ToggleMinFrames   uint16
	ToggleMaxFrames   uint16
	Depth             int16
}

// ChimneyField 烟囱对象池 + 状态机
//
// ACTIVE --投递--> COOLDOWN --ResetFrames 帧后--> ACTIVE
// 任意非冷却状态在随机间隔到期时重新掷骰决定 ACTIVE / PROHIBITED
type ChimneyField struct {
	cfg   ChimneyConfig
	pool  *Pool[components.Chimney]
	rng   *utils.RNG
	frame uint16
}

// NewChimneyField 创建烟囱池
func NewChimneyField(cfg ChimneyConfig, rng *utils.RNG) *ChimneyField {
	spec := ActorSpec{
		Name:         "chimney",
		Role:         RoleTarget,
		Kind:         host.SpriteChimney,
		Width:        cfg.Size,
		Height:       cfg.Size,
		HitboxInsetX: cfg.HitboxInset,
		HitboxInsetY: cfg.HitboxInset,
		ScreenHeight: cfg.ScreenHeight,
		Respawn:      RespawnAbove,
		Depth:        cfg.Depth,
	}
	f := &ChimneyField{
		cfg:  cfg,
		pool: NewPool[components.Chimney](spec, cfg.Count, rng),
		rng:  rng,
	}
	f.pool.SetPlacer(f.place)
	f.pool.SetOnSpawn(f.reset)
	return f
}

// Pool 返回底层对象池
func (f *ChimneyField) Pool() *Pool[components.Chimney] {
	return f.pool
}

// place 左右两侧二选一；Y 放在当前最上方烟囱之上 1~2 个楼层，保证互不重叠
func (f *ChimneyField) place(p *Pool[components.Chimney], i int) (int16, int16, bool) {
	if f.cfg.HouseHeight < f.cfg.Size {
		return 0, 0, false
	}
	x := f.cfg.MarginX
	if f.rng.Bool() {
		x = f.cfg.ScreenWidth - f.cfg.Size - f.cfg.MarginX
	}

	top, found := int16(0), false
	for j := 0; j < p.Len(); j++ {
		s := p.Slot(j)
		if j == i || !s.Active {
			continue
		}
		if !found || s.Y < top {
			top, found = s.Y, true
		}
	}
	if !found {
		return x, f.cfg.RowOffset, true
	}

	rows := int16(1 + f.rng.Intn(2))
	y := top - rows*f.cfg.HouseHeight
	for y > -f.cfg.Size {
		y -= f.cfg.HouseHeight
	}
	return x, y, true
}

func (f *ChimneyField) reset(s *Slot[components.Chimney]) {
	s.Data.Cooldown.Start(0)
	s.Data.Blink = false
	s.Data.State = f.rollState()
	s.Data.ToggleIn.Start(f.toggleInterval())
}

func (f *ChimneyField) rollState() components.ChimneyState {
	if f.rng.Chance(f.cfg.ProhibitedPercent) {
		return components.ChimneyProhibited
	}
	return components.ChimneyActive
}

func (f *ChimneyField) toggleInterval() uint16 {
	if f.cfg.ToggleMaxFrames == 0 {
		return 0
	}
	return uint16(f.rng.Range(int(f.cfg.ToggleMinFrames), int(f.cfg.ToggleMaxFrames)))
}

// Init 生成全部烟囱
func (f *ChimneyField) Init() {
	f.pool.SpawnAll()
}

// Update 推进状态机并随卷轴移动
func (f *ChimneyField) Update(scrollStep int16) {
	f.frame++
	f.pool.Each(func(i int, s *Slot[components.Chimney]) {
		c := &s.Data
		switch c.State {
		case components.ChimneyCooldown:
			if !c.Cooldown.Active() || c.Cooldown.Tick() {
				c.State = components.ChimneyActive
				c.Blink = false
				return
			}
			if f.cfg.BlinkInterval > 0 && f.frame%f.cfg.BlinkInterval == 0 {
				c.Blink = !c.Blink
			}
		default:
			if c.ToggleIn.Tick() {
				c.State = f.rollState()
				c.ToggleIn.Start(f.toggleInterval())
			}
		}
	})
	f.pool.Update(scrollStep)
}

// Deliver 对 ACTIVE 烟囱投递成功，进入冷却
func (f *ChimneyField) Deliver(i int) bool {
	s := f.pool.Slot(i)
	if s == nil || !s.Active || s.Data.State != components.ChimneyActive {
		return false
	}
	s.Data.State = components.ChimneyCooldown
	s.Data.Cooldown.Start(f.cfg.ResetFrames)
	s.Data.Blink = false
	log.Printf("[Chimney] slot %d delivered, cooldown %d frames", i, f.cfg.ResetFrames)
	return true
}

// State 返回槽位状态
func (f *ChimneyField) State(i int) components.ChimneyState {
	s := f.pool.Slot(i)
	if s == nil {
		return components.ChimneyProhibited
	}
	return s.Data.State
}

// Center 返回槽位中心
func (f *ChimneyField) Center(i int) (int16, int16) {
	return f.pool.Bounds(i).Center()
}

// Sync 同步精灵：禁用烟囱用第二帧，冷却中闪烁
func (f *ChimneyField) Sync() {
	f.pool.SyncSprites()
	f.pool.Each(func(i int, s *Slot[components.Chimney]) {
		if s.Sprite == nil {
			return
		}
		frame := host.FrameNormal
		if s.Data.State == components.ChimneyProhibited {
			frame = host.FrameAlt
		}
		s.Sprite.SetFrame(frame)
		if s.Data.State == components.ChimneyCooldown {
			s.Sprite.SetVisible(!s.Data.Blink)
		}
	})
}
