package systems

import (
	"log"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
)

// EnemyRamp 敌人数量阶梯函数
// 需要的敌人数 = Base + 已达到的阈值个数（计数器 >= 阈值），再按池容量封顶
type EnemyRamp struct {
	Base       int
	Thresholds []uint16
}

// Required 计数器为 value 时需要的敌人数
func (r EnemyRamp) Required(value uint16, capacity int) int {
	n := r.Base
	for _, th := range r.Thresholds {
		if value >= th {
			n++
		}
	}
	if n > capacity {
		n = capacity
	}
	if n < 0 {
		n = 0
	}
	return n
}

// ObjectiveConfig 目标计数器参数
type ObjectiveConfig struct {
	Target          uint16
	Max             uint16 // 0 表示等于 Target
	LossFloorOffset uint16
	BlinkFrames     uint16
	BlinkInterval   uint16
	Ramp            EnemyRamp
}

// ObjectiveSystem 消耗/奖励循环：计数、HUD 闪烁、敌人难度阶梯、损失下限
type ObjectiveSystem struct {
	cfg      ObjectiveConfig
	counter  components.ObjectiveCounter
	blink    components.CounterBlink
	capacity int
}

// NewObjectiveSystem 创建目标系统，enemyCapacity 为敌人池容量
func NewObjectiveSystem(cfg ObjectiveConfig, enemyCapacity int) *ObjectiveSystem {
	max := cfg.Max
	if max == 0 {
		max = cfg.Target
	}
	return &ObjectiveSystem{
		cfg:      cfg,
		counter:  components.ObjectiveCounter{Max: max, Target: cfg.Target},
		blink:    components.CounterBlink{Interval: cfg.BlinkInterval},
		capacity: enemyCapacity,
	}
}

// OnGiftSuccess 计数加一（不超过 Max），开始 HUD 闪烁，返回需要的敌人数
func (o *ObjectiveSystem) OnGiftSuccess() int {
	prev := o.counter.Value
	if o.counter.Value < o.counter.Max {
		o.counter.Value++
	}
	if o.counter.Value > o.counter.HistoricalMax {
		o.counter.HistoricalMax = o.counter.Value
	}
	o.startBlink(prev)
	required := o.RequiredEnemies()
	log.Printf("[Objective] %d/%d, enemies required %d", o.counter.Value, o.counter.Target, required)
	return required
}

// ApplyGiftLoss 扣除 n 个礼物，不低于 max(0, HistoricalMax-LossFloorOffset)
// 返回实际扣除的数量
func (o *ObjectiveSystem) ApplyGiftLoss(n uint16) uint16 {
	floor := o.Floor()
	prev := o.counter.Value
	if o.counter.Value <= floor {
		return 0
	}
	if o.counter.Value-floor < n {
		n = o.counter.Value - floor
	}
	o.counter.Value -= n
	if n > 0 {
		o.startBlink(prev)
		log.Printf("[Objective] lost %d, now %d (floor %d)", n, o.counter.Value, floor)
	}
	return n
}

// Floor 当前损失下限
func (o *ObjectiveSystem) Floor() uint16 {
	if o.counter.HistoricalMax <= o.cfg.LossFloorOffset {
		return 0
	}
	return o.counter.HistoricalMax - o.cfg.LossFloorOffset
}

// Reset 清零（炸弹等重置进度的事件）
func (o *ObjectiveSystem) Reset() {
	o.counter.Value = 0
	o.counter.HistoricalMax = 0
	o.blink.Timer.Start(0)
}

// RequiredEnemies 当前计数对应的敌人数
func (o *ObjectiveSystem) RequiredEnemies() int {
	return o.cfg.Ramp.Required(o.counter.Value, o.capacity)
}

// IsComplete Value >= Target
func (o *ObjectiveSystem) IsComplete() bool {
	return o.counter.Value >= o.counter.Target
}

// Update 推进 HUD 闪烁
func (o *ObjectiveSystem) Update() {
	o.blink.Timer.Tick()
}

// DisplayValue HUD 应显示的数字；闪烁期间在旧值与新值之间交替
func (o *ObjectiveSystem) DisplayValue(frame uint16) uint16 {
	if !o.blink.Timer.Active() || o.blink.Interval == 0 {
		return o.counter.Value
	}
	if (frame/o.blink.Interval)&1 == 1 {
		return o.blink.Previous
	}
	return o.blink.Current
}

// Blinking HUD 是否在闪烁
func (o *ObjectiveSystem) Blinking() bool {
	return o.blink.Timer.Active()
}

// Counter 返回计数器快照
func (o *ObjectiveSystem) Counter() components.ObjectiveCounter {
	return o.counter
}

// Value 当前计数
func (o *ObjectiveSystem) Value() uint16 {
	return o.counter.Value
}

func (o *ObjectiveSystem) startBlink(prev uint16) {
	o.blink.Previous = prev
	o.blink.Current = o.counter.Value
	o.blink.Timer.Start(o.cfg.BlinkFrames)
}

// SplitRows 把计数拆成 HUD 的两行图标（每行 rowSize 个）
func SplitRows(value uint16, rowSize uint16) (top, bottom uint16) {
	if rowSize == 0 {
		return value, 0
	}
	if value <= rowSize {
		return value, 0
	}
	bottom = value - rowSize
	if bottom > rowSize {
		bottom = rowSize
	}
	return rowSize, bottom
}
