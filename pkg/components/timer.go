package components

// TimerState 阶段计时器状态
type TimerState uint8

const (
	TimerRunning TimerState = iota
	TimerVictory
	TimerDefeat
)

// GameTimer 以帧为单位的阶段计时器（60 帧 = 1 秒）
type GameTimer struct {
	Elapsed   uint32
	MaxFrames uint32
	State     TimerState
}

// Countdown 通用帧倒计时，用于冷却、无敌、闪烁等所有"等待 N 帧"的场景
type Countdown struct {
	Frames uint16
}

// Start 重新开始倒计时
func (c *Countdown) Start(frames uint16) {
	c.Frames = frames
}

// Active 倒计时是否仍在进行
func (c *Countdown) Active() bool {
	return c.Frames > 0
}

// Tick 推进一帧，返回本帧是否恰好到期
func (c *Countdown) Tick() bool {
	if c.Frames == 0 {
		return false
	}
	c.Frames--
	return c.Frames == 0
}
