package systems

import (
	"log"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
)

// FramesPerSecond 固定帧率
const FramesPerSecond = 60

// InitTimer 以秒为单位初始化阶段计时器
func InitTimer(t *components.GameTimer, seconds uint16) {
	if t == nil {
		return
	}
	t.Elapsed = 0
	t.MaxFrames = uint32(seconds) * FramesPerSecond
	t.State = components.TimerRunning
}

// UpdateTimer 推进一帧，返回剩余帧数
// 计时结束时状态变为 TimerDefeat（除非已经胜利）
func UpdateTimer(t *components.GameTimer) uint32 {
	if t == nil {
		return 0
	}
	if t.State != components.TimerRunning {
		return remainingFrames(t)
	}
	t.Elapsed++
	if t.MaxFrames > 0 && t.Elapsed >= t.MaxFrames {
		t.Elapsed = t.MaxFrames
		t.State = components.TimerDefeat
		log.Printf("[Timer] time limit of %d frames reached", t.MaxFrames)
	}
	return remainingFrames(t)
}

// RemainingSeconds 剩余秒数（向上取整）
func RemainingSeconds(t *components.GameTimer) uint32 {
	rem := remainingFrames(t)
	return (rem + FramesPerSecond - 1) / FramesPerSecond
}

func remainingFrames(t *components.GameTimer) uint32 {
	if t.Elapsed >= t.MaxFrames {
		return 0
	}
	return t.MaxFrames - t.Elapsed
}
