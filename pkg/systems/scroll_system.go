package systems

import (
	"github.com/Ganso/Sleigh-Chase/pkg/components"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

// ScrollWorld 纵向卷轴世界
//
// 速度为 Q16.16 定点，每帧累加，整数部分作为本帧的滚动步长返回；
// 小数部分留在累加器里，因此 N 帧的步长之和等于 floor(N*speed)。
// 每帧只能调用一次 Advance，返回的步长需要传给所有对象池。
type ScrollWorld struct {
	state      components.ScrollState
	speed      utils.Fixed
	loopLength int16
	total      int32
}

// NewScrollWorld 创建卷轴世界
//
// 参数:
//   - speed: 每帧滚动像素（定点）
//   - loopLength: 背景可平铺高度，OffsetY 在 (-loopLength, 0] 内循环；<= 0 表示不循环
func NewScrollWorld(speed utils.Fixed, loopLength int16) *ScrollWorld {
	return &ScrollWorld{speed: speed, loopLength: loopLength}
}

// Advance 推进一帧并返回整数步长
func (s *ScrollWorld) Advance() int16 {
	s.state.Accumulator += int32(s.speed)
	step := s.state.Accumulator >> utils.FixedShift
	s.state.Accumulator &= int32(utils.FixedOne - 1)
	s.total += step

	offset := int32(s.state.OffsetY) - step
	if s.loopLength > 0 {
		offset %= int32(s.loopLength)
	}
	s.state.OffsetY = int16(offset)
	return int16(step)
}

// OffsetY 背景当前纵向偏移
func (s *ScrollWorld) OffsetY() int16 {
	return s.state.OffsetY
}

// Total 累计滚动像素
func (s *ScrollWorld) Total() int32 {
	return s.total
}

// SetSpeed 修改滚动速度（例如暂停时设为 0）
func (s *ScrollWorld) SetSpeed(speed utils.Fixed) {
	s.speed = speed
}
