package components

// ScrollState 纵向卷轴状态
// OffsetY 按背景循环高度取模；Accumulator 为 Q16.16 定点小数部分累加器
type ScrollState struct {
	OffsetY     int16
	Accumulator int32
}
