package components

// ObjectiveCounter 目标计数器
// Value 不超过 Max；HistoricalMax 记录本阶段达到过的最大值（用于损失下限）
type ObjectiveCounter struct {
	Value         uint16
	Max           uint16
	Target        uint16
	HistoricalMax uint16
}

// CounterBlink HUD 数字在旧值与新值之间闪烁
type CounterBlink struct {
	Previous uint16
	Current  uint16
	Interval uint16
	Timer    Countdown
}
