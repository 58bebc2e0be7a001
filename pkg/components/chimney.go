package components

// ChimneyState 烟囱状态
type ChimneyState uint8

const (
	ChimneyActive ChimneyState = iota
	ChimneyCooldown
	ChimneyProhibited
)

// String 返回状态名（用于日志）
func (s ChimneyState) String() string {
	switch s {
	case ChimneyActive:
		return "active"
	case ChimneyCooldown:
		return "cooldown"
	case ChimneyProhibited:
		return "prohibited"
	}
	return "unknown"
}

// Chimney 烟囱槽位数据
type Chimney struct {
	State    ChimneyState
	Cooldown Countdown // 投递成功后的冷却
	ToggleIn Countdown // 距离下一次随机切换禁用状态的帧数
	Blink    bool      // 冷却期间闪烁的可见性
}
