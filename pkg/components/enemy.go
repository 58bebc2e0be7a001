package components

// Enemy 敌人（小偷精灵）槽位数据
type Enemy struct {
	StealCooldown Countdown // 偷走礼物后的冷却，期间不会再次偷窃
	LateralTick   uint16    // 横向漂移计数器
	FacingLeft    bool
}
