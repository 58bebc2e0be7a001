package components

// ThrowTarget 投掷开始时计算一次，之后 FramesToTarget 帧内逐帧消费
// VX/VY 为 Q16.16 定点的每帧位移
type ThrowTarget struct {
	TargetX, TargetY int16
	FramesToTarget   uint16
	VX, VY           int32
}

// Projectile 飞行中的礼物
// X/Y 为 Q16.16 定点坐标，保证 FramesToTarget 帧后正好落在目标点
type Projectile struct {
	Active      bool
	X, Y        int32
	Target      ThrowTarget
	FramesLeft  uint16
	ArcHeight   int16
	TargetIndex int // 目标烟囱槽位，-1 表示随机落点
}
