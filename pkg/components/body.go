package components

// Body 玩家（或受惯性控制的实体）的位置与速度
// 坐标为屏幕像素，速度为每帧像素
type Body struct {
	X, Y   int16
	VX, VY int8
}

// InertiaConfig 惯性运动参数，每个阶段创建一次，通过指针共享
type InertiaConfig struct {
	Accel         int8  // 有方向输入时每帧的加速度
	Friction      int8  // 无方向输入时每次衰减的速度
	FrictionDelay uint8 // 摩擦力每隔多少帧生效一次（0 视为 1）
	MaxVelocity   int8  // 速度上限（绝对值）
}
