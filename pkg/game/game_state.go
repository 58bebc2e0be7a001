package game

// GameState 跨阶段共享的状态：语言选择与各阶段耗时
// 由序列器持有并通过 PhaseContext 传给各阶段
type GameState struct {
	Language string

	phaseFrames map[string]uint32
}

// NewGameState 创建游戏状态
func NewGameState(language string) *GameState {
	return &GameState{
		Language:    language,
		phaseFrames: make(map[string]uint32),
	}
}

// RecordPhase 记录某阶段耗费的帧数（同名阶段累加）
func (gs *GameState) RecordPhase(name string, frames uint32) {
	gs.phaseFrames[name] += frames
}

// PhaseFrames 返回某阶段耗费的帧数
func (gs *GameState) PhaseFrames(name string) uint32 {
	return gs.phaseFrames[name]
}

// PhaseSeconds 返回某阶段耗费的整秒数
func (gs *GameState) PhaseSeconds(name string) uint32 {
	return gs.phaseFrames[name] / 60
}

// TotalSeconds 返回若干阶段耗时之和（秒）
func (gs *GameState) TotalSeconds(names ...string) uint32 {
	var frames uint32
	for _, n := range names {
		frames += gs.phaseFrames[n]
	}
	return frames / 60
}

// ResetTimes 清空计时（重新开始游戏时）
func (gs *GameState) ResetTimes() {
	gs.phaseFrames = make(map[string]uint32)
}
