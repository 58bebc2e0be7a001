package host

// Buttons 手柄按键位掩码
type Buttons uint16

const (
	ButtonUp Buttons = 1 << iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonC
	ButtonStart
)

// ButtonAnyAction 任意动作键（用于跳过过场、确认）
const ButtonAnyAction = ButtonA | ButtonB | ButtonC | ButtonStart

// InputSource 每帧读取一次当前按下的按键
type InputSource interface {
	ReadButtons() Buttons
}

// InputState 边沿检测后的输入状态
// 每帧调用一次 Update，之后 Pressed 只在按下的那一帧为 true
type InputState struct {
	held Buttons
	prev Buttons
}

// Update 记录本帧按键
func (s *InputState) Update(b Buttons) {
	s.prev = s.held
	s.held = b
}

// Held 按键当前是否按住
func (s *InputState) Held(b Buttons) bool {
	return s.held&b != 0
}

// Pressed 按键是否在本帧刚按下
func (s *InputState) Pressed(b Buttons) bool {
	return s.held&^s.prev&b != 0
}

// Raw 返回本帧原始按键位
func (s *InputState) Raw() Buttons {
	return s.held
}

// Direction 返回方向键对应的 (-1/0/1, -1/0/1)
// 同时按下相反方向时互相抵消
func (s *InputState) Direction() (dx, dy int8) {
	if s.Held(ButtonLeft) {
		dx--
	}
	if s.Held(ButtonRight) {
		dx++
	}
	if s.Held(ButtonUp) {
		dy--
	}
	if s.Held(ButtonDown) {
		dy++
	}
	return dx, dy
}
