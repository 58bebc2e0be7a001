package ebitenhost

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// keyBindings 键盘 → 手柄按键
// 方向键与 WASD 都可移动；Z/J 为 A，X/K 为 B，C/L 为 C
var keyBindings = []struct {
	key    ebiten.Key
	button host.Buttons
}{
	{ebiten.KeyArrowUp, host.ButtonUp},
	{ebiten.KeyW, host.ButtonUp},
	{ebiten.KeyArrowDown, host.ButtonDown},
	{ebiten.KeyS, host.ButtonDown},
	{ebiten.KeyArrowLeft, host.ButtonLeft},
	{ebiten.KeyA, host.ButtonLeft},
	{ebiten.KeyArrowRight, host.ButtonRight},
	{ebiten.KeyD, host.ButtonRight},
	{ebiten.KeyZ, host.ButtonA},
	{ebiten.KeyJ, host.ButtonA},
	{ebiten.KeySpace, host.ButtonA},
	{ebiten.KeyX, host.ButtonB},
	{ebiten.KeyK, host.ButtonB},
	{ebiten.KeyC, host.ButtonC},
	{ebiten.KeyL, host.ButtonC},
	{ebiten.KeyEnter, host.ButtonStart},
}

// padBindings 标准布局手柄 → 手柄按键
var padBindings = []struct {
	button ebiten.StandardGamepadButton
	mapped host.Buttons
}{
	{ebiten.StandardGamepadButtonLeftTop, host.ButtonUp},
	{ebiten.StandardGamepadButtonLeftBottom, host.ButtonDown},
	{ebiten.StandardGamepadButtonLeftLeft, host.ButtonLeft},
	{ebiten.StandardGamepadButtonLeftRight, host.ButtonRight},
	{ebiten.StandardGamepadButtonRightBottom, host.ButtonA},
	{ebiten.StandardGamepadButtonRightRight, host.ButtonB},
	{ebiten.StandardGamepadButtonRightLeft, host.ButtonC},
	{ebiten.StandardGamepadButtonCenterRight, host.ButtonStart},
}

// stickThreshold 摇杆视为方向键的阈值
const stickThreshold = 0.5

// Input 实现 host.InputSource：合并键盘、标准手柄与触摸
//
// 触摸屏没有方向键：按住时视为 A + Start，可以推进过场和投掷
type Input struct {
	pads []ebiten.GamepadID
}

// NewInput 创建输入源
func NewInput() *Input {
	return &Input{}
}

// ReadButtons 实现 host.InputSource，每帧调用一次
func (in *Input) ReadButtons() host.Buttons {
	in.trackGamepads()

	b := buttonsFromKeys(ebiten.IsKeyPressed)
	for _, id := range in.pads {
		b |= in.readGamepad(id)
	}
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		b |= host.ButtonA | host.ButtonStart
	}
	return b
}

// buttonsFromKeys 根据按键状态计算按键位
func buttonsFromKeys(pressed func(ebiten.Key) bool) host.Buttons {
	var b host.Buttons
	for _, kb := range keyBindings {
		if pressed(kb.key) {
			b |= kb.button
		}
	}
	return b
}

// buttonsFromStick 把左摇杆轴值转换为方向键
func buttonsFromStick(x, y float64) host.Buttons {
	var b host.Buttons
	switch {
	case x <= -stickThreshold:
		b |= host.ButtonLeft
	case x >= stickThreshold:
		b |= host.ButtonRight
	}
	switch {
	case y <= -stickThreshold:
		b |= host.ButtonUp
	case y >= stickThreshold:
		b |= host.ButtonDown
	}
	return b
}

func (in *Input) readGamepad(id ebiten.GamepadID) host.Buttons {
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return 0
	}
	var b host.Buttons
	for _, pb := range padBindings {
		if ebiten.IsStandardGamepadButtonPressed(id, pb.button) {
			b |= pb.mapped
		}
	}
	b |= buttonsFromStick(
		ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
		ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
	)
	return b
}

// trackGamepads 维护已连接手柄列表
func (in *Input) trackGamepads() {
	for _, id := range inpututil.AppendJustConnectedGamepadIDs(nil) {
		log.Printf("[Input] gamepad connected: %d (%s)", id, ebiten.GamepadName(id))
		in.pads = append(in.pads, id)
	}
	kept := in.pads[:0]
	for _, id := range in.pads {
		if inpututil.IsGamepadJustDisconnected(id) {
			log.Printf("[Input] gamepad disconnected: %d", id)
			continue
		}
		kept = append(kept, id)
	}
	in.pads = kept
}
