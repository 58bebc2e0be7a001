package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// holdFrames 终端没有按键释放事件：每次按键（含自动重复）后按住状态保持的帧数
const holdFrames = 10

// tapGapFrames 同一按键两次事件相隔至少这么多帧时视为重新按下而不是自动重复
const tapGapFrames = 4

// keyState 把 tcell 按键事件转换为按住的手柄按键
// 事件由主循环转交，ReadButtons 每帧调用一次并让保持计数衰减
type keyState struct {
	hold    map[host.Buttons]int
	release host.Buttons // 下一帧强制松开一次，产生新的按下沿
}

func newKeyState() *keyState {
	return &keyState{hold: make(map[host.Buttons]int)}
}

// buttonForKey 按键对应的手柄按键，无映射时返回 0
func buttonForKey(key tcell.Key, r rune) host.Buttons {
	switch key {
	case tcell.KeyUp:
		return host.ButtonUp
	case tcell.KeyDown:
		return host.ButtonDown
	case tcell.KeyLeft:
		return host.ButtonLeft
	case tcell.KeyRight:
		return host.ButtonRight
	case tcell.KeyEnter:
		return host.ButtonStart
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return host.ButtonUp
		case 's', 'S':
			return host.ButtonDown
		case 'a', 'A':
			return host.ButtonLeft
		case 'd', 'D':
			return host.ButtonRight
		case 'z', 'Z', 'j', 'J', ' ':
			return host.ButtonA
		case 'x', 'X', 'k', 'K':
			return host.ButtonB
		case 'c', 'C', 'l', 'L':
			return host.ButtonC
		}
	}
	return 0
}

// Feed 记录一次按键事件
func (k *keyState) Feed(ev *tcell.EventKey) {
	k.press(buttonForKey(ev.Key(), ev.Rune()))
}

func (k *keyState) press(b host.Buttons) {
	if b == 0 {
		return
	}
	if left, ok := k.hold[b]; ok && holdFrames-left >= tapGapFrames {
		k.release |= b
	}
	k.hold[b] = holdFrames
}

// ReadButtons 实现 host.InputSource
func (k *keyState) ReadButtons() host.Buttons {
	var b host.Buttons
	for button, frames := range k.hold {
		if frames <= 0 {
			delete(k.hold, button)
			continue
		}
		b |= button
		k.hold[button] = frames - 1
	}
	b &^= k.release
	k.release = 0
	return b
}
