package components

// Faller 第三阶段中自行下落的对象（钟、炸弹、字母）
// 每 Delay 帧下移一个像素；闪烁期间冻结，闪烁结束后回收
type Faller struct {
	Delay uint16
	Blink Countdown
	Glyph byte // 仅字母使用
	Gray  bool // 字母被击中后显示黑白外观
}
