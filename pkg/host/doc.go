// Package host 定义游戏核心与"硬件"之间的边界
//
// 核心逻辑只依赖这里的接口：精灵驱动（固定精灵预算）、文字层、
// 背景图层、按键输入与音频输出。ebiten 窗口宿主（pkg/ebitenhost）、
// tcell 终端宿主（cmd/sleigh-tty）以及测试用的录制宿主都实现这些接口。
package host
