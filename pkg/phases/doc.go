// Package phases 实现游戏的各个阶段：开场标志、标题、过场、三个小游戏、庆祝与结束画面。
//
// 每个阶段实现 game.Phase，由 game.PhaseSequencer 按 Sequence 的顺序驱动。
package phases
