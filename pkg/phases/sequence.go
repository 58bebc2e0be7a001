package phases

import "github.com/Ganso/Sleigh-Chase/pkg/game"

// 阶段名称（也是 -phase 参数的取值）
const (
	PhaseLogo             = "logo"
	PhaseTitle            = "title"
	PhaseCutscenePickup   = "cutscene_pickup"
	PhasePickup           = "pickup"
	PhaseCutsceneDelivery = "cutscene_delivery"
	PhaseDelivery         = "delivery"
	PhaseCutsceneBells    = "cutscene_bells"
	PhaseBells            = "bells"
	PhaseCelebration      = "celebration"
	PhaseEnd              = "end"
)

// TimedPhases 计入成绩的三个小游戏，按显示顺序
var TimedPhases = []string{PhasePickup, PhaseDelivery, PhaseBells}

// Sequence 完整的游戏流程
func Sequence() []game.PhaseEntry {
	return []game.PhaseEntry{
		{Name: PhaseLogo, New: func() game.Phase { return NewLogoPhase() }},
		{Name: PhaseTitle, New: func() game.Phase { return NewTitlePhase() }},
		{Name: PhaseCutscenePickup, New: func() game.Phase { return NewCutscenePhase(PhasePickup) }},
		{Name: PhasePickup, New: func() game.Phase { return NewPickupPhase() }},
		{Name: PhaseCutsceneDelivery, New: func() game.Phase { return NewCutscenePhase(PhaseDelivery) }},
		{Name: PhaseDelivery, New: func() game.Phase { return NewDeliveryPhase() }},
		{Name: PhaseCutsceneBells, New: func() game.Phase { return NewCutscenePhase(PhaseBells) }},
		{Name: PhaseBells, New: func() game.Phase { return NewBellsPhase() }},
		{Name: PhaseCelebration, New: func() game.Phase { return NewCelebrationPhase() }},
		{Name: PhaseEnd, New: func() game.Phase { return NewEndPhase() }},
	}
}

// Names 全部阶段名称，按流程顺序
func Names() []string {
	entries := Sequence()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
