package synth

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// SampleRate 与 ebiten 音频上下文一致
const SampleRate beep.SampleRate = 48000

const ms = time.Millisecond

// Sound 生成音效的采样流
// 未知 ID 返回 false
func Sound(id host.SoundID) (beep.Streamer, bool) {
	r := SampleRate
	var s beep.Streamer
	switch id {
	case host.SFXBell:
		s = mix(400*ms,
			newVolume(tone(880, 880, 400*ms, WaveSine, r), 0.7),
			newVolume(tone(1760, 1760, 250*ms, WaveSine, r), 0.3),
		)
	case host.SFXBomb:
		s = tone(180, 40, 450*ms, WaveNoise, r)
	case host.SFXCannon:
		s = beep.Seq(tone(220, 90, 90*ms, WaveSquare, r), tone(400, 400, 60*ms, WaveNoise, r))
	case host.SFXGiftCollected:
		s = beep.Seq(tone(988, 988, 70*ms, WaveSquare, r), tone(1319, 1319, 140*ms, WaveSquare, r))
	case host.SFXObstacleHit:
		s = tone(300, 120, 180*ms, WaveSquare, r)
	case host.SFXElfStealing:
		s = beep.Seq(tone(660, 440, 120*ms, WaveTriangle, r), tone(440, 330, 120*ms, WaveTriangle, r))
	case host.SFXGiftThrown:
		s = tone(400, 900, 150*ms, WaveTriangle, r)
	case host.SFXElfCrash:
		s = mix(300*ms, tone(140, 60, 300*ms, WaveSquare, r), newVolume(tone(500, 500, 200*ms, WaveNoise, r), 0.5))
	case host.SFXHoHoHo:
		s = beep.Seq(
			tone(196, 180, 160*ms, WaveSquare, r), beep.Silence(r.N(60*ms)),
			tone(196, 180, 160*ms, WaveSquare, r), beep.Silence(r.N(60*ms)),
			tone(165, 150, 260*ms, WaveSquare, r),
		)
	case host.SFXGiftVanish:
		s = tone(1200, 300, 250*ms, WaveSine, r)
	case host.SFXFlyingElfAppears:
		s = tone(300, 1200, 300*ms, WaveTriangle, r)
	case host.SFXFlyingElfStealing:
		s = beep.Seq(tone(1200, 600, 100*ms, WaveSquare, r), tone(600, 300, 150*ms, WaveSquare, r))
	case host.SFXGiftBurned:
		s = tone(800, 100, 400*ms, WaveNoise, r)
	case host.SFXNetShot:
		s = tone(1500, 700, 120*ms, WaveNoise, r)
	case host.SFXDeliverySuccess:
		s = beep.Seq(
			tone(noteFreq(72), noteFreq(72), 90*ms, WaveSquare, r),
			tone(noteFreq(76), noteFreq(76), 90*ms, WaveSquare, r),
			tone(noteFreq(79), noteFreq(79), 200*ms, WaveSquare, r),
		)
	case host.SFXConfettiHit:
		s = mix(150*ms, tone(2000, 2000, 80*ms, WaveNoise, r), tone(1046, 1046, 150*ms, WaveSine, r))
	case host.SFXMenuMove:
		s = tone(660, 660, 40*ms, WaveSquare, r)
	case host.SFXMenuConfirm:
		s = beep.Seq(tone(660, 660, 50*ms, WaveSquare, r), tone(990, 990, 90*ms, WaveSquare, r))
	default:
		return nil, false
	}
	return newVolume(s, 0.6), true
}

// mix 混音并截断到固定时长
func mix(d time.Duration, s ...beep.Streamer) beep.Streamer {
	return beep.Take(SampleRate.N(d), beep.Mix(s...))
}

// note 旋律中的一个音；Pitch 为 0 表示休止
type note struct {
	Pitch int
	Beats int
}

// 旋律片段（循环播放）
var melodies = map[host.MusicID]struct {
	Beat  time.Duration
	Wave  Wave
	Notes []note
}{
	// Jingle Bells 开头
	host.MusicTitle: {Beat: 150 * ms, Wave: WaveSquare, Notes: []note{
		{76, 2}, {76, 2}, {76, 4}, {76, 2}, {76, 2}, {76, 4},
		{76, 2}, {79, 2}, {72, 3}, {74, 1}, {76, 8},
		{0, 4},
	}},
	host.MusicGameplay: {Beat: 125 * ms, Wave: WaveTriangle, Notes: []note{
		{67, 2}, {72, 2}, {72, 1}, {74, 1}, {72, 1}, {71, 1}, {69, 2}, {69, 2},
		{69, 2}, {74, 2}, {74, 1}, {76, 1}, {74, 1}, {72, 1}, {71, 2}, {67, 2},
		{0, 2},
	}},
	host.MusicCelebration: {Beat: 140 * ms, Wave: WaveSquare, Notes: []note{
		{72, 2}, {76, 2}, {79, 2}, {84, 4}, {79, 2}, {84, 6},
		{0, 4},
	}},
}

// Music 生成一遍背景音乐的采样流（由调用方负责循环）
func Music(id host.MusicID) (beep.Streamer, bool) {
	m, ok := melodies[id]
	if !ok {
		return nil, false
	}
	parts := make([]beep.Streamer, 0, len(m.Notes))
	for _, n := range m.Notes {
		d := time.Duration(n.Beats) * m.Beat
		if n.Pitch == 0 {
			parts = append(parts, beep.Silence(SampleRate.N(d)))
			continue
		}
		f := noteFreq(n.Pitch)
		parts = append(parts, tone(f, f, d, m.Wave, SampleRate))
	}
	return newVolume(beep.Seq(parts...), 0.35), true
}
