package game

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Ganso/Sleigh-Chase/internal/synth"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// AudioManager 音频管理器
// 职责：
//   - 实现 host.AudioSink，供各阶段播放音效与背景音乐
//   - 首次播放时合成 PCM 并缓存播放器
//   - 音量控制
//
// context 为 nil 时（无头模式）所有调用都是空操作
type AudioManager struct {
	context        *audio.Context
	soundPlayers   map[host.SoundID]*audio.Player // 音效播放器缓存
	musicPlayers   map[host.MusicID]*audio.Player // 背景音乐播放器缓存
	currentMusic   *audio.Player                  // 当前播放的背景音乐
	currentMusicID host.MusicID                   // 当前播放的背景音乐ID
	musicVolume    float64
	soundVolume    float64
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（采样率须为 synth.SampleRate），可为 nil
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context) *AudioManager {
	return &AudioManager{
		context:      ctx,
		soundPlayers: make(map[host.SoundID]*audio.Player),
		musicPlayers: make(map[host.MusicID]*audio.Player),
		musicVolume:  0.7,
		soundVolume:  0.8,
	}
}

// PlaySFX 实现 host.AudioSink
func (am *AudioManager) PlaySFX(id host.SoundID) {
	am.PlaySound(id)
}

// PlaySound 播放音效（从头播放）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(id host.SoundID) bool {
	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.soundVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// PlayMusic 实现 host.AudioSink：循环播放背景音乐
// 同一时间只能播放一首背景音乐，已在播放同一首时不重新开始
func (am *AudioManager) PlayMusic(id host.MusicID) {
	if am.currentMusicID == id && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return
	}

	am.StopMusic()

	player := am.getMusicPlayer(id)
	if player == nil {
		return
	}

	player.SetVolume(am.musicVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind music %s: %v", id, err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = id

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", id, am.musicVolume)
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// CurrentMusic 返回当前背景音乐ID（未播放时为空）
func (am *AudioManager) CurrentMusic() host.MusicID {
	return am.currentMusicID
}

// SetMusicVolume 设置音乐音量，立即应用到当前音乐
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetMusicVolume(volume float64) {
	am.musicVolume = clampVolume(volume)
	for _, player := range am.musicPlayers {
		player.SetVolume(am.musicVolume)
	}
}

// SetSoundVolume 设置音效音量
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetSoundVolume(volume float64) {
	am.soundVolume = clampVolume(volume)
	for _, player := range am.soundPlayers {
		player.SetVolume(am.soundVolume)
	}
}

// GetMusicVolume 获取当前音乐音量
func (am *AudioManager) GetMusicVolume() float64 {
	return am.musicVolume
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.soundVolume
}

// PreloadSounds 预先合成全部音效，避免首次播放时卡顿
func (am *AudioManager) PreloadSounds(ids []host.SoundID) {
	if am.context == nil {
		return
	}
	for _, id := range ids {
		am.getSoundPlayer(id)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(ids))
}

// getSoundPlayer 获取或合成音效播放器
func (am *AudioManager) getSoundPlayer(id host.SoundID) *audio.Player {
	if am.context == nil {
		return nil
	}
	if player, exists := am.soundPlayers[id]; exists {
		return player
	}

	stream, ok := synth.Sound(id)
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", id)
		return nil
	}
	player := am.context.NewPlayerFromBytes(synth.PCM(stream))
	am.soundPlayers[id] = player
	return player
}

// getMusicPlayer 获取或合成音乐播放器（无限循环）
func (am *AudioManager) getMusicPlayer(id host.MusicID) *audio.Player {
	if am.context == nil {
		return nil
	}
	if player, exists := am.musicPlayers[id]; exists {
		return player
	}

	stream, ok := synth.Music(id)
	if !ok {
		log.Printf("[AudioManager] Warning: Music not found: %s", id)
		return nil
	}
	pcm := synth.PCM(stream)
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := am.context.NewPlayer(loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create music player %s: %v", id, err)
		return nil
	}
	am.musicPlayers[id] = player
	return player
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
