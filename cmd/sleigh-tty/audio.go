package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Ganso/Sleigh-Chase/internal/synth"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// speakerAudio 通过 beep/speaker 播放合成音效
// 音乐渲染一次后放入缓冲区循环播放
type speakerAudio struct {
	format  beep.Format
	music   map[host.MusicID]*beep.Buffer
	ctrl    *beep.Ctrl
	current host.MusicID
}

// newSpeakerAudio 初始化扬声器；失败时调用方应改用静音输出
func newSpeakerAudio() (*speakerAudio, error) {
	if err := speaker.Init(synth.SampleRate, synth.SampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &speakerAudio{
		format: beep.Format{SampleRate: synth.SampleRate, NumChannels: 2, Precision: 2},
		music:  make(map[host.MusicID]*beep.Buffer),
	}, nil
}

func (a *speakerAudio) PlaySFX(id host.SoundID) {
	stream, ok := synth.Sound(id)
	if !ok {
		log.Printf("[TTYAudio] Warning: Sound not found: %s", id)
		return
	}
	speaker.Play(stream)
}

func (a *speakerAudio) PlayMusic(id host.MusicID) {
	if a.current == id && a.ctrl != nil {
		return
	}
	a.StopMusic()

	buf, ok := a.music[id]
	if !ok {
		stream, found := synth.Music(id)
		if !found {
			log.Printf("[TTYAudio] Warning: Music not found: %s", id)
			return
		}
		buf = beep.NewBuffer(a.format)
		buf.Append(stream)
		a.music[id] = buf
	}

	a.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	a.current = id
	speaker.Play(a.ctrl)
}

func (a *speakerAudio) StopMusic() {
	if a.ctrl == nil {
		return
	}
	speaker.Lock()
	a.ctrl.Streamer = nil
	speaker.Unlock()
	a.ctrl = nil
	a.current = ""
}

func (a *speakerAudio) Close() {
	a.StopMusic()
	speaker.Clear()
	speaker.Close()
}

// silentAudio 静音输出（-mute 或扬声器不可用）
type silentAudio struct{}

func (silentAudio) PlaySFX(host.SoundID)   {}
func (silentAudio) PlayMusic(host.MusicID) {}
func (silentAudio) StopMusic()             {}
