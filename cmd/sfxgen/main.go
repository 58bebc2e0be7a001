// sfxgen 把合成的占位音效与音乐导出为 WAV 文件
//
// 用法：
//
//	sfxgen -out DIR [-music]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gopxl/beep"

	"github.com/Ganso/Sleigh-Chase/internal/synth"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// 输出格式：16 位立体声 PCM
const (
	bitDepth    = 16
	numChannels = 2
	wavFormat   = 1
)

func main() {
	out := flag.String("out", "sfx", "Output directory")
	music := flag.Bool("music", false, "Also export the music loops")
	flag.Parse()

	written, err := export(*out, *music)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sfxgen: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d files to %s\n", written, *out)
}

// export 导出全部音效（以及可选的音乐），返回写入的文件数
func export(dir string, withMusic bool) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	n := 0
	for _, id := range host.AllSounds {
		stream, ok := synth.Sound(id)
		if !ok {
			log.Printf("[sfxgen] no recipe for %s, skipped", id)
			continue
		}
		if err := writeWAV(filepath.Join(dir, string(id)+".wav"), stream); err != nil {
			return n, err
		}
		n++
	}

	if withMusic {
		for _, id := range host.AllMusic {
			stream, ok := synth.Music(id)
			if !ok {
				continue
			}
			if err := writeWAV(filepath.Join(dir, "music_"+string(id)+".wav"), stream); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// writeWAV 渲染整个流并写入文件
func writeWAV(path string, s beep.Streamer) (rerr error) {
	samples := synth.Samples(s)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("failed to close %s: %w", path, err)
		}
	}()

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: int(synth.SampleRate)},
		Data:           make([]int, 0, len(samples)*numChannels),
		SourceBitDepth: bitDepth,
	}
	for _, smp := range samples {
		buf.Data = append(buf.Data, int(synth.ToInt16(smp[0])), int(synth.ToInt16(smp[1])))
	}

	enc := wav.NewEncoder(f, int(synth.SampleRate), bitDepth, numChannels, wavFormat)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish %s: %w", path, err)
	}
	log.Printf("[sfxgen] %s: %d samples", filepath.Base(path), len(samples))
	return nil
}
