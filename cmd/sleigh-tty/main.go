// sleigh-tty 在终端里运行 Sleigh Chase
//
// 一个字符格对应 8x8 像素，320x224 的画面需要至少 40x28 的终端。
// 方向键/WASD 移动，Z/X/C 为 A/B/C，Enter 为 Start，Esc 或 Ctrl-C 退出。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Ganso/Sleigh-Chase/pkg/embedded"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/launch"
)

// frameInterval 60 帧/秒
const frameInterval = time.Second / 60

func main() {
	seed := flag.Uint64("seed", 0, "Random seed (0 uses the built-in default)")
	phase := flag.String("phase", "", "Start at phase")
	lang := flag.String("lang", "", "Initial language code (en, es)")
	root := flag.String("root", ".", "Directory containing data/")
	mute := flag.Bool("mute", false, "Disable audio")
	logFile := flag.String("log", "", "Write logs to this file (the terminal is busy)")
	flag.Parse()

	verbose := *logFile != ""
	launch.ConfigureLogging(verbose)
	if verbose {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	embedded.Init(os.DirFS(*root))
	if err := run(launch.Config{Phase: *phase, Seed: *seed, Language: *lang}, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "sleigh-tty: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg launch.Config, mute bool) error {
	tuning, texts, err := launch.LoadConfig("")
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	var audio host.AudioSink = silentAudio{}
	if !mute {
		if sa, err := newSpeakerAudio(); err != nil {
			log.Printf("[TTY] audio unavailable, continuing muted: %v", err)
		} else {
			defer sa.Close()
			audio = sa
		}
	}

	driver := newTermDriver(host.KindSizes(tuning))
	keys := newKeyState()
	h := host.Host{Sprites: driver, Text: driver, Audio: audio, Input: keys}
	ctx := launch.NewContext(cfg, h, tuning, texts)
	seq, err := launch.NewSequencer(ctx, cfg, true)
	if err != nil {
		return err
	}

	cols := int(tuning.Screen.Width) / cellSize
	rows := int(tuning.Screen.Height) / cellSize

	// PollEvent 会阻塞，放在单独的 goroutine 里，帧循环只从通道取事件
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				keys.Feed(ev)
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			seq.Update()
			seq.Render()
			driver.draw(screen, cols, rows)
			screen.Show()
		}
	}
}
