// Sleigh Chase: 三个节日小游戏串成的一局游戏
//
// 用法：
//
//	sleigh-chase [-verbose] [-phase NAME] [-seed N] [-lang CODE] [-tuning FILE] [-headless FRAMES]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Ganso/Sleigh-Chase/pkg/app"
	"github.com/Ganso/Sleigh-Chase/pkg/embedded"
	"github.com/Ganso/Sleigh-Chase/pkg/launch"
	"github.com/Ganso/Sleigh-Chase/pkg/phases"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	phase := flag.String("phase", "", "Start at phase ("+strings.Join(phases.Names(), ", ")+")")
	seed := flag.Uint64("seed", 0, "Random seed (0 uses the built-in default)")
	lang := flag.String("lang", "", "Initial language code (en, es)")
	tuning := flag.String("tuning", "", "Tuning YAML file overriding the embedded one")
	headless := flag.Int("headless", 0, "Run N frames without a window and print a summary")
	flag.Parse()

	// 初始化嵌入资源（必须在加载任何配置之前）
	embedded.Init(dataFS)

	cfg := launch.Config{
		Verbose:        *verbose,
		Phase:          *phase,
		Seed:           *seed,
		Language:       *lang,
		TuningOverride: *tuning,
	}

	if *headless > 0 {
		launch.ConfigureLogging(cfg.Verbose)
		summary, err := launch.RunHeadless(cfg, *headless, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "headless run failed: %v\n", err)
			os.Exit(1)
		}
		printSummary(summary)
		return
	}

	game, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize game: %v\n", err)
		os.Exit(1)
	}
	defer game.Shutdown()

	ebiten.SetWindowSize(game.WindowSize())
	ebiten.SetWindowTitle("Sleigh Chase")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Printf("[App] RunGame: %v", err)
		fmt.Fprintf(os.Stderr, "Game exited with error: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(s launch.Summary) {
	fmt.Printf("frames: %d\n", s.Frames)
	if s.Done {
		fmt.Println("sequence: finished")
	} else {
		fmt.Printf("sequence: in %s\n", s.Phase)
	}
	for _, name := range phases.TimedPhases {
		fmt.Printf("%-10s %4ds\n", name, s.Seconds[name])
	}
	fmt.Printf("%-10s %4ds\n", "total", s.Total)
}
