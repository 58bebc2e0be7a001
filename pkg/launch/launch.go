// Package launch 组装一次运行：加载配置、构造阶段上下文与序列器
//
// 窗口主机（pkg/app）、终端主机（cmd/sleigh-tty）与 -headless 模式共用此包，
// 本包不依赖任何图形库。
package launch

import (
	"fmt"
	"io"
	"log"

	"github.com/Ganso/Sleigh-Chase/pkg/config"
	"github.com/Ganso/Sleigh-Chase/pkg/embedded"
	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/phases"
	"github.com/Ganso/Sleigh-Chase/pkg/utils"
)

// 嵌入配置的路径
const (
	TuningPath = "data/tuning.yaml"
	TextsPath  = "data/texts.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Phase 从指定阶段开始（阶段名见 phases.Names），为空则从开场标志开始
	Phase string
	// Seed 随机数种子，0 使用固定默认值
	Seed uint64
	// Language 初始语言（标题画面可以更改）
	Language string
	// TuningOverride 磁盘上的调参文件，加载失败时退回嵌入配置
	TuningOverride string
}

// defaultSeed 未指定种子时使用
const defaultSeed = 2025

// ConfigureLogging 非 verbose 模式下丢弃日志
func ConfigureLogging(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
}

// LoadConfig 加载调参与文本
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
//
// 参数：
//   - override: 可选的磁盘调参文件路径；无法加载时记录警告并使用嵌入配置
//
// 返回：
//   - *config.Tuning, *config.Texts: 校验通过的配置
//   - error: 嵌入配置本身无效时返回
func LoadConfig(override string) (*config.Tuning, *config.Texts, error) {
	data, err := embedded.ReadFile(TuningPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read embedded tuning: %w", err)
	}
	tuning, err := config.ParseTuning(data)
	if err != nil {
		return nil, nil, fmt.Errorf("embedded tuning: %w", err)
	}

	if override != "" {
		custom, err := config.LoadTuning(override)
		if err != nil {
			log.Printf("[Config] Warning: ignoring %s, using embedded tuning: %v", override, err)
		} else {
			log.Printf("[Config] Loaded tuning override: %s", override)
			tuning = custom
		}
	}

	data, err = embedded.ReadFile(TextsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read embedded texts: %w", err)
	}
	texts, err := config.ParseTexts(data)
	if err != nil {
		return nil, nil, fmt.Errorf("embedded texts: %w", err)
	}
	if err := texts.ValidateCutscenes(tuning.Cutscene.MaxLines, tuning.Cutscene.MaxLineLength); err != nil {
		// 超长的行在显示时截断，不阻止启动
		log.Printf("[Config] Warning: %v", err)
	}
	return tuning, texts, nil
}

// NewContext 组装阶段上下文
func NewContext(cfg Config, h host.Host, tuning *config.Tuning, texts *config.Texts) *game.PhaseContext {
	seed := cfg.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	lang := cfg.Language
	if lang == "" {
		lang = texts.Codes()[0]
	}
	log.Printf("[App] seed=%d language=%s", seed, lang)

	return &game.PhaseContext{
		Host:    h,
		Input:   &host.InputState{},
		Sprites: host.NewSpriteArena(h.Sprites, tuning.Screen.SpriteBudget),
		Tiles:   host.NewTileArena(tuning.Screen.TileBase, tuning.Screen.TileLimit),
		RNG:     utils.NewRNG(seed),
		Tuning:  tuning,
		Texts:   texts,
		State:   game.NewGameState(lang),
	}
}

// NewSequencer 创建完整流程的序列器，并按需跳到起始阶段
func NewSequencer(ctx *game.PhaseContext, cfg Config, loop bool) (*game.PhaseSequencer, error) {
	seq := game.NewPhaseSequencer(ctx, phases.Sequence())
	seq.SetLoop(loop)
	if cfg.Phase != "" {
		if err := seq.JumpTo(cfg.Phase); err != nil {
			return nil, fmt.Errorf("failed to start at phase: %w", err)
		}
	}
	return seq, nil
}

// Summary 无头运行的结果
type Summary struct {
	Frames int
	// Phase 结束时所在阶段，流程已走完时为空
	Phase string
	Done  bool
	// Seconds 各计时阶段的耗时（秒）
	Seconds map[string]uint32
	Total   uint32
}

// RunHeadless 用录制主机运行指定帧数，不打开窗口
//
// input 为 nil 时每隔一帧按下 Start，使过场与菜单自动推进
func RunHeadless(cfg Config, frames int, input host.InputSource) (Summary, error) {
	tuning, texts, err := LoadConfig(cfg.TuningOverride)
	if err != nil {
		return Summary{}, err
	}
	if input == nil {
		input = &host.ScriptedInput{Fallback: func(frame int) host.Buttons {
			if frame%2 == 0 {
				return host.ButtonStart
			}
			return 0
		}}
	}
	driver := host.NewRecordingDriver()
	h := host.Host{Sprites: driver, Text: driver, Audio: &host.RecordingAudio{}, Input: input}
	ctx := NewContext(cfg, h, tuning, texts)
	seq, err := NewSequencer(ctx, cfg, false)
	if err != nil {
		return Summary{}, err
	}

	n := 0
	for ; n < frames && !seq.Done(); n++ {
		seq.Update()
		seq.Render()
	}

	s := Summary{
		Frames:  n,
		Done:    seq.Done(),
		Seconds: make(map[string]uint32, len(phases.TimedPhases)),
		Total:   ctx.State.TotalSeconds(phases.TimedPhases...),
	}
	if !s.Done {
		s.Phase = seq.CurrentName()
	}
	for _, name := range phases.TimedPhases {
		s.Seconds[name] = ctx.State.PhaseSeconds(name)
	}
	log.Printf("[App] headless run: %d frames, phase=%q done=%v", s.Frames, s.Phase, s.Done)
	return s, nil
}
