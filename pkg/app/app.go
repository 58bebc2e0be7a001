// Package app 提供游戏应用的核心包装器
//
// 该包把窗口主机从 main 包提取出来：Ebitengine 驱动、输入与音频，
// 配置与阶段序列器由 launch 包组装。
package app

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Ganso/Sleigh-Chase/internal/synth"
	"github.com/Ganso/Sleigh-Chase/pkg/ebitenhost"
	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/launch"
)

// WindowScale 窗口相对逻辑分辨率的放大倍数
const WindowScale = 3

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sequencer     *game.PhaseSequencer
	driver        *ebitenhost.Driver
	audio         *game.AudioManager
	width, height int
	verbose       bool
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg launch.Config) (*App, error) {
	launch.ConfigureLogging(cfg.Verbose)

	tuning, texts, err := launch.LoadConfig(cfg.TuningOverride)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	// 初始化音频上下文（采样率与合成器一致）
	audioManager := game.NewAudioManager(audio.NewContext(int(synth.SampleRate)))
	audioManager.PreloadSounds(host.AllSounds)
	log.Printf("[App] AudioManager initialized")

	driver := ebitenhost.NewDriver(host.KindSizes(tuning))
	h := host.Host{
		Sprites: driver,
		Text:    driver,
		Audio:   audioManager,
		Input:   ebitenhost.NewInput(),
	}

	ctx := launch.NewContext(cfg, h, tuning, texts)
	// 结束画面之后回到开场，与主机复位一致
	sequencer, err := launch.NewSequencer(ctx, cfg, true)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Starting at phase: %s", sequencer.CurrentName())

	return &App{
		sequencer: sequencer,
		driver:    driver,
		audio:     audioManager,
		width:     int(tuning.Screen.Width),
		height:    int(tuning.Screen.Height),
		verbose:   cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（每秒 60 次，一个 tick 即一帧）
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.sequencer.Update()
	return nil
}

// toggleFullscreen 切换全屏，回到窗口模式时恢复整数倍大小
func (a *App) toggleFullscreen() {
	full := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(full)
	if !full {
		ebiten.SetWindowSize(a.WindowSize())
	}
}

// Draw 绘制游戏画面
// 阶段先把本帧状态推给驱动，再由驱动绘制
func (a *App) Draw(screen *ebiten.Image) {
	a.sequencer.Render()
	a.driver.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填充黑色，像素画面用最近邻缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// WindowSize 窗口初始大小
func (a *App) WindowSize() (int, int) {
	return a.width * WindowScale, a.height * WindowScale
}

// Shutdown 停止音乐，程序退出前调用
func (a *App) Shutdown() {
	a.audio.StopMusic()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
