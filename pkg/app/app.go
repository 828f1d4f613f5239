// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	synth "github.com/decker502/orbcatch/internal/audio"
	"github.com/decker502/orbcatch/internal/logging"
	"github.com/decker502/orbcatch/pkg/assets"
	"github.com/decker502/orbcatch/pkg/config"
	"github.com/decker502/orbcatch/pkg/game"
	"github.com/decker502/orbcatch/pkg/scenes"
	"github.com/decker502/orbcatch/pkg/settings"
	"github.com/decker502/orbcatch/pkg/utils"
)

// AppName 用于 gdata 存储目录
const AppName = "orbcatch"

// Config 定义应用启动配置
type Config struct {
	// Gameplay 玩法参数，nil 时使用默认值
	Gameplay *config.GameplayConfig
	// AssetsDir 贴图与音效所在目录，为空则全部使用程序化绘制和合成音效
	AssetsDir string
	// Assets 直接指定资源文件系统（移动端使用），优先于 AssetsDir
	Assets fs.FS
	// Seed 随机种子
	Seed uint64
	// Fullscreen 强制全屏启动；为 false 时沿用保存的设置
	Fullscreen bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *SceneManager
	session      *game.Session
	settings     *settings.Manager
	audio        *assets.AudioManager

	// Layout 报告的尺寸，在下一次 Update 时转交给场景
	layoutWidth, layoutHeight int
	logger                    zerolog.Logger
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，应先调用 logging.Setup() 配置日志输出。
func NewApp(cfg Config) (*App, error) {
	logger := logging.For("App")

	session, err := game.NewSession(cfg.Gameplay, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(int(synth.SampleRate))

	fsys := cfg.Assets
	if fsys == nil && cfg.AssetsDir != "" {
		fsys = os.DirFS(cfg.AssetsDir)
	}
	resourceManager := assets.NewResourceManager(fsys, int(synth.SampleRate))
	loaded := resourceManager.Preload(session.Config())
	logger.Info().Int("textures", loaded).Msg("textures preloaded")

	settingsManager := settings.Open(AppName)
	audioManager := assets.NewAudioManager(audioContext, resourceManager, settingsManager, session.Config().Audio)
	session.Subscribe(audioManager.HandleEvent)

	sceneManager := NewSceneManager()
	sceneManager.SwitchTo(scenes.NewGameScene(session, resourceManager, nil))

	if cfg.Fullscreen || settingsManager.Settings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	logger.Info().Uint64("seed", cfg.Seed).Bool("persistentSettings", settingsManager.Persistent()).Msg("app initialized")

	return &App{
		sceneManager: sceneManager,
		session:      session,
		settings:     settingsManager,
		audio:        audioManager,
		logger:       logger,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏（移动端始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		if !fullscreen && (ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized()) {
			ebiten.RestoreWindow()
		}
		a.settings.SetFullscreen(fullscreen)
		a.saveSettings()
	}

	// M 切换静音
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := a.settings.ToggleSound()
		a.logger.Info().Bool("soundEnabled", enabled).Msg("sound toggled")
		a.saveSettings()
	}

	a.sceneManager.Resize(a.layoutWidth, a.layoutHeight)

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to save settings")
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
//
// 逻辑尺寸跟随窗口，场地在下一次 Update 时按新尺寸调整。
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.layoutWidth, a.layoutHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Session 返回游戏会话
func (a *App) Session() *game.Session {
	return a.session
}

// SceneManager 返回场景管理器
func (a *App) SceneManager() *SceneManager {
	return a.sceneManager
}

// Shutdown 保存设置，在游戏关闭时调用
func (a *App) Shutdown() {
	a.saveSettings()
	stats := a.session.Stats()
	a.logger.Info().
		Int("score", a.session.Score()).
		Str("state", a.session.State().String()).
		Int("frames", stats.Frames).
		Msg("shutdown")
}
