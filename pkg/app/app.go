// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/starlight/internal/github"
	"github.com/decker502/starlight/pkg/config"
	"github.com/decker502/starlight/pkg/embedded"
	"github.com/decker502/starlight/pkg/game"
	"github.com/decker502/starlight/pkg/scenes"
	"github.com/decker502/starlight/pkg/starfield"
)

// 嵌入资源中的配置文件
const (
	StarConfigPath      = "data/starfield.yaml"
	PortfolioConfigPath = "data/portfolio.yaml"
)

// NoSeed 表示不覆盖配置中的随机种子
const NoSeed = -1

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 磁盘上的星空配置文件，为空时使用嵌入的 data/starfield.yaml
	ConfigPath string
	// Seed 覆盖配置中的随机种子，NoSeed 表示不覆盖
	Seed int64
	// GitHub 是否请求 GitHub 卡片
	GitHub bool
	// Token GitHub API 令牌（可选）
	Token string

	// Assets 资源文件系统，为 nil 时使用 embedded.FS()
	Assets fs.FS
	// State 持久化状态，为 nil 时按 config.AppName 打开 gdata
	State *game.GameState
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	state        *game.GameState
	clock        *starfield.Clock
	verbose      bool

	width, height int
	stopping      atomic.Bool // 由信号处理协程设置

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，cfg.Assets 为 nil 时必须先调用 embedded.Init() 初始化嵌入资源。
// 星星模型在加载场景中异步加载，模型加载失败会从 Update 返回错误。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fsys := cfg.Assets
	if fsys == nil {
		fsys = embedded.FS()
	}

	base, err := LoadStarConfig(fsys, cfg.ConfigPath, cfg.Seed)
	if err != nil {
		return nil, err
	}

	portfolio, err := LoadPortfolioConfig(fsys)
	if err != nil {
		return nil, err
	}

	state := cfg.State
	if state == nil {
		state = game.NewGameState(config.AppName)
	}

	// 调试面板保存的参数覆盖文件配置；Reset 恢复到文件配置
	starCfg, err := state.StarConfigs.Load(base)
	if err != nil {
		log.Printf("[App] Warning: %v (using file config)", err)
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		state:        state,
		clock:        starfield.NewClock(),
		verbose:      cfg.Verbose,
	}

	deps := &scenes.Deps{
		Assets:     fsys,
		StarConfig: starCfg,
		Defaults:   base,
		Portfolio:  portfolio,
		State:      state,
		Viewport:   a.viewport,
	}
	if cfg.GitHub {
		deps.GitHub = NewGitHubClient(portfolio.GitHub, cfg.Token, state)
	}

	a.sceneManager.SetSceneFactory(scenes.NewSceneFactory(deps, a.sceneManager))
	if err := a.sceneManager.Load(scenes.SceneLoading); err != nil {
		return nil, err
	}

	log.Printf("[App] Initialized: %d stars, seed %d, github=%v, persistent=%v",
		starCfg.Total, starCfg.Seed, cfg.GitHub, state.Persistent())
	return a, nil
}

// LoadStarConfig 加载星空配置
//
// 参数:
//   - fsys: 资源文件系统（path 为空时从中读取 data/starfield.yaml）
//   - path: 磁盘上的配置文件，优先于嵌入配置
//   - seed: 覆盖随机种子，NoSeed 表示不覆盖
func LoadStarConfig(fsys fs.FS, path string, seed int64) (*config.StarConfig, error) {
	var cfg *config.StarConfig
	var err error
	if path != "" {
		cfg, err = config.LoadStarConfig(path)
	} else {
		var data []byte
		if data, err = fs.ReadFile(fsys, StarConfigPath); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", StarConfigPath, err)
		}
		cfg, err = config.ParseStarConfig(data)
	}
	if err != nil {
		return nil, err
	}

	if seed != NoSeed {
		if seed < 0 || seed > int64(^uint32(0)) {
			return nil, fmt.Errorf("seed %d out of range", seed)
		}
		cfg.Seed = uint32(seed)
	}
	return cfg, nil
}

// LoadPortfolioConfig 读取作品集配置，文件不存在时使用默认配置
func LoadPortfolioConfig(fsys fs.FS) (*config.PortfolioConfig, error) {
	data, err := fs.ReadFile(fsys, PortfolioConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[App] %s not found, using default portfolio", PortfolioConfigPath)
		return config.DefaultPortfolioConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", PortfolioConfigPath, err)
	}
	return config.ParsePortfolioConfig(data)
}

// NewGitHubClient 创建 GitHub 客户端；可以持久化时响应缓存写入 gdata
func NewGitHubClient(cfg config.GitHubConfig, token string, state *game.GameState) *github.Client {
	opts := github.Options{
		BaseURL: cfg.BaseURL,
		Token:   token,
		TTL:     cfg.CacheTTL,
	}
	if state != nil && state.Persistent() {
		opts.Cache = state.HTTPCache
	}
	return github.NewClient(opts)
}

// ApplyWindowSettings 设置窗口属性并恢复上次的全屏状态
func (a *App) ApplyWindowSettings(title string) {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetFullscreen(a.state.Settings.GetSettings().Fullscreen)
}

// Update 更新逻辑
// 每帧调用一次，帧间隔由时钟测量
func (a *App) Update() error {
	if a.stopping.Load() {
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.DefaultWindowWidth, config.DefaultWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	return a.sceneManager.Update(a.clock.Delta())
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.state.Settings.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.state.Settings.SetFullscreen(true)
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 逻辑尺寸与窗口一致，这里只负责清屏和线性滤波
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸与窗口尺寸一致（画面随窗口缩放）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.width, a.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// viewport 返回最近一次 Layout 的尺寸（首帧之前为默认窗口尺寸）
func (a *App) viewport() (int, int) {
	if a.width <= 0 || a.height <= 0 {
		return config.DefaultWindowWidth, config.DefaultWindowHeight
	}
	return a.width, a.height
}

// Stop 请求在下一帧结束主循环，可以从任意协程调用
func (a *App) Stop() {
	a.stopping.Store(true)
}

// SaveOnExit 保存当前场景和界面设置
//
// 当前场景实现了 game.Saveable 时由场景负责保存设置。
func (a *App) SaveOnExit() bool {
	if _, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		return a.sceneManager.SaveOnExit()
	}
	if err := a.state.Settings.Save(); err != nil {
		log.Printf("[App] Failed to save settings: %v", err)
		return false
	}
	return true
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
