package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/starlight/internal/github"
	"github.com/decker502/starlight/pkg/config"
	"github.com/decker502/starlight/pkg/debugui"
	"github.com/decker502/starlight/pkg/hud"
	"github.com/decker502/starlight/pkg/render"
	"github.com/decker502/starlight/pkg/starfield"
	"github.com/decker502/starlight/pkg/utils"
)

// 卡片请求的总超时
const cardFetchTimeout = 30 * time.Second

// 运动档位对应的 spaceSpeed；cruise 使用启动时的配置值
var motionPresets = map[string]float64{
	"calm": 40,
	"warp": 600,
}

var portfolioBg = color.RGBA{R: 4, G: 3, B: 12, A: 255}

type cardsResult struct {
	cards []*github.Card
	err   error
}

// PortfolioScene 作品集主场景：星空背景 + HUD + 调试面板
type PortfolioScene struct {
	deps *Deps
	cfg  *config.StarConfig

	driver   *starfield.Driver
	renderer *render.BatchRenderer
	tracker  *utils.PointerTracker
	pointer  mgl64.Vec2

	hud   *hud.HUD
	panel *debugui.Panel

	cruiseSpeed float64

	cardsCh     chan cardsResult
	cancelCards context.CancelFunc
	restoreCard int

	width, height int
}

// NewPortfolioScene 用已加载的模型创建作品集场景
//
// 星空按 deps.StarConfig 生成；上次会话的面板、卡片和开关状态从设置中恢复。
// deps.GitHub 不为 nil 时在后台开始请求卡片。
func NewPortfolioScene(deps *Deps, assets *starfield.StarAssets) (*PortfolioScene, error) {
	if deps.StarConfig == nil {
		return nil, fmt.Errorf("star config is required")
	}
	portfolio := deps.Portfolio
	if portfolio == nil {
		portfolio = config.DefaultPortfolioConfig()
	}

	h, err := hud.NewHUD(portfolio)
	if err != nil {
		return nil, fmt.Errorf("failed to create hud: %w", err)
	}

	w, hgt := deps.viewport()
	s := &PortfolioScene{
		deps:        deps,
		cfg:         deps.StarConfig,
		renderer:    render.NewBatchRenderer(w, hgt),
		tracker:     utils.NewPointerTracker(),
		hud:         h,
		cruiseSpeed: deps.StarConfig.SpaceSpeed,
	}

	s.driver = starfield.Build(s.cfg, assets, starfield.DriverOptions{
		Camera:   starfield.NewCamera(w, hgt),
		Pointer:  starfield.PointerFunc(func() mgl64.Vec2 { return s.pointer }),
		Viewport: deps.viewport,
	})

	var store debugui.Saver
	if deps.State != nil {
		store = deps.State.StarConfigs
	}
	s.panel = debugui.NewPanel(s.cfg, deps.Defaults, store)

	s.restoreSettings()
	s.bindControls()
	s.hud.SetAccent(s.cfg.BigIcoColor.Color)
	s.startCardFetch(portfolio.GitHub)

	return s, nil
}

// restoreSettings 恢复上次的面板和开关状态
func (s *PortfolioScene) restoreSettings() {
	if s.deps.State == nil {
		s.hud.AddToggle("stats", "stats", true, nil)
		s.hud.AddToggle("panel", "panel", false, nil)
		return
	}

	settings := s.deps.State.Settings.GetSettings()
	if settings.Section != "" {
		if err := s.hud.Nav.SwitchTo(settings.Section); err != nil {
			log.Printf("[PortfolioScene] Saved section ignored: %v", err)
		}
	}
	s.restoreCard = settings.Card

	s.hud.AddToggle("stats", "stats", settings.ShowStats, nil)
	s.hud.AddToggle("panel", "panel", settings.ShowDebugPanel, nil)
	s.panel.SetVisible(settings.ShowDebugPanel)
}

// bindControls 连接 HUD 控件、调试面板和设置
func (s *PortfolioScene) bindControls() {
	var settings interface {
		SetSection(string)
		SetCard(int)
		SetShowStats(bool)
		SetShowDebugPanel(bool)
	}
	if s.deps.State != nil {
		settings = s.deps.State.Settings
	}

	panelToggle := s.hud.Toggle("panel")
	panelToggle.OnChange = s.panel.SetVisible
	s.panel.OnVisibilityChange = func(visible bool) {
		panelToggle.Active = visible
		if settings != nil {
			settings.SetShowDebugPanel(visible)
		}
	}

	s.hud.Toggle("stats").OnChange = func(show bool) {
		if settings != nil {
			settings.SetShowStats(show)
		}
	}

	s.hud.Motion.OnSelect = func(id string) {
		speed, ok := motionPresets[id]
		if !ok {
			speed = s.cruiseSpeed
		}
		s.cfg.SpaceSpeed = speed
		log.Printf("[PortfolioScene] Motion %s: spaceSpeed=%.0f", id, speed)
	}

	if settings != nil {
		s.hud.Nav.OnSwitch = func(id string) { settings.SetSection(id) }
		s.hud.Cards.OnShow = func(i int) { settings.SetCard(i) }
	}
}

// startCardFetch 在后台请求 GitHub 卡片，结果在 Update 中取回
func (s *PortfolioScene) startCardFetch(cfg config.GitHubConfig) {
	if s.deps.GitHub == nil || len(cfg.Users) == 0 {
		s.hud.SetCards(nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cardFetchTimeout)
	s.cancelCards = cancel
	s.cardsCh = make(chan cardsResult, 1)

	client := s.deps.GitHub
	users := append([]string(nil), cfg.Users...)
	size := cfg.AvatarSize
	ch := s.cardsCh
	go func() {
		cards, err := client.FetchCards(ctx, users, size)
		ch <- cardsResult{cards: cards, err: err}
	}()
}

// pollCards 取回后台请求结果（非阻塞）
func (s *PortfolioScene) pollCards() {
	if s.cardsCh == nil {
		return
	}

	select {
	case r := <-s.cardsCh:
		s.cardsCh = nil
		s.cancelCards()
		if r.err != nil {
			log.Printf("[PortfolioScene] GitHub cards unavailable: %v", r.err)
			s.hud.SetCardsError(r.err)
			return
		}
		s.hud.SetCards(r.cards)
		if s.restoreCard > 0 {
			s.hud.Cards.Show(s.restoreCard)
		}
		hits, misses := s.deps.GitHub.CacheStats()
		log.Printf("[PortfolioScene] Loaded %d GitHub cards (cache %d hits, %d misses)", len(r.cards), hits, misses)
	default:
	}
}

// Update 推进一帧
//
// 顺序：输入 → 调试面板按键 → HUD → 卡片结果 → 星空 → 顶点准备。
// 调试面板可见时方向键归面板，否则左右键切换卡片。
func (s *PortfolioScene) Update(deltaTime float64) error {
	in := s.deps.input()

	w, h := s.deps.viewport()
	if w != s.width || h != s.height {
		s.width, s.height = w, h
		s.hud.Layout(w, h)
	}

	s.tracker.Feed(in.Pointer)
	s.pointer = s.tracker.Normalized(w, h)

	if action := debugui.ActionFor(in.Keys); action != debugui.ActionNone {
		s.panel.Apply(action)
	}
	card := in.Card
	if s.panel.Visible() {
		card = 0
	}

	x, y := s.tracker.Position()
	s.hud.Update(deltaTime, hud.Input{
		X:       x,
		Y:       y,
		Pointer: s.pointer,
		Click:   s.tracker.JustPressed(),
		Swipe:   s.tracker.Swipe(hud.SwipeThreshold),
		Nav:     in.Nav,
		Card:    card,
	})
	s.pollCards()
	s.panel.Update(deltaTime)
	s.hud.SetAccent(s.cfg.BigIcoColor.Color)

	if err := s.driver.Tick(deltaTime); err != nil {
		log.Printf("[PortfolioScene] %v", err)
	} else if err := s.renderer.Present(s.driver.Batches, s.driver.Camera); err != nil {
		log.Printf("[PortfolioScene] %v", err)
	}

	s.updateStats()
	return nil
}

func (s *PortfolioScene) updateStats() {
	if t := s.hud.Toggle("stats"); t == nil || !t.Active {
		s.hud.SetStats("")
		return
	}
	st := s.renderer.Stats()
	s.hud.SetStats(fmt.Sprintf("%.0f fps  %d/%d stars  %d draws",
		ebiten.ActualFPS(), st.Drawn, st.Drawn+st.Culled, s.renderer.DrawCalls()))
}

// Draw 背景 → 星空 → HUD → 调试面板
func (s *PortfolioScene) Draw(screen *ebiten.Image) {
	screen.Fill(portfolioBg)
	s.renderer.Draw(screen, s.driver.Batches)
	s.hud.Draw(screen)
	s.panel.Draw(screen)
}

// SaveOnExit 取消未完成的卡片请求并保存界面设置
func (s *PortfolioScene) SaveOnExit() bool {
	if s.cancelCards != nil {
		s.cancelCards()
	}
	if s.deps.State == nil {
		return true
	}
	if err := s.deps.State.Settings.Save(); err != nil {
		log.Printf("[PortfolioScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// HUD 返回界面（测试和无窗口模式使用）
func (s *PortfolioScene) HUD() *hud.HUD {
	return s.hud
}

// Panel 返回调试面板
func (s *PortfolioScene) Panel() *debugui.Panel {
	return s.panel
}

// Driver 返回星空驱动器
func (s *PortfolioScene) Driver() *starfield.Driver {
	return s.driver
}
