package hud

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/decker502/starlight/pkg/config"
)

func newTestHUD(t *testing.T) *HUD {
	t.Helper()
	h, err := NewHUD(config.DefaultPortfolioConfig())
	if err != nil {
		t.Fatalf("NewHUD: %v", err)
	}
	h.Layout(1280, 720)
	return h
}

func center(r image.Rectangle) (int, int) {
	c := r.Min.Add(r.Max).Div(2)
	return c.X, c.Y
}

func click(h *HUD, r image.Rectangle) bool {
	x, y := center(r)
	return h.Update(0, Input{X: x, Y: y, Click: true})
}

func TestHUDLayout(t *testing.T) {
	h := newTestHUD(t)

	buttons := h.Nav.Buttons().Buttons
	for i := 1; i < len(buttons); i++ {
		if buttons[i].Bounds.Overlaps(buttons[i-1].Bounds) {
			t.Errorf("nav buttons %d and %d overlap", i-1, i)
		}
	}
	for _, d := range h.Nav.Dots().Buttons {
		if !d.Bounds.In(image.Rect(0, 0, 1280, 720)) {
			t.Errorf("dot %s outside screen: %v", d.ID, d.Bounds)
		}
	}
	if h.Motion.Active() != "cruise" {
		t.Errorf("default motion = %q", h.Motion.Active())
	}
}

func TestHUDClickNavAndDots(t *testing.T) {
	h := newTestHUD(t)

	if !click(h, h.Nav.Buttons().Buttons[1].Bounds) {
		t.Fatal("点击导航按钮应被消费")
	}
	if h.Nav.Active().ID != "about" {
		t.Errorf("active = %q, want about", h.Nav.Active().ID)
	}

	if !click(h, h.Nav.Dots().Buttons[3].Bounds) {
		t.Fatal("点击 HUD 圆点应被消费")
	}
	if h.Nav.Label() != "CONTACT" {
		t.Errorf("label = %q", h.Nav.Label())
	}

	// 空白区域不消费点击
	if h.Update(0, Input{X: 640, Y: 700, Click: true}) {
		t.Error("空白区域点击不应被消费")
	}
}

func TestHUDToggleAndMotion(t *testing.T) {
	h := newTestHUD(t)

	var stats []bool
	toggle := h.AddToggle("stats", "stats", true, func(v bool) { stats = append(stats, v) })
	if toggle.Bounds.Empty() {
		t.Fatal("AddToggle 之后应重新布局")
	}
	if h.Toggle("stats") != toggle || h.Toggle("missing") != nil {
		t.Error("Toggle lookup mismatch")
	}

	click(h, toggle.Bounds)
	if toggle.Active || len(stats) != 1 || stats[0] {
		t.Errorf("toggle after click: active %v, events %v", toggle.Active, stats)
	}

	var motion string
	h.Motion.OnSelect = func(id string) { motion = id }
	click(h, h.Motion.Buttons[2].Bounds)
	if h.Motion.Active() != "warp" || motion != "warp" {
		t.Errorf("motion = %q / %q", h.Motion.Active(), motion)
	}
}

func TestHUDCards(t *testing.T) {
	h := newTestHUD(t)

	if !strings.Contains(h.CardsStatus(), "loading") {
		t.Errorf("initial status = %q", h.CardsStatus())
	}
	h.SetCards(testCards(3))
	if h.CardsStatus() != "" {
		t.Errorf("status after load = %q", h.CardsStatus())
	}

	// 非卡片面板不响应卡片输入
	h.Update(0, Input{Card: 1})
	h.Update(0, Input{Swipe: -1})
	if h.Cards.Index() != 0 {
		t.Fatalf("cards moved outside projects section: %d", h.Cards.Index())
	}

	h.Nav.SwitchTo("projects")
	if !h.ShowsCards() {
		t.Fatal("projects 面板应显示卡片")
	}

	h.Update(0, Input{Card: 1})
	if h.Cards.Index() != 1 {
		t.Errorf("after Card:+1 index = %d", h.Cards.Index())
	}
	h.Update(0, Input{Swipe: 1})
	if h.Cards.Index() != 0 {
		t.Errorf("after swipe right index = %d", h.Cards.Index())
	}

	// 切换面板后重新布局出卡片圆点
	if len(h.cardDots) != 3 {
		t.Fatalf("card dots = %d, want 3", len(h.cardDots))
	}
	click(h, h.cardDots[2])
	if h.Cards.Index() != 2 {
		t.Errorf("after dot click index = %d", h.Cards.Index())
	}
	click(h, h.nextRect)
	if h.Cards.Index() != 0 {
		t.Errorf("next should wrap, index = %d", h.Cards.Index())
	}
	click(h, h.prevRect)
	if h.Cards.Index() != 2 {
		t.Errorf("prev should wrap, index = %d", h.Cards.Index())
	}

	h.SetCardsError(errors.New("rate limited"))
	if !strings.Contains(h.CardsStatus(), "rate limited") {
		t.Errorf("status = %q", h.CardsStatus())
	}
	h.SetCards(nil)
	if h.CardsStatus() != "no cards" {
		t.Errorf("status = %q", h.CardsStatus())
	}
}

func TestHUDCaretHoverAndRestart(t *testing.T) {
	h := newTestHUD(t)

	// 打完标题
	h.Update(10, Input{X: -100, Y: -100})
	title := h.Nav.Active().Title
	if title.State() != TypewriterIdle {
		t.Fatalf("title state = %v", title.State())
	}

	x, y := center(h.caretRect)
	h.Update(0.01, Input{X: x, Y: y})
	if c, visible := title.Caret(); c != "+" || !visible {
		t.Errorf("hover caret = %q %v", c, visible)
	}

	if !h.Update(0, Input{X: x, Y: y, Click: true}) {
		t.Fatal("点击光标应被消费")
	}
	if title.State() != TypewriterErasing {
		t.Errorf("state after caret click = %v, want erasing", title.State())
	}
}

func TestHUDPointerCoords(t *testing.T) {
	h := newTestHUD(t)
	h.Update(0, Input{Pointer: [2]float64{-0.5, 0.75}})
	if h.Nav.Coords() != "-0.500 / 0.750" {
		t.Errorf("coords = %q", h.Nav.Coords())
	}
}
