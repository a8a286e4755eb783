package hud

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/starlight/internal/github"
	"github.com/decker502/starlight/pkg/config"
	"github.com/decker502/starlight/pkg/utils"
)

// 布局常量（像素）
const (
	margin       = 16
	navButtonW   = 112
	navButtonH   = 28
	navGap       = 8
	dotRadius    = 5
	dotSpacing   = 18
	toggleW      = 88
	cardW        = 380
	cardH        = 188
	cardArrowW   = 28
	avatarSize   = 64
	maxTextWidth = 640

	titleSize = 40
	bodySize  = 16
	navSize   = 14
	monoSize  = 13
)

// 滑动切换卡片的最小水平距离（像素）
const SwipeThreshold = 48

// Input 一帧的 HUD 输入
type Input struct {
	X, Y    int        // 指针屏幕坐标
	Pointer mgl64.Vec2 // 归一化指针坐标
	Click   bool       // 本帧刚按下
	Swipe   int        // 水平滑动方向
	Nav     NavInput
	Card    int // -1 上一张，+1 下一张
}

// HUD 作品集界面
type HUD struct {
	Nav     *Nav
	Cards   *Carousel
	Toggles []*Toggle
	Motion  *RadioGroup

	cardSection string
	cardsStatus string
	stats       string

	accent colorful.Color

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace
	navFace   *text.GoTextFace
	monoFace  *text.GoTextFace

	width, height int
	layoutSection int
	layoutCards   int
	titlePos      image.Point
	caretRect     image.Rectangle
	bodyLines     []string
	cardRect      image.Rectangle
	prevRect      image.Rectangle
	nextRect      image.Rectangle
	cardDots      []image.Rectangle

	avatars map[*github.Card]*ebiten.Image
}

// NewHUD 根据作品集配置创建界面
func NewHUD(cfg *config.PortfolioConfig) (*HUD, error) {
	nav, err := NewNav(cfg.Sections, cfg.Typewriter)
	if err != nil {
		return nil, err
	}

	h := &HUD{
		Nav:         nav,
		Cards:       NewCarousel(nil),
		Motion:      NewRadioGroup("motion", "calm", "cruise", "warp"),
		cardSection: cfg.GitHub.Section,
		cardsStatus: "loading cards…",
		accent:      colorful.Color{R: 0.84, G: 0.14, B: 1},
		avatars:     make(map[*github.Card]*ebiten.Image),
	}
	h.Motion.Select("cruise")

	if h.titleFace, err = utils.NewFace(titleSize); err != nil {
		return nil, err
	}
	if h.bodyFace, err = utils.NewFace(bodySize); err != nil {
		return nil, err
	}
	if h.navFace, err = utils.NewFace(navSize); err != nil {
		return nil, err
	}
	if h.monoFace, err = utils.NewMonoFace(monoSize); err != nil {
		return nil, err
	}

	return h, nil
}

// AddToggle 添加一个开关按钮（显示在右上角）
func (h *HUD) AddToggle(id, label string, active bool, onChange func(bool)) *Toggle {
	t := &Toggle{ID: id, Label: label, Active: active, OnChange: onChange}
	h.Toggles = append(h.Toggles, t)
	if h.width > 0 {
		h.Layout(h.width, h.height)
	}
	return t
}

// Toggle 按 ID 查找开关
func (h *HUD) Toggle(id string) *Toggle {
	for _, t := range h.Toggles {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// SetAccent 设置强调色（通常取星星颜色）
func (h *HUD) SetAccent(c colorful.Color) {
	h.accent = c.Clamped()
}

// SetCards 卡片加载完成
func (h *HUD) SetCards(cards []*github.Card) {
	h.Cards.SetCards(cards)
	h.cardsStatus = ""
	if len(cards) == 0 {
		h.cardsStatus = "no cards"
	}
}

// SetCardsError 卡片加载失败
func (h *HUD) SetCardsError(err error) {
	h.cardsStatus = fmt.Sprintf("cards unavailable: %v", err)
}

// CardsStatus 返回卡片区域的状态文本（加载完成后为空）
func (h *HUD) CardsStatus() string {
	return h.cardsStatus
}

// SetStats 设置右下角统计文本
func (h *HUD) SetStats(s string) {
	h.stats = s
}

// ShowsCards 当前面板是否显示卡片轮播
func (h *HUD) ShowsCards() bool {
	return h.cardSection != "" && h.Nav.Active().ID == h.cardSection
}

// Layout 根据屏幕尺寸计算所有可点击区域
func (h *HUD) Layout(width, height int) {
	h.width, h.height = width, height
	h.layoutSection = h.Nav.ActiveIndex()
	h.layoutCards = h.Cards.Len()

	x := margin
	for _, b := range h.Nav.Buttons().Buttons {
		b.Bounds = image.Rect(x, margin, x+navButtonW, margin+navButtonH)
		x += navButtonW + navGap
	}

	// 右上角：开关和运动模式单选
	x = width - margin
	for i := len(h.Motion.Buttons) - 1; i >= 0; i-- {
		b := h.Motion.Buttons[i]
		b.Bounds = image.Rect(x-toggleW, margin, x, margin+navButtonH)
		x -= toggleW + navGap
	}
	x = width - margin
	for i := len(h.Toggles) - 1; i >= 0; i-- {
		t := h.Toggles[i]
		y := margin + navButtonH + navGap
		t.Bounds = image.Rect(x-toggleW, y, x, y+navButtonH)
		x -= toggleW + navGap
	}

	// 右下角：HUD 圆点
	dots := h.Nav.Dots().Buttons
	cx := width - margin - dotRadius - (len(dots)-1)*dotSpacing
	cy := height - margin - dotRadius
	for _, d := range dots {
		d.Bounds = dotBounds(cx, cy)
		cx += dotSpacing
	}

	h.titlePos = image.Pt(margin*3, int(float64(height)*0.3))
	h.layoutCaret()

	textW := float64(min(width-margin*6, maxTextWidth))
	h.bodyLines = h.bodyLines[:0]
	for _, line := range h.Nav.Active().Lines {
		h.bodyLines = append(h.bodyLines, utils.WrapText(line, h.bodyFace, textW)...)
	}

	top := h.titlePos.Y + titleSize + 24 + len(h.bodyLines)*(bodySize+8) + 16
	left := h.titlePos.X + cardArrowW + navGap
	h.cardRect = image.Rect(left, top, left+cardW, top+cardH)
	h.prevRect = image.Rect(left-navGap-cardArrowW, top, left-navGap, top+cardH)
	h.nextRect = image.Rect(left+cardW+navGap, top, left+cardW+navGap+cardArrowW, top+cardH)

	h.cardDots = h.cardDots[:0]
	dx := left + cardW/2 - (h.Cards.Len()-1)*dotSpacing/2
	dy := top + cardH + 16
	for i := 0; i < h.Cards.Len(); i++ {
		h.cardDots = append(h.cardDots, dotBounds(dx, dy))
		dx += dotSpacing
	}
}

// dotBounds 圆点的点击区域，比圆点略大且相邻圆点互不重叠
func dotBounds(cx, cy int) image.Rectangle {
	const half = dotSpacing / 2
	return image.Rect(cx-half, cy-half, cx+half, cy+half)
}

// layoutCaret 光标位置跟随当前已输出的标题
func (h *HUD) layoutCaret() {
	title := h.Nav.Active().Title
	x := h.titlePos.X + int(math.Ceil(text.Advance(title.Text(), h.titleFace)))
	caret, _ := title.Caret()
	w := int(math.Ceil(text.Advance(caret, h.titleFace)))
	h.caretRect = image.Rect(x, h.titlePos.Y, x+max(w, titleSize/2), h.titlePos.Y+titleSize)
}

// Update 推进动画并处理输入
//
// 返回:
//   - bool: 本帧点击被界面消费（调用方不应再把它当作场景点击）
func (h *HUD) Update(dt float64, in Input) bool {
	h.Nav.SetPointer(in.Pointer)
	h.Nav.HandleInput(in.Nav)
	h.Nav.Update(dt)

	consumed := false
	if in.Click {
		consumed = h.click(in.X, in.Y)
	}

	if h.ShowsCards() {
		h.Cards.Swipe(in.Swipe)
		switch {
		case in.Card < 0:
			h.Cards.Prev()
		case in.Card > 0:
			h.Cards.Next()
		}
	}

	if h.width > 0 {
		if h.layoutSection != h.Nav.ActiveIndex() || h.layoutCards != h.Cards.Len() {
			h.Layout(h.width, h.height)
		}
		h.layoutCaret()
	}
	title := h.Nav.Active().Title
	title.SetHover(image.Pt(in.X, in.Y).In(h.caretRect))

	return consumed
}

func (h *HUD) click(x, y int) bool {
	if h.Nav.Click(x, y) {
		return true
	}

	p := image.Pt(x, y)
	for _, t := range h.Toggles {
		if p.In(t.Bounds) {
			t.Flip()
			return true
		}
	}
	if id, ok := h.Motion.HitTest(x, y); ok {
		h.Motion.Select(id)
		return true
	}
	if p.In(h.caretRect) {
		h.Nav.Active().Title.Restart()
		return true
	}

	if !h.ShowsCards() {
		return false
	}
	switch {
	case p.In(h.prevRect):
		h.Cards.Prev()
		return true
	case p.In(h.nextRect):
		h.Cards.Next()
		return true
	}
	for i, r := range h.cardDots {
		if p.In(r) {
			h.Cards.Show(i)
			return true
		}
	}
	return false
}

// 界面配色
var (
	textColor  = color.RGBA{R: 235, G: 235, B: 245, A: 255}
	dimColor   = color.RGBA{R: 140, G: 140, B: 170, A: 255}
	panelColor = color.RGBA{R: 10, G: 8, B: 24, A: 190}
	shadowCol  = color.RGBA{A: 180}
)

// accentColors 返回强调色和它的暗色版本
func (h *HUD) accentColors() (color.Color, color.Color) {
	dark := h.accent.BlendLab(colorful.Color{}, 0.55).Clamped()
	return h.accent, dark
}
