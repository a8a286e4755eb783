package hud

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/starlight/pkg/config"
)

// Section 一个面板：标题（打字机效果）和正文
type Section struct {
	ID     string
	Title  *Typewriter
	Lines  []string
	Active bool
}

// Nav 面板导航
//
// 导航按钮和 HUD 圆点是两组独立的单选按钮，SwitchTo 同时更新面板、
// 按钮和圆点，保证三者始终只有一个处于激活状态且指向同一面板。
type Nav struct {
	sections []*Section
	buttons  *RadioGroup
	dots     *RadioGroup

	label  string
	coords string

	// OnSwitch 切换面板后的回调（可选，用于持久化当前面板）
	OnSwitch func(id string)
}

// NewNav 根据配置创建导航并激活第一个面板
func NewNav(sections []config.SectionConfig, tw config.TypewriterOptions) (*Nav, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("nav needs at least one section")
	}

	n := &Nav{
		buttons: &RadioGroup{Name: "nav"},
		dots:    &RadioGroup{Name: "hud"},
	}
	for _, sc := range sections {
		id := strings.TrimSpace(sc.ID)
		if n.index(id) >= 0 {
			return nil, fmt.Errorf("duplicate section id '%s'", id)
		}

		title := sc.Title
		if title == "" {
			title = id
		}
		n.sections = append(n.sections, &Section{
			ID:    id,
			Title: NewTypewriter(title, tw),
			Lines: sc.Lines,
		})
		n.buttons.Buttons = append(n.buttons.Buttons, &RadioButton{ID: id, Label: id})
		n.dots.Buttons = append(n.dots.Buttons, &RadioButton{ID: id})
	}

	n.activate(n.sections[0].ID)
	n.SetPointer(mgl64.Vec2{})
	return n, nil
}

// SwitchTo 切换到指定面板
//
// HUD 标签变为面板 ID 的大写形式。
//
// 返回:
//   - error: 面板不存在时返回错误，当前状态不变
func (n *Nav) SwitchTo(id string) error {
	if n.index(id) < 0 {
		return fmt.Errorf("unknown section '%s'", id)
	}
	n.activate(id)
	if n.OnSwitch != nil {
		n.OnSwitch(id)
	}
	return nil
}

func (n *Nav) activate(id string) {
	for _, s := range n.sections {
		s.Active = s.ID == id
	}
	n.buttons.Select(id)
	n.dots.Select(id)
	n.label = strings.ToUpper(id)
}

// Next 切换到下一个面板（末尾回到第一个）
func (n *Nav) Next() {
	i := (n.ActiveIndex() + 1) % len(n.sections)
	_ = n.SwitchTo(n.sections[i].ID)
}

// Prev 切换到上一个面板（第一个回到末尾）
func (n *Nav) Prev() {
	count := len(n.sections)
	i := (n.ActiveIndex() - 1 + count) % count
	_ = n.SwitchTo(n.sections[i].ID)
}

// SwitchToIndex 按序号（从 0 开始）切换，越界时忽略
func (n *Nav) SwitchToIndex(i int) bool {
	if i < 0 || i >= len(n.sections) {
		return false
	}
	_ = n.SwitchTo(n.sections[i].ID)
	return true
}

func (n *Nav) index(id string) int {
	for i, s := range n.sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// ActiveIndex 返回当前面板序号
func (n *Nav) ActiveIndex() int {
	for i, s := range n.sections {
		if s.Active {
			return i
		}
	}
	return 0
}

// Active 返回当前面板
func (n *Nav) Active() *Section {
	return n.sections[n.ActiveIndex()]
}

// Sections 返回所有面板
func (n *Nav) Sections() []*Section {
	return n.sections
}

// Buttons 返回导航按钮组
func (n *Nav) Buttons() *RadioGroup {
	return n.buttons
}

// Dots 返回 HUD 圆点组
func (n *Nav) Dots() *RadioGroup {
	return n.dots
}

// Label 返回 HUD 面板标签
func (n *Nav) Label() string {
	return n.label
}

// SetPointer 更新 HUD 指针坐标（归一化坐标，Y 向下为正）
func (n *Nav) SetPointer(p mgl64.Vec2) {
	n.coords = FormatCoords(p.X(), p.Y())
}

// Coords 返回 HUD 坐标文本
func (n *Nav) Coords() string {
	return n.coords
}

// Update 推进所有面板的打字机
func (n *Nav) Update(dt float64) {
	for _, s := range n.sections {
		s.Title.Update(dt)
	}
}

// Click 处理点击：命中导航按钮或 HUD 圆点时切换面板
func (n *Nav) Click(x, y int) bool {
	if id, ok := n.buttons.HitTest(x, y); ok {
		_ = n.SwitchTo(id)
		return true
	}
	if id, ok := n.dots.HitTest(x, y); ok {
		_ = n.SwitchTo(id)
		return true
	}
	return false
}

// NavInput 一帧的导航按键
type NavInput struct {
	Tab   bool
	Shift bool
	Digit int // 1..9 对应面板序号，0 表示无
}

// HandleInput 处理导航按键：Tab 下一个，Shift+Tab 上一个，数字键直接跳转
func (n *Nav) HandleInput(in NavInput) {
	switch {
	case in.Tab && in.Shift:
		n.Prev()
	case in.Tab:
		n.Next()
	case in.Digit > 0:
		n.SwitchToIndex(in.Digit - 1)
	}
}

// FormatCoords 格式化 HUD 坐标，如 "0.250 / -0.500"
//
// 与网页版一致：很小的负数显示为 "-0.000"，只有 -0 本身显示为 "0.000"。
func FormatCoords(x, y float64) string {
	return formatCoord(x) + " / " + formatCoord(y)
}

func formatCoord(v float64) string {
	if v == 0 {
		v = 0 // -0
	}
	return fmt.Sprintf("%.3f", v)
}
