// Package hud 作品集界面：导航、打字机标题、开关/单选按钮和 GitHub 卡片轮播
//
// 状态逻辑与绘制分离：各组件的状态方法不依赖 ebiten，可以直接测试；
// 绘制集中在 draw.go。
package hud

import (
	"image"
)

// Toggle 开关按钮，点击在激活/未激活之间切换
type Toggle struct {
	ID     string
	Label  string
	Active bool

	// OnChange 状态改变后的回调（可选）
	OnChange func(active bool)

	Bounds image.Rectangle
}

// Flip 切换状态并返回新状态
func (t *Toggle) Flip() bool {
	t.Active = !t.Active
	if t.OnChange != nil {
		t.OnChange(t.Active)
	}
	return t.Active
}

// RadioButton 单选按钮
type RadioButton struct {
	ID     string
	Label  string
	Active bool

	Bounds image.Rectangle
}

// RadioGroup 单选按钮组：同组内最多一个按钮处于激活状态
type RadioGroup struct {
	Name    string
	Buttons []*RadioButton

	// OnSelect 选中项改变后的回调（可选）
	OnSelect func(id string)
}

// NewRadioGroup 创建单选组，按钮标签默认与 ID 相同，初始没有选中项
func NewRadioGroup(name string, ids ...string) *RadioGroup {
	g := &RadioGroup{Name: name}
	for _, id := range ids {
		g.Buttons = append(g.Buttons, &RadioButton{ID: id, Label: id})
	}
	return g
}

// Select 激活 id 对应的按钮并取消同组其它按钮
//
// 返回:
//   - bool: id 不在组内时返回 false，组状态不变
func (g *RadioGroup) Select(id string) bool {
	if g.Index(id) < 0 {
		return false
	}

	changed := false
	for _, b := range g.Buttons {
		active := b.ID == id
		if b.Active != active {
			changed = true
		}
		b.Active = active
	}

	if changed && g.OnSelect != nil {
		g.OnSelect(id)
	}
	return true
}

// Active 返回当前选中项的 ID，没有选中项时返回空字符串
func (g *RadioGroup) Active() string {
	for _, b := range g.Buttons {
		if b.Active {
			return b.ID
		}
	}
	return ""
}

// Index 返回 id 的位置，不存在时返回 -1
func (g *RadioGroup) Index(id string) int {
	for i, b := range g.Buttons {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// HitTest 返回包含 (x, y) 的按钮 ID
func (g *RadioGroup) HitTest(x, y int) (string, bool) {
	p := image.Pt(x, y)
	for _, b := range g.Buttons {
		if p.In(b.Bounds) {
			return b.ID, true
		}
	}
	return "", false
}
