// Package debugui 星空调试面板
//
// 默认隐藏，F1 切换。面板直接修改共享的 *config.StarConfig，
// 更新器每帧读取配置，所以修改在下一帧生效。
package debugui

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/starlight/pkg/config"
	"github.com/decker502/starlight/pkg/utils"
)

// 面板分组
const (
	FolderColors    = "Star Colors"
	FolderAnimation = "Star Animation"
)

// 颜色字段每步旋转的色相（度）
const HueStep = 10.0

// 状态消息显示时长（秒）
const statusDuration = 2.5

// 面板滑入时长（秒）
const slideDuration = 0.2

// FieldKind 字段类型
type FieldKind int

const (
	// FieldNumber 带范围的数值
	FieldNumber FieldKind = iota
	// FieldColor 颜色，通过色相旋转调整
	FieldColor
)

// Field 面板中的一个可编辑字段
type Field struct {
	Folder string
	Name   string
	Kind   FieldKind

	Min, Max, Step float64

	number *float64
	color  *config.HexColor
}

// Adjust 按方向调整一步：数值加减 Step 并钳制到范围内，颜色旋转色相
func (f *Field) Adjust(dir int) {
	if dir == 0 {
		return
	}
	switch f.Kind {
	case FieldNumber:
		f.Set(*f.number + f.Step*float64(dir))
	case FieldColor:
		*f.color = f.color.RotateHue(HueStep * float64(dir))
	}
}

// Set 设置数值（钳制到范围内），颜色字段忽略
func (f *Field) Set(v float64) {
	if f.Kind != FieldNumber || math.IsNaN(v) {
		return
	}
	v = math.Max(f.Min, math.Min(f.Max, v))
	// 消除步进累加的浮点误差
	*f.number = math.Round(v*1e6) / 1e6
}

// Value 返回数值（颜色字段返回色相）
func (f *Field) Value() float64 {
	if f.Kind == FieldColor {
		h, _, _ := f.color.Hsv()
		return h
	}
	return *f.number
}

// Format 返回显示文本
func (f *Field) Format() string {
	if f.Kind == FieldColor {
		return f.color.Hex()
	}
	return fmt.Sprintf("%.3f", *f.number)
}

// Saver 配置持久化（pkg/game.StarConfigStore）
type Saver interface {
	Save(cfg *config.StarConfig) error
	Reset() error
}

// Action 面板操作
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionUp
	ActionDown
	ActionDecrease
	ActionIncrease
	ActionSave
	ActionReset
)

// Panel 调试面板
type Panel struct {
	cfg      *config.StarConfig
	defaults *config.StarConfig
	store    Saver

	fields   []*Field
	selected int
	visible  bool

	status    string
	statusTTL float64
	shown     float64 // 本次显示以来的秒数（滑入动画）

	// OnVisibilityChange 显示状态改变后的回调（可选）
	OnVisibilityChange func(visible bool)
}

// NewPanel 创建面板
//
// 参数:
//   - cfg: 共享的星空配置，面板直接修改它
//   - defaults: Reset 时恢复的配置（nil 时使用 config.DefaultStarConfig）
//   - store: 持久化存储（nil 时 Save/Reset 只修改内存）
func NewPanel(cfg, defaults *config.StarConfig, store Saver) *Panel {
	if defaults == nil {
		defaults = config.DefaultStarConfig()
	}

	p := &Panel{cfg: cfg, defaults: defaults.Clone(), store: store}
	p.fields = []*Field{
		colorField("bigIcoColor", &cfg.BigIcoColor),
		colorField("bigPlaneColor", &cfg.BigPlaneColor),
		colorField("smallIcoColor", &cfg.SmallIcoColor),
		colorField("smallPlaneColor", &cfg.SmallPlaneColor),
		numberField("planeSpeed", &cfg.PlaneSpeed, 0.5, 5, 0.1),
		numberField("icoSpeed", &cfg.IcoSpeed, 0.5, 5, 0.1),
		numberField("spaceSpeed", &cfg.SpaceSpeed, 0, 1000, 25),
		numberField("hoverRadius", &cfg.HoverRadius, 0.01, 0.3, 0.01),
		numberField("hoverScaleAmp", &cfg.HoverScaleAmp, 1, 5, 0.25),
		numberField("hoverEase", &cfg.HoverEase, 0.01, 0.3, 0.01),
	}
	return p
}

func colorField(name string, c *config.HexColor) *Field {
	return &Field{Folder: FolderColors, Name: name, Kind: FieldColor, color: c}
}

func numberField(name string, v *float64, lo, hi, step float64) *Field {
	return &Field{Folder: FolderAnimation, Name: name, Kind: FieldNumber, Min: lo, Max: hi, Step: step, number: v}
}

// Apply 执行一个操作
//
// 面板隐藏时只响应 ActionToggle。
func (p *Panel) Apply(a Action) {
	if a == ActionToggle {
		p.SetVisible(!p.visible)
		return
	}
	if !p.visible {
		return
	}

	switch a {
	case ActionUp:
		p.selected = (p.selected - 1 + len(p.fields)) % len(p.fields)
	case ActionDown:
		p.selected = (p.selected + 1) % len(p.fields)
	case ActionDecrease:
		p.fields[p.selected].Adjust(-1)
	case ActionIncrease:
		p.fields[p.selected].Adjust(1)
	case ActionSave:
		p.save()
	case ActionReset:
		p.reset()
	}
}

func (p *Panel) save() {
	if p.store == nil {
		p.setStatus("nothing to save to")
		return
	}
	if err := p.store.Save(p.cfg); err != nil {
		log.Printf("[DebugUI] Save failed: %v", err)
		p.setStatus("save failed")
		return
	}
	log.Printf("[DebugUI] Star config saved")
	p.setStatus("saved")
}

// reset 把可编辑字段恢复为默认值并清除已保存的配置
func (p *Panel) reset() {
	d := p.defaults
	p.cfg.BigIcoColor = d.BigIcoColor
	p.cfg.BigPlaneColor = d.BigPlaneColor
	p.cfg.SmallIcoColor = d.SmallIcoColor
	p.cfg.SmallPlaneColor = d.SmallPlaneColor
	p.cfg.PlaneSpeed = d.PlaneSpeed
	p.cfg.IcoSpeed = d.IcoSpeed
	p.cfg.SpaceSpeed = d.SpaceSpeed
	p.cfg.HoverRadius = d.HoverRadius
	p.cfg.HoverScaleAmp = d.HoverScaleAmp
	p.cfg.HoverEase = d.HoverEase

	if p.store != nil {
		if err := p.store.Reset(); err != nil {
			log.Printf("[DebugUI] Reset failed: %v", err)
			p.setStatus("reset failed")
			return
		}
	}
	p.setStatus("reset to defaults")
}

func (p *Panel) setStatus(s string) {
	p.status = s
	p.statusTTL = statusDuration
}

// Update 推进滑入动画和状态消息计时
func (p *Panel) Update(dt float64) {
	if !(dt > 0) {
		return
	}
	if p.visible {
		p.shown += dt
	}
	if p.statusTTL <= 0 {
		return
	}
	p.statusTTL -= dt
	if p.statusTTL <= 0 {
		p.status = ""
	}
}

// SetVisible 显示或隐藏面板
func (p *Panel) SetVisible(visible bool) {
	if p.visible == visible {
		return
	}
	p.visible = visible
	p.shown = 0
	if p.OnVisibilityChange != nil {
		p.OnVisibilityChange(visible)
	}
}

// SlideProgress 返回滑入动画进度（0~1，已缓动）
func (p *Panel) SlideProgress() float64 {
	return utils.EaseOutCubic(utils.Progress(p.shown, slideDuration))
}

// Visible 面板是否可见
func (p *Panel) Visible() bool {
	return p.visible
}

// Fields 返回所有字段（按显示顺序）
func (p *Panel) Fields() []*Field {
	return p.fields
}

// Selected 返回当前选中字段
func (p *Panel) Selected() *Field {
	return p.fields[p.selected]
}

// Status 返回当前状态消息
func (p *Panel) Status() string {
	return p.status
}
