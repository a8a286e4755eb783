// Package utils 提供通用工具函数
package utils

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerSample 一帧的原始指针采样
type PointerSample struct {
	X, Y  int
	Down  bool // 鼠标左键按下或有活动触摸
	Touch bool // 采样来自触摸
}

// SamplePointer 读取当前帧的指针状态
// 同时支持鼠标和触摸输入，优先使用触摸
func SamplePointer() PointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerSample{X: x, Y: y, Down: true, Touch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{X: x, Y: y, Down: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)}
}

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放），只持续一帧
	DragStateEnded
)

// PointerTracker 跟踪指针位置和按下/拖拽状态
//
// 触摸释放后 ebiten 不再报告触摸位置，因此保留最后一次触摸位置，
// 让悬停效果停在手指离开的地方而不是跳回 (0,0)。
type PointerTracker struct {
	x, y  int
	down  bool
	touch bool

	state          DragState
	startX, startY int

	justPressed  bool
	justReleased bool
}

// NewPointerTracker 创建跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Update 采样 ebiten 输入并推进状态（每帧调用一次）
func (p *PointerTracker) Update() {
	p.Feed(SamplePointer())
}

// Feed 用一帧采样推进状态
func (p *PointerTracker) Feed(s PointerSample) {
	wasDown := p.down

	// 触摸已释放的帧保持最后的触摸位置
	if s.Touch || !p.touch || s.Down {
		p.x, p.y = s.X, s.Y
	}
	if s.Down || s.Touch {
		p.touch = s.Touch
	}
	p.down = s.Down

	p.justPressed = s.Down && !wasDown
	p.justReleased = !s.Down && wasDown

	switch p.state {
	case DragStateNone:
		if p.justPressed {
			p.state = DragStateStarted
			p.startX, p.startY = p.x, p.y
		}
	case DragStateStarted:
		p.state = DragStateDragging
		if p.justReleased {
			p.state = DragStateEnded
		}
	case DragStateDragging:
		if p.justReleased {
			p.state = DragStateEnded
		}
	case DragStateEnded:
		p.state = DragStateNone
		if p.justPressed {
			p.state = DragStateStarted
			p.startX, p.startY = p.x, p.y
		}
	}
}

// Position 返回指针屏幕坐标
func (p *PointerTracker) Position() (int, int) {
	return p.x, p.y
}

// IsTouch 最近的输入是否来自触摸
func (p *PointerTracker) IsTouch() bool {
	return p.touch
}

// JustPressed 本帧是否刚按下
func (p *PointerTracker) JustPressed() bool {
	return p.justPressed
}

// JustReleased 本帧是否刚释放
func (p *PointerTracker) JustReleased() bool {
	return p.justReleased
}

// DragState 返回当前拖拽状态
func (p *PointerTracker) DragState() DragState {
	return p.state
}

// DragDistance 返回从按下位置到当前位置的距离
func (p *PointerTracker) DragDistance() (dx, dy int) {
	if p.state == DragStateNone {
		return 0, 0
	}
	return p.x - p.startX, p.y - p.startY
}

// Swipe 拖拽结束的那一帧返回水平滑动方向
//
// 参数:
//   - threshold: 触发滑动的最小水平距离（像素）
//
// 返回:
//   - int: -1 向左，+1 向右，0 无滑动
func (p *PointerTracker) Swipe(threshold int) int {
	if p.state != DragStateEnded {
		return 0
	}
	dx, dy := p.DragDistance()
	if abs(dx) < threshold || abs(dx) < abs(dy) {
		return 0
	}
	if dx < 0 {
		return -1
	}
	return 1
}

// Normalized 返回归一化指针坐标
func (p *PointerTracker) Normalized(width, height int) mgl64.Vec2 {
	return NormalizePointer(float64(p.x), float64(p.y), width, height)
}

// NormalizePointer 把屏幕像素坐标映射到 [-1,1]
//
// X 向右为正，Y 向下为正（与屏幕坐标同向）。视口非法时返回 (0,0)，
// 超出窗口的坐标会被钳制。
func NormalizePointer(x, y float64, width, height int) mgl64.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}
	}
	nx := x/float64(width)*2 - 1
	ny := y/float64(height)*2 - 1
	return mgl64.Vec2{mgl64.Clamp(nx, -1, 1), mgl64.Clamp(ny, -1, 1)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
