package debugui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyState 一帧的按键状态（与 ebiten 解耦，便于测试）
type KeyState struct {
	F1, Up, Down, Left, Right bool
	Ctrl, S, R                bool
}

// ReadKeys 读取本帧刚按下的面板按键
//
// 方向键支持按住连发（inpututil.KeyPressDuration）。
func ReadKeys() KeyState {
	return KeyState{
		F1:    inpututil.IsKeyJustPressed(ebiten.KeyF1),
		Up:    repeated(ebiten.KeyArrowUp),
		Down:  repeated(ebiten.KeyArrowDown),
		Left:  repeated(ebiten.KeyArrowLeft),
		Right: repeated(ebiten.KeyArrowRight),
		Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		S:     inpututil.IsKeyJustPressed(ebiten.KeyS),
		R:     inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

// 连发：按下后 20 帧开始，每 4 帧触发一次
const (
	repeatDelay    = 20
	repeatInterval = 4
)

func repeated(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// ActionFor 把按键映射为面板操作，每帧最多一个
//
// 优先级：F1 > Ctrl+S > Ctrl+R > 上下 > 左右。
func ActionFor(k KeyState) Action {
	switch {
	case k.F1:
		return ActionToggle
	case k.Ctrl && k.S:
		return ActionSave
	case k.Ctrl && k.R:
		return ActionReset
	case k.Up:
		return ActionUp
	case k.Down:
		return ActionDown
	case k.Left:
		return ActionDecrease
	case k.Right:
		return ActionIncrease
	}
	return ActionNone
}
