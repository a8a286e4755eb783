package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个场景（加载画面、作品集主场景）
// 同一时刻只有一个场景的 Update 和 Draw 被调用
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64) error

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在程序退出时保存状态
//
// 实现此接口的场景会在窗口关闭或收到终止信号时被调用 SaveOnExit()。
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
