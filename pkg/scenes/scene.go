package scenes

import (
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/starlight/internal/github"
	"github.com/decker502/starlight/pkg/config"
	"github.com/decker502/starlight/pkg/debugui"
	"github.com/decker502/starlight/pkg/game"
	"github.com/decker502/starlight/pkg/hud"
	"github.com/decker502/starlight/pkg/starfield"
	"github.com/decker502/starlight/pkg/utils"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// 场景名称
const (
	SceneLoading   = "loading"
	ScenePortfolio = "portfolio"
)

// DefaultModelPath 星星模型路径
const DefaultModelPath = "assets/models/star.obj"

// Deps 场景共享依赖
type Deps struct {
	Assets    fs.FS
	ModelPath string

	// StarConfig 共享配置，调试面板直接修改它
	StarConfig *config.StarConfig
	// Defaults 调试面板 Reset 恢复的配置
	Defaults  *config.StarConfig
	Portfolio *config.PortfolioConfig
	State     *game.GameState

	// GitHub 为 nil 时不加载卡片
	GitHub *github.Client

	// Viewport 返回当前屏幕尺寸
	Viewport func() (int, int)

	// Input 为 nil 时读取 ebiten 输入
	Input InputSource
}

// FrameInput 一帧的全部用户输入
type FrameInput struct {
	Pointer utils.PointerSample
	Keys    debugui.KeyState
	Nav     hud.NavInput
	Card    int
}

// InputSource 每帧调用一次，返回本帧输入
type InputSource func() FrameInput

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// ReadInput 从 ebiten 读取本帧输入
//
// 移动端只有触摸输入，不读取键盘。
func ReadInput() FrameInput {
	if utils.IsMobile() {
		return FrameInput{Pointer: utils.SamplePointer()}
	}

	in := FrameInput{
		Pointer: utils.SamplePointer(),
		Keys:    debugui.ReadKeys(),
		Nav: hud.NavInput{
			Tab:   inpututil.IsKeyJustPressed(ebiten.KeyTab),
			Shift: ebiten.IsKeyPressed(ebiten.KeyShift),
		},
	}
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Nav.Digit = i + 1
			break
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		in.Card = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		in.Card = 1
	}
	return in
}

func (d *Deps) input() FrameInput {
	if d.Input != nil {
		return d.Input()
	}
	return ReadInput()
}

func (d *Deps) modelPath() string {
	if d.ModelPath != "" {
		return d.ModelPath
	}
	return DefaultModelPath
}

func (d *Deps) viewport() (int, int) {
	if d.Viewport != nil {
		return d.Viewport()
	}
	return config.DefaultWindowWidth, config.DefaultWindowHeight
}

// NewSceneFactory 创建场景工厂
func NewSceneFactory(deps *Deps, sm *game.SceneManager) game.SceneFactory {
	return func(name string) (game.Scene, error) {
		switch name {
		case SceneLoading:
			return NewLoadingScene(deps, sm), nil
		case ScenePortfolio:
			assets, err := starfield.LoadStarAssets(deps.Assets, deps.modelPath())
			if err != nil {
				return nil, err
			}
			return NewPortfolioScene(deps, assets)
		}
		return nil, fmt.Errorf("unknown scene '%s'", name)
	}
}
