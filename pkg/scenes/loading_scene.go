package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/starlight/pkg/game"
	"github.com/decker502/starlight/pkg/starfield"
	"github.com/decker502/starlight/pkg/utils"
)

// 加载画面至少显示的时间（秒），避免一闪而过
const loadingMinDuration = 0.6

type loadResult struct {
	assets *starfield.StarAssets
	err    error
}

// LoadingScene 在后台加载星星模型，完成后切换到作品集场景
//
// 模型加载失败时 Update 返回错误，应用随之退出。
type LoadingScene struct {
	deps         *Deps
	sceneManager *game.SceneManager

	elapsed  float64
	progress float64

	done   chan loadResult
	result *loadResult

	face *text.GoTextFace
}

// NewLoadingScene 创建加载场景并立即开始后台加载
func NewLoadingScene(deps *Deps, sm *game.SceneManager) *LoadingScene {
	s := &LoadingScene{
		deps:         deps,
		sceneManager: sm,
		done:         make(chan loadResult, 1),
	}

	var err error
	if s.face, err = utils.NewMonoFace(14); err != nil {
		log.Printf("[LoadingScene] Failed to load font: %v", err)
	}

	path := deps.modelPath()
	go func() {
		assets, err := starfield.LoadStarAssets(deps.Assets, path)
		s.done <- loadResult{assets: assets, err: err}
	}()

	return s
}

// Update 推进进度条，加载完成且显示足够时间后切换场景
func (s *LoadingScene) Update(deltaTime float64) error {
	s.elapsed += deltaTime

	if s.result == nil {
		select {
		case r := <-s.done:
			s.result = &r
		default:
		}
	}

	// 进度条缓动到目标：加载中停在 90%
	target := 0.9
	if s.result != nil {
		target = 1
	}
	s.progress += (target - s.progress) * math.Min(1, deltaTime*6)

	if s.result == nil {
		return nil
	}
	if s.result.err != nil {
		return fmt.Errorf("star assets: %w", s.result.err)
	}
	if s.elapsed < loadingMinDuration {
		return nil
	}

	scene, err := NewPortfolioScene(s.deps, s.result.assets)
	if err != nil {
		return fmt.Errorf("failed to create portfolio scene: %w", err)
	}
	s.sceneManager.SwitchTo(ScenePortfolio, scene)
	log.Printf("[LoadingScene] Loaded in %.2fs, switching to %s", s.elapsed, ScenePortfolio)
	return nil
}

// Progress 返回进度条位置（0~1）
func (s *LoadingScene) Progress() float64 {
	return s.progress
}

var (
	loadingBg  = color.RGBA{R: 4, G: 3, B: 12, A: 255}
	loadingBar = color.RGBA{R: 215, G: 36, B: 255, A: 255}
	loadingDim = color.RGBA{R: 60, G: 50, B: 90, A: 255}
)

// Draw 绘制居中的细进度条和百分比
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(loadingBg)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	barW := float32(w) * 0.3
	x := (float32(w) - barW) / 2
	y := float32(h) / 2

	vector.DrawFilledRect(screen, x, y, barW, 2, loadingDim, false)
	vector.DrawFilledRect(screen, x, y, barW*float32(s.progress), 2, loadingBar, false)

	if s.face != nil {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(x), float64(y)+12)
		op.ColorScale.ScaleWithColor(loadingDim)
		text.Draw(screen, fmt.Sprintf("loading %3.0f%%", s.progress*100), s.face, op)
	}
}
