package app

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/starlight/pkg/config"
	"github.com/decker502/starlight/pkg/embedded"
	"github.com/decker502/starlight/pkg/render"
	"github.com/decker502/starlight/pkg/scenes"
	"github.com/decker502/starlight/pkg/starfield"
)

// HeadlessReport 无窗口运行结果
type HeadlessReport struct {
	Frames    uint64
	Aborted   uint64
	Elapsed   float64
	Stars     int
	Stats     render.InstanceStats
	FirstStar mgl64.Vec3
}

// String 单行摘要
func (r HeadlessReport) String() string {
	return fmt.Sprintf("frames=%d aborted=%d elapsed=%.3fs stars=%d drawn=%d culled=%d first=(%.2f, %.2f, %.2f)",
		r.Frames, r.Aborted, r.Elapsed, r.Stars, r.Stats.Drawn, r.Stats.Culled,
		r.FirstStar.X(), r.FirstStar.Y(), r.FirstStar.Z())
}

// RunHeadless 不打开窗口运行固定帧数
//
// 星空按配置文件生成（不叠加调试面板保存的参数，结果只由配置和种子决定），
// 帧信号由 ticker 产生，渲染器只准备顶点不绘制。
//
// 参数:
//   - frames: 帧数，必须为正
//   - interval: 帧间隔，<= 0 时使用 60 FPS
func RunHeadless(ctx context.Context, cfg Config, frames int, interval time.Duration) (HeadlessReport, error) {
	if frames <= 0 {
		return HeadlessReport{}, fmt.Errorf("frames must be > 0, got %d", frames)
	}
	if interval <= 0 {
		interval = time.Second / 60
	}

	fsys := cfg.Assets
	if fsys == nil {
		fsys = embedded.FS()
	}

	starCfg, err := LoadStarConfig(fsys, cfg.ConfigPath, cfg.Seed)
	if err != nil {
		return HeadlessReport{}, err
	}
	driver, renderer, err := buildHeadless(fsys, starCfg)
	if err != nil {
		return HeadlessReport{}, err
	}

	ticks := make(chan time.Time)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(ticks)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for i := 0; i < frames; i++ {
			select {
			case <-gctx.Done():
				return nil
			case now := <-ticker.C:
				select {
				case ticks <- now:
				case <-gctx.Done():
					return nil
				}
			}
		}
		return nil
	})
	g.Go(func() error {
		return driver.Run(gctx, ticks, renderer)
	})
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	report := HeadlessReport{
		Frames:  driver.Frames(),
		Aborted: driver.Aborted(),
		Elapsed: driver.Elapsed(),
		Stars:   starCfg.Total,
		Stats:   renderer.Stats(),
	}
	if len(driver.Field.Big) > 0 {
		report.FirstStar = driver.Field.Big[0].Pos
	} else if len(driver.Field.Small) > 0 {
		report.FirstStar = driver.Field.Small[0].Pos
	}
	log.Printf("[Headless] %s", report)

	return report, err
}

func buildHeadless(fsys fs.FS, cfg *config.StarConfig) (*starfield.Driver, *render.BatchRenderer, error) {
	assets, err := starfield.LoadStarAssets(fsys, scenes.DefaultModelPath)
	if err != nil {
		return nil, nil, err
	}

	w, h := config.DefaultWindowWidth, config.DefaultWindowHeight
	driver := starfield.Build(cfg, assets, starfield.DriverOptions{
		Camera: starfield.NewCamera(w, h),
	})
	return driver, render.NewBatchRenderer(w, h), nil
}
