package starfield

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/starlight/pkg/config"
)

// PointerInput 提供归一化指针坐标（[-1,1]，Y 向下为正）
type PointerInput interface {
	Pointer() mgl64.Vec2
}

// PointerFunc 函数适配器
type PointerFunc func() mgl64.Vec2

// Pointer 实现 PointerInput
func (f PointerFunc) Pointer() mgl64.Vec2 { return f() }

// FixedPointer 固定位置的指针（无窗口运行和测试用）
type FixedPointer mgl64.Vec2

// Pointer 实现 PointerInput
func (p FixedPointer) Pointer() mgl64.Vec2 { return mgl64.Vec2(p) }

// ViewportFunc 返回当前视口尺寸
type ViewportFunc func() (width, height int)

// FrameSink 接收每帧更新后的批次（无窗口模式下代替 GPU 绘制）
type FrameSink interface {
	Present(batches *Batches, camera *Camera) error
}

// DriverOptions 驱动器依赖
type DriverOptions struct {
	Config   *config.StarConfig
	Field    *Field
	Batches  *Batches
	Camera   *Camera
	Pointer  PointerInput
	Viewport ViewportFunc
}

// Driver 渲染循环驱动器
//
// 每次 Tick：同步视口和相机 → 累加时间 → 更新两个层级。
// 帧由外部触发（ebiten 的 Update 或 Run 的帧通道），驱动器自身不计时。
type Driver struct {
	Field   *Field
	Batches *Batches
	Camera  *Camera

	updater  *Updater
	pointer  PointerInput
	viewport ViewportFunc

	elapsed float64
	frames  uint64
	aborted uint64
}

// NewDriver 创建驱动器
//
// Pointer 为 nil 时指针固定在屏幕中心；Viewport 为 nil 时视口保持相机当前尺寸。
func NewDriver(opts DriverOptions) *Driver {
	pointer := opts.Pointer
	if pointer == nil {
		pointer = FixedPointer{}
	}

	camera := opts.Camera
	if camera == nil {
		camera = NewCamera(config.DefaultWindowWidth, config.DefaultWindowHeight)
	}

	return &Driver{
		Field:    opts.Field,
		Batches:  opts.Batches,
		Camera:   camera,
		updater:  NewUpdater(opts.Config),
		pointer:  pointer,
		viewport: opts.Viewport,
	}
}

// Build 生成星空并创建批次和驱动器
//
// opts 中的 Config、Field、Batches 会被覆盖；生成结果的前几颗星星写入日志。
func Build(cfg *config.StarConfig, assets *StarAssets, opts DriverOptions) *Driver {
	field := Generate(cfg)
	field.LogSummary(3)

	opts.Config = cfg
	opts.Field = field
	opts.Batches = NewBatches(field, assets)
	return NewDriver(opts)
}

// Tick 推进一帧
//
// dt 为负数或非有限值时按 0 处理。更新过程中的 panic 只会中止本帧，
// 以错误形式返回，驱动器状态保持可用。
func (d *Driver) Tick(dt float64) (err error) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}

	defer func() {
		if r := recover(); r != nil {
			d.aborted++
			err = fmt.Errorf("frame %d aborted: %v", d.frames, r)
		}
	}()

	if d.viewport != nil {
		w, h := d.viewport()
		d.Camera.SetViewport(w, h)
	}

	d.elapsed += dt

	d.updater.Update(d.Field, d.Batches, FrameInput{
		T:              d.elapsed,
		DT:             dt,
		ViewProjection: d.Camera.ViewProjection(),
		Pointer:        d.pointer.Pointer(),
	})

	d.frames++
	return nil
}

// Elapsed 返回累计时间（秒）
func (d *Driver) Elapsed() float64 {
	return d.elapsed
}

// Frames 返回成功完成的帧数
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Aborted 返回被中止的帧数
func (d *Driver) Aborted() uint64 {
	return d.aborted
}

// Run 由外部帧信号驱动循环，直到 ctx 取消或 frames 通道关闭
//
// 帧间隔取相邻两次信号携带的时间差，第一帧 dt 为 0。
// 单帧失败只记录日志，循环继续；sink 为 nil 时只更新不输出。
//
// 返回:
//   - error: ctx 取消时返回 ctx.Err()，通道关闭时返回 nil
func (d *Driver) Run(ctx context.Context, frames <-chan time.Time, sink FrameSink) error {
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-frames:
			if !ok {
				return nil
			}

			dt := 0.0
			if !last.IsZero() {
				dt = now.Sub(last).Seconds()
			}
			last = now

			if err := d.Tick(dt); err != nil {
				log.Printf("[Driver] %v", err)
				continue
			}

			if sink != nil {
				if err := sink.Present(d.Batches, d.Camera); err != nil {
					log.Printf("[Driver] Present failed: %v", err)
				}
			}
		}
	}
}

// Clock 帧间隔计时器
//
// 第一次调用 Delta 返回自创建以来的时间。
type Clock struct {
	now  func() time.Time
	last time.Time
}

// NewClock 创建使用系统时间的计时器
func NewClock() *Clock {
	return NewClockWith(time.Now)
}

// NewClockWith 创建使用自定义时间源的计时器（测试用）
func NewClockWith(now func() time.Time) *Clock {
	return &Clock{now: now, last: now()}
}

// Delta 返回距上次调用的秒数
func (c *Clock) Delta() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	return dt
}
