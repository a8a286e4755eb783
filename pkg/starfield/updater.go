package starfield

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/starlight/pkg/config"
)

// FrameInput 一帧更新所需的全部外部输入
type FrameInput struct {
	T  float64 // 累计时间（秒）
	DT float64 // 帧间隔（秒）

	// ViewProjection 当前相机的投影 × 视图矩阵，用于悬停判定
	ViewProjection mgl64.Mat4

	// Pointer 归一化指针坐标，范围 [-1,1]，Y 向下为正（与屏幕坐标同向）
	Pointer mgl64.Vec2
}

// Updater 每帧星星更新器
//
// 每帧读取共享配置，因此调试面板的修改在下一帧生效。
type Updater struct {
	cfg *config.StarConfig
}

// NewUpdater 创建更新器
func NewUpdater(cfg *config.StarConfig) *Updater {
	return &Updater{cfg: cfg}
}

// Update 更新两个层级
func (u *Updater) Update(field *Field, batches *Batches, in FrameInput) {
	cfg := u.cfg
	u.UpdateTier(field.Big, batches.Big.Ico, batches.Big.Plane,
		cfg.BigIcoColor.Color, cfg.BigPlaneColor.Color, in)
	u.UpdateTier(field.Small, batches.Small.Ico, batches.Small.Plane,
		cfg.SmallIcoColor.Color, cfg.SmallPlaneColor.Color, in)
}

// UpdateTier 更新一个层级的所有星星并写入两个批次
//
// 每颗星星：
//  1. z 前进 spaceSpeed*dt 并环绕回 [-halfSize, halfSize)
//  2. 投影到 NDC，与指针距离小于 hoverRadius 时目标缩放为 hoverScaleAmp，否则 1
//  3. hoverScale 按每帧固定比例 hoverEase 逼近目标（不按 dt 缩放）
//  4. 两个形状各自按时间旋转，缩放为 scale*hoverScale
//  5. 写入层级颜色
//
// 最后把两个批次标记为脏。
func (u *Updater) UpdateTier(stars []Star, ico, plane *Batch, icoColor, planeColor colorful.Color, in FrameInput) {
	cfg := u.cfg
	half := cfg.HalfSize
	icoAngle := in.T * cfg.IcoSpeed
	planeAngle := in.T * cfg.PlaneSpeed

	for i := range stars {
		s := &stars[i]

		s.Pos[2] = WrapDepth(s.Pos[2]+cfg.SpaceSpeed*in.DT, half)

		ico.SetColorAt(i, icoColor)
		plane.SetColorAt(i, planeColor)

		ndcX, ndcY := ProjectNDC(s.Pos, in.ViewProjection)
		target := HoverTarget(ndcX, ndcY, in.Pointer, cfg.HoverRadius, cfg.HoverScaleAmp)
		s.HoverScale = EaseHover(s.HoverScale, target, cfg.HoverEase)

		finalScale := s.Scale * s.HoverScale
		ico.SetMatrixAt(i, ComposeTransform(s.Pos, icoAngle, finalScale))
		plane.SetMatrixAt(i, ComposeTransform(s.Pos, planeAngle, finalScale))
	}

	ico.MarkDirty()
	plane.MarkDirty()
}

// WrapDepth 把 z 环绕到 [-half, half)
//
// half <= 0（或 NaN）时不做环绕，原样返回，避免除零。
func WrapDepth(z, half float64) float64 {
	depth := half * 2
	if !(depth > 0) {
		return z
	}

	m := math.Mod(z+half, depth)
	m = math.Mod(m+depth, depth)
	return m - half
}

// ProjectNDC 把世界坐标经投影 × 视图矩阵变换到 NDC（含透视除法）
//
// 相机背后的点 w 为负，结果是镜像坐标；w 为 0 时结果为 Inf/NaN，
// 后续距离比较自然为假。
func ProjectNDC(p mgl64.Vec3, viewProj mgl64.Mat4) (x, y float64) {
	v := viewProj.Mul4x1(p.Vec4(1))
	w := v.W()
	return v.X() / w, v.Y() / w
}

// HoverTarget 根据投影坐标与指针的距离返回目标缩放
//
// 投影 Y 向上为正、指针 Y 向下为正，所以比较前翻转投影 Y。
// radius <= 0 时永不触发。
func HoverTarget(ndcX, ndcY float64, pointer mgl64.Vec2, radius, amp float64) float64 {
	dx := ndcX - pointer.X()
	dy := -ndcY - pointer.Y()
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < radius {
		return amp
	}
	return 1.0
}

// EaseHover 一阶低通：current 向 target 移动 ease 比例
func EaseHover(current, target, ease float64) float64 {
	return current + (target-current)*ease
}

// ComposeTransform 组合 平移 × 旋转(XYZ 欧拉角，三轴同角) × 均匀缩放
func ComposeTransform(pos mgl64.Vec3, angle, scale float64) mgl64.Mat4 {
	rotation := mgl64.HomogRotate3DX(angle).
		Mul4(mgl64.HomogRotate3DY(angle)).
		Mul4(mgl64.HomogRotate3DZ(angle))

	return mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(rotation).
		Mul4(mgl64.Scale3D(scale, scale, scale))
}
