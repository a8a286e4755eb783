package starfield

import (
	"github.com/go-gl/mathgl/mgl64"
)

// 默认相机参数：60° 垂直视角，位于 z=100 向 -Z 看
const (
	DefaultFovY    = 60.0
	DefaultNear    = 0.1
	DefaultFar     = 2000.0
	DefaultCameraZ = 100.0
)

// Camera 透视相机
//
// 视口尺寸每帧由驱动器同步，尺寸未变时 SetViewport 不做任何事。
type Camera struct {
	FovY     float64 // 垂直视角（度）
	Near     float64
	Far      float64
	Position mgl64.Vec3

	width, height int
	aspect        float64

	projection mgl64.Mat4
	view       mgl64.Mat4
	viewProj   mgl64.Mat4

	// version 每次矩阵变化时递增，渲染器用它判断缓存的顶点是否失效
	version uint64
}

// NewCamera 创建默认相机
func NewCamera(width, height int) *Camera {
	c := &Camera{
		FovY:     DefaultFovY,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Position: mgl64.Vec3{0, 0, DefaultCameraZ},
		width:    1,
		height:   1,
		aspect:   1,
	}
	if width > 0 && height > 0 {
		c.width, c.height = width, height
		c.aspect = float64(width) / float64(height)
	}
	c.updateMatrices()
	return c
}

// SetViewport 同步视口尺寸
//
// 返回 true 表示宽高比和投影矩阵被重新计算；
// 尺寸未变或非法（<=0）时返回 false，相机保持不变。
func (c *Camera) SetViewport(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == c.width && height == c.height {
		return false
	}

	c.width, c.height = width, height
	c.aspect = float64(width) / float64(height)
	c.updateMatrices()
	return true
}

// updateMatrices 在参数变化后重建投影、视图矩阵
func (c *Camera) updateMatrices() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FovY), c.aspect, c.Near, c.Far)
	c.view = mgl64.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
	c.viewProj = c.projection.Mul4(c.view)
	c.version++
}

// Viewport 返回当前视口尺寸
func (c *Camera) Viewport() (int, int) {
	return c.width, c.height
}

// Aspect 返回宽高比
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// ViewProjection 返回投影 × 视图矩阵
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.viewProj
}

// Version 返回矩阵版本号
func (c *Camera) Version() uint64 {
	return c.version
}

// Project 将世界坐标投影到 NDC
func (c *Camera) Project(p mgl64.Vec3) (x, y float64) {
	return ProjectNDC(p, c.viewProj)
}
