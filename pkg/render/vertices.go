// Package render 用 ebiten 绘制星空实例批次
//
// ebiten 只有 2D 三角形接口，所以三维实例在 CPU 上完成
// 模型 × 视图 × 投影变换，再作为屏幕空间三角形提交。
// 顶点构建与 GPU 无关，可以在无窗口环境下测试。
package render

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/starlight/pkg/starfield"
)

// 单次 DrawTriangles 的顶点上限（索引为 uint16）
const maxChunkVertices = math.MaxUint16

// cullMargin NDC 视锥剔除的余量，星星中心稍出画面时光晕仍可能可见
const cullMargin = 1.25

// Chunk 一次 DrawTriangles 调用的数据
type Chunk struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// InstanceStats 顶点构建统计
type InstanceStats struct {
	Drawn  int // 已提交的实例数
	Culled int // 被近平面或视锥剔除的实例数
}

// Add 累加统计
func (s *InstanceStats) Add(o InstanceStats) {
	s.Drawn += o.Drawn
	s.Culled += o.Culled
}

// Viewport 屏幕尺寸和相机近平面
type Viewport struct {
	Width, Height int
	Near          float64
}

// AppendInstances 把批次的所有实例变换到屏幕空间并追加到 chunks
//
// 每个实例：
//   - 中心点 clip.w 小于近平面，或中心远离视锥时整个实例剔除
//   - 任一顶点落到近平面之后时整个实例剔除（不做三角形裁剪）
//   - 顶点颜色 = 实例颜色 × 材质颜色，alpha 为材质不透明度
//
// src 是贴图中被采样的区域；UV 的 v 轴向上，映射时翻转。
// chunks 中最后一个块会被继续填充，超过顶点上限时开新块。
//
// 返回:
//   - []Chunk: 追加后的块列表
//   - InstanceStats: 本批次的绘制/剔除数量
func AppendInstances(chunks []Chunk, b *starfield.Batch, viewProj mgl64.Mat4, vp Viewport, src image.Rectangle) ([]Chunk, InstanceStats) {
	var stats InstanceStats
	mesh := b.Mesh
	if mesh == nil || len(mesh.Positions) == 0 || len(mesh.Indices) == 0 {
		return chunks, stats
	}
	if len(mesh.Positions) > maxChunkVertices {
		return chunks, stats
	}

	mat := b.Material
	alpha := float32(mat.Opacity)
	w, h := float64(vp.Width), float64(vp.Height)

	srcX, srcY := float64(src.Min.X), float64(src.Min.Y)
	srcW, srcH := float64(src.Dx()), float64(src.Dy())

	// 每个实例的屏幕空间顶点，复用同一块缓冲
	scratch := make([]ebiten.Vertex, len(mesh.Positions))

	for i := 0; i < b.Capacity(); i++ {
		model := b.MatrixAt(i)

		center := viewProj.Mul4x1(model.Col(3))
		if center.W() < vp.Near {
			stats.Culled++
			continue
		}
		if math.Abs(center.X()/center.W()) > cullMargin || math.Abs(center.Y()/center.W()) > cullMargin {
			stats.Culled++
			continue
		}

		mvp := viewProj.Mul4(model)
		c := b.ColorAt(i)
		r := float32(c.R * mat.Color.R)
		g := float32(c.G * mat.Color.G)
		bl := float32(c.B * mat.Color.B)

		visible := true
		for k, p := range mesh.Positions {
			clip := mvp.Mul4x1(p.Vec4(1))
			if clip.W() < vp.Near {
				visible = false
				break
			}
			ndcX, ndcY := clip.X()/clip.W(), clip.Y()/clip.W()

			var u, v float64
			if k < len(mesh.UVs) {
				u, v = float64(mesh.UVs[k][0]), float64(mesh.UVs[k][1])
			}

			scratch[k] = ebiten.Vertex{
				DstX:   float32((ndcX + 1) / 2 * w),
				DstY:   float32((1 - ndcY) / 2 * h),
				SrcX:   float32(srcX + u*srcW),
				SrcY:   float32(srcY + (1-v)*srcH),
				ColorR: r,
				ColorG: g,
				ColorB: bl,
				ColorA: alpha,
			}
		}
		if !visible {
			stats.Culled++
			continue
		}

		if len(chunks) == 0 || len(chunks[len(chunks)-1].Vertices)+len(scratch) > maxChunkVertices {
			chunks = nextChunk(chunks)
		}
		last := &chunks[len(chunks)-1]

		base := uint16(len(last.Vertices))
		last.Vertices = append(last.Vertices, scratch...)
		for _, idx := range mesh.Indices {
			last.Indices = append(last.Indices, base+idx)
		}
		stats.Drawn++
	}

	return chunks, stats
}

// nextChunk 追加一个空块，优先复用底层数组中已有块的缓冲
func nextChunk(chunks []Chunk) []Chunk {
	if len(chunks) < cap(chunks) {
		chunks = chunks[:len(chunks)+1]
		c := &chunks[len(chunks)-1]
		c.Vertices = c.Vertices[:0]
		c.Indices = c.Indices[:0]
		return chunks
	}
	return append(chunks, Chunk{})
}
