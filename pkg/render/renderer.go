package render

import (
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/starlight/pkg/starfield"
)

// additiveBlend 加法混合，星星颜色叠加发光
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// whiteRect 纯色绘制时采样的白色区域（3x3 图片的中心像素）
var whiteRect = image.Rect(1, 1, 2, 2)

// batchCache 一个批次已构建的屏幕空间顶点
type batchCache struct {
	chunks        []Chunk
	stats         InstanceStats
	cameraVersion uint64
	width, height int
	built         bool
}

// BatchRenderer 实例批次渲染器
//
// Prepare 相当于把实例数据“上传”：只在批次脏、相机矩阵变化或屏幕尺寸变化时
// 重建顶点，然后清除批次的脏标记。Draw 只提交缓存的顶点。
//
// Prepare 不创建任何 ebiten 图片，因此也可以作为无窗口模式的 FrameSink。
type BatchRenderer struct {
	caches   map[*starfield.Batch]*batchCache
	textures map[image.Image]*ebiten.Image

	white *ebiten.Image

	width, height int
	stats         InstanceStats
	drawCalls     int
	rebuilds      uint64
}

// NewBatchRenderer 创建渲染器
//
// 参数:
//   - width, height: 初始屏幕尺寸，之后由 Resize 同步
func NewBatchRenderer(width, height int) *BatchRenderer {
	return &BatchRenderer{
		caches:   make(map[*starfield.Batch]*batchCache),
		textures: make(map[image.Image]*ebiten.Image),
		width:    width,
		height:   height,
	}
}

// Resize 同步屏幕尺寸
func (r *BatchRenderer) Resize(width, height int) {
	if width > 0 && height > 0 {
		r.width, r.height = width, height
	}
}

// Prepare 按需重建所有批次的顶点
func (r *BatchRenderer) Prepare(batches *starfield.Batches, cam *starfield.Camera) {
	r.stats = InstanceStats{}
	vp := Viewport{Width: r.width, Height: r.height, Near: cam.Near}

	for _, b := range batches.All() {
		cache := r.caches[b]
		if cache == nil {
			cache = &batchCache{}
			r.caches[b] = cache
		}

		stale := !cache.built || b.Dirty() ||
			cache.cameraVersion != cam.Version() ||
			cache.width != r.width || cache.height != r.height
		if stale {
			cache.chunks, cache.stats = AppendInstances(cache.chunks[:0], b, cam.ViewProjection(), vp, sourceRect(b.Material))
			cache.cameraVersion = cam.Version()
			cache.width, cache.height = r.width, r.height
			cache.built = true
			b.ClearDirty()
			r.rebuilds++
		}

		r.stats.Add(cache.stats)
	}
}

// Present 实现 starfield.FrameSink
func (r *BatchRenderer) Present(batches *starfield.Batches, cam *starfield.Camera) error {
	w, h := cam.Viewport()
	r.Resize(w, h)
	r.Prepare(batches, cam)
	return nil
}

// Draw 把四个批次绘制到 screen
//
// 绘制顺序为 big-ico、big-plane、small-ico、small-plane。
// 加法混合与顺序无关，因此不做深度排序。
func (r *BatchRenderer) Draw(screen *ebiten.Image, batches *starfield.Batches) {
	r.drawCalls = 0
	for _, b := range batches.All() {
		cache := r.caches[b]
		if cache == nil {
			continue
		}

		img := r.imageFor(b.Material)
		op := &ebiten.DrawTrianglesOptions{}
		op.AntiAlias = true
		if b.Material.Additive {
			op.Blend = additiveBlend
		}

		for _, chunk := range cache.chunks {
			if len(chunk.Indices) == 0 {
				continue
			}
			screen.DrawTriangles(chunk.Vertices, chunk.Indices, img, op)
			r.drawCalls++
		}
	}
}

// Stats 返回最近一次 Prepare 的实例统计
func (r *BatchRenderer) Stats() InstanceStats {
	return r.stats
}

// DrawCalls 返回最近一次 Draw 的 DrawTriangles 调用次数
func (r *BatchRenderer) DrawCalls() int {
	return r.drawCalls
}

// Rebuilds 返回累计的顶点重建次数
func (r *BatchRenderer) Rebuilds() uint64 {
	return r.rebuilds
}

// imageFor 返回材质对应的 GPU 图片（首次使用时创建）
func (r *BatchRenderer) imageFor(mat starfield.Material) *ebiten.Image {
	if mat.Texture == nil {
		if r.white == nil {
			white := ebiten.NewImage(3, 3)
			white.Fill(color.White)
			r.white = white.SubImage(whiteRect).(*ebiten.Image)
		}
		return r.white
	}

	img, ok := r.textures[mat.Texture]
	if !ok {
		img = ebiten.NewImageFromImage(mat.Texture)
		r.textures[mat.Texture] = img
		b := mat.Texture.Bounds()
		log.Printf("[Render] Uploaded texture %s (%dx%d)", mat.Name, b.Dx(), b.Dy())
	}
	return img
}

// sourceRect 返回材质贴图的采样区域
//
// NewImageFromImage 创建的图片左上角总在 (0,0)，与源图边界无关。
func sourceRect(mat starfield.Material) image.Rectangle {
	if mat.Texture == nil {
		return whiteRect
	}
	b := mat.Texture.Bounds()
	return image.Rect(0, 0, b.Dx(), b.Dy())
}
