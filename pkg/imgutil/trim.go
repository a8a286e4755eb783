// Package imgutil 提供图片裁剪与缩放工具
package imgutil

import (
	"image"

	"golang.org/x/image/draw"
)

// OpaqueBounds 返回所有 alpha > 0 像素的最小包围盒
//
// 返回:
//   - image.Rectangle: 包围盒（与 img.Bounds() 同一坐标系）
//   - bool: 图片完全透明时返回 false
func OpaqueBounds(img image.Image) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	opaque := alphaFunc(img)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !opaque(x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}

	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// alphaFunc 返回判断像素是否非透明的函数，常见格式走快速路径
func alphaFunc(img image.Image) func(x, y int) bool {
	switch m := img.(type) {
	case *image.NRGBA:
		return func(x, y int) bool { return m.Pix[m.PixOffset(x, y)+3] > 0 }
	case *image.RGBA:
		return func(x, y int) bool { return m.Pix[m.PixOffset(x, y)+3] > 0 }
	}
	return func(x, y int) bool {
		_, _, _, a := img.At(x, y).RGBA()
		return a > 0
	}
}

// FitSize 计算保持宽高比的输出尺寸
//
// 规则：
//   - 只给出宽度：高度 = round(宽度 / 宽高比)
//   - 只给出高度：宽度 = round(高度 * 宽高比)
//   - 同时给出：按 min(tw/w, th/h) 等比缩放到框内，每边至少 1 像素
//   - 都为 0：返回原尺寸
func FitSize(w, h, targetW, targetH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}

	aspect := float64(w) / float64(h)
	switch {
	case targetW <= 0 && targetH <= 0:
		return w, h
	case targetW > 0 && targetH <= 0:
		return targetW, maxInt(1, roundInt(float64(targetW)/aspect))
	case targetW <= 0 && targetH > 0:
		return maxInt(1, roundInt(float64(targetH)*aspect)), targetH
	}

	scale := float64(targetW) / float64(w)
	if s := float64(targetH) / float64(h); s < scale {
		scale = s
	}
	return maxInt(1, roundInt(float64(w)*scale)), maxInt(1, roundInt(float64(h)*scale))
}

// TrimTransparent 裁掉四周完全透明的像素，并可选地等比缩放到目标尺寸
//
// 参数:
//   - img: 源图片
//   - targetW, targetH: 目标尺寸，0 表示不限制该边；两者都为 0 时只裁剪不缩放
//
// 返回:
//   - *image.NRGBA: 结果图片，原点为 (0,0)；源图片完全透明时返回 nil
func TrimTransparent(img image.Image, targetW, targetH int) *image.NRGBA {
	bounds, ok := OpaqueBounds(img)
	if !ok {
		return nil
	}

	trimmed := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(trimmed, image.Point{}, img, bounds, draw.Src, nil)

	if targetW <= 0 && targetH <= 0 {
		return trimmed
	}

	outW, outH := FitSize(bounds.Dx(), bounds.Dy(), targetW, targetH)
	if outW == bounds.Dx() && outH == bounds.Dy() {
		return trimmed
	}

	out := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	draw.CatmullRom.Scale(out, out.Bounds(), trimmed, trimmed.Bounds(), draw.Src, nil)
	return out
}

func roundInt(f float64) int {
	// 与 Math.round 一致：.5 向正无穷取整
	return int(f + 0.5)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
