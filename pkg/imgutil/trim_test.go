package imgutil

import (
	"image"
	"image/color"
	"testing"
)

// newSprite 创建 w×h 的透明图片，并在 rect 内填充不透明像素
func newSprite(w, h int, rect image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 128, B: 0, A: 255})
		}
	}
	return img
}

func TestOpaqueBounds(t *testing.T) {
	img := newSprite(10, 8, image.Rect(2, 3, 7, 5))
	got, ok := OpaqueBounds(img)
	if !ok {
		t.Fatal("expected opaque pixels")
	}
	if want := image.Rect(2, 3, 7, 5); got != want {
		t.Errorf("OpaqueBounds = %v, want %v", got, want)
	}
}

func TestOpaqueBounds_FullyTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if _, ok := OpaqueBounds(img); ok {
		t.Error("fully transparent image should report no bounds")
	}
	if TrimTransparent(img, 0, 0) != nil {
		t.Error("TrimTransparent of transparent image should be nil")
	}
}

// TestOpaqueBounds_GenericImage 非 NRGBA/RGBA 图片走通用路径
func TestOpaqueBounds_GenericImage(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 6, 6))
	img.SetAlpha(4, 1, color.Alpha{A: 1})
	got, ok := OpaqueBounds(img)
	if !ok || got != image.Rect(4, 1, 5, 2) {
		t.Errorf("OpaqueBounds = %v, %v", got, ok)
	}
}

func TestOpaqueBounds_OffsetImage(t *testing.T) {
	img := newSprite(20, 20, image.Rect(5, 5, 10, 10))
	sub := img.SubImage(image.Rect(4, 4, 20, 20))
	got, ok := OpaqueBounds(sub)
	if !ok || got != image.Rect(5, 5, 10, 10) {
		t.Errorf("OpaqueBounds(sub) = %v, %v", got, ok)
	}
}

func TestTrimTransparent_CropOnly(t *testing.T) {
	img := newSprite(10, 10, image.Rect(1, 2, 5, 9))
	out := TrimTransparent(img, 0, 0)
	if out == nil {
		t.Fatal("expected trimmed image")
	}
	if out.Bounds() != image.Rect(0, 0, 4, 7) {
		t.Errorf("trimmed bounds = %v, want 4x7", out.Bounds())
	}
	if a := out.NRGBAAt(0, 0).A; a != 255 {
		t.Errorf("corner alpha after trim = %d, want 255", a)
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h, tw, th int
		wantW, wantH int
	}{
		{"no target", 40, 20, 0, 0, 40, 20},
		{"width only", 40, 20, 10, 0, 10, 5},
		{"height only", 40, 20, 0, 10, 20, 10},
		{"box limited by width", 40, 20, 20, 20, 20, 10},
		{"box limited by height", 20, 40, 20, 20, 10, 20},
		{"upscale", 10, 10, 64, 64, 64, 64},
		{"min one pixel", 1000, 1, 10, 10, 10, 1},
		{"empty source", 0, 5, 10, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.w, tt.h, tt.tw, tt.th)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitSize(%d,%d,%d,%d) = (%d,%d), want (%d,%d)",
					tt.w, tt.h, tt.tw, tt.th, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

// TestTrimTransparent_Resize 裁剪后等比缩放进目标框
func TestTrimTransparent_Resize(t *testing.T) {
	img := newSprite(100, 100, image.Rect(10, 30, 90, 70)) // 80x40
	out := TrimTransparent(img, 64, 64)
	if out == nil {
		t.Fatal("expected resized image")
	}
	if out.Bounds().Dx() != 64 || out.Bounds().Dy() != 32 {
		t.Errorf("resized bounds = %v, want 64x32", out.Bounds())
	}
	if c := out.NRGBAAt(32, 16); c.A == 0 {
		t.Errorf("center pixel should be opaque, got %+v", c)
	}
}
