package starfield

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCamera_SetViewport(t *testing.T) {
	cam := NewCamera(1280, 720)
	v0 := cam.Version()

	if cam.SetViewport(1280, 720) {
		t.Error("same size reported as changed")
	}
	if cam.Version() != v0 {
		t.Errorf("version changed on no-op resize: %d -> %d", v0, cam.Version())
	}

	if !cam.SetViewport(800, 800) {
		t.Fatal("resize not applied")
	}
	if cam.Aspect() != 1 {
		t.Errorf("aspect = %v, want 1", cam.Aspect())
	}
	v1 := cam.Version()
	if v1 == v0 {
		t.Error("version not bumped on resize")
	}

	// 重复同一尺寸只生效一次
	if cam.SetViewport(800, 800) || cam.Version() != v1 {
		t.Error("second identical resize was not a no-op")
	}

	for _, size := range [][2]int{{0, 100}, {100, 0}, {-1, -1}} {
		if cam.SetViewport(size[0], size[1]) {
			t.Errorf("invalid size %v accepted", size)
		}
	}
	if w, h := cam.Viewport(); w != 800 || h != 800 {
		t.Errorf("viewport = %dx%d after invalid resizes, want 800x800", w, h)
	}
}

func TestCamera_InvalidInitialSize(t *testing.T) {
	cam := NewCamera(0, 0)
	if cam.Aspect() != 1 {
		t.Errorf("aspect = %v, want 1", cam.Aspect())
	}
	if !cam.SetViewport(640, 480) {
		t.Error("first valid resize should apply")
	}
}

func TestCamera_Project(t *testing.T) {
	cam := NewCamera(1000, 1000)

	tests := []struct {
		name   string
		p      mgl64.Vec3
		checkX func(float64) bool
		checkY func(float64) bool
	}{
		{
			name:   "origin at screen center",
			p:      mgl64.Vec3{0, 0, 0},
			checkX: func(x float64) bool { return approx(x, 0, eps) },
			checkY: func(y float64) bool { return approx(y, 0, eps) },
		},
		{
			name:   "right and up",
			p:      mgl64.Vec3{10, 10, 0},
			checkX: func(x float64) bool { return x > 0 },
			checkY: func(y float64) bool { return y > 0 },
		},
		{
			// 距离 100、60° 视角时，y=100*tan(30°) 恰好在画面上沿
			name:   "top edge of frustum",
			p:      mgl64.Vec3{0, 57.735026918962575, 0},
			checkX: func(x float64) bool { return approx(x, 0, eps) },
			checkY: func(y float64) bool { return approx(y, 1, 1e-9) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := cam.Project(tt.p)
			if !tt.checkX(x) || !tt.checkY(y) {
				t.Errorf("Project(%v) = (%v, %v)", tt.p, x, y)
			}
		})
	}
}
