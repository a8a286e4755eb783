package starfield

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/starlight/pkg/config"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// testMesh 单个三角形，足以验证批次和渲染输入
func testMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Positions: []mgl64.Vec3{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}},
		UVs:       [][2]float32{{0, 0}, {1, 0}, {0.5, 1}},
		Indices:   []uint16{0, 1, 2},
	}
}

func testAssets() *StarAssets {
	return &StarAssets{
		Ico:           testMesh(IcoMeshName),
		Plane:         testMesh("Plane"),
		IcoMaterial:   Material{Name: "core", Opacity: 1, Additive: true},
		PlaneMaterial: Material{Name: "glow", Opacity: 1, Additive: true},
	}
}

// smallConfig 少量星星的配置，便于逐颗检查
func smallConfig(total int) *config.StarConfig {
	cfg := config.DefaultStarConfig()
	cfg.Total = total
	return cfg
}

func newTestDriver(t *testing.T, cfg *config.StarConfig) *Driver {
	t.Helper()
	field := Generate(cfg)
	return NewDriver(DriverOptions{
		Config:  cfg,
		Field:   field,
		Batches: NewBatches(field, testAssets()),
		Camera:  NewCamera(1280, 720),
	})
}

func nan() float64    { return math.NaN() }
func posInf() float64 { return math.Inf(1) }
