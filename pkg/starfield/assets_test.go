package starfield

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLoadStarAssets_RealModel(t *testing.T) {
	assets, err := LoadStarAssets(os.DirFS("../.."), "assets/models/star.obj")
	if err != nil {
		t.Fatalf("LoadStarAssets failed: %v", err)
	}

	if assets.Ico.Name != IcoMeshName {
		t.Errorf("ico mesh name = %q", assets.Ico.Name)
	}
	if len(assets.Ico.Positions) != 12 || len(assets.Ico.Indices) != 60 {
		t.Errorf("ico: %d vertices, %d indices; want 12, 60", len(assets.Ico.Positions), len(assets.Ico.Indices))
	}
	if len(assets.Plane.Positions) != 4 || len(assets.Plane.Indices) != 6 {
		t.Errorf("plane: %d vertices, %d indices; want 4, 6", len(assets.Plane.Positions), len(assets.Plane.Indices))
	}

	// 两个几何体都以包围盒中心为原点
	for _, m := range []*Mesh{assets.Ico, assets.Plane} {
		min, max := m.Bounds()
		if center := min.Add(max).Mul(0.5); !center.ApproxEqualThreshold(mgl64.Vec3{}, 1e-9) {
			t.Errorf("%s not centered: center=%v", m.Name, center)
		}
	}

	if assets.IcoMaterial.Texture != nil {
		t.Error("ico material should have no texture")
	}
	if !approx(assets.IcoMaterial.Color.R, 0.8, 1e-9) {
		t.Errorf("ico diffuse = %v, want 0.8", assets.IcoMaterial.Color.R)
	}

	tex := assets.PlaneMaterial.Texture
	if tex == nil {
		t.Fatal("plane material has no texture")
	}
	b := tex.Bounds()
	if b.Dx() >= 96 || b.Dy() >= 96 || b.Dx() == 0 {
		t.Errorf("glow texture not trimmed: %v", b)
	}

	for _, m := range []Material{assets.IcoMaterial, assets.PlaneMaterial} {
		if !m.Additive || !m.DoubleSided {
			t.Errorf("material %s should be additive and double sided", m.Name)
		}
	}
}

func TestStarAssets_TierMaterials(t *testing.T) {
	assets := testAssets()
	assets.PlaneMaterial.Opacity = 1

	bigIco, bigPlane, smallIco, smallPlane := assets.TierMaterials()

	if bigPlane.Opacity != BigPlaneOpacity || smallPlane.Opacity != SmallPlaneOpacity {
		t.Errorf("plane opacities = %v/%v", bigPlane.Opacity, smallPlane.Opacity)
	}
	if !bigPlane.Transparent || !smallPlane.Transparent {
		t.Error("plane materials must be transparent")
	}
	for _, m := range []Material{bigIco, bigPlane, smallIco, smallPlane} {
		if m.Color.R != 1 || m.Color.G != 1 || m.Color.B != 1 {
			t.Errorf("tier material %s color = %v, want white", m.Name, m.Color)
		}
	}
	if assets.PlaneMaterial.Opacity != 1 {
		t.Error("TierMaterials modified the source material")
	}
}

func TestLoadStarAssets_Errors(t *testing.T) {
	const ico = "o IcoSphere\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	const plane = "o Plane\nv 0 0 1\nv 1 0 1\nv 0 1 1\nf 4 5 6\n"
	const lonePlane = "o Plane\nv 0 0 1\nv 1 0 1\nv 0 1 1\nf 1 2 3\n"

	tests := []struct {
		name    string
		files   fstest.MapFS
		wantErr string
	}{
		{
			name:    "missing model",
			files:   fstest.MapFS{},
			wantErr: "failed to read star model",
		},
		{
			name:    "no ico object",
			files:   fstest.MapFS{"m/star.obj": {Data: []byte(lonePlane)}},
			wantErr: "has no IcoSphere object",
		},
		{
			name:    "no plane object",
			files:   fstest.MapFS{"m/star.obj": {Data: []byte(ico)}},
			wantErr: "has no plane object",
		},
		{
			name:    "missing mtllib",
			files:   fstest.MapFS{"m/star.obj": {Data: []byte("mtllib nope.mtl\n" + ico + plane)}},
			wantErr: "failed to read star materials",
		},
		{
			name: "missing texture",
			files: fstest.MapFS{
				"m/star.obj": {Data: []byte("mtllib s.mtl\n" + ico + "usemtl Glow\n" + plane)},
				"m/s.mtl":    {Data: []byte("newmtl Glow\nmap_Kd glow.png\n")},
			},
			wantErr: "failed to open texture",
		},
		{
			name:    "empty model",
			files:   fstest.MapFS{"m/star.obj": {Data: []byte("# nothing\n")}},
			wantErr: "failed to parse star model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStarAssets(tt.files, "m/star.obj")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadStarAssets_MinimalModel(t *testing.T) {
	files := fstest.MapFS{
		"star.obj": {Data: []byte("o IcoSphere\nv 2 2 2\nv 4 2 2\nv 2 4 2\nf 1 2 3\no Glow\nv 0 0 0\nv 2 0 0\nv 0 2 0\nf 4 5 6\n")},
	}

	assets, err := LoadStarAssets(files, "star.obj")
	if err != nil {
		t.Fatalf("LoadStarAssets failed: %v", err)
	}
	if assets.Plane.Name != "Glow" {
		t.Errorf("plane mesh = %q, want Glow", assets.Plane.Name)
	}
	if assets.PlaneMaterial.Texture != nil || assets.PlaneMaterial.Opacity != 1 {
		t.Errorf("default material = %+v", assets.PlaneMaterial)
	}
	if min, _ := assets.Ico.Bounds(); !min.ApproxEqualThreshold(mgl64.Vec3{-1, -1, 0}, 1e-9) {
		t.Errorf("ico min after centering = %v, want (-1,-1,0)", min)
	}
}
