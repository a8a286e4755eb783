package objmodel

import (
	"os"
	"strings"
	"testing"
)

const quadOBJ = `
# two objects sharing the global vertex list
mtllib test.mtl
o Tri
v 0 0 0
v 1 0 0
v 0 1 0
usemtl Red
f 1 2 3
o Quad
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
usemtl Blue
f 4/1 5/2 6/3 7/4
`

func TestParseOBJ_Objects(t *testing.T) {
	model, err := ParseOBJ([]byte(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ() error: %v", err)
	}

	if len(model.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(model.Objects))
	}
	if len(model.MaterialLibs) != 1 || model.MaterialLibs[0] != "test.mtl" {
		t.Errorf("MaterialLibs: got %v", model.MaterialLibs)
	}

	tri := model.Object("Tri")
	if tri == nil {
		t.Fatal("object Tri not found")
	}
	if tri.Material != "Red" {
		t.Errorf("Tri material: got %q, want Red", tri.Material)
	}
	if tri.TriangleCount() != 1 || len(tri.Positions) != 3 {
		t.Errorf("Tri: %d triangles, %d positions", tri.TriangleCount(), len(tri.Positions))
	}

	quad := model.Object("Quad")
	if quad == nil {
		t.Fatal("object Quad not found")
	}
	if quad.Material != "Blue" {
		t.Errorf("Quad material: got %q, want Blue", quad.Material)
	}
	// 四边形扇形三角化为 2 个三角形，局部顶点重新编号为 0..3
	if quad.TriangleCount() != 2 {
		t.Errorf("Quad triangles: got %d, want 2", quad.TriangleCount())
	}
	want := []int{0, 1, 2, 0, 2, 3}
	for i, idx := range want {
		if quad.Indices[i] != idx {
			t.Errorf("Quad index %d: got %d, want %d", i, quad.Indices[i], idx)
		}
	}
	if quad.Positions[0] != [3]float64{0, 0, 1} {
		t.Errorf("Quad first position: got %v", quad.Positions[0])
	}
	if quad.UVs[2] != [2]float64{1, 1} {
		t.Errorf("Quad third uv: got %v", quad.UVs[2])
	}
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	model, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ() error: %v", err)
	}
	obj := model.Objects[0]
	if obj.Positions[2] != [3]float64{0, 1, 0} {
		t.Errorf("negative index resolved wrong: %v", obj.Positions)
	}
}

func TestParseOBJ_SharedVerticesAreReused(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3\nf 2 4 3\n"
	model, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ() error: %v", err)
	}
	if got := len(model.Objects[0].Positions); got != 4 {
		t.Errorf("expected 4 unique vertices, got %d", got)
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		errContains string
	}{
		{"no faces", "v 0 0 0\n", "no faces"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", "out of range"},
		{"bad number", "v 0 x 0\n", "invalid number"},
		{"short face", "v 0 0 0\nf 1 1\n", "at least 3"},
		{"short vertex", "v 0 0\n", "expected 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.src))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errContains)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

// TestParseOBJ_StarModel 内置星星模型：一个二十面体和一个带 UV 的平面
func TestParseOBJ_StarModel(t *testing.T) {
	data, err := os.ReadFile("../../assets/models/star.obj")
	if err != nil {
		t.Fatalf("failed to read star.obj: %v", err)
	}

	model, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ(star.obj) error: %v", err)
	}

	ico := model.Object("IcoSphere")
	if ico == nil {
		t.Fatal("IcoSphere not found")
	}
	if len(ico.Positions) != 12 || ico.TriangleCount() != 20 {
		t.Errorf("IcoSphere: %d vertices, %d triangles; want 12, 20", len(ico.Positions), ico.TriangleCount())
	}

	plane := model.Object("Plane")
	if plane == nil {
		t.Fatal("Plane not found")
	}
	if plane.TriangleCount() != 2 || plane.Material != "StarGlow" {
		t.Errorf("Plane: %d triangles, material %q", plane.TriangleCount(), plane.Material)
	}
}
