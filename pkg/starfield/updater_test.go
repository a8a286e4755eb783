package starfield

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

func TestWrapDepth(t *testing.T) {
	tests := []struct {
		name string
		z    float64
		half float64
		want float64
	}{
		{"inside range", 10, 1000, 10},
		{"past far edge", 999 + 125, 1000, -876},
		{"exactly half wraps to -half", 1000, 1000, -1000},
		{"below -half", -1001, 1000, 999},
		{"several depths away", 5010, 1000, 1010 - 2000},
		{"zero half is identity", 42, 0, 42},
		{"negative half is identity", -7, -3, -7},
		{"NaN half is identity", 3, math.NaN(), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapDepth(tt.z, tt.half)
			if !approx(got, tt.want, eps) {
				t.Errorf("WrapDepth(%v, %v) = %v, want %v", tt.z, tt.half, got, tt.want)
			}
		})
	}
}

// TestWrapDepth_Range 任意输入环绕后都落在 [-half, half)
func TestWrapDepth_Range(t *testing.T) {
	const half = 250.0
	for z := -3000.0; z <= 3000.0; z += 37.3 {
		got := WrapDepth(z, half)
		if got < -half || got >= half {
			t.Fatalf("WrapDepth(%v) = %v outside [-%v, %v)", z, got, half, half)
		}
	}
}

func TestHoverTarget(t *testing.T) {
	tests := []struct {
		name       string
		ndcX, ndcY float64
		pointer    mgl64.Vec2
		radius     float64
		want       float64
	}{
		{"pointer on star", 0, 0, mgl64.Vec2{0, 0}, 0.1, 5},
		{"pointer far away", 0, 0, mgl64.Vec2{0.5, 0.5}, 0.1, 1},
		// 投影 Y 向上，指针 Y 向下：屏幕上方的星星对应负的指针 Y
		{"y axis flipped", 0, 0.5, mgl64.Vec2{0, -0.5}, 0.1, 5},
		{"same sign y misses", 0, 0.5, mgl64.Vec2{0, 0.5}, 0.1, 1},
		{"zero radius never hovers", 0, 0, mgl64.Vec2{0, 0}, 0, 1},
		{"negative radius never hovers", 0, 0, mgl64.Vec2{0, 0}, -1, 1},
		{"on the boundary is outside", 0.1, 0, mgl64.Vec2{0, 0}, 0.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoverTarget(tt.ndcX, tt.ndcY, tt.pointer, tt.radius, 5)
			if got != tt.want {
				t.Errorf("HoverTarget = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestEaseHover_Converges 缓动单调逼近目标且不越过目标
func TestEaseHover_Converges(t *testing.T) {
	tests := []struct {
		name           string
		from, to, ease float64
	}{
		{"grow", 1, 5, 0.12},
		{"shrink", 5, 1, 0.12},
		{"slow", 1, 3, 0.01},
		{"instant", 1, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := tt.from
			for i := 0; i < 3000; i++ {
				next := EaseHover(cur, tt.to, tt.ease)
				if math.Abs(tt.to-next) > math.Abs(tt.to-cur) {
					t.Fatalf("step %d moved away from target: %v -> %v", i, cur, next)
				}
				if (tt.to-cur)*(tt.to-next) < 0 {
					t.Fatalf("step %d overshot target %v: %v -> %v", i, tt.to, cur, next)
				}
				cur = next
			}
			if !approx(cur, tt.to, 1e-6) {
				t.Errorf("did not converge: %v, want %v", cur, tt.to)
			}
		})
	}
}

func TestEaseHover_ZeroEaseHolds(t *testing.T) {
	if got := EaseHover(2, 5, 0); got != 2 {
		t.Errorf("EaseHover with ease 0 = %v, want 2", got)
	}
}

func TestComposeTransform(t *testing.T) {
	pos := mgl64.Vec3{3, -4, 5}

	m := ComposeTransform(pos, 0, 2)
	if got := m.Col(3).Vec3(); !got.ApproxEqualThreshold(pos, eps) {
		t.Errorf("translation = %v, want %v", got, pos)
	}
	if got := m.Mul4x1(mgl64.Vec4{1, 0, 0, 1}).Vec3(); !got.ApproxEqualThreshold(mgl64.Vec3{5, -4, 5}, eps) {
		t.Errorf("scaled x axis = %v, want (5,-4,5)", got)
	}

	// 旋转不改变每个轴的长度
	r := ComposeTransform(pos, 1.234, 3)
	for c := 0; c < 3; c++ {
		if l := r.Col(c).Vec3().Len(); !approx(l, 3, eps) {
			t.Errorf("column %d length = %v, want 3", c, l)
		}
	}
}

func TestUpdateTier_SlotsFollowStars(t *testing.T) {
	cfg := smallConfig(40)
	cfg.SmallRatio = 0.5
	field := Generate(cfg)
	batches := NewBatches(field, testAssets())
	cam := NewCamera(800, 600)
	u := NewUpdater(cfg)

	for frame := 0; frame < 3; frame++ {
		u.Update(field, batches, FrameInput{
			T:              float64(frame) * 0.016,
			DT:             0.016,
			ViewProjection: cam.ViewProjection(),
		})

		for _, tier := range []Tier{TierBig, TierSmall} {
			stars := field.Stars(tier)
			tb := batches.Tier(tier)
			for i, s := range stars {
				for _, b := range []*Batch{tb.Ico, tb.Plane} {
					got := b.MatrixAt(i).Col(3).Vec3()
					if !got.ApproxEqualThreshold(s.Pos, 1e-9) {
						t.Fatalf("frame %d %s slot %d translation = %v, want %v", frame, b.Name, i, got, s.Pos)
					}
				}
			}
		}
	}
}

func TestUpdateTier_ColorsAndDirty(t *testing.T) {
	cfg := smallConfig(10)
	field := Generate(cfg)
	batches := NewBatches(field, testAssets())

	for _, b := range batches.All() {
		if b.Dirty() {
			t.Fatalf("%s dirty before first update", b.Name)
		}
	}

	u := NewUpdater(cfg)
	u.Update(field, batches, FrameInput{ViewProjection: NewCamera(100, 100).ViewProjection()})

	want := map[*Batch]colorful.Color{
		batches.Big.Ico:     cfg.BigIcoColor.Color,
		batches.Big.Plane:   cfg.BigPlaneColor.Color,
		batches.Small.Ico:   cfg.SmallIcoColor.Color,
		batches.Small.Plane: cfg.SmallPlaneColor.Color,
	}
	for b, c := range want {
		if !b.MatricesDirty() || !b.ColorsDirty() {
			t.Errorf("%s not marked dirty", b.Name)
		}
		for i := 0; i < b.Capacity(); i++ {
			if b.ColorAt(i) != c {
				t.Fatalf("%s slot %d color = %v, want %v", b.Name, i, b.ColorAt(i).Hex(), c.Hex())
			}
		}
	}

	// 颜色修改下一帧生效
	cfg.BigIcoColor.Color = colorful.Color{R: 1}
	u.Update(field, batches, FrameInput{ViewProjection: NewCamera(100, 100).ViewProjection()})
	if got := batches.Big.Ico.ColorAt(0); got != (colorful.Color{R: 1}) {
		t.Errorf("live color edit not applied: %v", got)
	}
}

func TestUpdateTier_DepthWrap(t *testing.T) {
	cfg := smallConfig(1)
	cfg.SmallRatio = 0
	cfg.SpaceSpeed = 125
	cfg.HalfSize = 1000

	field := Generate(cfg)
	field.Big[0].Pos = mgl64.Vec3{0, 0, 999}
	batches := NewBatches(field, testAssets())

	NewUpdater(cfg).Update(field, batches, FrameInput{T: 1, DT: 1, ViewProjection: NewCamera(100, 100).ViewProjection()})

	if got := field.Big[0].Pos.Z(); !approx(got, -876, eps) {
		t.Errorf("z = %v, want -876", got)
	}
}

func TestUpdateTier_Hover(t *testing.T) {
	cfg := smallConfig(2)
	cfg.SmallRatio = 0
	cfg.SpaceSpeed = 0

	field := Generate(cfg)
	field.Big[0].Pos = mgl64.Vec3{0, 0, 0} // 投影到屏幕中心
	field.Big[1].Pos = mgl64.Vec3{600, 0, 0}
	batches := NewBatches(field, testAssets())
	vp := NewCamera(1280, 720).ViewProjection()

	u := NewUpdater(cfg)
	u.Update(field, batches, FrameInput{ViewProjection: vp, Pointer: mgl64.Vec2{0, 0}})

	wantFirst := 1 + (cfg.HoverScaleAmp-1)*cfg.HoverEase
	if got := field.Big[0].HoverScale; !approx(got, wantFirst, eps) {
		t.Errorf("hovered star scale after one frame = %v, want %v", got, wantFirst)
	}
	if got := field.Big[1].HoverScale; got != 1 {
		t.Errorf("off-screen star scale = %v, want 1", got)
	}

	for i := 0; i < 500; i++ {
		u.Update(field, batches, FrameInput{ViewProjection: vp, Pointer: mgl64.Vec2{0, 0}})
	}
	if got := field.Big[0].HoverScale; !approx(got, cfg.HoverScaleAmp, 1e-6) {
		t.Errorf("hovered star did not reach amp: %v", got)
	}

	// 指针移开后回落到 1
	for i := 0; i < 500; i++ {
		u.Update(field, batches, FrameInput{ViewProjection: vp, Pointer: mgl64.Vec2{0.9, 0.9}})
	}
	if got := field.Big[0].HoverScale; !approx(got, 1, 1e-6) {
		t.Errorf("star did not relax to 1: %v", got)
	}

	// 最终缩放写入矩阵
	m := batches.Big.Ico.MatrixAt(0)
	wantLen := field.Big[0].Scale * field.Big[0].HoverScale
	if l := m.Col(0).Vec3().Len(); !approx(l, wantLen, 1e-9) {
		t.Errorf("matrix scale = %v, want %v", l, wantLen)
	}
}
