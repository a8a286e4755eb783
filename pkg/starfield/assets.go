package starfield

import (
	"fmt"
	"image"
	_ "image/png" // 光晕贴图为 PNG
	"io/fs"
	"log"
	"math"
	"path"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/starlight/internal/objmodel"
	"github.com/decker502/starlight/pkg/imgutil"
)

// 模型中二十面体对象的名称，其它对象视为平面
const IcoMeshName = "IcoSphere"

// 平面材质在两个层级上的不透明度
const (
	BigPlaneOpacity   = 0.85
	SmallPlaneOpacity = 0.65
)

// Mesh 三角网格
type Mesh struct {
	Name      string
	Positions []mgl64.Vec3
	UVs       [][2]float32
	Indices   []uint16
}

// Bounds 返回轴对齐包围盒
func (m *Mesh) Bounds() (min, max mgl64.Vec3) {
	if len(m.Positions) == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}
	}

	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			min[k] = math.Min(min[k], p[k])
			max[k] = math.Max(max[k], p[k])
		}
	}
	return min, max
}

// Center 把几何体平移到以包围盒中心为原点
func (m *Mesh) Center() {
	min, max := m.Bounds()
	offset := min.Add(max).Mul(0.5)
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Sub(offset)
	}
}

// Material 实例批次的材质
//
// 星星使用加法混合、双面、不写深度；Texture 为 nil 时按纯色绘制。
type Material struct {
	Name        string
	Color       colorful.Color
	Opacity     float64
	Transparent bool
	Additive    bool
	DoubleSided bool
	Texture     image.Image
}

// Clone 返回材质副本（贴图只读，共享同一份）
func (m Material) Clone() Material {
	return m
}

// StarAssets 星星模型加载结果
type StarAssets struct {
	Ico           *Mesh
	Plane         *Mesh
	IcoMaterial   Material
	PlaneMaterial Material
}

// LoadStarAssets 加载星星模型（OBJ + MTL）
//
// 模型必须包含名为 IcoSphere 的对象和至少一个其它对象（平面）。
// 两个几何体都会被移到各自包围盒中心。任何失败都返回错误，
// 调用方应视为星空初始化失败。
//
// 参数:
//   - fsys: 资源文件系统
//   - objPath: OBJ 文件路径（如 "assets/models/star.obj"），mtllib 相对此文件解析
func LoadStarAssets(fsys fs.FS, objPath string) (*StarAssets, error) {
	objData, err := fs.ReadFile(fsys, objPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read star model %s: %w", objPath, err)
	}

	model, err := objmodel.ParseOBJ(objData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse star model %s: %w", objPath, err)
	}

	dir := path.Dir(objPath)
	materials := make(map[string]*objmodel.Material)
	for _, lib := range model.MaterialLibs {
		mtlPath := path.Join(dir, lib)
		mtlData, err := fs.ReadFile(fsys, mtlPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read star materials %s: %w", mtlPath, err)
		}
		parsed, err := objmodel.ParseMTL(mtlData)
		if err != nil {
			return nil, fmt.Errorf("failed to parse star materials %s: %w", mtlPath, err)
		}
		for name, m := range parsed {
			materials[name] = m
		}
	}

	var icoObj, planeObj *objmodel.Object
	for _, o := range model.Objects {
		if o.Name == IcoMeshName {
			icoObj = o
		} else if planeObj == nil {
			planeObj = o
		}
	}
	if icoObj == nil {
		return nil, fmt.Errorf("star model %s has no %s object", objPath, IcoMeshName)
	}
	if planeObj == nil {
		return nil, fmt.Errorf("star model %s has no plane object", objPath)
	}

	assets := &StarAssets{}
	if assets.Ico, err = meshFromObject(icoObj); err != nil {
		return nil, err
	}
	if assets.Plane, err = meshFromObject(planeObj); err != nil {
		return nil, err
	}
	assets.Ico.Center()
	assets.Plane.Center()

	if assets.IcoMaterial, err = materialFor(fsys, dir, icoObj.Material, materials); err != nil {
		return nil, err
	}
	if assets.PlaneMaterial, err = materialFor(fsys, dir, planeObj.Material, materials); err != nil {
		return nil, err
	}

	log.Printf("[Starfield] Loaded star model %s: ico=%d tris, plane=%d tris",
		objPath, icoObj.TriangleCount(), planeObj.TriangleCount())

	return assets, nil
}

func meshFromObject(o *objmodel.Object) (*Mesh, error) {
	if len(o.Positions) > math.MaxUint16 {
		return nil, fmt.Errorf("mesh %s has %d vertices, limit is %d", o.Name, len(o.Positions), math.MaxUint16)
	}

	m := &Mesh{
		Name:      o.Name,
		Positions: make([]mgl64.Vec3, len(o.Positions)),
		UVs:       make([][2]float32, len(o.UVs)),
		Indices:   make([]uint16, len(o.Indices)),
	}
	for i, p := range o.Positions {
		m.Positions[i] = mgl64.Vec3{p[0], p[1], p[2]}
	}
	for i, uv := range o.UVs {
		m.UVs[i] = [2]float32{float32(uv[0]), float32(uv[1])}
	}
	for i, idx := range o.Indices {
		m.Indices[i] = uint16(idx)
	}
	return m, nil
}

// materialFor 构造对象材质：星星统一使用加法混合、双面渲染
func materialFor(fsys fs.FS, dir, name string, materials map[string]*objmodel.Material) (Material, error) {
	mat := Material{
		Name:        name,
		Color:       colorful.Color{R: 1, G: 1, B: 1},
		Opacity:     1,
		Additive:    true,
		DoubleSided: true,
	}

	src, ok := materials[name]
	if !ok {
		if name != "" {
			log.Printf("[Starfield] Warning: material %s not found, using white", name)
		}
		return mat, nil
	}

	mat.Color = colorful.Color{R: src.Diffuse[0], G: src.Diffuse[1], B: src.Diffuse[2]}
	mat.Opacity = src.Opacity
	mat.Transparent = src.Opacity < 1

	if src.DiffuseMap != "" {
		texPath := path.Join(dir, src.DiffuseMap)
		tex, err := loadTexture(fsys, texPath)
		if err != nil {
			return Material{}, err
		}
		mat.Texture = tex
	}

	return mat, nil
}

// loadTexture 解码贴图并裁掉透明边框
func loadTexture(fsys fs.FS, p string) (image.Image, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", p, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", p, err)
	}

	trimmed := imgutil.TrimTransparent(img, 0, 0)
	if trimmed == nil {
		return nil, fmt.Errorf("texture %s is fully transparent", p)
	}
	return trimmed, nil
}

// TierMaterials 为两个层级克隆四份材质
//
// 每个层级可以独立着色和调整不透明度，材质之间互不影响。
// 材质颜色统一设为白色，实际颜色由实例颜色提供。
func (a *StarAssets) TierMaterials() (bigIco, bigPlane, smallIco, smallPlane Material) {
	white := colorful.Color{R: 1, G: 1, B: 1}

	bigIco = a.IcoMaterial.Clone()
	bigIco.Color = white

	bigPlane = a.PlaneMaterial.Clone()
	bigPlane.Color = white
	bigPlane.Transparent = true
	bigPlane.Opacity = BigPlaneOpacity

	smallIco = a.IcoMaterial.Clone()
	smallIco.Color = white

	smallPlane = a.PlaneMaterial.Clone()
	smallPlane.Color = white
	smallPlane.Transparent = true
	smallPlane.Opacity = SmallPlaneOpacity

	return bigIco, bigPlane, smallIco, smallPlane
}

// NewBatches 按星场数量创建四个实例批次
func NewBatches(field *Field, assets *StarAssets) *Batches {
	bigIco, bigPlane, smallIco, smallPlane := assets.TierMaterials()

	return &Batches{
		Big: TierBatches{
			Ico:   NewBatch("big-ico", assets.Ico, bigIco, field.BigCount()),
			Plane: NewBatch("big-plane", assets.Plane, bigPlane, field.BigCount()),
		},
		Small: TierBatches{
			Ico:   NewBatch("small-ico", assets.Ico, smallIco, field.SmallCount()),
			Plane: NewBatch("small-plane", assets.Plane, smallPlane, field.SmallCount()),
		},
	}
}
