// Package objmodel 解析 Wavefront OBJ/MTL 模型文件
//
// 只支持星空模型需要的子集：o/g、v、vt、f（多边形按扇形三角化）、
// usemtl、mtllib，以及 MTL 中的 newmtl、Kd、d/Tr、map_Kd。
// 其余指令被忽略。
package objmodel

// Model 一个 OBJ 文件解析出的全部对象
type Model struct {
	Objects      []*Object
	MaterialLibs []string // mtllib 引用的文件名（相对 OBJ 文件）
}

// Object 一个命名网格
//
// Positions/UVs 按对象局部重新编号，Indices 每 3 个一组构成三角形。
// 没有纹理坐标的顶点 UV 为 (0,0)。
type Object struct {
	Name      string
	Material  string
	Positions [][3]float64
	UVs       [][2]float64
	Indices   []int
}

// Material MTL 材质
type Material struct {
	Name       string
	Diffuse    [3]float64 // Kd
	Opacity    float64    // d，或 1-Tr
	DiffuseMap string     // map_Kd 贴图文件名
}

// Object 按名称查找对象
func (m *Model) Object(name string) *Object {
	for _, o := range m.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// TriangleCount 返回三角形数量
func (o *Object) TriangleCount() int {
	return len(o.Indices) / 3
}
