package starfield

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Batch 实例化绘制批次：同一网格 + 材质，多个实例各自的变换和颜色
//
// 容量在创建时固定，之后不会改变。槽位 i 对应所属层级第 i 颗星星。
// 写入槽位后需要调用 MarkDirty，渲染器只在批次脏时重建顶点（即“上传”）。
type Batch struct {
	Name     string
	Mesh     *Mesh
	Material Material

	matrices []mgl64.Mat4
	colors   []colorful.Color

	matricesDirty bool
	colorsDirty   bool
}

// NewBatch 创建固定容量的批次，变换初始为单位矩阵，颜色初始为白色
func NewBatch(name string, mesh *Mesh, material Material, capacity int) *Batch {
	if capacity < 0 {
		capacity = 0
	}

	b := &Batch{
		Name:     name,
		Mesh:     mesh,
		Material: material,
		matrices: make([]mgl64.Mat4, capacity),
		colors:   make([]colorful.Color, capacity),
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	for i := range b.matrices {
		b.matrices[i] = mgl64.Ident4()
		b.colors[i] = white
	}
	return b
}

// Capacity 返回批次容量
func (b *Batch) Capacity() int {
	return len(b.matrices)
}

// SetMatrixAt 写入槽位 i 的变换矩阵
func (b *Batch) SetMatrixAt(i int, m mgl64.Mat4) {
	b.matrices[i] = m
}

// MatrixAt 返回槽位 i 的变换矩阵
func (b *Batch) MatrixAt(i int) mgl64.Mat4 {
	return b.matrices[i]
}

// SetColorAt 写入槽位 i 的颜色
func (b *Batch) SetColorAt(i int, c colorful.Color) {
	b.colors[i] = c
}

// ColorAt 返回槽位 i 的颜色
func (b *Batch) ColorAt(i int) colorful.Color {
	return b.colors[i]
}

// MarkDirty 标记变换和颜色都需要重新上传
func (b *Batch) MarkDirty() {
	b.matricesDirty = true
	b.colorsDirty = true
}

// Dirty 返回是否有待上传的修改
func (b *Batch) Dirty() bool {
	return b.matricesDirty || b.colorsDirty
}

// MatricesDirty 返回变换是否待上传
func (b *Batch) MatricesDirty() bool {
	return b.matricesDirty
}

// ColorsDirty 返回颜色是否待上传
func (b *Batch) ColorsDirty() bool {
	return b.colorsDirty
}

// ClearDirty 由渲染器在上传后调用
func (b *Batch) ClearDirty() {
	b.matricesDirty = false
	b.colorsDirty = false
}

// TierBatches 一个层级的两个批次
type TierBatches struct {
	Ico   *Batch
	Plane *Batch
}

// Batches 四个实例化批次
type Batches struct {
	Big   TierBatches
	Small TierBatches
}

// All 按绘制顺序返回全部批次
func (b *Batches) All() []*Batch {
	return []*Batch{b.Big.Ico, b.Big.Plane, b.Small.Ico, b.Small.Plane}
}

// Tier 返回指定层级的批次
func (b *Batches) Tier(tier Tier) TierBatches {
	if tier == TierBig {
		return b.Big
	}
	return b.Small
}
