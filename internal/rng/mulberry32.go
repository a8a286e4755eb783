// Package rng 提供可复现的伪随机数生成器
//
// 星空布局必须在相同种子下逐位一致，因此这里不使用 math/rand，
// 而是实现 mulberry32：32 位状态、无分配、可随时重新播种。
package rng

// Mulberry32 mulberry32 生成器
//
// 零值等价于种子 0。非并发安全，只应由星空生成器独占使用。
type Mulberry32 struct {
	state uint32
}

// New 使用给定种子创建生成器
func New(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Reset 重新播种，之后的序列与 New(seed) 完全相同
func (r *Mulberry32) Reset(seed uint32) {
	r.state = seed
}

// Next 返回下一个 [0,1) 区间内的均匀浮点数
func (r *Mulberry32) Next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Range 返回 [min,max) 区间内的均匀浮点数
//
// min > max 时结果落在 (max,min]，与线性插值一致。
func (r *Mulberry32) Range(min, max float64) float64 {
	return min + r.Next()*(max-min)
}
