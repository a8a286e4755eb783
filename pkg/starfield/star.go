// Package starfield 实现星空背景的模拟核心
//
// 星空由两层（大/小）星星组成，每颗星星对应两个实例化形状
// （二十面体标记和平面光晕）。生成器一次性按种子确定性地布置星星，
// 每帧更新器负责 Z 轴环绕移动、指针悬停缩放和实例变换写入，
// 驱动器负责推进时间、同步视口并调用更新器。
//
// 本包不依赖 ebiten：绘制由 pkg/render 完成，因此整个模拟可以无窗口运行和测试。
package starfield

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/starlight/internal/rng"
	"github.com/decker502/starlight/pkg/config"
)

// Tier 星星层级
type Tier int

const (
	TierBig Tier = iota
	TierSmall
)

// String 返回层级名称
func (t Tier) String() string {
	switch t {
	case TierBig:
		return "big"
	case TierSmall:
		return "small"
	}
	return "unknown"
}

// Star 一颗星星
//
// 星星在所属层级切片中的下标就是它在该层两个实例批次中的槽位，
// 整个生命周期内不变。Pos 和 HoverScale 每帧由更新器原地修改。
type Star struct {
	Tier       Tier
	Pos        mgl64.Vec3
	Scale      float64 // 基础缩放
	HoverScale float64 // 当前悬停缩放倍数，初始 1.0
}

// Field 星场：两个有序的星星序列
type Field struct {
	Big   []Star
	Small []Star
}

// BigCount 返回大星星数量
func (f *Field) BigCount() int { return len(f.Big) }

// SmallCount 返回小星星数量
func (f *Field) SmallCount() int { return len(f.Small) }

// Total 返回星星总数
func (f *Field) Total() int { return len(f.Big) + len(f.Small) }

// Stars 返回指定层级的星星切片（共享底层数组）
func (f *Field) Stars(tier Tier) []Star {
	if tier == TierBig {
		return f.Big
	}
	return f.Small
}

// Generate 根据配置生成星场
//
// 数量：small = floor(total * smallRatio)，big = total - small。
// 先生成全部大星星，再生成小星星；每颗星星依次抽取 x、y、z 和基础缩放，
// 因此相同种子和配置得到逐位相同的结果。
//
// 非法配置不会报错：负数总数生成 0 颗星，占比钳制到 [0,1]，
// halfSize <= 0 时所有星星位于原点。
func Generate(cfg *config.StarConfig) *Field {
	big, small := cfg.Counts()

	half := cfg.HalfSize
	if !(half > 0) {
		half = 0
	}

	r := rng.New(cfg.Seed)
	makeStar := func(tier Tier) Star {
		s := Star{
			Tier: tier,
			Pos: mgl64.Vec3{
				r.Range(-half, half),
				r.Range(-half, half),
				r.Range(-half, half),
			},
			HoverScale: 1.0,
		}
		if tier == TierBig {
			s.Scale = r.Range(config.BigMinScale, cfg.BigMaxScale)
		} else {
			s.Scale = r.Range(config.SmallMinScale, cfg.SmallMaxScale)
		}
		return s
	}

	field := &Field{
		Big:   make([]Star, big),
		Small: make([]Star, small),
	}
	for i := range field.Big {
		field.Big[i] = makeStar(TierBig)
	}
	for i := range field.Small {
		field.Small[i] = makeStar(TierSmall)
	}

	return field
}

// LogSummary 输出星场数量和两层的前几颗星星，便于对照种子复现
func (f *Field) LogSummary(rows int) {
	log.Printf("[Starfield] Counts: big=%d small=%d", f.BigCount(), f.SmallCount())
	for _, tier := range []Tier{TierBig, TierSmall} {
		stars := f.Stars(tier)
		for i := 0; i < rows && i < len(stars); i++ {
			s := stars[i]
			log.Printf("[Starfield] %s[%d] x=%.3f y=%.3f z=%.3f scale=%.3f",
				tier, i, s.Pos.X(), s.Pos.Y(), s.Pos.Z(), s.Scale)
		}
	}
}
