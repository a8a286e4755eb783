package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// StarConfig 星空背景配置
//
// 同一个 *StarConfig 实例在生成器、每帧更新器和调试面板之间共享，
// 调试面板的修改在下一帧立即生效，无需重启。
//
// 注意：Total、SmallRatio、HalfSize、Seed 和两个 MaxScale 只在启动生成星空时读取；
// 其余字段每帧读取。
//
// 配置文件位置: data/starfield.yaml
type StarConfig struct {
	// 星场
	Total      int     `yaml:"total"`      // 星星总数
	SmallRatio float64 `yaml:"smallRatio"` // 小星星占比 0.0 ~ 1.0
	HalfSize   float64 `yaml:"halfSize"`   // 立方体星场的半边长
	Seed       uint32  `yaml:"seed"`       // 随机种子

	// 缩放
	BigMaxScale   float64 `yaml:"bigMaxScale"`   // 大星星基础缩放上限（下限 1.0）
	SmallMaxScale float64 `yaml:"smallMaxScale"` // 小星星基础缩放上限（下限 0.2）

	// 颜色（每层两个形状各一种颜色）
	BigIcoColor     HexColor `yaml:"bigIcoColor"`
	BigPlaneColor   HexColor `yaml:"bigPlaneColor"`
	SmallIcoColor   HexColor `yaml:"smallIcoColor"`
	SmallPlaneColor HexColor `yaml:"smallPlaneColor"`

	// 动画
	PlaneSpeed    float64 `yaml:"planeSpeed"`    // 平面旋转角速度（弧度/秒）
	IcoSpeed      float64 `yaml:"icoSpeed"`      // 二十面体旋转角速度（弧度/秒）
	SpaceSpeed    float64 `yaml:"spaceSpeed"`    // 沿 Z 轴前进速度（单位/秒）
	HoverRadius   float64 `yaml:"hoverRadius"`   // 屏幕空间悬停判定半径（NDC）
	HoverScaleAmp float64 `yaml:"hoverScaleAmp"` // 悬停时的缩放倍数
	HoverEase     float64 `yaml:"hoverEase"`     // 每帧缓动系数
}

// 星星基础缩放下限
const (
	BigMinScale   = 1.0
	SmallMinScale = 0.2
)

// DefaultStarConfig 返回默认星空配置
func DefaultStarConfig() *StarConfig {
	return &StarConfig{
		Total:      5000,
		SmallRatio: 0.9,
		HalfSize:   1000,
		Seed:       1337,

		BigMaxScale:   5,
		SmallMaxScale: 1.5,

		BigIcoColor:     MustHexColor("#d724ff"),
		BigPlaneColor:   MustHexColor("#b514ff"),
		SmallIcoColor:   MustHexColor("#2e58ff"),
		SmallPlaneColor: MustHexColor("#3e95b1"),

		PlaneSpeed:    1,
		IcoSpeed:      0.5,
		SpaceSpeed:    125,
		HoverRadius:   0.10,
		HoverScaleAmp: 5,
		HoverEase:     0.12,
	}
}

// LoadStarConfig 从磁盘加载 YAML 格式的星空配置
//
// 文件中缺失的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/starfield.yaml"）
//
// 返回:
//   - *StarConfig: 加载成功后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadStarConfig(path string) (*StarConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read star config: %w", err)
	}
	return ParseStarConfig(data)
}

// ParseStarConfig 解析 YAML 数据，缺失字段使用默认值
func ParseStarConfig(data []byte) (*StarConfig, error) {
	cfg := DefaultStarConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse star config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid star config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查规则：
//   - total 不能为负
//   - smallRatio、hoverEase 必须在 [0,1] 内
//   - halfSize 必须为正
//   - 缩放上限不能低于对应下限
//   - 所有浮点字段不能是 NaN 或无穷
func (c *StarConfig) Validate() error {
	floats := map[string]float64{
		"smallRatio":    c.SmallRatio,
		"halfSize":      c.HalfSize,
		"bigMaxScale":   c.BigMaxScale,
		"smallMaxScale": c.SmallMaxScale,
		"planeSpeed":    c.PlaneSpeed,
		"icoSpeed":      c.IcoSpeed,
		"spaceSpeed":    c.SpaceSpeed,
		"hoverRadius":   c.HoverRadius,
		"hoverScaleAmp": c.HoverScaleAmp,
		"hoverEase":     c.HoverEase,
	}
	for name, v := range floats {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v", name, v)
		}
	}

	if c.Total < 0 {
		return fmt.Errorf("total must be >= 0, got %d", c.Total)
	}
	if c.SmallRatio < 0 || c.SmallRatio > 1 {
		return fmt.Errorf("smallRatio must be in [0,1], got %.3f", c.SmallRatio)
	}
	if c.HalfSize <= 0 {
		return fmt.Errorf("halfSize must be > 0, got %.1f", c.HalfSize)
	}
	if c.BigMaxScale < BigMinScale {
		return fmt.Errorf("bigMaxScale(%.2f) < %.2f", c.BigMaxScale, BigMinScale)
	}
	if c.SmallMaxScale < SmallMinScale {
		return fmt.Errorf("smallMaxScale(%.2f) < %.2f", c.SmallMaxScale, SmallMinScale)
	}
	if c.HoverEase < 0 || c.HoverEase > 1 {
		return fmt.Errorf("hoverEase must be in [0,1], got %.3f", c.HoverEase)
	}

	return nil
}

// Counts 返回大、小星星数量
//
// small = floor(total * smallRatio)，big = total - small。
// 非法值会被钳制：负数总数视为 0，占比钳制到 [0,1]，NaN 占比视为 0。
func (c *StarConfig) Counts() (big, small int) {
	total := c.Total
	if total < 0 {
		total = 0
	}

	ratio := c.SmallRatio
	switch {
	case math.IsNaN(ratio), ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}

	small = int(math.Floor(float64(total) * ratio))
	if small > total {
		small = total
	}
	return total - small, small
}

// Clone 返回配置的副本
func (c *StarConfig) Clone() *StarConfig {
	clone := *c
	return &clone
}
