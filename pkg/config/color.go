package config

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// HexColor 以十六进制字符串形式序列化的颜色
//
// YAML 中写作 "#d724ff"，也接受 "0xd724ff" 和 "d724ff"。
type HexColor struct {
	colorful.Color
}

// ParseHexColor 解析十六进制颜色字符串
func ParseHexColor(s string) (HexColor, error) {
	normalized := strings.TrimSpace(s)
	normalized = strings.TrimPrefix(strings.ToLower(normalized), "0x")
	if !strings.HasPrefix(normalized, "#") {
		normalized = "#" + normalized
	}

	c, err := colorful.Hex(normalized)
	if err != nil {
		return HexColor{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return HexColor{Color: c}, nil
}

// MustHexColor 解析颜色，失败时 panic（仅用于内置默认值）
func MustHexColor(s string) HexColor {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RotateHue 返回色相旋转 degrees 度后的颜色，饱和度和明度不变
func (c HexColor) RotateHue(degrees float64) HexColor {
	h, s, v := c.Hsv()
	h += degrees
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return HexColor{Color: colorful.Hsv(h, s, v).Clamped()}
}

// MarshalYAML 实现 yaml.Marshaler
func (c HexColor) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("color must be a hex string: %w", err)
	}

	parsed, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
