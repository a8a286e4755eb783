package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 窗口默认尺寸，窗口可自由缩放
const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
)

// AppName gdata 存储使用的应用名
const AppName = "starlight"

// PortfolioConfig 作品集 HUD 配置
//
// 配置文件位置: data/portfolio.yaml
type PortfolioConfig struct {
	Title      string            `yaml:"title"`
	Sections   []SectionConfig   `yaml:"sections"`
	Typewriter TypewriterOptions `yaml:"typewriter"`
	GitHub     GitHubConfig      `yaml:"github"`
}

// SectionConfig 单个面板（导航按钮 + HUD 圆点 + 面板内容）
type SectionConfig struct {
	ID    string   `yaml:"id"`
	Title string   `yaml:"title"`
	Lines []string `yaml:"lines"`
}

// TypewriterOptions 打字机效果参数（毫秒）
type TypewriterOptions struct {
	SpeedMs      int    `yaml:"speedMs"`
	EraseSpeedMs int    `yaml:"eraseSpeedMs"`
	CaretBlinkMs int    `yaml:"caretBlinkMs"`
	CaretChar    string `yaml:"caretChar"`
	HoverChar    string `yaml:"hoverChar"`
}

// GitHubConfig GitHub 卡片配置
type GitHubConfig struct {
	Section    string        `yaml:"section"` // 显示卡片轮播的面板 ID
	Users      []string      `yaml:"users"`
	BaseURL    string        `yaml:"baseURL"`
	CacheTTL   time.Duration `yaml:"cacheTTL"`
	AvatarSize int           `yaml:"avatarSize"`
}

// DefaultTypewriterOptions 返回默认打字机参数
func DefaultTypewriterOptions() TypewriterOptions {
	return TypewriterOptions{
		SpeedMs:      40,
		EraseSpeedMs: 25,
		CaretBlinkMs: 500,
		CaretChar:    "_",
		HoverChar:    "+",
	}
}

// DefaultPortfolioConfig 返回默认作品集配置
func DefaultPortfolioConfig() *PortfolioConfig {
	return &PortfolioConfig{
		Title: "starlight",
		Sections: []SectionConfig{
			{ID: "home", Title: "Hello, traveller"},
			{ID: "about", Title: "About"},
			{ID: "projects", Title: "Projects"},
			{ID: "contact", Title: "Contact"},
		},
		Typewriter: DefaultTypewriterOptions(),
		GitHub: GitHubConfig{
			Section:    "projects",
			BaseURL:    "https://api.github.com",
			CacheTTL:   30 * time.Minute,
			AvatarSize: 64,
		},
	}
}

// ParsePortfolioConfig 解析 YAML 数据，缺失字段使用默认值
func ParsePortfolioConfig(data []byte) (*PortfolioConfig, error) {
	cfg := DefaultPortfolioConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid portfolio config: %w", err)
	}

	return cfg, nil
}

// Validate 验证配置有效性
//
// 至少需要一个面板，面板 ID 不能为空或重复，打字机速度必须为正。
func (c *PortfolioConfig) Validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("at least one section is required")
	}

	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return fmt.Errorf("section %d has empty id", i)
		}
		if seen[id] {
			return fmt.Errorf("duplicate section id '%s'", id)
		}
		seen[id] = true
	}

	tw := c.Typewriter
	if tw.SpeedMs <= 0 || tw.EraseSpeedMs <= 0 || tw.CaretBlinkMs <= 0 {
		return fmt.Errorf("typewriter speeds must be > 0, got speed=%d erase=%d blink=%d",
			tw.SpeedMs, tw.EraseSpeedMs, tw.CaretBlinkMs)
	}

	if c.GitHub.CacheTTL < 0 {
		return fmt.Errorf("github cacheTTL must be >= 0, got %s", c.GitHub.CacheTTL)
	}

	return nil
}
