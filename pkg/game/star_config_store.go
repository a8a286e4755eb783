package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/starlight/pkg/config"
)

// 存储路径常量
const (
	starConfigObject   = "starfield"
	starConfigProperty = "tuning"
)

// starTuning 是调试面板可以修改的字段
//
// 布局字段（total、seed、halfSize 等）只来自配置文件和命令行，不保存。
type starTuning struct {
	BigIcoColor     config.HexColor `yaml:"bigIcoColor"`
	BigPlaneColor   config.HexColor `yaml:"bigPlaneColor"`
	SmallIcoColor   config.HexColor `yaml:"smallIcoColor"`
	SmallPlaneColor config.HexColor `yaml:"smallPlaneColor"`

	PlaneSpeed    float64 `yaml:"planeSpeed"`
	IcoSpeed      float64 `yaml:"icoSpeed"`
	SpaceSpeed    float64 `yaml:"spaceSpeed"`
	HoverRadius   float64 `yaml:"hoverRadius"`
	HoverScaleAmp float64 `yaml:"hoverScaleAmp"`
	HoverEase     float64 `yaml:"hoverEase"`
}

func tuningOf(cfg *config.StarConfig) starTuning {
	return starTuning{
		BigIcoColor:     cfg.BigIcoColor,
		BigPlaneColor:   cfg.BigPlaneColor,
		SmallIcoColor:   cfg.SmallIcoColor,
		SmallPlaneColor: cfg.SmallPlaneColor,
		PlaneSpeed:      cfg.PlaneSpeed,
		IcoSpeed:        cfg.IcoSpeed,
		SpaceSpeed:      cfg.SpaceSpeed,
		HoverRadius:     cfg.HoverRadius,
		HoverScaleAmp:   cfg.HoverScaleAmp,
		HoverEase:       cfg.HoverEase,
	}
}

func (t starTuning) applyTo(cfg *config.StarConfig) {
	cfg.BigIcoColor = t.BigIcoColor
	cfg.BigPlaneColor = t.BigPlaneColor
	cfg.SmallIcoColor = t.SmallIcoColor
	cfg.SmallPlaneColor = t.SmallPlaneColor
	cfg.PlaneSpeed = t.PlaneSpeed
	cfg.IcoSpeed = t.IcoSpeed
	cfg.SpaceSpeed = t.SpaceSpeed
	cfg.HoverRadius = t.HoverRadius
	cfg.HoverScaleAmp = t.HoverScaleAmp
	cfg.HoverEase = t.HoverEase
}

// StarConfigStore 保存调试面板调整过的星空参数
//
// 只保存颜色和动画字段（YAML），加载时以基础配置为默认值再覆盖，
// 缺少的字段保持基础配置的值。
type StarConfigStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
}

// NewStarConfigStore 创建星空参数存储
func NewStarConfigStore(gdataManager *gdata.Manager) *StarConfigStore {
	return &StarConfigStore{gdataManager: gdataManager}
}

// HasSaved 是否存在已保存的参数
func (s *StarConfigStore) HasSaved() bool {
	return s.gdataManager != nil && s.gdataManager.ObjectPropExists(starConfigObject, starConfigProperty)
}

// Load 在基础配置上叠加已保存的参数
//
// 参数:
//   - base: 基础配置（来自 data/starfield.yaml），不会被修改
//
// 返回:
//   - *config.StarConfig: 没有保存数据时返回 base 的副本
//   - error: 数据损坏或验证失败时返回错误，同时返回 base 的副本
func (s *StarConfigStore) Load(base *config.StarConfig) (*config.StarConfig, error) {
	cfg := base.Clone()
	if !s.HasSaved() {
		return cfg, nil
	}

	data, err := s.gdataManager.LoadObjectProp(starConfigObject, starConfigProperty)
	if err != nil {
		return cfg, fmt.Errorf("failed to load star config: %w", err)
	}

	tuning := tuningOf(base)
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal star config: %w", err)
	}
	loaded := base.Clone()
	tuning.applyTo(loaded)
	if err := loaded.Validate(); err != nil {
		return cfg, fmt.Errorf("saved star config is invalid: %w", err)
	}

	log.Printf("[StarConfigStore] Loaded saved tuning")
	return loaded, nil
}

// Save 保存当前参数
//
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (s *StarConfigStore) Save(cfg *config.StarConfig) error {
	if s.gdataManager == nil {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid star config: %w", err)
	}

	data, err := yaml.Marshal(tuningOf(cfg))
	if err != nil {
		return fmt.Errorf("failed to marshal star config: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(starConfigObject, starConfigProperty, data); err != nil {
		return fmt.Errorf("failed to save star config: %w", err)
	}

	log.Printf("[StarConfigStore] Saved tuning")
	return nil
}

// Reset 删除已保存的参数
func (s *StarConfigStore) Reset() error {
	if !s.HasSaved() {
		return nil
	}
	if err := s.gdataManager.DeleteObjectProp(starConfigObject, starConfigProperty); err != nil {
		return fmt.Errorf("failed to delete star config: %w", err)
	}
	return nil
}
