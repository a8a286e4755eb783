package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 界面设置（跨会话保存）
type Settings struct {
	Fullscreen     bool   `yaml:"fullscreen"`     // 启动时是否全屏
	ShowDebugPanel bool   `yaml:"showDebugPanel"` // 调试面板是否展开
	ShowStats      bool   `yaml:"showStats"`      // 是否显示 FPS/实例统计
	Section        string `yaml:"section"`        // 上次打开的面板 ID
	Card           int    `yaml:"card"`           // 上次查看的 GitHub 卡片下标
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		ShowStats: true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *Settings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "ui"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置并记录警告。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或数据不存在时使用默认设置。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置（可直接修改，需调用 Save 持久化）
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetSection 记录当前面板
func (sm *SettingsManager) SetSection(id string) {
	sm.settings.Section = id
}

// SetCard 记录当前卡片下标，负数按 0 处理
func (sm *SettingsManager) SetCard(index int) {
	if index < 0 {
		index = 0
	}
	sm.settings.Card = index
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowDebugPanel 设置调试面板展开状态
func (sm *SettingsManager) SetShowDebugPanel(show bool) {
	sm.settings.ShowDebugPanel = show
}

// SetShowStats 设置统计信息是否显示
func (sm *SettingsManager) SetShowStats(show bool) {
	sm.settings.ShowStats = show
}
