package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 按名称创建场景，避免场景包之间循环依赖
type SceneFactory func(name string) (Scene, error)

// SceneManager 管理当前活动场景
type SceneManager struct {
	currentScene Scene
	currentName  string
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 立即切换到指定场景
func (sm *SceneManager) SwitchTo(name string, scene Scene) {
	sm.currentScene = scene
	sm.currentName = name
}

// GetCurrentScene 返回当前活动场景（可能为 nil）
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Load 用工厂创建并切换到指定场景
//
// 创建失败时保持当前场景不变并返回错误。
func (sm *SceneManager) Load(name string) error {
	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}

	scene, err := sm.sceneFactory(name)
	if err != nil {
		return fmt.Errorf("failed to create scene %s: %w", name, err)
	}
	if scene == nil {
		return fmt.Errorf("scene factory returned nil for %s", name)
	}

	sm.SwitchTo(name, scene)
	log.Printf("[SceneManager] Switched to scene: %s", name)
	return nil
}

// Update 更新当前场景，没有活动场景时什么也不做
func (sm *SceneManager) Update(deltaTime float64) error {
	if sm.currentScene == nil {
		return nil
	}
	return sm.currentScene.Update(deltaTime)
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// SaveOnExit 如果当前场景实现了 Saveable，调用它
func (sm *SceneManager) SaveOnExit() bool {
	if s, ok := sm.currentScene.(Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}
