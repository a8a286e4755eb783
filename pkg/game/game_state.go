package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/starlight/pkg/utils"
)

// GameState 跨场景共享的持久化状态
//
// 持有一个 gdata 管理器和基于它的三个存储。
// gdata 无法打开时进入降级模式：所有存储只在内存中工作，保存操作静默成功。
type GameState struct {
	gdataManager *gdata.Manager

	Settings    *SettingsManager
	StarConfigs *StarConfigStore
	HTTPCache   *HTTPCache
}

// NewGameState 打开 gdata 存储并创建各个管理器
//
// 参数:
//   - appName: gdata 应用名（决定存储目录）
func NewGameState(appName string) *GameState {
	if err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[GameState] Warning: %v", err)
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[GameState] Warning: gdata unavailable, running without persistence: %v", err)
		manager = nil
	}

	return NewGameStateWith(manager)
}

// NewGameStateWith 使用已有的 gdata 管理器创建状态（nil 表示降级模式）
func NewGameStateWith(manager *gdata.Manager) *GameState {
	return &GameState{
		gdataManager: manager,
		Settings:     NewSettingsManager(manager),
		StarConfigs:  NewStarConfigStore(manager),
		HTTPCache:    NewHTTPCache(manager),
	}
}

// Persistent 是否可以持久化
func (gs *GameState) Persistent() bool {
	return gs.gdataManager != nil
}

// GetGdataManager 返回 gdata 管理器（降级模式下为 nil）
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}
