package game

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

const httpCacheObject = "httpcache"

// HTTPCache 基于 gdata 的 HTTP 响应缓存
//
// 只负责按键存取字节，过期判断由调用方完成。
// 键（通常是 URL）经 SHA-256 哈希后作为属性名，避免非法文件名字符。
type HTTPCache struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，永不命中）
}

// NewHTTPCache 创建缓存
func NewHTTPCache(gdataManager *gdata.Manager) *HTTPCache {
	return &HTTPCache{gdataManager: gdataManager}
}

// Load 读取缓存条目
//
// 返回:
//   - []byte: 条目内容
//   - bool: 是否命中
//   - error: 条目存在但读取失败时返回错误
func (c *HTTPCache) Load(key string) ([]byte, bool, error) {
	if c.gdataManager == nil {
		return nil, false, nil
	}

	prop := cacheProp(key)
	if !c.gdataManager.ObjectPropExists(httpCacheObject, prop) {
		return nil, false, nil
	}

	data, err := c.gdataManager.LoadObjectProp(httpCacheObject, prop)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cache entry: %w", err)
	}
	return data, true, nil
}

// Store 写入缓存条目
func (c *HTTPCache) Store(key string, data []byte) error {
	if c.gdataManager == nil {
		return nil
	}
	if err := c.gdataManager.SaveObjectProp(httpCacheObject, cacheProp(key), data); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Delete 删除缓存条目
func (c *HTTPCache) Delete(key string) error {
	if c.gdataManager == nil {
		return nil
	}

	prop := cacheProp(key)
	if !c.gdataManager.ObjectPropExists(httpCacheObject, prop) {
		return nil
	}
	if err := c.gdataManager.DeleteObjectProp(httpCacheObject, prop); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

func cacheProp(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:16])
}
