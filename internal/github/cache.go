package github

import (
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache 持久化字节存储，过期判断由 Client 完成
type Cache interface {
	Load(key string) ([]byte, bool, error)
	Store(key string, data []byte) error
}

// cacheEntry 缓存条目：原始响应体和写入时间（毫秒时间戳）
type cacheEntry struct {
	Data      string `yaml:"data"`
	Timestamp int64  `yaml:"timestamp"`
}

func encodeEntry(body []byte, at time.Time) ([]byte, error) {
	out, err := yaml.Marshal(cacheEntry{Data: string(body), Timestamp: at.UnixMilli()})
	if err != nil {
		return nil, fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return out, nil
}

func decodeEntry(raw []byte) (cacheEntry, error) {
	var e cacheEntry
	if err := yaml.Unmarshal(raw, &e); err != nil {
		return cacheEntry{}, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return e, nil
}

// fresh 条目写入时间距 now 小于 ttl 时有效
func (e cacheEntry) fresh(now time.Time, ttl time.Duration) bool {
	age := now.Sub(time.UnixMilli(e.Timestamp))
	return age >= 0 && age < ttl
}

// MemoryCache 进程内缓存（测试和无持久化时使用）
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

// Load 实现 Cache
func (c *MemoryCache) Load(key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok, nil
}

// Store 实现 Cache
func (c *MemoryCache) Store(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = append([]byte(nil), data...)
	return nil
}

// Len 返回条目数
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
