// Package github 从 GitHub REST API 拉取个人资料并汇总为展示卡片
//
// 所有 JSON 请求经过带 TTL 的缓存（默认 30 分钟），缓存键为完整 URL。
// 非 2xx 响应不会被缓存。
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// 默认值
const (
	DefaultBaseURL = "https://api.github.com"
	DefaultTTL     = 30 * time.Minute

	acceptHeader = "application/vnd.github+json"
	userAgent    = "starlight"

	// 单个响应体默认上限
	maxBodyBytes = 8 << 20
)

// ErrResponseTooLarge 响应体超过上限
var ErrResponseTooLarge = errors.New("response too large")

// StatusError 非 2xx 响应
type StatusError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}

// Options Client 配置
type Options struct {
	BaseURL string
	Token   string // 可选，设置后以 Bearer 方式认证
	TTL     time.Duration
	HTTP    *http.Client
	Cache   Cache            // nil 时使用内存缓存
	Now     func() time.Time // nil 时使用 time.Now
	MaxBody int64            // 响应体上限（字节），<= 0 时为 8 MiB
}

// Client GitHub API 客户端
//
// 可以被多个 goroutine 同时使用；缓存访问串行化。
type Client struct {
	baseURL string
	token   string
	ttl     time.Duration
	http    *http.Client
	now     func() time.Time
	maxBody int64

	cacheMu sync.Mutex
	cache   Cache

	hits, misses int
}

// NewClient 创建客户端，零值字段使用默认值
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		ttl:     opts.TTL,
		http:    opts.HTTP,
		cache:   opts.Cache,
		now:     opts.Now,
		maxBody: opts.MaxBody,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
	}
	if c.cache == nil {
		c.cache = NewMemoryCache()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.maxBody <= 0 {
		c.maxBody = maxBodyBytes
	}
	return c
}

// BaseURL 返回 API 根地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CacheStats 返回缓存命中和未命中次数
func (c *Client) CacheStats() (hits, misses int) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	return c.hits, c.misses
}

// FetchJSON 获取 url 的 JSON 并解码到 v
//
// 缓存中存在未过期的条目时直接使用，不发请求；否则请求并在成功后写入缓存。
// 缓存读写失败只记录日志，不影响结果。
//
// 参数:
//   - ctx: 取消请求
//   - url: 完整 URL（也是缓存键）
//   - v: 解码目标
func (c *Client) FetchJSON(ctx context.Context, url string, v any) error {
	if body, ok := c.cached(url); ok {
		if err := json.Unmarshal(body, v); err == nil {
			return nil
		}
		log.Printf("[GitHub] Cached body for %s is not valid JSON, refetching", url)
	}

	body, err := c.get(ctx, url, acceptHeader)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}

	c.store(url, body)
	return nil
}

// FetchBytes 获取原始响应体（不缓存，用于头像等二进制资源）
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url, "*/*")
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	// 多读一个字节以区分恰好等于上限和超出上限
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("GET %s: %w (limit %d bytes)", url, ErrResponseTooLarge, c.maxBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &apiErr)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	return body, nil
}

func (c *Client) cached(url string) ([]byte, bool) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	raw, ok, err := c.cache.Load(url)
	if err != nil {
		log.Printf("[GitHub] Cache load failed for %s: %v", url, err)
	}
	if !ok || err != nil {
		c.misses++
		return nil, false
	}

	entry, err := decodeEntry(raw)
	if err != nil || !entry.fresh(c.now(), c.ttl) {
		c.misses++
		return nil, false
	}

	c.hits++
	return []byte(entry.Data), true
}

func (c *Client) store(url string, body []byte) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	raw, err := encodeEntry(body, c.now())
	if err == nil {
		err = c.cache.Store(url, raw)
	}
	if err != nil {
		log.Printf("[GitHub] Cache store failed for %s: %v", url, err)
	}
}
