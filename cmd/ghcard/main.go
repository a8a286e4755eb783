// ghcard 在终端打印 GitHub 用户卡片
//
// 与作品集场景使用同一个客户端和 gdata 响应缓存，可以用来预热缓存或排查 API 问题。
//
// 用法:
//
//	go run ./cmd/ghcard --users decker502,octocat
//	GITHUB_TOKEN=... go run ./cmd/ghcard --verbose
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/decker502/starlight/internal/github"
	"github.com/decker502/starlight/pkg/config"
	"github.com/decker502/starlight/pkg/game"
)

var (
	users      = flag.String("users", "", "Comma separated GitHub logins (default: github.users from --config)")
	configPath = flag.String("config", "data/portfolio.yaml", "Portfolio config file")
	baseURL    = flag.String("base-url", "", "GitHub API base URL (default: from config)")
	noCache    = flag.Bool("no-cache", false, "Bypass the persistent response cache")
	width      = flag.Int("width", 48, "Card width in columns")
	timeout    = flag.Duration("timeout", 30*time.Second, "Overall request timeout")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := loadConfig(*configPath)

	logins := splitLogins(*users)
	if len(logins) == 0 {
		logins = cfg.GitHub.Users
	}
	if len(logins) == 0 {
		fmt.Fprintln(os.Stderr, "no users given: pass --users or set github.users in the config")
		os.Exit(2)
	}

	opts := github.Options{
		BaseURL: cfg.GitHub.BaseURL,
		Token:   os.Getenv("GITHUB_TOKEN"),
		TTL:     cfg.GitHub.CacheTTL,
	}
	if *baseURL != "" {
		opts.BaseURL = *baseURL
	}
	if !*noCache {
		gs := game.NewGameState(config.AppName)
		if gs.Persistent() {
			opts.Cache = gs.HTTPCache
		}
	}
	client := github.NewClient(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	cards, err := client.FetchCards(ctx, logins, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	for _, card := range cards {
		fmt.Println(renderCard(card, *width))
	}

	hits, misses := client.CacheStats()
	log.Printf("[ghcard] Cache: %d hits, %d misses", hits, misses)
}

// loadConfig 读取作品集配置，文件不存在时使用默认值
func loadConfig(path string) *config.PortfolioConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[ghcard] Config %s unavailable, using defaults: %v", path, err)
		return config.DefaultPortfolioConfig()
	}

	cfg, err := config.ParsePortfolioConfig(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(2)
	}
	return cfg
}

func splitLogins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if login := strings.TrimSpace(part); login != "" {
			out = append(out, login)
		}
	}
	return out
}
