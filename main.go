package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/starlight/pkg/app"
	"github.com/decker502/starlight/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "星空配置文件路径（默认使用内置 data/starfield.yaml）")
	seed := flag.Int64("seed", app.NoSeed, "覆盖随机种子")
	headlessFrames := flag.Int("headless-frames", 0, "不打开窗口运行指定帧数后退出")
	withGitHub := flag.Bool("github", true, "请求 GitHub 卡片")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(assetsFS, dataFS)

	cfg := app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
		GitHub:     *withGitHub,
		Token:      os.Getenv("GITHUB_TOKEN"),
	}

	if *headlessFrames > 0 {
		runHeadless(cfg, *headlessFrames)
		return
	}

	game, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	game.ApplyWindowSettings("starlight")

	// 收到终止信号时结束主循环，由下面统一保存
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		game.Stop()
	}()

	err = ebiten.RunGame(game)
	game.SaveOnExit()
	if err != nil {
		log.Fatal(err)
	}
}

func runHeadless(cfg app.Config, frames int) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := app.RunHeadless(ctx, cfg, frames, 0)
	fmt.Println(report)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
