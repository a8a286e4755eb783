// validate_config 检查数据文件和星星模型是否可用
//
// 用法:
//
//	go run ./cmd/validate_config [-root .]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/decker502/starlight/pkg/app"
	"github.com/decker502/starlight/pkg/config"
	"github.com/decker502/starlight/pkg/scenes"
	"github.com/decker502/starlight/pkg/starfield"
)

func main() {
	root := flag.String("root", ".", "项目根目录（包含 assets/ 和 data/）")
	flag.Parse()
	log.SetOutput(io.Discard)

	fsys := os.DirFS(*root)
	failed := 0

	starCfg, err := app.LoadStarConfig(fsys, "", app.NoSeed)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", app.StarConfigPath, err)
		failed++
	} else {
		big, small := starCfg.Counts()
		fmt.Printf("✅ %s: %d 颗星星（大 %d / 小 %d），种子 %d\n", app.StarConfigPath, starCfg.Total, big, small, starCfg.Seed)
	}

	portfolio, err := loadPortfolio(*root)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", app.PortfolioConfigPath, err)
		failed++
	} else {
		fmt.Printf("✅ %s: %d 个面板，%d 个 GitHub 用户\n", app.PortfolioConfigPath, len(portfolio.Sections), len(portfolio.GitHub.Users))
	}

	assets, err := starfield.LoadStarAssets(fsys, scenes.DefaultModelPath)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", scenes.DefaultModelPath, err)
		failed++
	} else {
		fmt.Printf("✅ %s: ico %d 顶点，plane %d 顶点，贴图=%v\n", scenes.DefaultModelPath,
			len(assets.Ico.Positions), len(assets.Plane.Positions), assets.PlaneMaterial.Texture != nil)
	}

	if failed > 0 {
		fmt.Printf("❌ %d 项检查失败\n", failed)
		os.Exit(1)
	}
}

// loadPortfolio 与应用不同，这里缺少文件视为错误
func loadPortfolio(root string) (*config.PortfolioConfig, error) {
	data, err := os.ReadFile(filepath.Join(root, app.PortfolioConfigPath))
	if err != nil {
		return nil, err
	}
	return config.ParsePortfolioConfig(data)
}
