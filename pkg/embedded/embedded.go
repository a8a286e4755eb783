// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包把 assets/ 与 data/ 两棵树合并成一个 fs.FS，
// 资源加载代码只依赖 fs.FS，测试中可以直接换成 os.DirFS。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

var (
	assetsFS    fs.FS
	dataFS      fs.FS
	initialized bool
)

// ErrNotInitialized Init() 之前访问资源时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

// Init 初始化资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(assets, data fs.FS) {
	assetsFS = assets
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// FS 返回合并后的文件系统，路径以 "assets/" 或 "data/" 开头
func FS() fs.FS {
	return rootFS{}
}

// rootFS 按路径前缀把请求路由到 assetsFS 或 dataFS
type rootFS struct{}

func (rootFS) Open(name string) (fs.File, error) {
	return Open(name)
}

// normalize 统一路径分隔符并去掉 "./" 前缀（embed.FS 只接受正斜杠）
func normalize(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	return path.Clean(p)
}

// resolve 根据路径前缀选择文件系统
func resolve(p string) (fs.FS, string, error) {
	if !initialized {
		return nil, "", ErrNotInitialized
	}

	p = normalize(p)
	switch {
	case strings.HasPrefix(p, "assets/"):
		return assetsFS, p, nil
	case strings.HasPrefix(p, "data/"):
		return dataFS, p, nil
	}
	return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", p)
}

// Open 打开资源文件
func Open(p string) (fs.File, error) {
	fsys, name, err := resolve(p)
	if err != nil {
		return nil, err
	}
	return fsys.Open(name)
}

// ReadFile 读取资源文件内容
func ReadFile(p string) ([]byte, error) {
	fsys, name, err := resolve(p)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, name)
}

// Exists 检查资源文件是否存在
func Exists(p string) bool {
	file, err := Open(p)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配资源文件
func Glob(pattern string) ([]string, error) {
	fsys, name, err := resolve(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, name)
}
