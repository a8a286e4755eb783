//go:build !android

package utils

// EnsureStorageDir 确保存储目录存在（非 Android 平台的空实现）
// gdata 在桌面平台上会自动创建 ~/.local/share/<appName> 等目录
func EnsureStorageDir(appName string) error {
	return nil
}
