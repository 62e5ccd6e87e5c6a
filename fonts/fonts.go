// Package fonts locates font files for the preview renderer.
package fonts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotFound is returned when no file matches the requested font name.
var ErrNotFound = errors.New("fonts: font not found")

var extensions = []string{".ttf", ".otf", ".ttc", ".woff", ".woff2"}

// SystemDirs 返回当前平台常见的字体目录，不存在的目录会在查找时跳过。
func SystemDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return []string{"/Library/Fonts", "/System/Library/Fonts", filepath.Join(home, "Library", "Fonts")}
	case "windows":
		return []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
	default:
		return []string{"/usr/share/fonts", "/usr/local/share/fonts", filepath.Join(home, ".fonts"), filepath.Join(home, ".local", "share", "fonts")}
	}
}

// Locate 在 dirs 中递归查找文件名（不含扩展名，忽略大小写）等于 name 的字体，
// 返回字体数据与路径。dirs 按顺序优先。
func Locate(name string, dirs []string) ([]byte, string, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil, "", fmt.Errorf("%w: empty name", ErrNotFound)
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path, err := find(dir, want)
		if err != nil {
			return nil, "", err
		}
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("读取字体 %s 失败: %w", path, err)
		}
		return data, path, nil
	}
	return nil, "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func find(dir, want string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			// 无权限的子目录直接跳过
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !isFontExt(ext) {
			return nil
		}
		base := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		if base == want {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return found, nil
}

func isFontExt(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
