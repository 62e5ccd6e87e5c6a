package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileExt 为目标应用识别的模板扩展名。
const FileExt = ".tm2"

// Marshal 将集合编码为紧凑 JSON。关闭 HTML 转义且不带结尾换行，与浏览器端 JSON.stringify 的输出一致。
func Marshal(c *Collection) ([]byte, error) {
	if c == nil {
		return nil, ErrNilCollection
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// FileName 生成基于时间的文件名，例如 2026-10-19_09-30-00.tm2。
func FileName(t time.Time) string {
	return t.Format("2006-01-02_15-04-05") + FileExt
}

var nameReplacer = strings.NewReplacer("/", "-", "\\", "-")

// SafeName 返回实际写入磁盘的文件名：路径分隔符替换为 -，缺少扩展名时补上 .tm2。
// 两个标签名经 SafeName 后相同即会写到同一个文件。
func SafeName(name string) string {
	name = nameReplacer.Replace(strings.TrimSpace(name))
	if !strings.HasSuffix(name, FileExt) {
		name += FileExt
	}
	return name
}

// WriteFile 将集合写入 dir/name，name 缺少扩展名时自动补上 .tm2，返回最终路径。
func WriteFile(c *Collection, dir, name string) (string, error) {
	data, err := Marshal(c)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = FileName(time.Now())
	}
	name = SafeName(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return path, nil
}
