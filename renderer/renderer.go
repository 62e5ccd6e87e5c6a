package renderer

import "github.com/ByLCY/tm2label/layout"

// Renderer 将文档集合输出为预览文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(c *layout.Collection) ([]byte, error)
}
