package layout

import "github.com/google/uuid"

// Options 是一次构建所需的全部输入，由调用方（表单、标签文件、表格）一次性给出。
type Options struct {
	IsAutoLength bool    `json:"isAutoLength"`
	Margin       float64 `json:"margin"` // mm，目前只校验不写入，见 Build
	Text         string  `json:"text"`
	Tape         string  `json:"tape"`
}

// IDSource 每次调用返回一个新的唯一标识。
type IDSource func() string

// DefaultIDSource 生成随机 UUID (v4)。
func DefaultIDSource() string { return uuid.NewString() }
