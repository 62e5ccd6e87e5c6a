package layout

import (
	"fmt"
	"math"
	"sort"
)

const (
	// FontName 与 FontSize 为 text 元素的固定字体设置。
	FontName = "SourceCodePro-Regular"
	FontSize = 6

	// DocumentName 为生成文档的显示名。
	DocumentName = "Tape"

	// lineBreakWrap 对应 TILineBreak = 2（自动折行）。
	lineBreakWrap = 2
)

// 固定几何（mm）。文本框不随文本长度或纸带宽度变化。
const (
	documentMarginMM = 0.5
	textWidthMM      = 12.0
	textHeightMM     = 13.0
	documentWidthMM  = 12.0
	documentHeightMM = 30.0
)

var tapes = map[string]TapeProfile{
	"SV36KN": {Name: "SV36KN", Width: 36, PrintableArea: 76.8},
}

// LookupTape 按名称查找纸带规格，未知名称返回 ErrUnknownTapeProfile。
func LookupTape(name string) (TapeProfile, error) {
	tape, ok := tapes[name]
	if !ok {
		return TapeProfile{}, fmt.Errorf("%w: %q", ErrUnknownTapeProfile, name)
	}
	return tape, nil
}

// TapeNames 返回已知纸带名称（按字典序）。
func TapeNames() []string {
	names := make([]string, 0, len(tapes))
	for name := range tapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builder 把 Options 转换成 Collection。Builder 本身不保存跨调用状态，可并发使用。
type Builder struct {
	ids IDSource
}

// NewBuilder 创建 Builder，ids 为 nil 时使用 DefaultIDSource。
func NewBuilder(ids IDSource) *Builder {
	if ids == nil {
		ids = DefaultIDSource
	}
	return &Builder{ids: ids}
}

var defaultBuilder = NewBuilder(nil)

// Build 使用默认标识源构建文档集合。
func Build(opts Options) (*Collection, error) { return defaultBuilder.Build(opts) }

// DrawText 使用默认标识源创建 text 元素。
func DrawText(text string) *TextDrawer { return defaultBuilder.DrawText(text) }

// DrawText 创建一个未设置 frame 的 text 元素，样式均为固定值；text 不做任何校验。
func (b *Builder) DrawText(text string) *TextDrawer {
	return &TextDrawer{
		BILineStyle:         1,
		BILineThickness:     0,
		BILineWidhValue:     0.7,
		BILineWidth:         0,
		BIType:              0,
		Rotate:              1,
		TIAlignment:         0,
		TIBold:              false,
		TIColor:             Black,
		TIFillMode:          0,
		TIFontFace:          1,
		TIFontName:          FontName,
		TIFontSize:          FontSize,
		TIItalic:            false,
		TILineBreak:         lineBreakWrap,
		TIText:              text,
		TIVerticalAlignment: 0,
		FrameTop:            false,
		HasPlaceholder:      false,
		HoldAspect:          false,
		Identifier:          b.ids(),
		IsaacIdentifier:     "",
		SizePriority:        true,
		TapeBackgroundColor: White,
		TapeForegroundColor: Black,
		TapeTapeFrame:       IgnoreFrame,
		TapeVertical:        false,
		TextMargin:          [2]float64{0, 0},
		TextVertical:        false,
		Type:                "text",
	}
}

// Build 根据 Options 生成只含一个文档的集合。
// 要么返回完整的集合，要么返回错误，不存在部分成功。
//
// opts.Margin 会被校验，但写入文件的 SettingsMargin 固定为 0.5mm。
func (b *Builder) Build(opts Options) (*Collection, error) {
	tape, err := LookupTape(opts.Tape)
	if err != nil {
		return nil, err
	}
	if err := validateLength("margin", opts.Margin); err != nil {
		return nil, err
	}

	text := b.DrawText(opts.Text)
	text.Frame = BuildFrame(0, 0, textWidthMM, textHeightMM)

	doc := Document{
		MultiplePage:                false,
		SettingsAutoLength:          opts.IsAutoLength,
		SettingsBackgroundColor:     White,
		SettingsBackgroundColorName: "白",
		SettingsForegroundColor:     Black,
		SettingsForegroundColorName: "黒",
		SettingsMargin:              ToDeviceUnits(documentMarginMM),
		SettingsTapeVertical:        false,
		SettingsTapeWidth:           tape.Width,
		Drawers:                     []Drawer{text},
		Frame:                       BuildFrame(0, 0, documentWidthMM, documentHeightMM),
		Identifier:                  b.ids(),
		Name:                        DocumentName,
	}

	return &Collection{Documents: []Document{doc}}, nil
}

func validateLength(field string, mm float64) error {
	switch {
	case math.IsNaN(mm) || math.IsInf(mm, 0):
		return fmt.Errorf("%w: %s is not finite", ErrInvalidGeometry, field)
	case mm < 0:
		return fmt.Errorf("%w: %s must not be negative (got %gmm)", ErrInvalidGeometry, field, mm)
	}
	return nil
}
