package layout

// 该文件定义 tm2 文档结构。字段名与顺序需与目标应用的文件格式逐字一致，不要改动 json tag。

// Color 为 (r, g, b, alpha)，每个分量取值 [0,1]。
type Color [4]float64

var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
)

// IgnoreFrame 用于 tapeTapeFrame，表示不限定区域。
var IgnoreFrame = Frame{0, 0, 0, 0}

// Collection 是最终序列化为 .tm2 文件的根对象。
type Collection struct {
	Documents []Document `json:"documents"`
}

// Document 描述一条标签：纸带设置、边距与有序的绘制元素。
// Drawers 的顺序即绘制顺序，原样保留。
type Document struct {
	MultiplePage                bool     `json:"MultiplePage"`
	SettingsAutoLength          bool     `json:"SettingsAutoLength"`
	SettingsBackgroundColor     Color    `json:"SettingsBackgroundColor"`
	SettingsBackgroundColorName string   `json:"SettingsBackgroundColorName"`
	SettingsForegroundColor     Color    `json:"SettingsForegroundColor"`
	SettingsForegroundColorName string   `json:"SettingsForegroundColorName"`
	SettingsMargin              float64  `json:"SettingsMargin"`
	SettingsTapeVertical        bool     `json:"SettingsTapeVertical"`
	SettingsTapeWidth           float64  `json:"SettingsTapeWidth"`
	Drawers                     []Drawer `json:"drawers"`
	Frame                       Frame    `json:"frame"`
	Identifier                  string   `json:"identifier"`
	Name                        string   `json:"name"`
}

// Drawer 是可绘制元素的变体集合，目前只有 text。
type Drawer interface {
	DrawerType() string
	DrawerID() string
	DrawerFrame() Frame
}

// TextDrawer 对应 type = "text" 的绘制元素。
type TextDrawer struct {
	BILineStyle         int        `json:"BILineStyle"`
	BILineThickness     int        `json:"BILineThickness"`
	BILineWidhValue     float64    `json:"BILineWidhValue"` // 原格式即为此拼写
	BILineWidth         int        `json:"BILineWidth"`
	BIType              int        `json:"BIType"`
	Rotate              int        `json:"Rotate"`
	TIAlignment         int        `json:"TIAlignment"`
	TIBold              bool       `json:"TIBold"`
	TIColor             Color      `json:"TIColor"`
	TIFillMode          int        `json:"TIFillMode"`
	TIFontFace          int        `json:"TIFontFace"`
	TIFontName          string     `json:"TIFontName"`
	TIFontSize          float64    `json:"TIFontSize"`
	TIItalic            bool       `json:"TIItalic"`
	TILineBreak         int        `json:"TILineBreak"`
	TIText              string     `json:"TIText"`
	TIVerticalAlignment int        `json:"TIVerticalAlignment"`
	FrameTop            bool       `json:"frameTop"`
	HasPlaceholder      bool       `json:"hasPlaceholder"`
	HoldAspect          bool       `json:"holdAspect"`
	Identifier          string     `json:"identifier"`
	IsaacIdentifier     string     `json:"isaacIdentifier"`
	SizePriority        bool       `json:"sizePriority"`
	TapeBackgroundColor Color      `json:"tapeBackgroundColor"`
	TapeForegroundColor Color      `json:"tapeForegroundColor"`
	TapeTapeFrame       Frame      `json:"tapeTapeFrame"`
	TapeVertical        bool       `json:"tapeVertical"`
	TextMargin          [2]float64 `json:"textMargin"`
	TextVertical        bool       `json:"textVertical"`
	Type                string     `json:"type"`
	Frame               Frame      `json:"frame"`
}

func (t *TextDrawer) DrawerType() string { return t.Type }
func (t *TextDrawer) DrawerID() string   { return t.Identifier }
func (t *TextDrawer) DrawerFrame() Frame { return t.Frame }

// TapeProfile 描述一种纸带介质，单位 mm。
type TapeProfile struct {
	Name          string  `json:"name"`
	Width         float64 `json:"width"`
	PrintableArea float64 `json:"printableArea"`
}
