package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/tm2label/fonts"
	"github.com/ByLCY/tm2label/layout"
	"github.com/ByLCY/tm2label/renderer"
)

// lineBreakWrap mirrors TILineBreak = 2.
const lineBreakWrap = 2

// ErrNoPages is returned when the collection has no documents.
var ErrNoPages = errors.New("canvasrenderer: collection has no documents")

// Renderer draws tm2 collections as a PDF preview via github.com/tdewolff/canvas.
// Every document becomes one page sized to its frame.
type Renderer struct {
	fontDirs  []string
	fontBlobs map[string][]byte

	fontMu   sync.Mutex
	families map[string]*canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	// FontDirs are searched (recursively) for a file named after TIFontName.
	FontDirs []string
	// Fonts maps a font name to its raw bytes and takes precedence over FontDirs.
	Fonts map[string][]byte
	// SystemFonts appends the platform font directories to FontDirs.
	SystemFonts bool
}

// NewRenderer creates a renderer with the given font sources.
func NewRenderer(opts Options) *Renderer {
	dirs := append([]string{}, opts.FontDirs...)
	if opts.SystemFonts {
		dirs = append(dirs, fonts.SystemDirs()...)
	}
	blobs := make(map[string][]byte, len(opts.Fonts))
	for name, data := range opts.Fonts {
		if name != "" && len(data) > 0 {
			blobs[name] = data
		}
	}
	return &Renderer{
		fontDirs:  dirs,
		fontBlobs: blobs,
		families:  map[string]*canvas.FontFamily{},
	}
}

// Render renders the collection into a PDF byte slice.
func (r *Renderer) Render(c *layout.Collection) ([]byte, error) {
	if c == nil || len(c.Documents) == 0 {
		return nil, ErrNoPages
	}

	var buf bytes.Buffer
	first := c.Documents[0].Frame
	writer := pdf.New(&buf, layout.ToMillimeters(first.Width()), layout.ToMillimeters(first.Height()), nil)
	writer.SetInfo(c.Documents[0].Name, "", "", "", "tm2label")
	for i, doc := range c.Documents {
		w := layout.ToMillimeters(doc.Frame.Width())
		h := layout.ToMillimeters(doc.Frame.Height())
		if i > 0 {
			writer.NewPage(w, h)
		}
		cv := canvas.New(w, h)
		ctx := canvas.NewContext(cv)
		ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，与 frame 一致

		if err := r.drawDocument(ctx, doc, w, h); err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.Identifier, err)
		}
		cv.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawDocument(ctx *canvas.Context, doc layout.Document, w, h float64) error {
	ctx.SetStrokeColor(color.Transparent)
	ctx.SetFillColor(toColor(doc.SettingsBackgroundColor))
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	margin := layout.ToMillimeters(doc.SettingsMargin)
	for _, d := range doc.Drawers {
		switch el := d.(type) {
		case *layout.TextDrawer:
			if err := r.drawText(ctx, el, margin); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported drawer type %q", d.DrawerType())
		}
	}
	return nil
}

func (r *Renderer) drawText(ctx *canvas.Context, t *layout.TextDrawer, margin float64) error {
	family, err := r.family(t.TIFontName)
	if err != nil {
		return err
	}
	style := canvas.FontRegular
	if t.TIBold {
		style = canvas.FontBold
	}
	if t.TIItalic {
		style |= canvas.FontItalic
	}
	// TIFontSize 单位为 pt，canvas 的字号同为 pt。
	face := family.Face(t.TIFontSize, toColor(t.TIColor), style, canvas.FontNormal)

	x := margin + layout.ToMillimeters(t.Frame.X())
	y := margin + layout.ToMillimeters(t.Frame.Y())
	width := layout.ToMillimeters(t.Frame.Width())

	align := canvas.Left
	anchor := x
	switch t.TIAlignment {
	case 1:
		align, anchor = canvas.Center, x+width/2
	case 2:
		align, anchor = canvas.Right, x+width
	}

	metrics := face.Metrics()
	cursor := y
	for _, line := range wrapText(t.TIText, width, t.TILineBreak == lineBreakWrap, face.TextWidth) {
		ctx.DrawText(anchor, cursor+metrics.Ascent, canvas.NewTextLine(face, line, align))
		cursor += metrics.LineHeight
	}
	return nil
}

// family loads (and caches) the font family for name: injected bytes first,
// then the configured directories.
func (r *Renderer) family(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if f, ok := r.families[name]; ok {
		return f, nil
	}
	data, ok := r.fontBlobs[name]
	if !ok {
		var err error
		data, _, err = fonts.Locate(name, r.fontDirs)
		if err != nil {
			return nil, err
		}
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	r.families[name] = family
	return family, nil
}

func toColor(c layout.Color) color.Color {
	return canvas.RGBA(c[0], c[1], c[2], c[3])
}
