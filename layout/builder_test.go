package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"
)

// seqIDs 是测试用的确定性标识源。
func seqIDs() IDSource {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func cableOptions() Options {
	return Options{IsAutoLength: true, Margin: 1, Text: "5m  CAT6", Tape: "SV36KN"}
}

func TestDrawTextKeepsText(t *testing.T) {
	b := NewBuilder(seqIDs())
	for _, text := range []string{"", "5m  CAT6\nUTP SOLID", "単線(Solid) より線", strings.Repeat("x", 4096)} {
		d := b.DrawText(text)
		if d.TIText != text {
			t.Fatalf("TIText mismatch: got=%q want=%q", d.TIText, text)
		}
		if d.Type != "text" || d.DrawerType() != "text" {
			t.Fatalf("unexpected drawer type %q", d.Type)
		}
		if d.Frame != (Frame{}) {
			t.Fatalf("DrawText 不应设置 frame，实际 %v", d.Frame)
		}
	}
}

func TestDrawTextStyling(t *testing.T) {
	d := NewBuilder(seqIDs()).DrawText("a")
	if d.TIFontName != "SourceCodePro-Regular" || d.TIFontSize != 6 {
		t.Fatalf("font mismatch: %s %g", d.TIFontName, d.TIFontSize)
	}
	if d.TIColor != Black || d.TapeForegroundColor != Black || d.TapeBackgroundColor != White {
		t.Fatalf("color mismatch: %+v", d)
	}
	if d.TIAlignment != 0 || d.TILineBreak != 2 {
		t.Fatalf("alignment/line-break mismatch: %d %d", d.TIAlignment, d.TILineBreak)
	}
	if d.TIBold || d.TIItalic || d.TextVertical || d.HasPlaceholder || d.HoldAspect || !d.SizePriority {
		t.Fatalf("flag mismatch: %+v", d)
	}
	if d.Identifier != "id-1" {
		t.Fatalf("identifier should come from the source, got %q", d.Identifier)
	}
}

func TestBuildCableLabel(t *testing.T) {
	coll, err := NewBuilder(seqIDs()).Build(cableOptions())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(coll.Documents) != 1 {
		t.Fatalf("expected exactly one document, got %d", len(coll.Documents))
	}
	doc := coll.Documents[0]
	if doc.SettingsTapeWidth != 36 {
		t.Fatalf("SettingsTapeWidth = %g, want 36", doc.SettingsTapeWidth)
	}
	if len(doc.Drawers) != 1 {
		t.Fatalf("expected one drawer, got %d", len(doc.Drawers))
	}
	text, ok := doc.Drawers[0].(*TextDrawer)
	if !ok {
		t.Fatalf("drawer is %T, want *TextDrawer", doc.Drawers[0])
	}
	if text.TIText != "5m  CAT6" {
		t.Fatalf("TIText = %q", text.TIText)
	}
	if text.Frame != BuildFrame(0, 0, 12, 13) {
		t.Fatalf("text frame = %v", text.Frame)
	}
	if doc.Frame != BuildFrame(0, 0, 12, 30) {
		t.Fatalf("document frame = %v", doc.Frame)
	}
	if math.Abs(doc.SettingsMargin-ToDeviceUnits(0.5)) > 1e-12 {
		t.Fatalf("SettingsMargin = %g", doc.SettingsMargin)
	}
	if !doc.SettingsAutoLength || doc.MultiplePage || doc.SettingsTapeVertical {
		t.Fatalf("flags mismatch: %+v", doc)
	}
	if doc.SettingsBackgroundColorName != "白" || doc.SettingsForegroundColorName != "黒" {
		t.Fatalf("color names mismatch: %q %q", doc.SettingsBackgroundColorName, doc.SettingsForegroundColorName)
	}
	if doc.Name != "Tape" {
		t.Fatalf("name = %q", doc.Name)
	}
	if doc.Identifier == text.Identifier {
		t.Fatalf("document and drawer share identifier %q", doc.Identifier)
	}
}

func TestBuildMarginIsNotApplied(t *testing.T) {
	b := NewBuilder(seqIDs())
	opts := cableOptions()
	opts.Margin = 5
	coll, err := b.Build(opts)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if got := coll.Documents[0].SettingsMargin; math.Abs(got-ToDeviceUnits(0.5)) > 1e-12 {
		t.Fatalf("SettingsMargin should stay 0.5mm, got %g", got)
	}
}

func TestBuildUnknownTape(t *testing.T) {
	opts := cableOptions()
	opts.Tape = "UNKNOWN"
	coll, err := Build(opts)
	if !errors.Is(err, ErrUnknownTapeProfile) {
		t.Fatalf("expected ErrUnknownTapeProfile, got %v", err)
	}
	if coll != nil {
		t.Fatalf("no collection expected on failure, got %+v", coll)
	}
	if !strings.Contains(err.Error(), "UNKNOWN") {
		t.Fatalf("error should name the tape: %v", err)
	}
}

func TestBuildInvalidMargin(t *testing.T) {
	for _, m := range []float64{-1, math.NaN(), math.Inf(1)} {
		opts := cableOptions()
		opts.Margin = m
		if _, err := Build(opts); !errors.Is(err, ErrInvalidGeometry) {
			t.Fatalf("margin %g: expected ErrInvalidGeometry, got %v", m, err)
		}
	}
}

// TestBuildShapeIsStable 两次构建除标识外结构完全一致，且标识互不相同。
func TestBuildShapeIsStable(t *testing.T) {
	a, err := Build(cableOptions())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	b, err := Build(cableOptions())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	ids := map[string]bool{}
	for _, c := range []*Collection{a, b} {
		doc := &c.Documents[0]
		text := doc.Drawers[0].(*TextDrawer)
		for _, id := range []string{doc.Identifier, text.Identifier} {
			if id == "" || ids[id] {
				t.Fatalf("identifier %q is empty or reused", id)
			}
			ids[id] = true
		}
		doc.Identifier = ""
		text.Identifier = ""
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("collections differ beyond identifiers:\n%+v\n%+v", a, b)
	}
}

func TestFramesNonNegative(t *testing.T) {
	coll, err := Build(cableOptions())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	doc := coll.Documents[0]
	frames := []Frame{doc.Frame}
	for _, d := range doc.Drawers {
		frames = append(frames, d.DrawerFrame())
	}
	for _, f := range frames {
		for i, v := range f {
			if v < 0 {
				t.Fatalf("frame %v component %d is negative", f, i)
			}
		}
	}
}

func TestBuildConcurrent(t *testing.T) {
	const n = 32
	var wg sync.WaitGroup
	results := make([]*Collection, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Build(cableOptions())
		}(i)
	}
	wg.Wait()
	seen := map[string]bool{}
	for i := range results {
		if errs[i] != nil {
			t.Fatalf("build %d error: %v", i, errs[i])
		}
		id := results[i].Documents[0].Identifier
		if seen[id] {
			t.Fatalf("duplicate document identifier %q", id)
		}
		seen[id] = true
	}
}

func TestTapeNames(t *testing.T) {
	names := TapeNames()
	if len(names) == 0 || names[0] != "SV36KN" {
		t.Fatalf("unexpected tape names %v", names)
	}
	tape, err := LookupTape("SV36KN")
	if err != nil {
		t.Fatalf("LookupTape error: %v", err)
	}
	if tape.Width != 36 || tape.PrintableArea != 76.8 {
		t.Fatalf("unexpected tape %+v", tape)
	}
}

// TestMarshalKeys 校验输出 JSON 的键名与嵌套结构。
func TestMarshalKeys(t *testing.T) {
	coll, err := NewBuilder(seqIDs()).Build(cableOptions())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	data, err := Marshal(coll)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if strings.HasSuffix(string(data), "\n") {
		t.Fatalf("output must not end with newline")
	}

	var raw map[string][]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	docs := raw["documents"]
	if len(docs) != 1 {
		t.Fatalf("documents len = %d", len(docs))
	}
	docKeys := []string{
		"MultiplePage", "SettingsAutoLength", "SettingsBackgroundColor", "SettingsBackgroundColorName",
		"SettingsForegroundColor", "SettingsForegroundColorName", "SettingsMargin", "SettingsTapeVertical",
		"SettingsTapeWidth", "drawers", "frame", "identifier", "name",
	}
	for _, k := range docKeys {
		if _, ok := docs[0][k]; !ok {
			t.Fatalf("document key %q missing", k)
		}
	}
	if len(docs[0]) != len(docKeys) {
		t.Fatalf("document has %d keys, want %d", len(docs[0]), len(docKeys))
	}

	drawers := docs[0]["drawers"].([]any)
	drawer := drawers[0].(map[string]any)
	for _, k := range []string{"BILineWidhValue", "TIText", "TIColor", "tapeTapeFrame", "textMargin", "type", "frame", "isaacIdentifier"} {
		if _, ok := drawer[k]; !ok {
			t.Fatalf("drawer key %q missing", k)
		}
	}
	if color := drawer["TIColor"].([]any); len(color) != 4 || color[3].(float64) != 1 {
		t.Fatalf("TIColor should be 4 floats, got %v", color)
	}
	if frame := drawer["frame"].([]any); len(frame) != 4 {
		t.Fatalf("frame should be 4 floats, got %v", frame)
	}
	if !strings.Contains(string(data), `"SettingsBackgroundColorName":"白"`) {
		t.Fatalf("non-ASCII names must be written as UTF-8: %s", data)
	}
}

func TestMarshalNoHTMLEscape(t *testing.T) {
	opts := cableOptions()
	opts.Text = "<A&B>"
	coll, err := Build(opts)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	data, err := Marshal(coll)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !strings.Contains(string(data), `"TIText":"<A&B>"`) {
		t.Fatalf("text should not be HTML-escaped: %s", data)
	}
}
