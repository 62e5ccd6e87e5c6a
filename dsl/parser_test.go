package dsl_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/tm2label/dsl"
	"github.com/ByLCY/tm2label/label"
	"github.com/ByLCY/tm2label/layout"
)

const sampleDSL = `
// patch panel row A
label patch-01 {
  tape: SV36KN
  auto-length: true
  margin: 1mm
  lan { length: 5  category: 6  shielded: UTP  core: SOLID }
}

# free text with a placeholder
label "rack door" {
  text: "Rack ${rack.id}";
  margin: 0.2cm
  auto-length: false
}

/* defaults only */
label bare {}
`

func TestParseFile(t *testing.T) {
	file, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(file.Labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(file.Labels))
	}

	first := file.Labels[0]
	if first.Name != "patch-01" {
		t.Fatalf("expected name patch-01, got %s", first.Name)
	}
	if len(first.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(first.Items))
	}
	lan := first.Items[3].LAN
	if lan == nil || len(lan.Properties) != 4 {
		t.Fatalf("lan block missing or incomplete: %+v", first.Items[3])
	}
	if got := lan.Properties[2].Value.Raw(); got != "UTP" {
		t.Fatalf("expected shielded UTP, got %s", got)
	}
	if got := first.Items[1].Property.Value; got.Bool == nil || !bool(*got.Bool) {
		t.Fatalf("auto-length should parse as boolean, got %+v", got)
	}
	if got := first.Items[2].Property.Value.Raw(); got != "1mm" {
		t.Fatalf("margin raw = %q", got)
	}

	second := file.Labels[1]
	if second.Name != "rack door" {
		t.Fatalf("quoted name not unquoted: %q", second.Name)
	}
	if got := second.Items[0].Property.Value.Raw(); got != "Rack ${rack.id}" {
		t.Fatalf("text = %q", got)
	}
	if second.Pos.Line != 11 {
		t.Fatalf("expected second label on line 11, got %d", second.Pos.Line)
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		`label {}`,
		`label a { tape SV36KN }`,
		`label a { lan { length: 5 }`,
		`label a { category 6A }`,
	} {
		if _, err := dsl.ParseString(src); err == nil {
			t.Fatalf("expected parse error for %q", src)
		}
	}
}

func TestCompile(t *testing.T) {
	file, err := dsl.Parse(strings.NewReader(sampleDSL))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	specs, err := dsl.Compile(file)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("expected 3 specs, got %d", len(specs))
	}

	lan := specs[0]
	if lan.Kind != label.KindLAN || lan.LAN.BodyText() != "5m  CAT6\nUTP SOLID" {
		t.Fatalf("unexpected lan spec %+v", lan)
	}
	if lan.Margin != 1 || !lan.AutoLength || lan.Tape != "SV36KN" {
		t.Fatalf("unexpected settings %+v", lan)
	}

	plain := specs[1]
	if plain.Kind != label.KindPlain || plain.Name != "rack door" {
		t.Fatalf("unexpected plain spec %+v", plain)
	}
	if plain.Margin != 2 || plain.AutoLength {
		t.Fatalf("margin 0.2cm should be 2mm and auto-length off, got %+v", plain)
	}
	body, err := plain.Body(map[string]any{"rack": map[string]any{"id": "R7"}})
	if err != nil || body != "Rack R7" {
		t.Fatalf("body = %q, %v", body, err)
	}

	bare := specs[2]
	if bare.Kind != label.KindLAN || bare.Tape != "" || bare.Margin != 1 {
		t.Fatalf("bare label should take defaults, got %+v", bare)
	}
}

func TestCompileErrors(t *testing.T) {
	cases := map[string]string{
		`label a {} label a {}`:                           "重复定义",
		`label a { colour: red }`:                         "未知属性",
		`label a { lan { speed: 10 } }`:                   "lan 块中未知属性",
		`label a { lan { shielded: FTP } }`:               "shielded must be UTP or STP",
		`label a { auto-length: maybe }`:                  "auto-length",
		`label a { text: "x" lan { length: 1 } }`:         "不能同时出现",
		`label a { lan { length: 1 } lan { length: 2 } }`: "lan 块重复",
		`label a { type: table }`:                         "type must be lan or plain",
	}
	for src, want := range cases {
		file, err := dsl.ParseString(src)
		if err != nil {
			t.Fatalf("parse %q failed: %v", src, err)
		}
		_, err = dsl.Compile(file)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("Compile(%q) error = %v, want containing %q", src, err, want)
		}
	}
}

func TestCompileBadMargin(t *testing.T) {
	file, err := dsl.ParseString(`label a { margin: x }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := dsl.Compile(file); !errors.Is(err, layout.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestCompileEmpty(t *testing.T) {
	file, err := dsl.ParseString("// nothing here\n")
	if err != nil {
		return
	}
	if _, err := dsl.Compile(file); err == nil {
		t.Fatalf("expected error for file without labels")
	}
}

func TestCompileCategorySuffix(t *testing.T) {
	cases := map[string]string{
		`label a { lan { length: 3 category: 5e } }`:  "3m  CAT5e\nUTP SOLID",
		`label a { lan { length: 10 category: 6A } }`: "10m CAT6A\nUTP SOLID",
		`label a { lan { length: 0.5 cat: "7" } }`:    "0.5m CAT7\nUTP SOLID",
	}
	for src, want := range cases {
		file, err := dsl.ParseString(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		specs, err := dsl.Compile(file)
		if err != nil {
			t.Fatalf("compile %q: %v", src, err)
		}
		if got := specs[0].LAN.BodyText(); got != want {
			t.Fatalf("%q: body = %q, want %q", src, got, want)
		}
	}
}

func TestCompileBadUnitSuffix(t *testing.T) {
	file, err := dsl.ParseString(`label a { margin: 1mx }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := dsl.Compile(file); !errors.Is(err, layout.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}
