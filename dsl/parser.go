package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		// 数字后可直接跟字母：1mm、0.2cm、5e、6A
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:[A-Za-z][A-Za-z0-9_]*)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}:;,]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// File is the root AST node of a label file: a list of label blocks.
type File struct {
	Labels []*Label `parser:"@@*"`
}

// Label is one `label <name> { ... }` block.
type Label struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  Name           `parser:"'label' @(Ident | String)"`
	Items []*Item        `parser:"'{' @@* '}'"`
}

// Item is either a nested `lan { ... }` block or a `key: value` property.
type Item struct {
	LAN      *LANBlock `parser:"  @@"`
	Property *Property `parser:"| @@"`
}

// LANBlock groups the cable parameters.
type LANBlock struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Properties []*Property    `parser:"'lan' '{' @@* '}'"`
}

// Property uses colon syntax, optionally terminated by ';' or ','.
type Property struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident ':'"`
	Value *Value         `parser:"@@ (';' | ',')?"`
}

// Value is a string, number (with an optional unit or letter suffix such as
// 1mm or 6A), boolean or bare word.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Bool   *Boolean       `parser:"| @('true' | 'false')"`
	Ident  *string        `parser:"| @Ident"`
}

// Raw returns the value as text, the way it would be typed into the form.
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Bool != nil:
		return strconv.FormatBool(bool(*v.Bool))
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// Name is a label name written either as a bare identifier or a quoted string.
type Name string

// Capture implements participle.Capture.
func (n *Name) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("label name capture requires value")
	}
	v := values[0]
	if len(v) > 0 && v[0] == '"' {
		unquoted, err := strconv.Unquote(v)
		if err != nil {
			return err
		}
		v = unquoted
	}
	*n = Name(v)
	return nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Boolean captures true/false keywords.
type Boolean bool

// Capture implements participle.Capture.
func (b *Boolean) Capture(values []string) error {
	*b = values[0] == "true"
	return nil
}

// Parse parses a label file from an io.Reader.
func Parse(r io.Reader) (*File, error) {
	return fileParser.Parse("", r)
}

// ParseString parses label file content from a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}
