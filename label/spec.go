// Package label turns user-facing label parameters (a LAN cable description
// or free text) into layout.Options.
package label

import (
	"fmt"
	"strings"

	"github.com/ByLCY/tm2label/binding"
	"github.com/ByLCY/tm2label/layout"
)

// Kind selects how the label body is produced.
type Kind string

const (
	KindLAN   Kind = "lan"
	KindPlain Kind = "plain"
)

// ParseKind accepts "lan" or "plain" in any case.
func ParseKind(s string) (Kind, error) {
	switch v := Kind(strings.ToLower(strings.TrimSpace(s))); v {
	case KindLAN, KindPlain:
		return v, nil
	}
	return "", fmt.Errorf("%w: type must be lan or plain, got %q", ErrInvalidParam, s)
}

// DefaultTape is used when a spec does not name a tape.
const DefaultTape = "SV36KN"

// Spec describes one label to build.
type Spec struct {
	Name       string  `json:"name,omitempty"`
	Kind       Kind    `json:"type"`
	LAN        LAN     `json:"lan"`
	Text       string  `json:"text,omitempty"`
	Tape       string  `json:"tape"`
	AutoLength bool    `json:"isAutoLength"`
	Margin     float64 `json:"margin"`
}

// DefaultSpec mirrors what the download button has always sent:
// a LAN label on SV36KN, auto length, 1mm margin.
func DefaultSpec() Spec {
	return Spec{
		Kind:       KindLAN,
		LAN:        DefaultLAN(),
		Tape:       DefaultTape,
		AutoLength: true,
		Margin:     1,
	}
}

// Body returns the label text. For plain labels with data, every ${path}
// must resolve.
func (s Spec) Body(data any) (string, error) {
	switch s.Kind {
	case KindLAN, "":
		if err := s.LAN.Validate(); err != nil {
			return "", err
		}
		return s.LAN.BodyText(), nil
	case KindPlain:
		if data == nil {
			return s.Text, nil
		}
		return binding.Strict(s.Text, data)
	default:
		return "", fmt.Errorf("%w: unknown label type %q", ErrInvalidParam, s.Kind)
	}
}

// WithTape returns s with Tape set to tape when s leaves it empty.
// Label files and workbooks leave Tape empty when the tape is not written,
// so the caller's configured default applies.
func (s Spec) WithTape(tape string) Spec {
	if strings.TrimSpace(s.Tape) == "" {
		s.Tape = tape
	}
	return s
}

// Options converts the spec into builder input. An empty Tape means DefaultTape.
func (s Spec) Options(data any) (layout.Options, error) {
	body, err := s.Body(data)
	if err != nil {
		return layout.Options{}, err
	}
	tape := s.Tape
	if tape == "" {
		tape = DefaultTape
	}
	return layout.Options{
		IsAutoLength: s.AutoLength,
		Margin:       s.Margin,
		Text:         body,
		Tape:         tape,
	}, nil
}

// Build is a shortcut for Options followed by b.Build.
func (s Spec) Build(b *layout.Builder, data any) (*layout.Collection, error) {
	opts, err := s.Options(data)
	if err != nil {
		return nil, err
	}
	coll, err := b.Build(opts)
	if err != nil {
		if s.Name != "" {
			return nil, fmt.Errorf("label %s: %w", s.Name, err)
		}
		return nil, err
	}
	return coll, nil
}
