package label

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidParam is returned for label parameters that cannot be rendered.
var ErrInvalidParam = errors.New("label: invalid parameter")

// Shield is the twisted-pair shielding printed on LAN cable labels.
type Shield string

const (
	UTP Shield = "UTP" // Unshielded Twisted Pair
	STP Shield = "STP" // Shielded Twisted Pair
)

// Core is the conductor type of a LAN cable.
type Core string

const (
	Solid   Core = "SOLID"   // 単線
	Twisted Core = "TWISTED" // より線
)

// LAN holds the parameters of a network cable label.
// Length and Category are kept as typed by the user ("5", "0.5", "6A").
type LAN struct {
	Length   string `json:"length"`
	Category string `json:"category"`
	Shielded Shield `json:"shielded"`
	Core     Core   `json:"core"`
}

// DefaultLAN returns the parameters a fresh form starts with.
func DefaultLAN() LAN {
	return LAN{Length: "5", Category: "6", Shielded: UTP, Core: Solid}
}

// ParseShield accepts "utp"/"stp" in any case.
func ParseShield(s string) (Shield, error) {
	switch v := Shield(strings.ToUpper(strings.TrimSpace(s))); v {
	case UTP, STP:
		return v, nil
	}
	return "", fmt.Errorf("%w: shielded must be UTP or STP, got %q", ErrInvalidParam, s)
}

// ParseCore accepts "solid"/"twisted" in any case.
func ParseCore(s string) (Core, error) {
	switch v := Core(strings.ToUpper(strings.TrimSpace(s))); v {
	case Solid, Twisted:
		return v, nil
	}
	return "", fmt.Errorf("%w: core must be SOLID or TWISTED, got %q", ErrInvalidParam, s)
}

// Validate reports the first invalid field.
func (l LAN) Validate() error {
	if strings.TrimSpace(l.Length) == "" {
		return fmt.Errorf("%w: length is empty", ErrInvalidParam)
	}
	if strings.TrimSpace(l.Category) == "" {
		return fmt.Errorf("%w: category is empty", ErrInvalidParam)
	}
	if _, err := ParseShield(string(l.Shielded)); err != nil {
		return err
	}
	if _, err := ParseCore(string(l.Core)); err != nil {
		return err
	}
	return nil
}

// BodyText renders the two-line label body, e.g.
//
//	5m  CAT6
//	UTP SOLID
//
// The first line is padded so "CAT" starts after the shield column; the
// padding never goes below zero for long lengths.
func (l LAN) BodyText() string {
	pad := utf8.RuneCountInString(string(l.Shielded)) - (utf8.RuneCountInString(l.Length) + len("m"))
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%sm %sCAT%s\n%s %s", l.Length, strings.Repeat(" ", pad), l.Category, l.Shielded, l.Core)
}
