package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// This file defines the millimeter -> device unit conversion used by every
// frame and margin written into a tm2 document.

// Device units are pixels at a fixed logical resolution of 72 per inch.
const (
	DPI      = 72.0
	InchAsMM = 25.4
)

// ToDeviceUnits converts a physical length in millimeters to device units.
// No rounding is applied.
func ToDeviceUnits(mm float64) float64 { return mm * DPI / InchAsMM }

// ToMillimeters is the inverse of ToDeviceUnits.
func ToMillimeters(device float64) float64 { return device * InchAsMM / DPI }

// Frame is (x, y, width, height) in device units, relative to the owning
// document's origin. It encodes as a 4-element JSON array.
type Frame [4]float64

func (f Frame) X() float64      { return f[0] }
func (f Frame) Y() float64      { return f[1] }
func (f Frame) Width() float64  { return f[2] }
func (f Frame) Height() float64 { return f[3] }

// BuildFrame converts a millimeter box into a device-unit Frame, keeping the
// (x, y, width, height) order.
func BuildFrame(x, y, w, h float64) Frame {
	return Frame{ToDeviceUnits(x), ToDeviceUnits(y), ToDeviceUnits(w), ToDeviceUnits(h)}
}

// Unit represents the original unit of a length value as written by the user.
type Unit int

const (
	UnitMM     Unit = iota // millimeters (default for bare numbers)
	UnitCM                 // centimeters
	UnitIN                 // inches
	UnitPT                 // points
	UnitDevice             // tm2 device units
)

// String returns the suffix used when parsing.
func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	case UnitDevice:
		return "dev"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// MM returns the length in millimeters.
func (l Length) MM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * InchAsMM
	case UnitPT:
		// 1pt == 1/72in, the same scale as device units
		return ToMillimeters(l.Value)
	case UnitDevice:
		return ToMillimeters(l.Value)
	default:
		return l.Value
	}
}

// Device returns the length in device units.
func (l Length) Device() float64 {
	if l.Unit == UnitPT || l.Unit == UnitDevice {
		return l.Value
	}
	return ToDeviceUnits(l.MM())
}

// ParseLength parses strings like "1", "0.5mm", "1.2cm", "0.1in", "2.8pt".
// Bare numbers are millimeters.
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("%w: empty length", ErrInvalidGeometry)
	}
	unit := UnitMM
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"dev", UnitDevice}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: %q is not a length", ErrInvalidGeometry, value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Length{}, fmt.Errorf("%w: %q is not finite", ErrInvalidGeometry, value)
	}
	return Length{Value: f, Unit: unit}, nil
}
