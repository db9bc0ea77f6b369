package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimension is a parsed size value. The IR itself stores dimensions as
// pre-formatted strings ("100px", "50%", "1fr", "auto"); this type is a
// convenience for callers that want to compute with them.
type Dimension struct {
	Unit  DimensionUnit
	Value float64
}

// DimensionUnit is the unit of a Dimension.
type DimensionUnit uint8

const (
	// UnitAuto sizes to content. It is also the fallback for any dimension
	// string that fails to parse.
	UnitAuto DimensionUnit = iota
	UnitPx
	UnitPercent
	UnitFr
)

// Auto returns the auto dimension.
func Auto() Dimension { return Dimension{Unit: UnitAuto} }

// Px returns a pixel dimension.
func Px(v float64) Dimension { return Dimension{Unit: UnitPx, Value: v} }

// Percent returns a percentage dimension.
func Percent(v float64) Dimension { return Dimension{Unit: UnitPercent, Value: v} }

// Fr returns a fractional (grid track) dimension.
func Fr(v float64) Dimension { return Dimension{Unit: UnitFr, Value: v} }

// String formats the dimension the way the IR serializes it.
func (d Dimension) String() string {
	switch d.Unit {
	case UnitPx:
		return formatNumber(d.Value) + "px"
	case UnitPercent:
		return formatNumber(d.Value) + "%"
	case UnitFr:
		return formatNumber(d.Value) + "fr"
	default:
		return "auto"
	}
}

// ParseDimension parses a dimension string. Parsing is deliberately lenient:
// anything unrecognized ("7xyz", "", garbage) falls back to auto rather than
// failing the document. Strictness belongs to the structural schema, not to
// scalar conversions.
func ParseDimension(s string) Dimension {
	s = strings.TrimSpace(s)
	if s == "" || s == "auto" {
		return Auto()
	}
	for _, u := range []struct {
		suffix string
		unit   DimensionUnit
	}{
		{"px", UnitPx},
		{"%", UnitPercent},
		{"fr", UnitFr},
	} {
		if strings.HasSuffix(s, u.suffix) {
			num := strings.TrimSuffix(s, u.suffix)
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return Auto()
			}
			return Dimension{Unit: u.unit, Value: v}
		}
	}
	return Auto()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Color is an RGBA color. The IR stores colors as "#RRGGBB" (or "#RRGGBBAA"
// when the alpha channel is not fully opaque); this type parses and formats
// that representation.
type Color struct {
	R, G, B, A uint8
}

// DefaultColor is the fallback for malformed color strings.
var DefaultColor = Color{A: 0xFF} // opaque black

// RGB returns a fully opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xFF} }

// String formats the color as the IR serializes it.
func (c Color) String() string {
	if c.A != 0xFF {
		return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA". Like ParseDimension it is
// lenient: malformed input yields DefaultColor, not an error.
func ParseColor(s string) Color {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return DefaultColor
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return DefaultColor
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return DefaultColor
	}
	c := Color{A: 0xFF}
	if len(hex) == 8 {
		c.A = uint8(v & 0xFF)
		v >>= 8
	}
	c.B = uint8(v & 0xFF)
	c.G = uint8((v >> 8) & 0xFF)
	c.R = uint8((v >> 16) & 0xFF)
	return c
}
