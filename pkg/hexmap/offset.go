package hexmap

import (
	"fmt"
	"strings"
)

// Offset is a column/row address in the "odd-q" layout: odd columns are shoved down half a tile.
type Offset struct {
	Col, Row int
}

// HexToOffset converts axial coordinates to odd-q offset coordinates.
// q-(q&1) is always even, so the division is exact for negative columns as well.
func HexToOffset(h Hex) Offset {
	return Offset{
		Col: h.Q,
		Row: h.R + (h.Q-(h.Q&1))/2,
	}
}

// OffsetToHex is the inverse of HexToOffset.
func OffsetToHex(o Offset) Hex {
	return Hex{
		Q: o.Col,
		R: o.Row - (o.Col-(o.Col&1))/2,
	}
}


// CoordFormat selects how coordinates are shown in the overlay.
type CoordFormat int

const (
	FormatAxial CoordFormat = iota
	FormatOffsetOddQ
)

// Format renders h as "(q, r)" or "(col, row)".
func (f CoordFormat) Format(h Hex) string {
	if f == FormatOffsetOddQ {
		o := HexToOffset(h)
		return fmt.Sprintf("(%d, %d)", o.Col, o.Row)
	}
	return fmt.Sprintf("(%d, %d)", h.Q, h.R)
}

func (f CoordFormat) String() string {
	switch f {
	case FormatAxial:
		return "axial"
	case FormatOffsetOddQ:
		return "offset-odd-q"
	}
	return fmt.Sprintf("CoordFormat(%d)", int(f))
}

// Next cycles to the other format.
func (f CoordFormat) Next() CoordFormat {
	if f == FormatAxial {
		return FormatOffsetOddQ
	}
	return FormatAxial
}

// ParseCoordFormat accepts the names produced by String.
func ParseCoordFormat(s string) (CoordFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "axial", "":
		return FormatAxial, nil
	case "offset-odd-q", "offset", "oddq":
		return FormatOffsetOddQ, nil
	}
	return FormatAxial, fmt.Errorf("unknown coordinate format %q", s)
}
