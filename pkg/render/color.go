// pkg/render/color.go
package render

import (
	"image/color"

	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/pkg/hexmap"
)

// Palette maps material ids to tile colors.
type Palette map[hexmap.MaterialID]color.RGBA

// NewPalette builds a palette from the configured materials.
func NewPalette(defs []config.MaterialDef) Palette {
	p := make(Palette, len(defs))
	for _, d := range defs {
		p[hexmap.MaterialID(d.ID)] = d.Color
	}
	return p
}

// Color returns the material's color, or config.MissingMaterial for unknown ids.
func (p Palette) Color(id hexmap.MaterialID) color.RGBA {
	if c, ok := p[id]; ok {
		return c
	}
	return config.MissingMaterial
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// TextColorFor picks a label color readable on top of background.
func TextColorFor(background color.RGBA) color.RGBA {
	if (int(background.R)+int(background.G)+int(background.B))/3 > 128 {
		return config.TextDarkColor
	}
	return config.TextLightColor
}
