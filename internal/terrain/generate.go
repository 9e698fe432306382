// Package terrain fills an empty map with a noise-shaped island so the editor
// has something to sculpt on first start.
package terrain

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"go-hex-sculptor/internal/config"
	"go-hex-sculptor/pkg/hexmap"
)

// Band assigns Material to tiles whose normalized height is below Below.
type Band struct {
	Below    float64
	Material hexmap.MaterialID
}

// DefaultBands maps normalized height to the default palette, lowest first.
var DefaultBands = []Band{
	{0.18, "water"},
	{0.30, "sand"},
	{0.65, "grass"},
	{0.85, "rock"},
	{math.Inf(1), "snow"},
}

// PaletteBands keeps the DefaultBands whose material is in the settings palette.
// A dropped band's range goes to the next kept one. When the palette has none of
// them, every tile gets the default material.
func PaletteBands(s *config.Settings) []Band {
	var bands []Band
	for _, b := range DefaultBands {
		if _, ok := s.Material(b.Material); ok {
			bands = append(bands, b)
		}
	}
	if len(bands) == 0 {
		return []Band{{Below: math.Inf(1), Material: s.DefaultMaterial}}
	}
	bands[len(bands)-1].Below = math.Inf(1)
	return bands
}

// Generate adds a hex island of def.Radius around the origin to m and returns the number of tiles placed.
// Elevations are multiples of def.Step in [0, def.MaxHeight]. Existing tiles in range are overwritten.
func Generate(m *hexmap.TileMap, def config.GenerateDef, bands []Band) int {
	seed := def.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	if len(bands) == 0 {
		bands = DefaultBands
	}
	noise := opensimplex.NewNormalized(seed)

	// от центра к краю, кольцо за кольцом
	placed := 0
	for radius := 0; radius <= def.Radius; radius++ {
		for h := range hexmap.Ring(hexmap.Hex{}, radius) {
			n := Height(noise, h, def)
			elev := quantize(n*def.MaxHeight, def.Step)
			m.Tiles.Add(h, hexmap.NewTile(elev, bandFor(bands, n)))
			placed++
		}
	}
	return placed
}

// Height returns the normalized height at h: layered noise with a falloff towards the island edge.
func Height(noise opensimplex.Noise, h hexmap.Hex, def config.GenerateDef) float64 {
	// та же раскладка, что и в HexToWorld, только в единицах гекса
	x := 1.5 * float64(h.Q)
	y := hexmap.Sqrt3 * (float64(h.R) + float64(h.Q)/2)

	n := octaveNoise(noise, x, y, 4, def.Scale, 0.5)
	if def.Radius > 0 {
		d := float64(h.Distance(hexmap.Hex{})) / float64(def.Radius)
		n *= max(0, 1-math.Pow(d, 3))
	}
	return min(max(n, 0), 1)
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

func quantize(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

func bandFor(bands []Band, n float64) hexmap.MaterialID {
	for _, b := range bands {
		if n < b.Below {
			return b.Material
		}
	}
	return bands[len(bands)-1].Material
}
