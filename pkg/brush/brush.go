// Package brush computes the cells a brush stroke touches and the preview layers drawn for it.
package brush

import (
	"iter"

	"go-hex-sculptor/pkg/hexmap"
)

const (
	MinSize = 1
	MaxSize = 10
)

// ClampSize limits a brush size to [MinSize, MaxSize].
func ClampSize(size int) int {
	return min(max(size, MinSize), MaxSize)
}

// RadiusForSize converts a brush size (1 = single tile) to a hex radius.
func RadiusForSize(size int) int {
	return ClampSize(size) - 1
}

// Area returns how many cells a brush of the given size covers.
func Area(size int) int {
	return hexmap.RangeCount(RadiusForSize(size))
}

// ComputeBrush yields every coordinate covered by a brush of the given radius.
// Validating radius is the caller's job; see RadiusForSize.
func ComputeBrush(center hexmap.Hex, radius int) iter.Seq[hexmap.Hex] {
	return hexmap.CoordinateRange(center, radius)
}

// PreviewLayers places coords at two heights: the current layer at base and the
// layer about to be painted at base+offset.
func PreviewLayers(coords iter.Seq[hexmap.Hex], base, offset float64) (current, next []hexmap.HexPosition) {
	for h := range coords {
		current = append(current, hexmap.HexPosition{Hex: h, Elevation: base})
		next = append(next, hexmap.HexPosition{Hex: h, Elevation: base + offset})
	}
	return current, next
}

// Occupied yields the coordinates of coords that hold a tile, at that tile's elevation.
func Occupied(coords iter.Seq[hexmap.Hex], store *hexmap.TileStore) []hexmap.HexPosition {
	var out []hexmap.HexPosition
	for h := range coords {
		if tile, ok := store.TryGet(h); ok {
			out = append(out, tile.Position())
		}
	}
	return out
}
