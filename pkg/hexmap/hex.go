// pkg/hexmap/hex.go
package hexmap

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
)

// Hex представляет гекс в осевых координатах (Q, R).
// Hex is a plain value, so it works as a map key and compares with ==.
type Hex struct {
	Q, R int
}

// NeighborDirections defines the 6 possible directions from a hex, starting from East and going counter-clockwise.
var NeighborDirections = [6]Hex{
	{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
	{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
}

// S returns the implicit third cube coordinate.
func (h Hex) S() int {
	return -h.Q - h.R
}

// HexToWorld returns the world-space center of a tile on the XZ plane at the given elevation.
// Layout is flat-top; hexSize is the tile's full width, so the outer radius is hexSize/2.
func HexToWorld(h Hex, hexSize, elevation float64) mgl64.Vec3 {
	radius := hexSize / 2
	x := radius * (3.0 / 2.0 * float64(h.Q))
	z := radius * (Sqrt3/2*float64(h.Q) + Sqrt3*float64(h.R))
	return mgl64.Vec3{x, elevation, z}
}

// WorldToHex quantizes a world point to the hex that contains it. Y is ignored.
func WorldToHex(point mgl64.Vec3, hexSize float64) Hex {
	radius := hexSize / 2
	if radius <= 0 {
		return Hex{}
	}
	x, z := point.X(), point.Z()
	q := (2.0 / 3.0 * x) / radius
	r := (-1.0/3.0*x + Sqrt3/3.0*z) / radius
	return axialRound(q, r)
}

// Corners returns the six corner points of a flat-top hex around its center at the given elevation.
func Corners(h Hex, hexSize, elevation float64) [6]mgl64.Vec3 {
	center := HexToWorld(h, hexSize, elevation)
	radius := hexSize / 2
	var corners [6]mgl64.Vec3
	for i := range corners {
		angle := mgl64.DegToRad(60 * float64(i))
		corners[i] = mgl64.Vec3{
			center.X() + radius*cos(angle),
			elevation,
			center.Z() + radius*sin(angle),
		}
	}
	return corners
}

// Add возвращает сумму двух гексов
func (h Hex) Add(other Hex) Hex {
	return Hex{Q: h.Q + other.Q, R: h.R + other.R}
}

// Scale multiplies a hex vector by a scalar.
func (h Hex) Scale(factor int) Hex {
	return Hex{h.Q * factor, h.R * factor}
}

// Distance вычисляет расстояние между гексами
func (h Hex) Distance(to Hex) int {
	return Distance(h, to)
}

// Distance returns the number of steps between two hexes.
func Distance(a, b Hex) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

// CoordinateRange yields every hex within radius steps of center, center included.
// Order is q ascending, then r ascending. A radius r range holds 3r²+3r+1 hexes;
// a negative radius yields nothing. The sequence holds no state and can be ranged over again.
func CoordinateRange(center Hex, radius int) iter.Seq[Hex] {
	return func(yield func(Hex) bool) {
		for q := -radius; q <= radius; q++ {
			for r := max(-radius, -q-radius); r <= min(radius, -q+radius); r++ {
				if !yield(center.Add(Hex{Q: q, R: r})) {
					return
				}
			}
		}
	}
}

// RangeCount returns how many hexes CoordinateRange yields for radius.
func RangeCount(radius int) int {
	if radius < 0 {
		return 0
	}
	return 3*radius*radius + 3*radius + 1
}

// Ring yields the hexes exactly radius steps from center, walking counter-clockwise.
func Ring(center Hex, radius int) iter.Seq[Hex] {
	return func(yield func(Hex) bool) {
		if radius < 0 {
			return
		}
		if radius == 0 {
			yield(center)
			return
		}
		h := center.Add(NeighborDirections[4].Scale(radius))
		for side := 0; side < 6; side++ {
			for step := 0; step < radius; step++ {
				if !yield(h) {
					return
				}
				h = h.Add(NeighborDirections[side])
			}
		}
	}
}
