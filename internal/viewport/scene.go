package viewport

import (
	"math"

	"go-hex-sculptor/pkg/hexmap"

	"github.com/go-gl/mathgl/mgl64"
)

// Scene answers ray queries against a tile map through a camera.
type Scene struct {
	Camera *Camera
	Map    *hexmap.TileMap
}

// NewScene creates a scene over m.
func NewScene(cam *Camera, m *hexmap.TileMap) *Scene {
	return &Scene{Camera: cam, Map: m}
}

// IntersectHorizontalPlane returns where the ray through screen meets y = height.
func (s *Scene) IntersectHorizontalPlane(screen mgl64.Vec2, height float64) (mgl64.Vec3, bool) {
	origin, dir, ok := s.Camera.ScreenRay(screen)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return RayHorizontalPlane(origin, dir, height)
}

// RayHorizontalPlane returns where a world ray meets y = height.
func RayHorizontalPlane(origin, dir mgl64.Vec3, height float64) (mgl64.Vec3, bool) {
	t, ok := rayPlane(origin, dir, height)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

// Pick returns the tile whose top face the ray through screen hits first.
func (s *Scene) Pick(screen mgl64.Vec2) (hexmap.HexPosition, bool) {
	origin, dir, ok := s.Camera.ScreenRay(screen)
	if !ok {
		return hexmap.HexPosition{}, false
	}
	return PickRay(s.Map, origin, dir)
}

// PickRay tests the ray against each tile's top face and returns the nearest hit.
func PickRay(m *hexmap.TileMap, origin, dir mgl64.Vec3) (hexmap.HexPosition, bool) {
	var (
		best  hexmap.HexPosition
		bestT = math.Inf(1)
		found bool
	)
	for tile := range m.Tiles.All() {
		t, ok := rayPlane(origin, dir, tile.Elevation)
		if !ok || t >= bestT {
			continue
		}
		hit := origin.Add(dir.Mul(t))
		if hexmap.WorldToHex(hit, m.HexSize) != tile.Coord() {
			continue
		}
		best, bestT, found = tile.Position(), t, true
	}
	return best, found
}

// rayPlane returns the ray parameter where it crosses y = height, if in front of origin.
func rayPlane(origin, dir mgl64.Vec3, height float64) (float64, bool) {
	if math.Abs(dir.Y()) < 1e-9 {
		return 0, false
	}
	t := (height - origin.Y()) / dir.Y()
	if t < 0 {
		return 0, false
	}
	return t, true
}
