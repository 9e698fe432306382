// internal/interfaces/game.go
package interfaces

import (
	"go-hex-sculptor/pkg/hexmap"

	"github.com/go-gl/mathgl/mgl64"
)

// Picker resolves a screen point to the nearest tile hit along the view ray.
type Picker interface {
	Pick(screen mgl64.Vec2) (hexmap.HexPosition, bool)
}

// PlaneIntersector resolves a screen point to a world point on the horizontal plane y = height.
// It reports false when the ray is parallel to the plane or points away from it.
type PlaneIntersector interface {
	IntersectHorizontalPlane(screen mgl64.Vec2, height float64) (mgl64.Vec3, bool)
}

// TileRenderer owns the visual side of tiles.
type TileRenderer interface {
	CreateTile(tile *hexmap.Tile) hexmap.VisualID
	DestroyTile(id hexmap.VisualID)
	SetMaterial(id hexmap.VisualID, material hexmap.MaterialID)
	// RegenerateAll rebuilds every tile's geometry, e.g. after the hex size changed.
	RegenerateAll(m *hexmap.TileMap)
}

// ChangeMarker is told whenever the map's persisted state changed.
type ChangeMarker interface {
	MarkChanged()
}

// Scene bundles the ray queries a host provides.
type Scene interface {
	Picker
	PlaneIntersector
}
