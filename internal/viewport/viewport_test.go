package viewport

import (
	"math"
	"testing"

	"go-hex-sculptor/pkg/hexmap"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-6

func near(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() < tol
}

func TestCenterRayHitsTarget(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Target = mgl64.Vec3{3, 0, -2}
	s := NewScene(cam, hexmap.NewTileMap(1, "grass"))

	p, ok := s.IntersectHorizontalPlane(mgl64.Vec2{400, 300}, 0)
	if !ok {
		t.Fatal("center ray missed the ground")
	}
	if !near(p, cam.Target, 1e-4) {
		t.Errorf("hit %v, want %v", p, cam.Target)
	}
}

func TestProjectInvertsScreenRay(t *testing.T) {
	cam := NewCamera(1280, 720)
	cam.Orbit(40, -10)
	s := NewScene(cam, hexmap.NewTileMap(1, "grass"))

	for _, screen := range []mgl64.Vec2{{100, 100}, {640, 360}, {1000, 650}} {
		world, ok := s.IntersectHorizontalPlane(screen, 1.5)
		if !ok {
			t.Fatalf("ray through %v missed", screen)
		}
		if math.Abs(world.Y()-1.5) > eps {
			t.Errorf("hit y = %v", world.Y())
		}
		back, ok := cam.Project(world)
		if !ok {
			t.Fatalf("%v projected behind the camera", world)
		}
		if back.Sub(screen).Len() > 1e-3 {
			t.Errorf("Project(%v) = %v, want %v", world, back, screen)
		}
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := NewCamera(800, 600)
	behind := cam.Eye().Add(cam.Eye().Sub(cam.Target))
	if _, ok := cam.Project(behind); ok {
		t.Error("point behind the eye reported visible")
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.Orbit(0, 500)
	if cam.Pitch != maxPitch {
		t.Errorf("Pitch = %v", cam.Pitch)
	}
	cam.Orbit(0, -500)
	if cam.Pitch != minPitch {
		t.Errorf("Pitch = %v", cam.Pitch)
	}
	cam.Zoom(-1000)
	if cam.Distance != minDistance {
		t.Errorf("Distance = %v", cam.Distance)
	}
}

func TestRayParallelToPlane(t *testing.T) {
	if _, ok := rayPlane(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{1, 0, 0}, 0); ok {
		t.Error("parallel ray hit the plane")
	}
	if _, ok := rayPlane(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 1, 0}, 0); ok {
		t.Error("ray pointing away hit the plane")
	}
}

func TestPickNearestTopFace(t *testing.T) {
	m := hexmap.NewTileMap(1, "grass")
	cam := NewCamera(800, 600)
	s := NewScene(cam, m)
	center := mgl64.Vec2{400, 300}

	if _, ok := s.Pick(center); ok {
		t.Fatal("pick hit an empty map")
	}

	m.Tiles.Add(hexmap.Hex{}, hexmap.NewTile(0, "grass"))
	hit, ok := s.Pick(center)
	if !ok || hit.Hex != (hexmap.Hex{}) || hit.Elevation != 0 {
		t.Fatalf("Pick = %v, %v", hit, ok)
	}

	// a tall tile where the same ray crosses y=6 occludes the origin
	up, _ := s.IntersectHorizontalPlane(center, 6)
	tall := hexmap.WorldToHex(up, m.HexSize)
	if tall == (hexmap.Hex{}) {
		t.Fatal("camera too steep for the occlusion setup")
	}
	m.Tiles.Add(tall, hexmap.NewTile(6, "rock"))

	hit, ok = s.Pick(center)
	if !ok || hit.Hex != tall || hit.Elevation != 6 {
		t.Errorf("Pick = %v, %v; want the tall tile %v", hit, ok, tall)
	}
}

func TestPickRayStraightDown(t *testing.T) {
	m := hexmap.NewTileMap(2, "grass")
	for h := range hexmap.CoordinateRange(hexmap.Hex{}, 3) {
		m.Tiles.Add(h, hexmap.NewTile(float64(h.Q), "grass"))
	}
	for h := range hexmap.CoordinateRange(hexmap.Hex{}, 3) {
		top := hexmap.HexToWorld(h, m.HexSize, 100)
		hit, ok := PickRay(m, top, mgl64.Vec3{0, -1, 0})
		if !ok || hit.Hex != h {
			t.Errorf("PickRay over %v = %v, %v", h, hit, ok)
		}
	}
}
