// Package viewport turns screen points into world rays for an orbit camera
// and answers the editor's pick and plane queries with them.
package viewport

import (
	"math"

	"go-hex-sculptor/internal/config"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	minPitch    = 10.0
	maxPitch    = 89.0
	minDistance = 4.0
	maxDistance = 200.0

	NearPlane = 0.1
	FarPlane  = 1000.0
)

// Camera orbits Target at Distance. Angles are in degrees; Y is up.
type Camera struct {
	Target   mgl64.Vec3
	Distance float64
	Pitch    float64
	Yaw      float64
	FovY     float64

	width, height int
}

// NewCamera creates a camera looking at the origin with the default orbit.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Distance: config.CameraDistance,
		Pitch:    config.CameraPitch,
		Yaw:      config.CameraYaw,
		FovY:     config.CameraFovY,
		width:    width,
		height:   height,
	}
}

// Resize updates the viewport size in pixels.
func (c *Camera) Resize(width, height int) {
	c.width, c.height = width, height
}

// Size returns the viewport size in pixels.
func (c *Camera) Size() (int, int) { return c.width, c.height }

// Orbit rotates the camera around its target. Pitch stays between 10 and 89 degrees.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 360)
	c.Pitch = min(max(c.Pitch+dPitch, minPitch), maxPitch)
}

// Zoom moves the camera towards (negative delta) or away from its target.
func (c *Camera) Zoom(delta float64) {
	c.Distance = min(max(c.Distance+delta, minDistance), maxDistance)
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl64.Vec3 {
	pitch, yaw := mgl64.DegToRad(c.Pitch), mgl64.DegToRad(c.Yaw)
	offset := mgl64.Vec3{
		math.Cos(pitch) * math.Cos(yaw),
		math.Sin(pitch),
		math.Cos(pitch) * math.Sin(yaw),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for the current viewport.
func (c *Camera) Projection() mgl64.Mat4 {
	aspect := 1.0
	if c.height > 0 {
		aspect = float64(c.width) / float64(c.height)
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, NearPlane, FarPlane)
}

// ScreenRay returns the world ray through a screen point (origin top-left, y down).
// dir is normalized.
func (c *Camera) ScreenRay(screen mgl64.Vec2) (origin, dir mgl64.Vec3, ok bool) {
	if c.width <= 0 || c.height <= 0 {
		return origin, dir, false
	}
	view, proj := c.View(), c.Projection()
	// окно в OpenGL считается снизу вверх
	winY := float64(c.height) - screen.Y()
	near, err := mgl64.UnProject(mgl64.Vec3{screen.X(), winY, 0}, view, proj, 0, 0, c.width, c.height)
	if err != nil {
		return origin, dir, false
	}
	far, err := mgl64.UnProject(mgl64.Vec3{screen.X(), winY, 1}, view, proj, 0, 0, c.width, c.height)
	if err != nil {
		return origin, dir, false
	}
	d := far.Sub(near)
	if d.Len() == 0 {
		return origin, dir, false
	}
	return near, d.Normalize(), true
}

// Project maps a world point to screen space (origin top-left, y down).
// ok is false for points behind the camera.
func (c *Camera) Project(world mgl64.Vec3) (mgl64.Vec2, bool) {
	view, proj := c.View(), c.Projection()
	clip := proj.Mul4(view).Mul4x1(world.Vec4(1))
	if clip.W() <= NearPlane {
		return mgl64.Vec2{}, false
	}
	win := mgl64.Project(world, view, proj, 0, 0, c.width, c.height)
	return mgl64.Vec2{win.X(), float64(c.height) - win.Y()}, true
}

// Depth returns the distance from the eye to a world point, used to sort draw order.
func (c *Camera) Depth(world mgl64.Vec3) float64 {
	return world.Sub(c.Eye()).Len()
}
