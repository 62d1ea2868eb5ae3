package background

import "math"

// Camera is a perspective camera on the Z axis looking toward -Z
type Camera struct {
	FOV      float64 // vertical field of view, degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position Vec3

	// focal is 1/tan(fov/2), cached by UpdateProjectionMatrix
	focal float64
}

// NewCamera creates a camera and computes its projection
func NewCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{FOV: fov, Aspect: aspect, Near: near, Far: far}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the projection after FOV or Aspect change
func (c *Camera) UpdateProjectionMatrix() {
	c.focal = 1 / math.Tan(c.FOV*math.Pi/360)
}

// SetAspect changes the aspect ratio and refreshes the projection
func (c *Camera) SetAspect(aspect float64) {
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

// Project maps a scene point to normalized device coordinates in [-1, 1].
// depth is the distance in front of the camera; ok is false when the point is
// outside the near/far range or the view frustum.
func (c *Camera) Project(p Vec3) (x, y, depth float64, ok bool) {
	vx := p.X - c.Position.X
	vy := p.Y - c.Position.Y
	depth = c.Position.Z - p.Z

	if depth < c.Near || depth > c.Far || c.Aspect <= 0 {
		return 0, 0, depth, false
	}

	x = c.focal / c.Aspect * vx / depth
	y = c.focal * vy / depth
	if x < -1 || x > 1 || y < -1 || y > 1 {
		return x, y, depth, false
	}
	return x, y, depth, true
}
