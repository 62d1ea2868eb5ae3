package background

// Material controls how particles are drawn
type Material struct {
	Color   string  // hex color
	Size    float64 // world-space size, attenuated by distance
	Opacity float64
}

// Points is the particle cloud with its current rotation
type Points struct {
	Field    *Field
	Rotation Rotation
	Material Material
}

// Step advances the rotation by delta on both axes
func (p *Points) Step(delta float64) {
	p.Rotation.X += delta
	p.Rotation.Y += delta
}

// Scene is everything the renderer draws
type Scene struct {
	Points *Points
}
