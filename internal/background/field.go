// Package background renders the decorative particle field drawn behind the
// page: a rotating point cloud seen through a perspective camera.
package background

import (
	"math"
	"math/rand/v2"
)

// Vec3 is a point in scene space
type Vec3 struct {
	X, Y, Z float64
}

// Field is a fixed cloud of particle positions
type Field struct {
	Positions []Vec3
	Spread    float64
}

// NewField scatters count particles with every coordinate drawn independently
// and uniformly from [-spread/2, spread/2)
func NewField(rng *rand.Rand, count int, spread float64) *Field {
	positions := make([]Vec3, count)
	for i := range positions {
		positions[i] = Vec3{
			X: (rng.Float64() - 0.5) * spread,
			Y: (rng.Float64() - 0.5) * spread,
			Z: (rng.Float64() - 0.5) * spread,
		}
	}
	return &Field{Positions: positions, Spread: spread}
}

// Len returns the number of particles
func (f *Field) Len() int {
	return len(f.Positions)
}

// Contains reports whether p lies inside the field's half-open cube
func (f *Field) Contains(p Vec3) bool {
	half := f.Spread / 2
	in := func(v float64) bool { return v >= -half && v < half }
	return in(p.X) && in(p.Y) && in(p.Z)
}

// newRand returns a seeded generator; seed 0 picks a random seed
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Rotation is an XYZ Euler rotation in radians
type Rotation struct {
	X, Y float64
}

// Apply rotates p about the origin
func (r Rotation) Apply(p Vec3) Vec3 {
	sy, cy := math.Sincos(r.Y)
	sx, cx := math.Sincos(r.X)

	// Y axis first, then X, matching an XYZ Euler matrix Rx*Ry*Rz
	x := p.X*cy + p.Z*sy
	z := -p.X*sy + p.Z*cy
	y := p.Y*cx - z*sx
	z = p.Y*sx + z*cx

	return Vec3{X: x, Y: y, Z: z}
}
