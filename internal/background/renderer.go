package background

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/gg"
)

// Renderer draws a scene onto an output surface of a given size
type Renderer interface {
	SetSize(width, height int) error
	Size() (width, height int)
	Render(scene *Scene, camera *Camera) error
	Encode(w io.Writer) error
	Close() error
}

// minPointRadius keeps sub-pixel particles visible
const minPointRadius = 0.5

// RasterRenderer renders the scene in software with gg
type RasterRenderer struct {
	mu     sync.Mutex
	dc     *gg.Context
	closed bool
}

// NewRasterRenderer creates a renderer with a transparent width x height surface
func NewRasterRenderer(width, height int) (*RasterRenderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid renderer size %dx%d", width, height)
	}
	return &RasterRenderer{dc: gg.NewContext(width, height)}, nil
}

// SetSize resizes the output surface
func (r *RasterRenderer) SetSize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrDisposed
	}
	return r.dc.Resize(width, height)
}

// Size returns the output surface size
func (r *RasterRenderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dc.Width(), r.dc.Height()
}

// Render clears the surface and draws every visible particle as a disc whose
// radius shrinks with distance from the camera
func (r *RasterRenderer) Render(scene *Scene, camera *Camera) error {
	if scene == nil || scene.Points == nil || camera == nil {
		return errors.New("render: scene and camera are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrDisposed
	}

	w, h := float64(r.dc.Width()), float64(r.dc.Height())
	pts := scene.Points
	col := gg.Hex(pts.Material.Color)

	r.dc.Clear()
	r.dc.ClearPath()
	r.dc.SetRGBA(col.R, col.G, col.B, pts.Material.Opacity)

	drawn := 0
	for _, p := range pts.Field.Positions {
		x, y, depth, ok := camera.Project(pts.Rotation.Apply(p))
		if !ok {
			continue
		}
		radius := pts.Material.Size * (h / 2) / depth / 2
		if radius < minPointRadius {
			radius = minPointRadius
		}
		r.dc.DrawCircle((x+1)/2*w, (1-y)/2*h, radius)
		drawn++
	}
	if drawn == 0 {
		return nil
	}
	return r.dc.Fill()
}

// Encode writes the current surface as PNG
func (r *RasterRenderer) Encode(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrDisposed
	}
	return r.dc.EncodePNG(w)
}

// Close releases the drawing context
func (r *RasterRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.dc.Close()
}
