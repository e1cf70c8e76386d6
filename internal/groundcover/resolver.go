package groundcover

import "github.com/OCharnyshevich/riverbed/internal/layer"

// Resolver turns a validated ground cover layer into a per-cell dig depth.
type Resolver struct {
	layer     layer.Layer
	shape     layer.EdgeShape
	magnitude int
	width     int
	tapered   bool
	overlay   *Overlay
}

// NewResolver creates a Resolver. thickness is the layer's signed thickness;
// only its magnitude is used.
func NewResolver(l layer.Layer, thickness int, shape layer.EdgeShape, edgeWidth int, overlay *Overlay) *Resolver {
	magnitude := max(thickness, -thickness)
	return &Resolver{
		layer:     l,
		shape:     shape,
		magnitude: magnitude,
		width:     edgeWidth,
		tapered:   Tapers(shape, magnitude),
		overlay:   overlay,
	}
}

// Layer returns the layer being resolved.
func (r *Resolver) Layer() layer.Layer { return r.layer }

// Tapered reports whether Depth depends on the distance to the edge.
func (r *Resolver) Tapered() bool { return r.tapered }

// MaxDistance is the cap for distance-to-edge queries.
func (r *Resolver) MaxDistance() int { return r.width + 1 }

// Depth returns the effective thickness at (x, y). The result is not
// clamped; noise may push it to zero or below.
func (r *Resolver) Depth(x, y, distance int) int {
	return Taper(r.shape, r.magnitude, r.width, distance) + r.overlay.Offset(x, y)
}
