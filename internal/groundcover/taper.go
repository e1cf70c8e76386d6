package groundcover

import (
	"math"

	"github.com/OCharnyshevich/riverbed/internal/layer"
)

// Tapers reports whether a layer with the given shape and thickness
// magnitude gets a tapered edge at all.
func Tapers(shape layer.EdgeShape, magnitude int) bool {
	return shape != layer.Sheer && magnitude > 1
}

// Taper returns how deep to dig at a cell that is distance cells away from
// the edge of the layer. Cells at least edgeWidth+1 cells in get the full
// magnitude.
func Taper(shape layer.EdgeShape, magnitude, edgeWidth, distance int) int {
	if !Tapers(shape, magnitude) || distance >= edgeWidth+1 {
		return magnitude
	}

	edgeThickness := float64(magnitude - 2)
	edgeFactor := edgeThickness / 2
	edgeOffset := 1.5 + edgeFactor

	// A one cell wide edge has no interpolation range, so every cell in it
	// sits at the shallow end.
	var normalized float64
	if edgeWidth > 1 {
		normalized = float64(distance-1) / float64(edgeWidth-1)
	}

	switch shape {
	case layer.Linear:
		return truncate(1.5 + normalized*edgeThickness)
	case layer.Smooth:
		return truncate(edgeOffset - math.Cos(normalized*math.Pi)*edgeFactor)
	case layer.Rounded:
		r := 1 - (float64(distance)-0.5)/float64(edgeWidth)
		return truncate(1.5 + math.Sqrt(math.Max(0, 1-r*r))*edgeThickness)
	default:
		return magnitude
	}
}

// truncate rounds toward zero: floor for positive values, ceiling for negative.
func truncate(v float64) int {
	return int(math.Trunc(v))
}
