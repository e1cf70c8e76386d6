package layer

import "fmt"

// Layer is a named per-cell attribute painted onto a dimension.
type Layer interface {
	Name() string
}

// EdgeShape is the cross-section used to taper a ground cover layer near
// the boundary of the painted area.
type EdgeShape uint8

const (
	Sheer EdgeShape = iota
	Linear
	Smooth
	Rounded
)

var edgeShapeNames = [...]string{"sheer", "linear", "smooth", "rounded"}

func (s EdgeShape) String() string {
	if int(s) < len(edgeShapeNames) {
		return edgeShapeNames[s]
	}
	return fmt.Sprintf("EdgeShape(%d)", uint8(s))
}

// ParseEdgeShape converts a lower-case shape name back to an EdgeShape.
func ParseEdgeShape(name string) (EdgeShape, error) {
	for i, n := range edgeShapeNames {
		if n == name {
			return EdgeShape(i), nil
		}
	}
	return Sheer, fmt.Errorf("unknown edge shape %q", name)
}

// NoiseSettings describes the variation applied on top of a layer's thickness.
type NoiseSettings struct {
	Seed      int64   `json:"seed"`
	Range     int     `json:"range"`
	Roughness int     `json:"roughness"` // extra octaves
	Scale     float64 `json:"scale"`     // 1.0 = default feature size
}

// Bit is a plain on/off layer with no ground cover properties.
type Bit struct {
	name string
}

// NewBit creates a bit layer.
func NewBit(name string) *Bit {
	return &Bit{name: name}
}

func (b *Bit) Name() string { return b.name }

// GroundCover is a thin surface material layer. A negative thickness means
// the layer digs into the terrain instead of building on top of it.
type GroundCover struct {
	name  string
	Thick int
	Shape EdgeShape
	Width int
	Noise *NoiseSettings
}

// NewGroundCover creates a ground cover layer.
func NewGroundCover(name string, thickness int, shape EdgeShape, edgeWidth int, noise *NoiseSettings) *GroundCover {
	return &GroundCover{
		name:  name,
		Thick: thickness,
		Shape: shape,
		Width: edgeWidth,
		Noise: noise,
	}
}

func (g *GroundCover) Name() string                  { return g.name }
func (g *GroundCover) Thickness() int                { return g.Thick }
func (g *GroundCover) EdgeShape() EdgeShape          { return g.Shape }
func (g *GroundCover) EdgeWidth() int                { return g.Width }
func (g *GroundCover) NoiseSettings() *NoiseSettings { return g.Noise }
