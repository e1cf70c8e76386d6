package groundcover

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/OCharnyshevich/riverbed/internal/layer"
)

const (
	// noiseSeedOffset is mixed into the world seed so ground cover variation
	// does not line up with other seeded features.
	noiseSeedOffset = 135101785

	// baseWavelength is the feature size in cells at Scale 1.
	baseWavelength = 32.0
)

// Overlay is a seeded, smooth integer height field centred on zero. A nil
// *Overlay contributes nothing.
type Overlay struct {
	noise      opensimplex.Noise
	rng        int
	amplitudes []float64
	ampSum     float64
	frequency  float64
}

// NewOverlay builds the overlay for the given settings, or returns nil when
// no variation is configured.
func NewOverlay(worldSeed int64, s *layer.NoiseSettings) *Overlay {
	if s == nil || s.Range <= 0 {
		return nil
	}
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	octaves := max(s.Roughness, 0) + 1

	o := &Overlay{
		noise:      opensimplex.NewNormalized(worldSeed + noiseSeedOffset + s.Seed),
		rng:        s.Range,
		amplitudes: make([]float64, octaves),
		frequency:  1 / (baseWavelength * scale),
	}
	for i := range o.amplitudes {
		o.amplitudes[i] = math.Pow(0.5, float64(i))
		o.ampSum += o.amplitudes[i]
	}
	return o
}

// Range returns the configured range, which is also the zero-centering offset.
func (o *Overlay) Range() int {
	if o == nil {
		return 0
	}
	return o.rng
}

// Height returns the raw noise height at (x, y), in [0, 2*Range].
func (o *Overlay) Height(x, y int) int {
	if o == nil {
		return 0
	}
	var sum float64
	for i, amp := range o.amplitudes {
		f := o.frequency * float64(int(1)<<i)
		sum += amp * o.noise.Eval2(float64(x)*f, float64(y)*f)
	}
	h := truncate(sum / o.ampSum * float64(2*o.rng))
	return min(max(h, 0), 2*o.rng)
}

// Offset returns Height(x, y) - Range, in [-Range, Range].
func (o *Overlay) Offset(x, y int) int {
	if o == nil {
		return 0
	}
	return o.Height(x, y) - o.rng
}
