package groundcover

import (
	"testing"

	"github.com/OCharnyshevich/riverbed/internal/layer"
)

func TestOverlayNilWithoutNoise(t *testing.T) {
	if o := NewOverlay(1, nil); o != nil {
		t.Error("nil settings should give a nil overlay")
	}
	if o := NewOverlay(1, &layer.NoiseSettings{Range: 0}); o != nil {
		t.Error("zero range should give a nil overlay")
	}

	var o *Overlay
	if o.Offset(10, 10) != 0 || o.Height(10, 10) != 0 || o.Range() != 0 {
		t.Error("nil overlay should contribute zero")
	}
}

func TestOverlayDeterministic(t *testing.T) {
	s := &layer.NoiseSettings{Range: 4, Roughness: 2}
	o1 := NewOverlay(12345, s)
	o2 := NewOverlay(12345, s)

	for i := 0; i < 500; i++ {
		x, y := i*7-1000, i*13-300
		if o1.Offset(x, y) != o2.Offset(x, y) {
			t.Fatalf("Offset not deterministic at (%d,%d)", x, y)
		}
	}
}

func TestOverlayBounded(t *testing.T) {
	for _, rng := range []int{1, 3, 10} {
		o := NewOverlay(42, &layer.NoiseSettings{Range: rng, Roughness: 3, Scale: 0.5})
		for i := 0; i < 5000; i++ {
			x, y := i*3-7000, i*5-2000
			h := o.Height(x, y)
			if h < 0 || h > 2*rng {
				t.Fatalf("Height(%d,%d) = %d, out of [0,%d]", x, y, h, 2*rng)
			}
			if off := o.Offset(x, y); off != h-rng {
				t.Fatalf("Offset(%d,%d) = %d, want %d", x, y, off, h-rng)
			}
		}
	}
}

func TestOverlayDifferentSeeds(t *testing.T) {
	s := &layer.NoiseSettings{Range: 5}
	o1 := NewOverlay(1, s)
	o2 := NewOverlay(2, s)

	different := false
	for i := 0; i < 1000; i++ {
		if o1.Height(i*11, i*3) != o2.Height(i*11, i*3) {
			different = true
			break
		}
	}
	if !different {
		t.Error("different world seeds should produce different overlays")
	}
}

func TestOverlaySmooth(t *testing.T) {
	o := NewOverlay(456, &layer.NoiseSettings{Range: 3})

	prev := o.Height(0, 0)
	for x := 1; x < 2000; x++ {
		curr := o.Height(x, 0)
		if d := curr - prev; d > 2 || d < -2 {
			t.Fatalf("overlay jumped by %d at x=%d", d, x)
		}
		prev = curr
	}
}
