package groundcover

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OCharnyshevich/riverbed/internal/dimension"
	"github.com/OCharnyshevich/riverbed/internal/layer"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// paint sets l on every cell of the rectangle [x0,x1)×[y0,y1).
func paint(d *dimension.Dimension, l layer.Layer, x0, y0, x1, y1 int) {
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			d.SetBitLayerValue(l, x, y, true)
		}
	}
}

// roughDimension builds a 2×2 tile dimension with varied terrain, water and
// biomes, and an irregular ground cover blob that straddles tile borders.
func roughDimension(t *testing.T, cover *layer.GroundCover, bottomless bool) *dimension.Dimension {
	t.Helper()

	d := dimension.New(2024, bottomless)
	d.AddLayer(cover)
	rng := rand.New(rand.NewSource(7))

	for ty := -1; ty <= 0; ty++ {
		for tx := -1; tx <= 0; tx++ {
			tile := d.AddTile(tx, ty)
			for i := range tile.Heights {
				h := 40 + rng.Intn(40)
				tile.Heights[i] = int32(h)
				tile.Water[i] = int32(h - 5 + rng.Intn(10))
				tile.Biomes[i] = uint8(rng.Intn(4))
			}
		}
	}
	// Cells near the bottom exercise the height floor.
	for x := -10; x < -5; x++ {
		d.SetHeight(x, 3, 2)
		d.SetWaterLevel(x, 3, 0)
	}

	for x := -100; x < 100; x++ {
		for y := -100; y < 100; y++ {
			if x*x+2*y*y < 60*60 || (x > 20 && y > -10 && y < 5) {
				d.SetBitLayerValue(cover, x, y, true)
			}
		}
	}
	return d
}

func diffTiles(a, b *dimension.Dimension) string {
	return cmp.Diff(a.Tiles(), b.Tiles())
}
