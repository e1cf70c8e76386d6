package terrain

import (
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/OCharnyshevich/riverbed/internal/dimension"
	"github.com/OCharnyshevich/riverbed/internal/groundcover"
	"github.com/OCharnyshevich/riverbed/internal/layer"
)

func river() *layer.GroundCover {
	return layer.NewGroundCover("River", -3, layer.Linear, 2, nil)
}

// forEachCell visits every cell of every tile in d.
func forEachCell(d *dimension.Dimension, fn func(x, y int)) {
	for _, tile := range d.Tiles() {
		x0, y0 := tile.X*dimension.TileSize, tile.Y*dimension.TileSize
		for y := y0; y < y0+dimension.TileSize; y++ {
			for x := x0; x < x0+dimension.TileSize; x++ {
				fn(x, y)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(Options{Seed: 42, Radius: 1, Cover: river()})
	b := Generate(Options{Seed: 42, Radius: 1, Cover: river()})
	if diff := cmp.Diff(a.Tiles(), b.Tiles()); diff != "" {
		t.Errorf("same seed produced different tiles (-a +b):\n%s", diff)
	}

	c := Generate(Options{Seed: 43, Radius: 1, Cover: river()})
	if cmp.Equal(a.Tiles(), c.Tiles()) {
		t.Error("different seeds produced identical tiles")
	}
}

func TestGenerateLayout(t *testing.T) {
	d := Generate(Options{Seed: 1, Radius: 2})

	if got, want := d.Extent(), image.Rect(-2, -2, 2, 2); got != want {
		t.Errorf("Extent() = %v, want %v", got, want)
	}
	if got := len(d.Tiles()); got != 16 {
		t.Errorf("len(Tiles()) = %d, want 16", got)
	}
	if got := d.Seed(); got != 1 {
		t.Errorf("Seed() = %d, want 1", got)
	}
	if len(d.Layers()) != 0 {
		t.Errorf("Layers() = %v, want none without a cover", d.Layers())
	}
}

func TestGenerateCellRanges(t *testing.T) {
	for _, bottomless := range []bool{false, true} {
		d := Generate(Options{Seed: 7, Radius: 1, Bottomless: bottomless})
		floor := 1
		if bottomless {
			floor = 0
		}
		forEachCell(d, func(x, y int) {
			if h := d.Height(x, y); h < floor || h > 250 {
				t.Fatalf("bottomless=%v: Height(%d,%d) = %d, want in [%d,250]", bottomless, x, y, h, floor)
			}
			if w := d.WaterLevel(x, y); w != SeaLevel {
				t.Fatalf("WaterLevel(%d,%d) = %d, want %d", x, y, w, SeaLevel)
			}
		})
	}
}

func TestGenerateOriginIsLand(t *testing.T) {
	// Perlin noise is zero on lattice points, so the origin sits at the
	// biome's base height.
	d := Generate(Options{Seed: 99, Radius: 1})
	if h := d.Height(0, 0); h <= SeaLevel {
		t.Errorf("Height(0,0) = %d, want above sea level %d", h, SeaLevel)
	}
	if b := d.Biome(0, 0); b == BiomeOcean || b == BiomeBeach {
		t.Errorf("Biome(0,0) = %d, want an inland biome", b)
	}
}

func TestGenerateRiverOnlyOnDryLand(t *testing.T) {
	cover := river()
	// A band this wide covers every dry cell.
	d := Generate(Options{Seed: 5, Radius: 1, Cover: cover, RiverWidth: 100})

	if _, ok := d.LayerByName("River"); !ok {
		t.Fatal("cover layer not registered")
	}
	forEachCell(d, func(x, y int) {
		dry := d.Height(x, y) > SeaLevel
		if got := d.BitLayerValue(cover, x, y); got != dry {
			t.Fatalf("BitLayerValue(%d,%d) = %v, want %v (height %d)", x, y, got, dry, d.Height(x, y))
		}
	})
}

func TestGenerateThenCarve(t *testing.T) {
	cover := river()
	d := Generate(Options{Seed: 3, Radius: 1, Cover: cover, RiverWidth: 0.2})

	members, rising := 0, 0
	forEachCell(d, func(x, y int) {
		if !d.BitLayerValue(cover, x, y) {
			return
		}
		members++
		if d.Height(x, y)-1 > SeaLevel {
			rising++
		}
	})
	if members == 0 {
		t.Fatal("no river cells painted")
	}

	c := groundcover.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	report, err := c.Run(d, groundcover.DefaultParams("River"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Carved != members {
		t.Errorf("Carved = %d, want %d", report.Carved, members)
	}
	if report.WaterRaised != rising {
		t.Errorf("WaterRaised = %d, want %d", report.WaterRaised, rising)
	}
}

func TestSelectBiome(t *testing.T) {
	tests := []struct {
		temp, rain float64
		want       uint8
	}{
		{0.1, 0.1, BiomeTundra},
		{0.1, 0.5, BiomeSnowyTaiga},
		{0.1, 0.9, BiomeTaiga},
		{0.5, 0.1, BiomePlains},
		{0.5, 0.5, BiomeForest},
		{0.5, 0.9, BiomeDarkForest},
		{1.0, 0.1, BiomeSavanna},
		{1.0, 0.5, BiomePlains},
		{1.0, 0.9, BiomeJungle},
		{1.5, 0.1, BiomeDesert},
		{1.5, 0.9, BiomeJungle},
	}
	for _, tt := range tests {
		if got := selectBiome(tt.temp, tt.rain); got != tt.want {
			t.Errorf("selectBiome(%v, %v) = %d, want %d", tt.temp, tt.rain, got, tt.want)
		}
	}
}
