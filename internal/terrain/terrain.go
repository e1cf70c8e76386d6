package terrain

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/OCharnyshevich/riverbed/internal/dimension"
	"github.com/OCharnyshevich/riverbed/internal/layer"
)

// SeaLevel is the water level written into every generated cell.
const SeaLevel = 62

// Options controls Generate.
type Options struct {
	Seed       int64
	Radius     int // tiles span [-Radius, Radius) on both axes
	Bottomless bool

	// Cover, when set, is registered and painted along a meandering band
	// of dry land.
	Cover *layer.GroundCover
	// RiverWidth is the half-width of the band in noise units; 0 uses 0.04.
	RiverWidth float64
}

type generator struct {
	continent *perlin.Perlin
	detail    *perlin.Perlin
	temp      *perlin.Perlin
	rain      *perlin.Perlin
	river     *perlin.Perlin
}

func newGenerator(seed int64) *generator {
	return &generator{
		continent: perlin.NewPerlin(2, 2, 4, seed),
		detail:    perlin.NewPerlin(2, 2, 3, seed+1),
		temp:      perlin.NewPerlin(2, 2, 3, seed+100),
		rain:      perlin.NewPerlin(2, 2, 3, seed+200),
		river:     perlin.NewPerlin(1.5, 2, 2, seed+300),
	}
}

// Generate builds a dimension deterministically from opts.
func Generate(opts Options) *dimension.Dimension {
	g := newGenerator(opts.Seed)
	d := dimension.New(opts.Seed, opts.Bottomless)

	width := opts.RiverWidth
	if width <= 0 {
		width = 0.04
	}
	if opts.Cover != nil {
		d.AddLayer(opts.Cover)
	}

	minHeight := 1
	if opts.Bottomless {
		minHeight = 0
	}

	for ty := -opts.Radius; ty < opts.Radius; ty++ {
		for tx := -opts.Radius; tx < opts.Radius; tx++ {
			tile := d.AddTile(tx, ty)
			x0, y0 := tx*dimension.TileSize, ty*dimension.TileSize
			for ly := 0; ly < dimension.TileSize; ly++ {
				for lx := 0; lx < dimension.TileSize; lx++ {
					x, y := x0+lx, y0+ly
					i := ly*dimension.TileSize + lx

					continent := SeaLevel + g.continent.Noise2D(float64(x)/256.0, float64(y)/256.0)*24.0
					biome := g.biomeAt(x, y, continent)
					h := g.height(x, y, biome, minHeight)

					tile.Heights[i] = int32(h)
					tile.Water[i] = SeaLevel
					tile.Biomes[i] = biome
				}
			}
			if opts.Cover != nil {
				g.paintRiver(d, opts.Cover, tile, width)
			}
		}
	}
	return d
}

// height computes the terrain height at a cell. Different biomes scale
// noise amplitude differently.
func (g *generator) height(x, y int, biome uint8, minHeight int) int {
	base := g.continent.Noise2D(float64(x)/128.0, float64(y)/128.0)
	detail := g.detail.Noise2D(float64(x)/32.0, float64(y)/32.0)

	amplitude, baseHeight := biomeTerrainParams(biome)
	h := int(baseHeight + base*amplitude + detail*4.0)
	return min(max(h, minHeight), 250)
}

// paintRiver marks dry cells where the river noise crosses zero.
func (g *generator) paintRiver(d *dimension.Dimension, cover layer.Layer, tile *dimension.Tile, width float64) {
	x0, y0 := tile.X*dimension.TileSize, tile.Y*dimension.TileSize
	for ly := 0; ly < dimension.TileSize; ly++ {
		for lx := 0; lx < dimension.TileSize; lx++ {
			x, y := x0+lx, y0+ly
			if int(tile.Heights[ly*dimension.TileSize+lx]) <= SeaLevel {
				continue
			}
			n := g.river.Noise2D(float64(x)/300.0, float64(y)/300.0)
			if math.Abs(n) < width {
				d.SetBitLayerValue(cover, x, y, true)
			}
		}
	}
}
