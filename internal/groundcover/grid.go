package groundcover

import (
	"image"

	"github.com/OCharnyshevich/riverbed/internal/layer"
)

// TileSize is the edge length, in cells, of one grid tile.
const TileSize = 128

// RiverBiome is the biome code written over carved cells.
const RiverBiome = 7

// Registry resolves layers by name.
type Registry interface {
	LayerByName(name string) (layer.Layer, bool)
}

// Grid is the terrain the carver reads and mutates in place.
type Grid interface {
	Registry

	// Extent is the bounding box of the grid in tile units.
	Extent() image.Rectangle
	IsTilePresent(tx, ty int) bool

	BitLayerValue(l layer.Layer, x, y int) bool
	SetBitLayerValue(l layer.Layer, x, y int, v bool)
	DistanceToEdge(l layer.Layer, x, y, maxDistance int) int

	Height(x, y int) int
	SetHeight(x, y, h int)
	WaterLevel(x, y int) int
	SetWaterLevel(x, y, w int)
	Biome(x, y int) int
	SetBiome(x, y, b int)

	Seed() int64
	Bottomless() bool
}

// coverLayer is the capability a layer needs to be carved.
type coverLayer interface {
	layer.Layer
	Thickness() int
	EdgeShape() layer.EdgeShape
	EdgeWidth() int
	NoiseSettings() *layer.NoiseSettings
}

// Params controls one carve run.
type Params struct {
	Layer       string
	WaterOffset int
	ApplyBiome  bool
	DeleteLayer bool
	Workers     int // 0 = GOMAXPROCS
}

// DefaultParams returns the defaults for carving the named layer.
func DefaultParams(name string) Params {
	return Params{
		Layer:       name,
		WaterOffset: -1,
		ApplyBiome:  true,
	}
}

// Report summarises what a run changed.
type Report struct {
	Layer       string `json:"layer"`
	Carved      int    `json:"carved"`
	WaterRaised int    `json:"water_raised"`
	Relabeled   int    `json:"relabeled"`
	Cleared     int    `json:"cleared"`
}
