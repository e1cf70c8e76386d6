package dimension

import (
	"image"
	"math"
	"slices"
	"sort"
	"sync"

	"github.com/OCharnyshevich/riverbed/internal/layer"
)

// Dimension is a sparse heightmap made of 128×128 tiles. Cells in tiles that
// were never added read as zero and ignore writes.
//
// mu guards the tile and layer maps. Cell arrays inside a tile are not
// locked; callers writing one tile from several goroutines must coordinate.
type Dimension struct {
	mu         sync.RWMutex
	seed       int64
	bottomless bool
	tiles      map[TileCoord]*Tile
	layers     map[string]layer.Layer
}

// New creates an empty Dimension.
func New(seed int64, bottomless bool) *Dimension {
	return &Dimension{
		seed:       seed,
		bottomless: bottomless,
		tiles:      make(map[TileCoord]*Tile),
		layers:     make(map[string]layer.Layer),
	}
}

func (d *Dimension) Seed() int64      { return d.seed }
func (d *Dimension) Bottomless() bool { return d.bottomless }

// AddLayer registers l, replacing any layer with the same name.
func (d *Dimension) AddLayer(l layer.Layer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.layers[l.Name()] = l
}

// LayerByName returns the registered layer with the given name.
func (d *Dimension) LayerByName(name string) (layer.Layer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	l, ok := d.layers[name]
	return l, ok
}

// Layers returns all registered layers sorted by name.
func (d *Dimension) Layers() []layer.Layer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]layer.Layer, 0, len(d.layers))
	for _, l := range d.layers {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// AddTile returns the tile at (tx, ty), creating an empty one if needed.
func (d *Dimension) AddTile(tx, ty int) *Tile {
	pos := TileCoord{X: tx, Y: ty}

	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.tiles[pos]; ok {
		return t
	}
	t := newTile(tx, ty)
	d.tiles[pos] = t
	return t
}

// PutTile stores t at its own coordinates, replacing any existing tile.
func (d *Dimension) PutTile(t *Tile) {
	if t.Bits == nil {
		t.Bits = make(map[string]*Bitset)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tiles[TileCoord{X: t.X, Y: t.Y}] = t
}

// Tile returns the tile at (tx, ty) if present.
func (d *Dimension) Tile(tx, ty int) (*Tile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.tiles[TileCoord{X: tx, Y: ty}]
	return t, ok
}

// Tiles returns all present tiles ordered by Y, then X.
func (d *Dimension) Tiles() []*Tile {
	d.mu.RLock()
	out := make([]*Tile, 0, len(d.tiles))
	for _, t := range d.tiles {
		out = append(out, t)
	}
	d.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Tile) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

// IsTilePresent reports whether the tile at (tx, ty) exists.
func (d *Dimension) IsTilePresent(tx, ty int) bool {
	_, ok := d.Tile(tx, ty)
	return ok
}

// Extent returns the bounding box of all present tiles, in tile units.
func (d *Dimension) Extent() image.Rectangle {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var r image.Rectangle
	first := true
	for pos := range d.tiles {
		tr := image.Rect(pos.X, pos.Y, pos.X+1, pos.Y+1)
		if first {
			r = tr
			first = false
			continue
		}
		r = r.Union(tr)
	}
	return r
}

// Clone returns a deep copy of the dimension. Layers are shared.
func (d *Dimension) Clone() *Dimension {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c := New(d.seed, d.bottomless)
	for pos, t := range d.tiles {
		c.tiles[pos] = t.clone()
	}
	for name, l := range d.layers {
		c.layers[name] = l
	}
	return c
}

func (d *Dimension) tileAt(x, y int) *Tile {
	d.mu.RLock()
	t := d.tiles[TileOf(x, y)]
	d.mu.RUnlock()
	return t
}

// Height returns the terrain height at (x, y).
func (d *Dimension) Height(x, y int) int {
	if t := d.tileAt(x, y); t != nil {
		return int(t.Heights[cellIndex(x, y)])
	}
	return 0
}

// SetHeight sets the terrain height at (x, y).
func (d *Dimension) SetHeight(x, y, h int) {
	if t := d.tileAt(x, y); t != nil {
		t.Heights[cellIndex(x, y)] = int32(h)
	}
}

// WaterLevel returns the water level at (x, y).
func (d *Dimension) WaterLevel(x, y int) int {
	if t := d.tileAt(x, y); t != nil {
		return int(t.Water[cellIndex(x, y)])
	}
	return 0
}

// SetWaterLevel sets the water level at (x, y).
func (d *Dimension) SetWaterLevel(x, y, w int) {
	if t := d.tileAt(x, y); t != nil {
		t.Water[cellIndex(x, y)] = int32(w)
	}
}

// Biome returns the biome code at (x, y).
func (d *Dimension) Biome(x, y int) int {
	if t := d.tileAt(x, y); t != nil {
		return int(t.Biomes[cellIndex(x, y)])
	}
	return 0
}

// SetBiome sets the biome code at (x, y).
func (d *Dimension) SetBiome(x, y, b int) {
	if t := d.tileAt(x, y); t != nil {
		t.Biomes[cellIndex(x, y)] = uint8(b)
	}
}

// BitLayerValue reports whether layer l is set at (x, y).
func (d *Dimension) BitLayerValue(l layer.Layer, x, y int) bool {
	t := d.tileAt(x, y)
	if t == nil {
		return false
	}
	d.mu.RLock()
	bs := t.Bits[l.Name()]
	d.mu.RUnlock()
	return bs != nil && bs.Get(cellIndex(x, y))
}

// SetBitLayerValue sets or clears layer l at (x, y).
func (d *Dimension) SetBitLayerValue(l layer.Layer, x, y int, v bool) {
	t := d.tileAt(x, y)
	if t == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	bs := t.Bits[l.Name()]
	if bs == nil {
		if !v {
			return
		}
		bs = &Bitset{}
		t.Bits[l.Name()] = bs
	}
	bs.Set(cellIndex(x, y), v)
}

// DistanceToEdge returns the Euclidean distance, truncated to whole cells,
// from (x, y) to the nearest cell where l is not set. The search stops at
// maxDistance, which is returned when no edge is closer.
func (d *Dimension) DistanceToEdge(l layer.Layer, x, y, maxDistance int) int {
	if !d.BitLayerValue(l, x, y) {
		return 0
	}

	best := maxDistance * maxDistance
	for r := 1; r <= maxDistance && r*r < best; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx != -r && dx != r && dy != -r && dy != r {
					continue // interior of the ring, already scanned
				}
				sq := dx*dx + dy*dy
				if sq >= best {
					continue
				}
				if !d.BitLayerValue(l, x+dx, y+dy) {
					best = sq
				}
			}
		}
	}
	return min(int(math.Sqrt(float64(best))), maxDistance)
}
