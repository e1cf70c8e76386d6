package dimension

const (
	// TileSize is the edge length of a tile in cells.
	TileSize  = 128
	tileShift = 7
	tileMask  = TileSize - 1

	// Cells is the number of cells in one tile.
	Cells = TileSize * TileSize
)

// TileCoord identifies a tile by its tile-unit X and Y coordinates.
type TileCoord struct{ X, Y int }

// TileOf returns the coordinate of the tile containing cell (x, y).
func TileOf(x, y int) TileCoord {
	return TileCoord{X: x >> tileShift, Y: y >> tileShift}
}

// Bitset holds one bit per tile cell.
type Bitset [Cells / 64]uint64

// Get reports whether the bit at the given cell index is set.
func (b *Bitset) Get(i int) bool {
	return b[i>>6]&(1<<uint(i&63)) != 0
}

// Set sets or clears the bit at the given cell index.
func (b *Bitset) Set(i int, v bool) {
	if v {
		b[i>>6] |= 1 << uint(i&63)
	} else {
		b[i>>6] &^= 1 << uint(i&63)
	}
}

// Any reports whether at least one bit is set.
func (b *Bitset) Any() bool {
	for _, w := range b {
		if w != 0 {
			return true
		}
	}
	return false
}

// Tile is a 128×128 block of cells. Index = (y&127)*128 + (x&127).
type Tile struct {
	X, Y    int
	Heights [Cells]int32
	Water   [Cells]int32
	Biomes  [Cells]uint8
	Bits    map[string]*Bitset // bit layer name → membership
}

func newTile(tx, ty int) *Tile {
	return &Tile{X: tx, Y: ty, Bits: make(map[string]*Bitset)}
}

// Fill sets every cell of the tile to the given height, water level and biome.
func (t *Tile) Fill(height, water int, biome uint8) {
	for i := range t.Heights {
		t.Heights[i] = int32(height)
		t.Water[i] = int32(water)
		t.Biomes[i] = biome
	}
}

func (t *Tile) clone() *Tile {
	c := &Tile{X: t.X, Y: t.Y, Heights: t.Heights, Water: t.Water, Biomes: t.Biomes}
	c.Bits = make(map[string]*Bitset, len(t.Bits))
	for name, bs := range t.Bits {
		cp := *bs
		c.Bits[name] = &cp
	}
	return c
}

func cellIndex(x, y int) int {
	return (y&tileMask)*TileSize + (x & tileMask)
}
