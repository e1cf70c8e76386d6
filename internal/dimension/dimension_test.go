package dimension

import (
	"image"
	"testing"

	"github.com/OCharnyshevich/riverbed/internal/layer"
)

func TestTileOfNegativeCoordinates(t *testing.T) {
	tests := []struct {
		x, y int
		want TileCoord
	}{
		{0, 0, TileCoord{0, 0}},
		{127, 127, TileCoord{0, 0}},
		{128, 0, TileCoord{1, 0}},
		{-1, -1, TileCoord{-1, -1}},
		{-128, -129, TileCoord{-1, -2}},
	}
	for _, tt := range tests {
		if got := TileOf(tt.x, tt.y); got != tt.want {
			t.Errorf("TileOf(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestAbsentTileIgnoresWrites(t *testing.T) {
	d := New(0, false)
	d.SetHeight(5, 5, 70)
	d.SetWaterLevel(5, 5, 60)
	d.SetBiome(5, 5, 3)
	if d.Height(5, 5) != 0 || d.WaterLevel(5, 5) != 0 || d.Biome(5, 5) != 0 {
		t.Error("writes to an absent tile should be ignored")
	}
	if d.IsTilePresent(0, 0) {
		t.Error("tile (0,0) should not be present")
	}
}

func TestCellAccessors(t *testing.T) {
	d := New(0, false)
	d.AddTile(-1, 0)

	d.SetHeight(-3, 7, 70)
	d.SetWaterLevel(-3, 7, 62)
	d.SetBiome(-3, 7, 4)

	if got := d.Height(-3, 7); got != 70 {
		t.Errorf("Height = %d, want 70", got)
	}
	if got := d.WaterLevel(-3, 7); got != 62 {
		t.Errorf("WaterLevel = %d, want 62", got)
	}
	if got := d.Biome(-3, 7); got != 4 {
		t.Errorf("Biome = %d, want 4", got)
	}
	// Neighbouring cell untouched.
	if got := d.Height(-4, 7); got != 0 {
		t.Errorf("Height(-4,7) = %d, want 0", got)
	}
}

func TestBitLayer(t *testing.T) {
	d := New(0, false)
	d.AddTile(0, 0)
	river := layer.NewBit("River")

	if d.BitLayerValue(river, 1, 1) {
		t.Fatal("bit should start clear")
	}
	d.SetBitLayerValue(river, 1, 1, true)
	if !d.BitLayerValue(river, 1, 1) {
		t.Fatal("bit should be set")
	}
	d.SetBitLayerValue(river, 1, 1, false)
	if d.BitLayerValue(river, 1, 1) {
		t.Fatal("bit should be cleared")
	}
}

func TestExtent(t *testing.T) {
	d := New(0, false)
	if got := d.Extent(); !got.Empty() {
		t.Errorf("empty dimension extent = %v, want empty", got)
	}
	d.AddTile(-2, 1)
	d.AddTile(3, -1)
	want := image.Rect(-2, -1, 4, 2)
	if got := d.Extent(); got != want {
		t.Errorf("Extent() = %v, want %v", got, want)
	}
}

func TestTilesOrdered(t *testing.T) {
	d := New(0, false)
	d.AddTile(1, 1)
	d.AddTile(0, 1)
	d.AddTile(5, 0)

	tiles := d.Tiles()
	want := []TileCoord{{5, 0}, {0, 1}, {1, 1}}
	for i, tl := range tiles {
		if (TileCoord{tl.X, tl.Y}) != want[i] {
			t.Errorf("Tiles()[%d] = (%d,%d), want %v", i, tl.X, tl.Y, want[i])
		}
	}
}

func TestLayerRegistry(t *testing.T) {
	d := New(0, false)
	d.AddLayer(layer.NewGroundCover("Beach", -4, layer.Linear, 3, nil))
	d.AddLayer(layer.NewBit("Frost"))

	if _, ok := d.LayerByName("Beach"); !ok {
		t.Error("Beach should resolve")
	}
	if _, ok := d.LayerByName("Missing"); ok {
		t.Error("Missing should not resolve")
	}
	ls := d.Layers()
	if len(ls) != 2 || ls[0].Name() != "Beach" || ls[1].Name() != "Frost" {
		t.Errorf("Layers() = %v, want [Beach Frost]", ls)
	}
}

func paintSquare(d *Dimension, l layer.Layer, x0, y0, size int) {
	for x := x0; x < x0+size; x++ {
		for y := y0; y < y0+size; y++ {
			d.SetBitLayerValue(l, x, y, true)
		}
	}
}

func TestDistanceToEdge(t *testing.T) {
	d := New(0, false)
	d.AddTile(0, 0)
	l := layer.NewBit("Sand")
	paintSquare(d, l, 10, 10, 11) // cells 10..20

	tests := []struct {
		x, y, max, want int
	}{
		{5, 5, 4, 0},    // not a member
		{10, 15, 4, 1},  // on the boundary
		{12, 15, 4, 3},  // two cells in
		{15, 15, 4, 4},  // deep interior, capped
		{15, 15, 10, 6}, // centre, uncapped
	}
	for _, tt := range tests {
		if got := d.DistanceToEdge(l, tt.x, tt.y, tt.max); got != tt.want {
			t.Errorf("DistanceToEdge(%d,%d,max=%d) = %d, want %d", tt.x, tt.y, tt.max, got, tt.want)
		}
	}
}

func TestDistanceToEdgeAbsentNeighbourTile(t *testing.T) {
	d := New(0, false)
	d.AddTile(0, 0)
	l := layer.NewBit("Sand")
	paintSquare(d, l, 0, 0, 20)

	// x=0 borders tile (-1,0), which is absent and therefore outside the layer.
	if got := d.DistanceToEdge(l, 0, 10, 5); got != 1 {
		t.Errorf("DistanceToEdge at tile border = %d, want 1", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := New(7, true)
	d.AddTile(0, 0)
	l := layer.NewBit("Sand")
	d.SetHeight(1, 1, 10)
	d.SetBitLayerValue(l, 1, 1, true)

	c := d.Clone()
	c.SetHeight(1, 1, 20)
	c.SetBitLayerValue(l, 1, 1, false)

	if d.Height(1, 1) != 10 {
		t.Error("clone height write leaked into original")
	}
	if !d.BitLayerValue(l, 1, 1) {
		t.Error("clone bit write leaked into original")
	}
	if c.Seed() != 7 || !c.Bottomless() {
		t.Error("clone should keep seed and bottomless flag")
	}
}
