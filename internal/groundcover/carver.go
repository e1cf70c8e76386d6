package groundcover

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/riverbed/internal/layer"
)

// Carver converts a ground cover layer into a water-filled channel.
type Carver struct {
	log *slog.Logger
}

// New creates a Carver that logs progress to log.
func New(log *slog.Logger) *Carver {
	return &Carver{log: log}
}

// Validate resolves and checks everything a run needs. It never writes to g.
func Validate(g Grid, p Params) (*Resolver, error) {
	if p.Workers < 0 {
		return nil, fmt.Errorf("workers %d must not be negative: %w", p.Workers, ErrInvalidConfiguration)
	}

	l, ok := g.LayerByName(p.Layer)
	if !ok {
		return nil, fmt.Errorf("layer %q: %w", p.Layer, ErrLayerNotFound)
	}
	gc, ok := l.(coverLayer)
	if !ok {
		return nil, fmt.Errorf("layer %q: %w", p.Layer, ErrInvalidLayerKind)
	}

	if t := gc.Thickness(); t >= 0 {
		return nil, fmt.Errorf("layer %q thickness %d is not negative: %w", p.Layer, t, ErrInvalidConfiguration)
	}
	if w := gc.EdgeWidth(); w < 1 {
		return nil, fmt.Errorf("layer %q edge width %d is not positive: %w", p.Layer, w, ErrInvalidConfiguration)
	}
	if s := gc.EdgeShape(); s > layer.Rounded {
		return nil, fmt.Errorf("layer %q edge shape %v: %w", p.Layer, s, ErrInvalidConfiguration)
	}
	if n := gc.NoiseSettings(); n != nil && n.Range < 0 {
		return nil, fmt.Errorf("layer %q noise range %d is negative: %w", p.Layer, n.Range, ErrInvalidConfiguration)
	}

	overlay := NewOverlay(g.Seed(), gc.NoiseSettings())
	return NewResolver(gc, gc.Thickness(), gc.EdgeShape(), gc.EdgeWidth(), overlay), nil
}

// Run carves the layer named in p into g, then optionally relabels the
// biome and clears the layer. Nothing is written if validation fails.
func (c *Carver) Run(g Grid, p Params) (Report, error) {
	res, err := Validate(g, p)
	if err != nil {
		return Report{}, err
	}

	start := time.Now()
	report := Report{Layer: p.Layer}
	l := res.Layer()

	c.log.Info("carving the ground and raising water level",
		"layer", p.Layer,
		"extent", g.Extent(),
		"tapered", res.Tapered(),
		"noiseRange", res.overlay.Range(),
	)
	report.Carved, report.WaterRaised = c.carve(g, res, p)

	if p.ApplyBiome {
		c.log.Info("setting river biome", "layer", p.Layer)
		report.Relabeled = c.relabelBiomes(g, l)
	}

	if p.DeleteLayer {
		c.log.Info("removing layer", "layer", p.Layer)
		report.Cleared = c.clearLayer(g, l)
	}

	c.log.Info("done",
		"layer", p.Layer,
		"carved", report.Carved,
		"waterRaised", report.WaterRaised,
		"relabeled", report.Relabeled,
		"cleared", report.Cleared,
		"elapsed", time.Since(start),
	)
	return report, nil
}

// relabelBiomes marks every member cell as river, leaving ocean alone.
func (c *Carver) relabelBiomes(g Grid, l layer.Layer) int {
	n := 0
	forEachMember(g, l, func(x, y int) {
		if g.Biome(x, y) == 0 {
			return
		}
		g.SetBiome(x, y, RiverBiome)
		n++
	})
	return n
}

// clearLayer removes l from every member cell.
func (c *Carver) clearLayer(g Grid, l layer.Layer) int {
	n := 0
	forEachMember(g, l, func(x, y int) {
		g.SetBitLayerValue(l, x, y, false)
		n++
	})
	return n
}

// carve runs the carve/flood phase one tile per goroutine. Each cell only
// reads and writes its own height and water slots, so tiles are independent.
func (c *Carver) carve(g Grid, res *Resolver, p Params) (carved, raised int) {
	workers := p.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	minHeight := minHeightFor(g)

	var nCarved, nRaised atomic.Int64
	var eg errgroup.Group
	eg.SetLimit(workers)

	ext := g.Extent()
	for ty := ext.Min.Y; ty < ext.Max.Y; ty++ {
		for tx := ext.Min.X; tx < ext.Max.X; tx++ {
			if !g.IsTilePresent(tx, ty) {
				continue
			}
			eg.Go(func() error {
				var tc, tr int64
				x0, y0 := tx*TileSize, ty*TileSize
				for y := y0; y < y0+TileSize; y++ {
					for x := x0; x < x0+TileSize; x++ {
						ok, up := carveCell(g, res, p.WaterOffset, minHeight, x, y)
						if ok {
							tc++
						}
						if up {
							tr++
						}
					}
				}
				nCarved.Add(tc)
				nRaised.Add(tr)
				c.log.Debug("tile carved", "tx", tx, "ty", ty, "cells", tc)
				return nil
			})
		}
	}
	_ = eg.Wait() // workers never fail

	return int(nCarved.Load()), int(nRaised.Load())
}

// carveCell applies the carve/flood rule to one cell. It reports whether the
// cell was a member and whether its water level was raised.
func carveCell(g Grid, res *Resolver, waterOffset, minHeight, x, y int) (carved, raised bool) {
	l := res.Layer()
	if !g.BitLayerValue(l, x, y) {
		return false, false
	}

	terrain := g.Height(x, y)
	water := g.WaterLevel(x, y)

	distance := 0
	if res.Tapered() {
		distance = g.DistanceToEdge(l, x, y, res.MaxDistance())
	}
	depth := res.Depth(x, y, distance)

	newWater, newHeight := reconcile(terrain, water, depth, waterOffset, minHeight)
	if newWater != water {
		g.SetWaterLevel(x, y, newWater)
		raised = true
	}
	g.SetHeight(x, y, newHeight)
	return true, raised
}

// reconcile computes the new water level and terrain height for a cell from
// its pre-pass values. Water never goes down; a cell that was already under
// water is never dug below its original height by more than the water allows.
func reconcile(terrain, water, depth, waterOffset, minHeight int) (newWater, newHeight int) {
	newWater = water
	if water < terrain+waterOffset {
		newWater = terrain + waterOffset
	}

	newHeight = terrain - depth
	if water > terrain {
		newHeight = min(water-depth, terrain)
	}
	newHeight = max(newHeight, minHeight)
	return newWater, newHeight
}

func minHeightFor(g Grid) int {
	if g.Bottomless() {
		return 0
	}
	return 1
}

// forEachMember calls fn for every cell of a present tile where l is set.
func forEachMember(g Grid, l layer.Layer, fn func(x, y int)) {
	ext := g.Extent()
	for ty := ext.Min.Y; ty < ext.Max.Y; ty++ {
		for tx := ext.Min.X; tx < ext.Max.X; tx++ {
			if !g.IsTilePresent(tx, ty) {
				continue
			}
			x0, y0 := tx*TileSize, ty*TileSize
			for y := y0; y < y0+TileSize; y++ {
				for x := x0; x < x0+TileSize; x++ {
					if g.BitLayerValue(l, x, y) {
						fn(x, y)
					}
				}
			}
		}
	}
}
