package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/OCharnyshevich/riverbed/internal/dimension"
	"github.com/OCharnyshevich/riverbed/internal/layer"
)

const (
	kindGroundCover = "ground_cover"
	kindBit         = "bit"
)

// SaveDimension replaces the stored dimension with d in a single transaction.
func (s *Store) SaveDimension(ctx context.Context, d *dimension.Dimension) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"tile_layers", "tiles", "layers", "dimension"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO dimension (id, seed, bottomless) VALUES (1, ?, ?)",
		d.Seed(), d.Bottomless(),
	); err != nil {
		return fmt.Errorf("insert dimension: %w", err)
	}

	for _, l := range d.Layers() {
		if err := insertLayer(ctx, tx, l); err != nil {
			return err
		}
	}

	tiles := d.Tiles()
	for _, t := range tiles {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tiles (tx, ty, heights, water, biomes) VALUES (?, ?, ?, ?, ?)",
			t.X, t.Y, encodeInt32s(t.Heights[:]), encodeInt32s(t.Water[:]), t.Biomes[:],
		); err != nil {
			return fmt.Errorf("insert tile (%d,%d): %w", t.X, t.Y, err)
		}
		for name, bs := range t.Bits {
			if !bs.Any() {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO tile_layers (tx, ty, layer, bits) VALUES (?, ?, ?, ?)",
				t.X, t.Y, name, encodeBitset(bs),
			); err != nil {
				return fmt.Errorf("insert layer %q of tile (%d,%d): %w", name, t.X, t.Y, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	s.log.Info("saved dimension", "tiles", len(tiles), "seed", d.Seed())
	return nil
}

func insertLayer(ctx context.Context, tx *sql.Tx, l layer.Layer) error {
	var err error
	switch v := l.(type) {
	case *layer.GroundCover:
		n := v.Noise
		hasNoise := n != nil
		if n == nil {
			n = &layer.NoiseSettings{Scale: 1}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO layers (name, kind, thickness, edge_shape, edge_width,
				has_noise, noise_seed, noise_range, noise_roughness, noise_scale)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.Name(), kindGroundCover, v.Thick, v.Shape.String(), v.Width,
			hasNoise, n.Seed, n.Range, n.Roughness, n.Scale,
		)
	default:
		_, err = tx.ExecContext(ctx,
			"INSERT INTO layers (name, kind) VALUES (?, ?)", l.Name(), kindBit)
	}
	if err != nil {
		return fmt.Errorf("insert layer %q: %w", l.Name(), err)
	}
	return nil
}

// LoadDimension reads the stored dimension.
func (s *Store) LoadDimension(ctx context.Context) (*dimension.Dimension, error) {
	var (
		seed       int64
		bottomless bool
	)
	err := s.db.QueryRowContext(ctx, "SELECT seed, bottomless FROM dimension WHERE id = 1").Scan(&seed, &bottomless)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoDimension
	}
	if err != nil {
		return nil, fmt.Errorf("read dimension: %w", err)
	}

	d := dimension.New(seed, bottomless)
	if err := s.loadLayers(ctx, d); err != nil {
		return nil, err
	}
	if err := s.loadTiles(ctx, d); err != nil {
		return nil, err
	}
	if err := s.loadTileLayers(ctx, d); err != nil {
		return nil, err
	}

	s.log.Info("loaded dimension", "tiles", len(d.Tiles()), "layers", len(d.Layers()), "seed", seed)
	return d, nil
}

func (s *Store) loadLayers(ctx context.Context, d *dimension.Dimension) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, kind, thickness, edge_shape, edge_width,
			has_noise, noise_seed, noise_range, noise_roughness, noise_scale
		FROM layers ORDER BY name`)
	if err != nil {
		return fmt.Errorf("query layers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name, kind, shapeName string
			thickness, width      int
			hasNoise              bool
			n                     layer.NoiseSettings
		)
		if err := rows.Scan(&name, &kind, &thickness, &shapeName, &width,
			&hasNoise, &n.Seed, &n.Range, &n.Roughness, &n.Scale); err != nil {
			return fmt.Errorf("scan layer: %w", err)
		}

		switch kind {
		case kindGroundCover:
			shape, err := layer.ParseEdgeShape(shapeName)
			if err != nil {
				return fmt.Errorf("layer %q: %w", name, err)
			}
			var noise *layer.NoiseSettings
			if hasNoise {
				noise = &n
			}
			d.AddLayer(layer.NewGroundCover(name, thickness, shape, width, noise))
		case kindBit:
			d.AddLayer(layer.NewBit(name))
		default:
			return fmt.Errorf("layer %q has unknown kind %q", name, kind)
		}
	}
	return rows.Err()
}

func (s *Store) loadTiles(ctx context.Context, d *dimension.Dimension) error {
	rows, err := s.db.QueryContext(ctx, "SELECT tx, ty, heights, water, biomes FROM tiles")
	if err != nil {
		return fmt.Errorf("query tiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tx, ty                 int
			heights, water, biomes []byte
		)
		if err := rows.Scan(&tx, &ty, &heights, &water, &biomes); err != nil {
			return fmt.Errorf("scan tile: %w", err)
		}

		t := &dimension.Tile{X: tx, Y: ty}
		if err := decodeInt32s(t.Heights[:], heights); err != nil {
			return fmt.Errorf("tile (%d,%d) heights: %w", tx, ty, err)
		}
		if err := decodeInt32s(t.Water[:], water); err != nil {
			return fmt.Errorf("tile (%d,%d) water: %w", tx, ty, err)
		}
		if len(biomes) != dimension.Cells {
			return fmt.Errorf("tile (%d,%d) biomes: got %d bytes, want %d", tx, ty, len(biomes), dimension.Cells)
		}
		copy(t.Biomes[:], biomes)
		d.PutTile(t)
	}
	return rows.Err()
}

func (s *Store) loadTileLayers(ctx context.Context, d *dimension.Dimension) error {
	rows, err := s.db.QueryContext(ctx, "SELECT tx, ty, layer, bits FROM tile_layers")
	if err != nil {
		return fmt.Errorf("query tile layers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tx, ty int
			name   string
			bits   []byte
		)
		if err := rows.Scan(&tx, &ty, &name, &bits); err != nil {
			return fmt.Errorf("scan tile layer: %w", err)
		}
		t, ok := d.Tile(tx, ty)
		if !ok {
			return fmt.Errorf("layer %q references missing tile (%d,%d)", name, tx, ty)
		}
		bs, err := decodeBitset(bits)
		if err != nil {
			return fmt.Errorf("tile (%d,%d) layer %q: %w", tx, ty, name, err)
		}
		t.Bits[name] = bs
	}
	return rows.Err()
}

func encodeInt32s(vs []int32) []byte {
	buf := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return buf
}

func decodeInt32s(dst []int32, buf []byte) error {
	if len(buf) != 4*len(dst) {
		return fmt.Errorf("got %d bytes, want %d", len(buf), 4*len(dst))
	}
	for i := range dst {
		dst[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return nil
}

func encodeBitset(bs *dimension.Bitset) []byte {
	buf := make([]byte, 8*len(bs))
	for i, w := range bs {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return buf
}

func decodeBitset(buf []byte) (*dimension.Bitset, error) {
	bs := &dimension.Bitset{}
	if len(buf) != 8*len(bs) {
		return nil, fmt.Errorf("got %d bytes, want %d", len(buf), 8*len(bs))
	}
	for i := range bs {
		bs[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return bs, nil
}
