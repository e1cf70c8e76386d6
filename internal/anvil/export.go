// Package anvil exports a dimension as Minecraft 1.8 Anvil region files.
package anvil

import (
	"fmt"
	"sort"

	"github.com/OCharnyshevich/riverbed/internal/dimension"
)

const chunksPerTile = dimension.TileSize / 16

// Export writes every present tile of d into region files under dir and
// returns the number of regions written.
func Export(dir string, d *dimension.Dimension) (int, error) {
	regions := make(map[chunkPos]map[chunkPos][]byte)

	for _, tile := range d.Tiles() {
		for cz := tile.Y * chunksPerTile; cz < (tile.Y+1)*chunksPerTile; cz++ {
			for cx := tile.X * chunksPerTile; cx < (tile.X+1)*chunksPerTile; cx++ {
				pos := chunkPos{X: cx, Z: cz}
				r := regionOf(pos)
				if regions[r] == nil {
					regions[r] = make(map[chunkPos][]byte)
				}
				regions[r][pos] = encodeChunk(buildChunk(d, pos))
			}
		}
	}

	keys := make([]chunkPos, 0, len(regions))
	for r := range regions {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Z != keys[j].Z {
			return keys[i].Z < keys[j].Z
		}
		return keys[i].X < keys[j].X
	})

	for _, r := range keys {
		if err := saveRegion(dir, r.X, r.Z, regions[r]); err != nil {
			return 0, fmt.Errorf("save region (%d,%d): %w", r.X, r.Z, err)
		}
	}
	return len(keys), nil
}
