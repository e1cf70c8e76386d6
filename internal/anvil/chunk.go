package anvil

import (
	"github.com/OCharnyshevich/riverbed/internal/dimension"
)

// Minecraft 1.8 block IDs written by the exporter. Metadata is always 0.
const (
	blockAir     byte = 0
	blockStone   byte = 1
	blockGrass   byte = 2
	blockDirt    byte = 3
	blockBedrock byte = 7
	blockWater   byte = 9
	blockSand    byte = 12
	blockGravel  byte = 13
)

const (
	worldHeight  = 256
	sectionCount = worldHeight / 16
	sectionSize  = 16 * 16 * 16

	soilDepth = 3 // dirt/sand blocks under the top block
	deepWater = 3 // water deeper than this gets a gravel bed
)

// chunkPos is a chunk coordinate; Z follows the dimension's y axis.
type chunkPos struct {
	X, Z int
}

// chunk is one 16×256×16 column of blocks.
type chunk struct {
	pos      chunkPos
	sections [sectionCount]*[sectionSize]byte
	biomes   [256]byte
	heights  [256]int32
}

func (c *chunk) set(lx, y, lz int, id byte) {
	if id == blockAir || y < 0 || y >= worldHeight {
		return
	}
	sec := c.sections[y>>4]
	if sec == nil {
		sec = new([sectionSize]byte)
		c.sections[y>>4] = sec
	}
	sec[(y&15)*256+lz*16+lx] = id
	if int32(y+1) > c.heights[lz*16+lx] {
		c.heights[lz*16+lx] = int32(y + 1)
	}
}

func (c *chunk) block(lx, y, lz int) byte {
	sec := c.sections[y>>4]
	if sec == nil {
		return blockAir
	}
	return sec[(y&15)*256+lz*16+lx]
}

// buildChunk lays out the blocks of chunk pos from the dimension's height,
// water and biome fields.
func buildChunk(d *dimension.Dimension, pos chunkPos) *chunk {
	c := &chunk{pos: pos}
	x0, z0 := pos.X*16, pos.Z*16
	for lz := 0; lz < 16; lz++ {
		for lx := 0; lx < 16; lx++ {
			x, y := x0+lx, z0+lz
			fillColumn(c, lx, lz, d.Height(x, y), d.WaterLevel(x, y), d.Bottomless())
			c.biomes[lz*16+lx] = byte(d.Biome(x, y))
		}
	}
	return c
}

// fillColumn writes one column: bedrock, stone, a soil band, the top
// block and any water standing above it.
func fillColumn(c *chunk, lx, lz, height, water int, bottomless bool) {
	height = min(height, worldHeight-1)
	water = min(water, worldHeight-1)
	submerged := water > height

	for y := 0; y <= height; y++ {
		var id byte
		switch {
		case y == 0 && !bottomless:
			id = blockBedrock
		case y == height:
			id = topBlock(submerged, water-height)
		case y > height-1-soilDepth:
			id = blockDirt
			if submerged {
				id = blockSand
			}
		default:
			id = blockStone
		}
		c.set(lx, y, lz, id)
	}
	for y := height + 1; y <= water; y++ {
		c.set(lx, y, lz, blockWater)
	}
}

func topBlock(submerged bool, depth int) byte {
	switch {
	case !submerged:
		return blockGrass
	case depth > deepWater:
		return blockGravel
	default:
		return blockSand
	}
}

// encodeChunk encodes c as Minecraft 1.8 chunk NBT.
func encodeChunk(c *chunk) []byte {
	var e nbtEncoder

	e.beginCompound("")
	e.beginCompound("Level")

	e.intTag("xPos", int32(c.pos.X))
	e.intTag("zPos", int32(c.pos.Z))
	e.byteTag("TerrainPopulated", 1)
	e.byteTag("LightPopulated", 1)
	e.longTag("LastUpdate", 0)

	n := 0
	for _, sec := range c.sections {
		if sec != nil {
			n++
		}
	}

	// Full brightness, as no light is computed.
	light := make([]byte, sectionSize/2)
	for i := range light {
		light[i] = 0xFF
	}
	meta := make([]byte, sectionSize/2)

	e.beginList("Sections", tagCompound, n)
	for y, sec := range c.sections {
		if sec == nil {
			continue
		}
		e.byteTag("Y", byte(y))
		e.byteArray("Blocks", sec[:])
		e.byteArray("Data", meta)
		e.byteArray("BlockLight", light)
		e.byteArray("SkyLight", light)
		e.end()
	}

	e.byteArray("Biomes", c.biomes[:])
	e.intArray("HeightMap", c.heights[:])

	e.end() // Level
	e.end() // root
	return e.Bytes()
}
