package terrain

// Biome IDs matching Minecraft 1.8, which is also what the anvil exporter writes.
const (
	BiomeOcean      = 0
	BiomePlains     = 1
	BiomeDesert     = 2
	BiomeMountains  = 3 // extreme hills
	BiomeForest     = 4
	BiomeTaiga      = 5
	BiomeRiver      = 7
	BiomeTundra     = 12
	BiomeBeach      = 16
	BiomeJungle     = 21
	BiomeDarkForest = 29
	BiomeSnowyTaiga = 30
	BiomeSavanna    = 35
)

// biomeAt returns the biome at a cell given the continent-scale height.
func (g *generator) biomeAt(x, y int, continent float64) uint8 {
	if continent < SeaLevel-8 {
		return BiomeOcean
	}
	if continent < SeaLevel-2 {
		return BiomeBeach
	}

	tx := float64(x) / 512.0
	ty := float64(y) / 512.0
	temp := g.temp.Noise2D(tx, ty)*0.8 + 0.75
	rain := g.rain.Noise2D(tx+100, ty+100)*0.5 + 0.5
	return selectBiome(temp, rain)
}

// selectBiome maps temperature and rainfall to a biome ID.
//
//	Temp\Rain     | Dry (<0.3)    | Medium (0.3-0.6) | Wet (>0.6)
//	Cold <0.3     | Tundra        | Snowy Taiga      | Taiga
//	Mild 0.3-0.7  | Plains        | Forest           | Dark Forest
//	Warm 0.7-1.2  | Savanna       | Plains           | Jungle
//	Hot >1.2      | Desert        | Desert           | Jungle
func selectBiome(temp, rain float64) uint8 {
	switch {
	case temp < 0.3:
		switch {
		case rain < 0.3:
			return BiomeTundra
		case rain < 0.6:
			return BiomeSnowyTaiga
		default:
			return BiomeTaiga
		}
	case temp < 0.7:
		switch {
		case rain < 0.3:
			return BiomePlains
		case rain < 0.6:
			return BiomeForest
		default:
			return BiomeDarkForest
		}
	case temp < 1.2:
		switch {
		case rain < 0.3:
			return BiomeSavanna
		case rain < 0.6:
			return BiomePlains
		default:
			return BiomeJungle
		}
	default:
		if rain > 0.6 {
			return BiomeJungle
		}
		return BiomeDesert
	}
}

// biomeTerrainParams returns (amplitude, baseHeight) for terrain noise scaling.
func biomeTerrainParams(biome uint8) (amplitude, baseHeight float64) {
	switch biome {
	case BiomeOcean:
		return 8.0, 40.0
	case BiomePlains, BiomeSavanna:
		return 12.0, SeaLevel + 3
	case BiomeForest, BiomeDarkForest:
		return 16.0, SeaLevel + 5
	case BiomeTaiga, BiomeSnowyTaiga, BiomeJungle:
		return 18.0, SeaLevel + 6
	case BiomeDesert:
		return 10.0, SeaLevel + 4
	case BiomeMountains:
		return 40.0, SeaLevel + 12
	case BiomeBeach:
		return 3.0, SeaLevel
	default:
		return 12.0, SeaLevel + 3
	}
}
