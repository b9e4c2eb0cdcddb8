// mapgen generates a terrain offline, prints an ASCII preview, and
// optionally writes the blob to disk.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"terrasim.ai/internal/persistence/indexdb"
	"terrasim.ai/internal/persistence/terrainblob"
	"terrasim.ai/internal/sim/heightmap"
	"terrasim.ai/internal/sim/terrain"
)

func main() {
	var (
		seed      = flag.Int64("seed", 1337, "generation seed")
		biomeID   = flag.String("biome", "", "biome id (river, coastal, mesa, or empty)")
		width     = flag.Int("width", 128, "grid width")
		height    = flag.Int("height", 128, "grid height")
		generator = flag.String("generator", "legacy", "legacy or runtime")
		erosion   = flag.Int("erosion", 20, "erosion iterations (runtime path)")
		outDir    = flag.String("out", "", "write blob + index row under this directory (empty: preview only)")
		worldID   = flag.String("world", "world_1", "world id for the save")
		preview   = flag.Bool("preview", true, "print ASCII preview")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[mapgen] ", log.LstdFlags)

	st := terrain.New(*width, *height)
	biome := terrain.Biome{ID: *biomeID}
	switch *generator {
	case "runtime":
		gen := terrain.NewRuntimeGenerator(heightmap.New(*seed), *erosion)
		if err := gen.Generate(st, *seed, biome); err != nil {
			logger.Fatalf("generate: %v", err)
		}
	case "legacy":
		terrain.Generate(st, *seed, biome)
	default:
		logger.Fatalf("unknown generator %q", *generator)
	}

	printSummary(st)
	if *preview {
		printPreview(st)
	}

	if *outDir != "" {
		blob := terrainblob.FromState(st, *worldID, *seed)
		path := filepath.Join(*outDir, fmt.Sprintf("terrain-%s.json.zst", blob.Digest()[:12]))
		if err := terrainblob.Write(path, blob); err != nil {
			logger.Fatalf("write blob: %v", err)
		}
		idx, err := indexdb.Open(filepath.Join(*outDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
		defer idx.Close()
		if err := idx.RecordSave(indexdb.SaveRow{
			WorldID:      *worldID,
			Seed:         *seed,
			BiomeID:      blob.BiomeID,
			Path:         path,
			Digest:       blob.Digest(),
			Width:        st.Width(),
			Height:       st.Height(),
			WaterCells:   len(blob.Water),
			FeatureCells: len(blob.Features),
		}); err != nil {
			logger.Fatalf("record save: %v", err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func printSummary(st *terrain.State) {
	var elevCount [9]int
	water := 0
	features := 0
	for y := 0; y < st.Height(); y++ {
		for x := 0; x < st.Width(); x++ {
			c := terrain.Coord{X: x, Y: y}
			elevCount[st.Elevation(c)+3]++
			if st.Water(c) != terrain.WaterNone {
				water++
			}
			if st.Feature(c) != terrain.FeatureNone {
				features++
			}
		}
	}
	fmt.Printf("grid %dx%d, water cells %d, feature cells %d\n", st.Width(), st.Height(), water, features)
	var parts []string
	for e := -3; e <= 5; e++ {
		parts = append(parts, fmt.Sprintf("%d:%d", e, elevCount[e+3]))
	}
	fmt.Printf("elevation histogram: %s\n", strings.Join(parts, " "))
}

func printPreview(st *terrain.State) {
	// One char per cell: water type first, then feature, then elevation.
	for y := 0; y < st.Height(); y++ {
		var sb strings.Builder
		for x := 0; x < st.Width(); x++ {
			c := terrain.Coord{X: x, Y: y}
			switch st.Water(c) {
			case terrain.WaterLake:
				sb.WriteByte('~')
				continue
			case terrain.WaterPond:
				sb.WriteByte('o')
				continue
			case terrain.WaterRiver:
				sb.WriteByte('=')
				continue
			}
			switch st.Feature(c) {
			case terrain.FeatureBeach:
				sb.WriteByte(',')
				continue
			case terrain.FeatureTreeSparse, terrain.FeatureTreeDense:
				sb.WriteByte('T')
				continue
			case terrain.FeatureRockSmall, terrain.FeatureRockLarge:
				sb.WriteByte('^')
				continue
			}
			e := st.Elevation(c)
			if e < 0 {
				sb.WriteByte('_')
			} else {
				sb.WriteByte(byte('0' + e))
			}
		}
		fmt.Println(sb.String())
	}
}
