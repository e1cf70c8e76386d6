// Command worldgen writes a synthetic dimension with a painted river band
// into a new dimension database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OCharnyshevich/riverbed/internal/dimension"
	"github.com/OCharnyshevich/riverbed/internal/layer"
	"github.com/OCharnyshevich/riverbed/internal/store"
	"github.com/OCharnyshevich/riverbed/internal/terrain"
)

func main() {
	var (
		db         = flag.String("db", "world.db", "dimension database to write")
		seed       = flag.Int64("seed", 1, "world seed")
		radius     = flag.Int("radius", 2, "tiles generated in each direction from the origin")
		layerName  = flag.String("layer", "River", "name of the ground cover layer")
		thickness  = flag.Int("thickness", -3, "layer thickness (negative digs down)")
		edge       = flag.String("edge", "linear", "edge shape: sheer, linear, smooth or rounded")
		edgeWidth  = flag.Int("edge-width", 3, "width of the tapered edge")
		noiseRange = flag.Int("noise-range", 0, "depth variation range (0 = none)")
		bottomless = flag.Bool("bottomless", false, "allow carving down to y=0")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	shape, err := layer.ParseEdgeShape(*edge)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *radius < 1 {
		fmt.Fprintln(os.Stderr, "radius must be at least 1")
		os.Exit(2)
	}

	var noise *layer.NoiseSettings
	if *noiseRange > 0 {
		noise = &layer.NoiseSettings{Seed: *seed, Range: *noiseRange, Roughness: 2, Scale: 1}
	}
	cover := layer.NewGroundCover(*layerName, *thickness, shape, *edgeWidth, noise)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("generating dimension", "seed", *seed, "radius", *radius, "layer", *layerName)
	d := terrain.Generate(terrain.Options{
		Seed:       *seed,
		Radius:     *radius,
		Bottomless: *bottomless,
		Cover:      cover,
	})

	if err := save(ctx, *db, d, log); err != nil {
		log.Error("write dimension", "error", err)
		os.Exit(1)
	}
	log.Info("dimension written", "db", *db, "tiles", len(d.Tiles()))
}

func save(ctx context.Context, path string, d *dimension.Dimension, log *slog.Logger) error {
	st, err := store.Open(ctx, path, log)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.SaveDimension(ctx, d)
}
