// Command carve lowers the terrain under a ground cover layer and raises
// the water level to match, then saves the dimension back to its database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OCharnyshevich/riverbed/internal/anvil"
	"github.com/OCharnyshevich/riverbed/internal/config"
	"github.com/OCharnyshevich/riverbed/internal/fetch"
	"github.com/OCharnyshevich/riverbed/internal/groundcover"
	"github.com/OCharnyshevich/riverbed/internal/store"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "JSON config file; explicit flags override it")
	flag.StringVar(&cfg.Layer, "layer", cfg.Layer, "name of the ground cover layer to carve")
	flag.IntVar(&cfg.WaterOffset, "water-offset", cfg.WaterOffset, "water level relative to the original terrain")
	flag.BoolVar(&cfg.Biome, "biome", cfg.Biome, "relabel carved cells as River")
	flag.BoolVar(&cfg.DeleteLayer, "delete-layer", cfg.DeleteLayer, "remove the layer after carving")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "tiles carved in parallel (0 = one per CPU)")
	flag.StringVar(&cfg.Database, "db", cfg.Database, "dimension database")
	flag.StringVar(&cfg.Source, "source", cfg.Source, "fetch the database from this URL first")
	flag.StringVar(&cfg.ExportDir, "export", cfg.ExportDir, "write Anvil region files to this directory")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(2)
	}

	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("carve failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	dbPath := cfg.Database
	if dbPath == "" {
		dbPath = config.DefaultConfig().Database
	}
	if cfg.Source != "" {
		f, err := fetch.New(log)
		if err != nil {
			return err
		}
		if dbPath, err = f.Fetch(ctx, cfg.Source, dbPath); err != nil {
			return err
		}
	}

	st, err := store.Open(ctx, dbPath, log)
	if err != nil {
		return err
	}
	defer st.Close()

	d, err := st.LoadDimension(ctx)
	if err != nil {
		return err
	}

	params := cfg.Params()
	started := time.Now()
	report, err := groundcover.New(log).Run(d, params)
	if err != nil {
		return err
	}
	finished := time.Now()

	if err := st.SaveDimension(ctx, d); err != nil {
		return err
	}
	id, err := st.RecordRun(ctx, store.Run{
		Params:     params,
		Report:     report,
		StartedAt:  started,
		FinishedAt: finished,
	})
	if err != nil {
		return err
	}
	log.Info("run recorded", "id", id)

	if cfg.ExportDir != "" {
		n, err := anvil.Export(cfg.ExportDir, d)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		log.Info("exported regions", "dir", cfg.ExportDir, "regions", n)
	}
	return nil
}
