// Command sample-data writes a deterministic synthetic registration CSV.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/thaidash/internal/adapters/repository"
	"github.com/okian/thaidash/internal/sampledata"
	"github.com/okian/thaidash/pkg/logger"
)

const defaultTimeout = time.Minute

func main() {
	var (
		output  = flag.String("output", "data/raw/registrations.csv", "Where to write the CSV")
		rows    = flag.Int("rows", sampledata.DefaultRows, "Number of registrations")
		seed    = flag.Uint64("seed", sampledata.DefaultSeed, "Random seed")
		missing = flag.Float64("missing", 0.10, "Share of optional cells left blank")
		repeat  = flag.Float64("repeat", 0.15, "Share of rows that re-register an earlier participant")
		start   = flag.String("start", "2024-01-01", "First registration date (YYYY-MM-DD)")
	)
	flag.Parse()

	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("sample-data")

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	from, err := time.Parse(time.DateOnly, *start)
	if err != nil {
		log.Error(ctx, "invalid start date", logger.String("start", *start), logger.Error(err))
		os.Exit(1)
	}

	gen := sampledata.New(
		sampledata.WithRows(*rows),
		sampledata.WithSeed(*seed),
		sampledata.WithMissingRate(*missing),
		sampledata.WithRepeatRate(*repeat),
		sampledata.WithStartDate(from),
	)
	t, err := gen.Table(ctx)
	if err != nil {
		log.Error(ctx, "generate sample data", logger.Error(err))
		os.Exit(1)
	}

	store := repository.NewCSVStore(repository.WithLogger(log))
	if err := store.Save(ctx, *output, t.Dataset()); err != nil {
		log.Error(ctx, "write sample data", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "sample data written", logger.String("output", *output), logger.Int("rows", t.Len()))
}
