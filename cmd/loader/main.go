// Catalog ingest pipeline: loads items and taxonomy from parquet files into
// the store and writes an embedding for every item that encodes cleanly.
// Supports resume via a cursor persisted in the store.
//
// Usage:
//
//	loader -data-dir /data -max-rows 100000
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/soko-cloud/semsearch/internal/config"
	dbRedis "github.com/soko-cloud/semsearch/internal/db/redis"
	"github.com/soko-cloud/semsearch/internal/encoder"
	logpkg "github.com/soko-cloud/semsearch/internal/logger"
	itemrepo "github.com/soko-cloud/semsearch/internal/repository/item"
	taxonomyrepo "github.com/soko-cloud/semsearch/internal/repository/taxonomy"
	vectorrepo "github.com/soko-cloud/semsearch/internal/repository/vector"
)

type flags struct {
	dataDir   string
	maxRows   int
	batchSize int
	reset     bool
}

func parseFlags() flags {
	f := flags{}
	flag.StringVar(&f.dataDir, "data-dir", "/data", "directory with items*.parquet and taxonomy parquet files")
	flag.IntVar(&f.maxRows, "max-rows", 0, "max items to load (0=unlimited)")
	flag.IntVar(&f.batchSize, "batch-size", 100, "rows between progress logs and cursor saves")
	flag.BoolVar(&f.reset, "reset", false, "ignore the saved cursor and start from scratch")
	flag.Parse()
	return f
}

func main() {
	f := parseFlags()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(ctx, f, cfg, logger); err != nil {
		logger.Fatal("ingest failed", zap.Error(err))
	}
}

func run(ctx context.Context, f flags, cfg config.Config, logger *zap.Logger) error {
	start := time.Now()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return err
	}

	artifact, err := encoder.LoadArtifact(cfg.Model.ArtifactPath)
	if err != nil {
		return err
	}
	model := encoder.NewModel(artifact)

	ing := &ingester{
		items:     itemrepo.New(store).WithPrefix(cfg.Storage.KeyPrefix),
		vectors:   vectorrepo.New(store).WithPrefix(cfg.Storage.KeyPrefix),
		taxonomy:  taxonomyrepo.New(store).WithPrefix(cfg.Storage.KeyPrefix),
		cursor:    newCursor(store, cfg.Storage.KeyPrefix),
		model:     model,
		logger:    logger,
		batchSize: f.batchSize,
	}

	if f.reset {
		if err := ing.cursor.Reset(ctx); err != nil {
			return err
		}
		logger.Info("cursor reset")
	}

	if err := ing.ingestTaxonomy(ctx, f.dataDir); err != nil {
		return err
	}
	loaded, err := ing.ingestItems(ctx, f.dataDir, f.maxRows)
	if err != nil {
		return err
	}

	logger.Info("ingest finished",
		zap.Int("items", loaded),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
