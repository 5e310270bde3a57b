package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mohammed-shakir/ongc/internal/cache"
	"github.com/mohammed-shakir/ongc/internal/cache/recordcache"
	"github.com/mohammed-shakir/ongc/internal/cache/redisstore"
	"github.com/mohammed-shakir/ongc/internal/core/config"
	"github.com/mohammed-shakir/ongc/internal/core/observability"
	"github.com/mohammed-shakir/ongc/internal/logger"
	"github.com/mohammed-shakir/ongc/internal/lookup"
	"github.com/mohammed-shakir/ongc/internal/metrics"
	"github.com/mohammed-shakir/ongc/internal/search"
	"github.com/mohammed-shakir/ongc/internal/store/sqlitestore"
)

// app carries the process-level wiring shared by every subcommand.
type app struct {
	logOut io.Writer
	// openStore builds the catalog store; tests swap it for an in-memory one.
	openStore func(cfg config.Config) (lookup.Source, error)

	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Provider
	svc     *search.Service
	closers []func() error
}

func newApp(logOut io.Writer) *app {
	return &app{
		logOut: logOut,
		openStore: func(cfg config.Config) (lookup.Source, error) {
			return sqlitestore.New(cfg.DBPath)
		},
	}
}

func (a *app) setup(ctx context.Context, flags rootFlags) error {
	a.cfg = config.FromEnv()
	if flags.dbPath != "" {
		a.cfg.DBPath = flags.dbPath
	}
	if flags.logLevel != "" {
		a.cfg.LogLevel = flags.logLevel
	}

	zl := logger.Build(logger.Config{
		Level:     a.cfg.LogLevel,
		Console:   a.cfg.LogConsole,
		SampleN:   a.cfg.LogSampleN,
		Dataset:   a.cfg.DatasetVersion,
		Component: "ongc",
	}, a.logOut)
	a.log = logger.NewSlog(&zl)

	a.metrics = metrics.Init(metrics.Config{
		Textfile: a.cfg.MetricsFile,
		Build:    metrics.BuildInfo{Version: Version, DatasetVersion: a.cfg.DatasetVersion},
	})
	a.metrics.Register(observability.Collectors()...)

	src, err := a.openStore(a.cfg)
	if err != nil {
		return err
	}
	if a.cfg.Cache.Enabled() {
		src, err = a.withRecordCache(ctx, src)
		if err != nil {
			return err
		}
	}

	a.svc = search.New(src,
		search.WithLogger(a.log),
		search.WithDatasetVersion(a.cfg.DatasetVersion))
	a.log.Debug("catalog ready",
		"db", a.cfg.DBPath,
		"lru_size", a.cfg.Cache.LRUSize,
		"redis", a.cfg.Cache.RedisAddr != "")
	return nil
}

// withRecordCache wraps src with the configured cache tiers. An unreachable
// Redis only disables the remote tier.
func (a *app) withRecordCache(ctx context.Context, src lookup.Source) (lookup.Source, error) {
	c := a.cfg.Cache
	var remote cache.Store
	if c.RedisAddr != "" {
		rc, err := redisstore.New(ctx, c.RedisAddr,
			redisstore.WithReadTimeout(c.OpTimeout),
			redisstore.WithWriteTimeout(c.OpTimeout))
		if err != nil {
			a.log.Warn("record cache: redis unavailable, continuing without it", "addr", c.RedisAddr, "err", err)
		} else {
			remote = rc
			a.closers = append(a.closers, rc.Close)
		}
	}
	return recordcache.New(src, recordcache.Options{
		Dataset:   a.cfg.DatasetVersion,
		LRUSize:   c.LRUSize,
		Remote:    remote,
		TTL:       c.TTL,
		OpTimeout: c.OpTimeout,
		Logger:    a.log,
	})
}

func (a *app) teardown() error {
	var errs []error
	if a.metrics != nil {
		errs = append(errs, a.metrics.WriteTextfile())
	}
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
