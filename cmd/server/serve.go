package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	electionmetrics "tally/internal/election/metrics"
	"tally/internal/election/models"
	"tally/internal/election/service"
	"tally/internal/election/snapshot"
	"tally/internal/election/store"
	"tally/internal/notify"
	"tally/internal/platform/config"
	"tally/internal/platform/httpserver"
	"tally/internal/platform/logger"
	"tally/internal/platform/metrics"
	redisclient "tally/internal/platform/redis"
	"tally/internal/platform/tracing"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the election HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger.New(cfg.LogLevel))
	},
}

// healthChecker reports whether a backing dependency is reachable.
type healthChecker func(ctx context.Context) error

// storage bundles the snapshot store with its health check and teardown.
type storage struct {
	store  snapshot.Store
	health healthChecker
	close  func() error
}

func serve(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	tp, shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("failed to flush traces", "error", err)
		}
	}()

	reg := metrics.NewRegistry()
	notifyMetrics := notify.NewMetrics(reg)

	publisher := notify.NewPublisher(cfg.Notify.BufferSize,
		notify.WithLogger(log),
		notify.WithMetrics(notifyMetrics),
	)
	svc, err := service.New(models.Identity(cfg.Administrator),
		service.WithLogger(log),
		service.WithPublisher(publisher),
		service.WithMetrics(electionmetrics.New(reg)),
		service.WithTracerProvider(tp),
	)
	if err != nil {
		return err
	}

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.close(); cerr != nil {
			log.Warn("failed to close storage", "error", cerr)
		}
	}()

	snap, restored, err := snapshot.Restore(ctx, st.store, svc)
	if err != nil {
		return fmt.Errorf("restore election: %w", err)
	}
	snapper := snapshot.New(svc, st.store,
		snapshot.WithInterval(cfg.Snapshot.Interval),
		snapshot.WithLogger(log),
		snapshot.WithMetrics(snapshot.NewMetrics(reg)),
	)
	if restored {
		snapper.MarkSaved(snap.Revision)
		log.InfoContext(ctx, "election restored",
			"revision", snap.Revision,
			"taken_at", snap.TakenAt,
			"finalized", snap.Finalized,
		)
	}

	sink, closeSink, err := openSink(ctx, cfg.Notify, log)
	if err != nil {
		return err
	}
	defer closeSink()
	worker := notify.NewWorker(publisher, sink,
		notify.WithBatchSize(cfg.Notify.BatchSize),
		notify.WithFlushInterval(cfg.Notify.FlushInterval),
		notify.WithWorkerLogger(log),
		notify.WithWorkerMetrics(notifyMetrics),
	)

	router := newRouter(routerDeps{
		Election: svc,
		Logger:   log,
		Registry: reg,
		Health:   st.health,
		JWT:      cfg.JWT,
	})
	srv := httpserver.New(cfg.Addr, cfg.HTTP, router, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting tally", "addr", cfg.Addr, "storage", cfg.Storage.Driver, "administrator", cfg.Administrator)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return ignoreCanceled(snapper.Run(gctx))
	})
	g.Go(func() error {
		err := worker.Run(gctx)
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		worker.Flush(flushCtx)
		return ignoreCanceled(err)
	})

	err = g.Wait()
	log.Info("tally stopped", "revision", svc.Revision())
	return err
}

func openStorage(ctx context.Context, cfg config.Server) (*storage, error) {
	noop := func() error { return nil }
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client, err := redisclient.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &storage{
			store:  store.NewRedis(client.Client, store.WithRedisKey(client.SnapshotKey())),
			health: client.Health,
			close:  client.Close,
		}, nil
	case config.StoragePostgres:
		db, err := store.OpenPostgres(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, err
		}
		pg, err := store.NewPostgres(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return &storage{store: pg, health: db.PingContext, close: db.Close}, nil
	case config.StorageSQLite:
		lite, err := store.OpenSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &storage{store: lite, health: lite.Ping, close: lite.Close}, nil
	default:
		return &storage{store: store.NewInMemory(), close: noop}, nil
	}
}

func openSink(ctx context.Context, cfg config.NotifyConfig, log *slog.Logger) (notify.Sink, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return notify.NewLogSink(log), func() {}, nil
	}
	sink, err := notify.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, nil, err
	}
	if err := sink.EnsureTopic(ctx, 1, 1); err != nil {
		sink.Close()
		return nil, nil, err
	}
	return sink, sink.Close, nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
