package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/battle-relay/internal/config"
	"github.com/DoyleJ11/battle-relay/internal/httpapi"
	"github.com/DoyleJ11/battle-relay/internal/hub"
	"github.com/DoyleJ11/battle-relay/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "", "listen address, overrides RELAY_ADDR")
	envFile := flag.String("env", "", "env file to load instead of .env")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The hub outlives the signal so in-flight requests can drain.
	h := hub.NewHub(context.Background(), log.Named("hub"), hub.WithLiveness(cfg.Liveness))

	srv := &http.Server{
		Addr:           cfg.Addr,
		Handler:        httpapi.SetupRoutes(h, log.Named("http")),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("relay listening", zap.String("addr", cfg.Addr), zap.Duration("liveness", cfg.Liveness))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := multierr.Combine(
			srv.Shutdown(sctx),
			h.Shutdown(sctx),
		)
		if err != nil {
			log.Error("shutdown", zap.Error(err))
			return err
		}
		log.Info("shutdown complete")
		return nil
	})
	return g.Wait()
}
