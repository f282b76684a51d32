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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"tpp-demo/internal/config"
	"tpp-demo/internal/gateway"
	"tpp-demo/internal/metrics"
	"tpp-demo/internal/server"
	"tpp-demo/internal/usecase"
)

func main() {
	settingsPath := flag.String("config", "", "Path to the YAML settings file (optional)")
	addr := flag.String("addr", "", "HTTP listen address, overrides the settings")
	seed := flag.String("seed", "", "Path to the seed document (JSON or YAML), overrides the settings")
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		settings.HTTPAddr = *addr
	}
	if *seed != "" {
		settings.SeedPath = *seed
	}

	logger, err := config.NewLogger(settings.LogLevel, settings.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(settings, logger); err != nil {
		logger.Fatal("tppdemo stopped", zap.Error(err))
	}
}

func run(settings config.Settings, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Wiring ---
	clock := usecase.SystemClock{}
	seed, err := usecase.LoadSeed(ctx, gateway.NewFileConfigRepository(settings.SeedPath), clock.Now())
	if err != nil {
		return err
	}
	cfg, registry := seed.Config, seed.Registry

	store := gateway.NewMemoryLedgerStore(seed.Ledger)
	ids := usecase.NewTransactionIDAllocator(settings.TxnIDAttempts, clock)
	merge := usecase.NewLedgerMerge(store, ids, clock, settings.StartingBalance, logger.Named("merge"))

	issuer, err := gateway.NewJWTConsentIssuer([]byte(settings.ConsentKey), settings.ConsentTTL, clock.Now)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	flows := usecase.NewFlowService(registry, store, merge, issuer, cfg.AccountNumbersToAdd,
		usecase.WithRedirectDelay(settings.RedirectDelay),
		usecase.WithRecorder(m),
		usecase.WithLogger(logger.Named("flows")))

	srv := server.NewServer(server.Deps{
		Flows:     flows,
		Dashboard: usecase.NewDashboardUseCase(cfg, store),
		Registry:  registry,
		Store:     store,
		Metrics:   m,
		Gatherer:  reg,
		Clock:     clock,
		Logger:    logger.Named("http"),
	})

	httpServer := &http.Server{
		Addr:              settings.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", settings.HTTPAddr),
			zap.String("seed", settings.SeedPath),
			zap.Int("banks", len(cfg.Banks)))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
