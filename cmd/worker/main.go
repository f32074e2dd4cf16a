// Command worker periodically recomputes stored job statuses from their
// segments and repairs any that drifted.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"garage/internal/adapter/repo"
	"garage/internal/infra"
	"garage/internal/workshop"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel).With().Str("cmd", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	svc := workshop.NewService(workshop.Deps{
		Entities: repo.NewEntityRepository(runner),
		Jobs:     repo.NewJobRepository(runner),
		Refs:     repo.NewSequenceRepository(runner),
		Rules:    repo.NewNominalRuleRepository(runner),
		Clock:    time.Now,
		Logger:   logger,
	})

	logger.Info().
		Dur("interval", cfg.ReconcileInterval).
		Int("batch", cfg.ReconcileBatchSize).
		Msg("reconciler started")

	if err := svc.RunReconciler(ctx, cfg.ReconcileInterval, cfg.ReconcileBatchSize); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("reconciler stopped")
		return
	}
	logger.Info().Msg("reconciler stopped")
}
