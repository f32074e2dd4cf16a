package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"garage/internal/adapter/repo"
	"garage/internal/http/handlers"
	httpapi "garage/internal/http/httpapi"
	"garage/internal/infra"
	"garage/internal/scheduling"
	"garage/internal/workshop"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)
	svc := workshop.NewService(workshop.Deps{
		Entities: repo.NewEntityRepository(runner),
		Jobs:     repo.NewJobRepository(runner),
		Refs:     repo.NewSequenceRepository(runner),
		Rules:    repo.NewNominalRuleRepository(runner),
		Clock:    time.Now,
		Logger:   logger,
	})

	app := handlers.NewApp(svc, scheduling.NewSplitter(time.Now), logger)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
