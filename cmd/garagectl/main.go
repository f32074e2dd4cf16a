// Command garagectl is the operator CLI: schema migrations, business
// entities, nominal code rules, segment previews and reference reservation.
package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"garage/internal/adapter/repo"
	"garage/internal/infra"
	"garage/internal/workshop"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "garagectl",
		Short:        "Operate the garage workshop service",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.AddCommand(newMigrateCmd(), newEntitiesCmd(), newRulesCmd(), newSegmentsCmd(), newRefsCmd())
	return root
}

// connect opens a pool on DATABASE_URL. Only subcommands that touch
// Postgres call it.
func connect(ctx context.Context, name string) (*pgxpool.Pool, zerolog.Logger, error) {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := infra.NewLogger("cli", cfg.LogLevel).With().Str("cmd", name).Logger()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return nil, logger, err
	}
	return pool, logger, nil
}

func openService(ctx context.Context, name string) (*workshop.Service, func(), error) {
	pool, logger, err := connect(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	runner := infra.NewSQLRunner(pool, logger)
	svc := workshop.NewService(workshop.Deps{
		Entities: repo.NewEntityRepository(runner),
		Jobs:     repo.NewJobRepository(runner),
		Refs:     repo.NewSequenceRepository(runner),
		Rules:    repo.NewNominalRuleRepository(runner),
		Clock:    time.Now,
		Logger:   logger,
	})
	return svc, pool.Close, nil
}
