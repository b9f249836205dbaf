package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qr-quiz-service/internal/config"
	"qr-quiz-service/internal/infra/postgres"
	"qr-quiz-service/internal/logger"
)

// NewMigrateCmd applies database migrations.
func NewMigrateCmd(configPath *string) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
			if err != nil {
				return err
			}
			defer log.Sync()
			if err := runMigrations(cmd.Context(), cfg, log); err != nil {
				return err
			}
			if seed {
				return seedCatalog(cmd.Context(), cfg, log)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "copy the builtin (or catalog.path file) quizzes into the quizzes table")
	return cmd
}

func runMigrations(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	group, err := postgres.Migrate(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	if group == nil {
		log.Info("database already up to date")
		return nil
	}
	log.Info("migrations applied", zap.Int64("group_id", group.ID), zap.Int("count", len(group.Migrations)))
	return nil
}

func seedCatalog(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	source := cfg
	if source.Catalog.Source == config.CatalogPostgres {
		source.Catalog.Source = config.CatalogBuiltin
	}
	c, err := loadCatalog(ctx, source, nil)
	if err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	quizzes := c.List()
	if err := postgres.NewQuizLoader(pool).SaveQuizzes(ctx, quizzes); err != nil {
		return err
	}
	log.Info("catalog seeded", zap.Int("quizzes", len(quizzes)))
	return nil
}
