package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"qr-quiz-service/internal/app"
	"qr-quiz-service/internal/catalog"
	"qr-quiz-service/internal/config"
	"qr-quiz-service/internal/infra/memory"
	"qr-quiz-service/internal/infra/postgres"
	"qr-quiz-service/internal/infra/rest"
	"qr-quiz-service/internal/logger"
	"qr-quiz-service/internal/validation"
)

// resources are the collaborators every command builds from config.
type resources struct {
	logger  *zap.Logger
	catalog *catalog.Catalog
	results app.ResultRepository
	pool    *pgxpool.Pool
}

func openResources(ctx context.Context, cfg config.Config) (*resources, error) {
	log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	res := &resources{logger: log}

	if needsPostgres(cfg) {
		if cfg.Postgres.URL == "" {
			res.Close()
			return nil, fmt.Errorf("postgres url not configured")
		}
		res.pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			res.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
	}

	if res.catalog, err = loadCatalog(ctx, cfg, res.pool); err != nil {
		res.Close()
		return nil, err
	}
	if res.results, err = openResults(cfg, res.pool); err != nil {
		res.Close()
		return nil, err
	}
	log.Debug("resources ready",
		zap.String("backend", cfg.Backend.Kind),
		zap.String("catalog", cfg.Catalog.Source),
		zap.Int("quizzes", len(res.catalog.List())),
	)
	return res, nil
}

// needsPostgres reports whether the result backend or the catalog lives in Postgres.
func needsPostgres(cfg config.Config) bool {
	return cfg.Backend.Kind == config.BackendPostgres || cfg.Catalog.Source == config.CatalogPostgres
}

func (r *resources) service() *app.QuizService {
	return app.NewQuizService(r.catalog, r.results, r.logger)
}

func (r *resources) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
	_ = r.logger.Sync()
}

func loadCatalog(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) (*catalog.Catalog, error) {
	var loader catalog.Loader
	switch cfg.Catalog.Source {
	case "", config.CatalogBuiltin:
		loader = catalog.NewStaticLoader(catalog.Builtin())
	case config.CatalogFile:
		loader = catalog.NewFileLoader(cfg.Catalog.Path)
	case config.CatalogPostgres:
		loader = postgres.NewQuizLoader(pool)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
	return catalog.Load(ctx, loader, validation.New())
}

func openResults(cfg config.Config, pool *pgxpool.Pool) (app.ResultRepository, error) {
	switch cfg.Backend.Kind {
	case "", config.BackendMemory:
		return memory.NewResultStore(), nil
	case config.BackendPostgres:
		return postgres.NewResultStore(pool), nil
	case config.BackendREST:
		if cfg.Backend.URL == "" {
			return nil, fmt.Errorf("backend url not configured")
		}
		client := &http.Client{Timeout: config.TTLDuration(cfg.Backend.Timeout, 10*time.Second)}
		return rest.NewResultStore(cfg.Backend.URL, cfg.Backend.APIKey, cfg.Backend.Table, client), nil
	default:
		return nil, fmt.Errorf("unknown backend kind %q", cfg.Backend.Kind)
	}
}
