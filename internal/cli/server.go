package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"qr-quiz-service/internal/app"
	"qr-quiz-service/internal/config"
	"qr-quiz-service/internal/infra/memory"
	redisstore "qr-quiz-service/internal/infra/redis"
	"qr-quiz-service/internal/logger"
	transport "qr-quiz-service/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz HTTP and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
	cmd.Flags().StringVar(port, "port", os.Getenv("PORT"), "port to listen on (overrides config)")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	res, err := openServerResources(ctx, cfg)
	if err != nil {
		return err
	}
	defer res.Close()
	log := res.logger

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var identities app.IdentityProvider = memory.NewIdentityProvider()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return err
		}
		identities = redisstore.NewIdentityProvider(redisClient, config.TTLDuration(cfg.Redis.TTL, 0))
	}

	service := res.service()
	handler := transport.NewHandler(service, identities, log, transport.Options{
		SubmitRate:  cfg.Server.SubmitRate,
		SubmitBurst: cfg.Server.SubmitBurst,
	})
	wsHandler := transport.NewWSHandler(service, log)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(handler, wsHandler, cfg.Server.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting quiz service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openServerResources migrates the database before anything reads from it,
// since a postgres catalog is loaded while the resources open.
func openServerResources(ctx context.Context, cfg config.Config) (*resources, error) {
	if needsPostgres(cfg) {
		log, err := logger.New(cfg.Log.Env, cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		err = runMigrations(ctx, cfg, log)
		_ = log.Sync()
		if err != nil {
			return nil, err
		}
	}
	return openResources(ctx, cfg)
}
