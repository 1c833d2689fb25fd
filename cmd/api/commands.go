package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	rediscache "gestion-citas/internal/adapters/cache/redis"
	pg "gestion-citas/internal/adapters/storage/postgres"
	"gestion-citas/internal/config"
	"gestion-citas/internal/platform/logger"
	"gestion-citas/internal/router"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "gestion-citas",
	Short:         "Servicio de citas veterinarias",
	SilenceUsage:  true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Logger.Level),
		Format: logger.ParseFormat(cfg.Logger.Format),
		App:    cfg.App.Name,
	})
	return cfg, log, nil
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	return pg.Open(cfg.Postgres.DSN, pg.PoolOptions{
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
	})
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	if cfg.Postgres.DSN == "" {
		return errors.New("DB_DSN is required to run migrations")
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := pg.Migrate(cmd.Context(), db, log)
	if err != nil {
		return err
	}
	cmd.Printf("applied %d migration(s)\n", applied)
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Logger:            log,
		CacheTTL:          cfg.Redis.TTL(),
		PetsDirectoryURL:  cfg.Directory.PetsURL,
		UsersDirectoryURL: cfg.Directory.UsersURL,
		DirectoryTimeout:  cfg.Directory.Timeout(),
	}

	if cfg.Postgres.DSN != "" {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.Postgres.RunMigrations {
			if _, err := pg.Migrate(ctx, db, log); err != nil {
				return err
			}
		}
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory stores", nil)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := rediscache.Connect(ctx, rediscache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func(c *goredis.Client) { _ = c.Close() }(rdb)
		opts.Redis = rdb
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.App.ReadTimeout(),
		WriteTimeout: cfg.App.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.App.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
