package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/SscSPs/claims_ledger/internal/audit"
	portsrepo "github.com/SscSPs/claims_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/claims_ledger/internal/core/ports/services"
	"github.com/SscSPs/claims_ledger/internal/core/services"
	"github.com/SscSPs/claims_ledger/internal/handlers"
	"github.com/SscSPs/claims_ledger/internal/middleware"
	"github.com/SscSPs/claims_ledger/internal/platform/config"
	"github.com/SscSPs/claims_ledger/internal/platform/metrics"
	"github.com/SscSPs/claims_ledger/internal/repositories/cache"
	"github.com/SscSPs/claims_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/claims_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/claims_ledger/internal/utils"
	"github.com/SscSPs/claims_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(a *app) *cobra.Command {
	var runMigrations bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runMigrations {
				if err := database.RunMigrations(a.cfg.DBDriver, a.migrationDSN(), a.logger); err != nil {
					return err
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().BoolVar(&runMigrations, "migrate", true, "apply pending migrations before serving")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	repos, closeDB, err := a.openRepositories(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	scopeCache, err := a.openScopeCache(ctx)
	if err != nil {
		return err
	}

	securityLog, closeAudit, err := audit.OpenSecurityLog(a.cfg.AuditLogPath)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() {
		if err := closeAudit(); err != nil {
			a.logger.Error("Error closing audit log", slog.String("error", err.Error()))
		}
	}()

	m := metrics.New()
	container := services.NewServiceContainer(a.cfg, repos, scopeCache,
		services.WithMetrics(m),
		services.WithAuditRecorder(securityLog),
	)

	posthogClient := utils.InitializePosthogClient(a.cfg.PosthogAPIKey, a.logger)
	defer posthogClient.Close()

	router, err := a.newRouter(container, m, posthogClient)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("Server starting", slog.String("port", a.cfg.Port), slog.String("db_driver", a.cfg.DBDriver))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *app) openRepositories(ctx context.Context) (portsrepo.RepositoryProvider, func(), error) {
	switch a.cfg.DBDriver {
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, a.cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		a.logger.Info("SQLite database opened", slog.String("path", a.cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db), func() {
			if err := db.Close(); err != nil {
				a.logger.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		}, nil
	default:
		pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL, a.cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		a.logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil
	}
}

// openScopeCache returns nil when no Redis is configured; join codes are then
// resolved against the database on every request.
func (a *app) openScopeCache(ctx context.Context) (portsrepo.ScopeCache, error) {
	if a.cfg.RedisURL == "" {
		a.logger.Info("REDIS_URL not set, scope cache disabled")
		return nil, nil
	}
	client, err := database.NewRedisClient(ctx, a.cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return cache.NewRedisScopeCache(client, a.cfg.ScopeCacheTTL, a.cfg.ScopeCacheLocal, a.cfg.ScopeCacheLocalTTL), nil
}

func (a *app) newRouter(container *portssvc.ServiceContainer, m *metrics.Metrics, posthogClient *utils.PosthogClientWrapper) (*gin.Engine, error) {
	if a.cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(a.logger), gin.Recovery(), m.GinMiddleware())
	r.Use(cors.New(a.corsConfig()))

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	limiter, err := middleware.NewLimiter(a.cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	r.GET("/metrics", gin.WrapH(m.Handler()))
	handlers.RegisterRoutes(r, a.cfg, container,
		middleware.RateLimit(limiter),
		middleware.PosthogMiddleware(posthogClient),
	)
	return r, nil
}

func (a *app) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Request-ID")
	cfg.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
	if len(a.cfg.CORSAllowedOrigins) == 0 || slices.Contains(a.cfg.CORSAllowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = a.cfg.CORSAllowedOrigins
	}
	return cfg
}
