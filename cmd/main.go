package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"golang.org/x/sync/errgroup"

	"dailydraw/internal/catalog"
	"dailydraw/internal/config"
	"dailydraw/internal/handlers"
	"dailydraw/internal/services"
	"dailydraw/internal/storage"
	"dailydraw/internal/storage/memory"
	"dailydraw/internal/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	os.Exit(run(configPath))
}

// run wires and serves the application. It returns the process exit code so
// deferred log flushing and store shutdown always happen.
func run(configPath string) int {
	// 1. Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Errorf("Failed to load config: %v", err)
		return 1
	}

	// 2. Initialize logging
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o660)
		if err != nil {
			logger.Errorf("Failed to open log file: %v", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	defer logger.Init("dailydraw", cfg.Log.Verbose, false, logOut).Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the configured store
	repo, err := openStore(ctx, cfg)
	if err != nil {
		logger.Errorf("Failed to open %s store: %v", cfg.Storage.Driver, err)
		return 1
	}
	defer repo.Close()

	// 4. Seed the catalog and the optional test user
	catalogService, err := catalog.NewService(repo, cfg.Catalog.CacheSize)
	if err != nil {
		logger.Errorf("Failed to create catalog: %v", err)
		return 1
	}
	seed, err := catalog.LoadSeed(cfg.Catalog.SeedFile)
	if err != nil {
		logger.Errorf("Failed to load catalog seed: %v", err)
		return 1
	}
	if _, err := catalogService.Seed(ctx, seed); err != nil {
		logger.Errorf("Failed to seed catalog: %v", err)
		return 1
	}

	userService := services.NewUserService(repo)
	if cfg.Seed.TestUser != "" {
		user, err := userService.EnsureUser(ctx, cfg.Seed.TestUser)
		if err != nil {
			logger.Errorf("Failed to seed test user: %v", err)
			return 1
		}
		logger.Infof("Test user %q has id %d", user.Username, user.ID)
	}

	// 5. Initialize the draw engine
	weights, err := cfg.Weights()
	if err != nil {
		logger.Errorf("Invalid draw weights: %v", err)
		return 1
	}
	drawService := services.NewDrawService(repo, catalogService, weights,
		services.WithClientSelection(cfg.Draw.AllowClientSelection))

	// 6. Set up the Gin router
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	handlers.NewHTTPHandler(drawService, userService, catalogService, handlers.Options{
		IdentityHeader:  cfg.Auth.IdentityHeader,
		RequireIdentity: cfg.Auth.RequireIdentity,
		AdminToken:      cfg.Auth.AdminToken,
	}).RegisterRoutes(r)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}

	g, ctx := errgroup.WithContext(ctx)

	// 7. Run the server
	g.Go(func() error {
		logger.Infof("Server starting on %s (storage=%s)", cfg.Server.Addr, cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	// 8. Periodically drop cached catalog entries so items added by other
	// instances become visible
	if interval := cfg.RefreshInterval(); interval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					catalogService.Purge()
					logger.Info("Refreshed catalog cache.")
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		logger.Errorf("Server stopped: %v", err)
		return 1
	}
	return 0
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Repository, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pg := cfg.Storage.Postgres
		store, err := postgres.Open(ctx, postgres.Options{
			DSN:        pg.PostgresDSN(),
			PoolSize:   pg.PoolSize,
			LogQueries: pg.LogQueries,
			SlowQuery:  pg.SlowQuery(),
		})
		if err != nil {
			return nil, err
		}
		if err := store.InitSchema(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	default:
		logger.Warning("Using in-memory storage; data is lost on restart")
		return memory.New(), nil
	}
}
