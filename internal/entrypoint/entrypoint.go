package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/config"
	http_controllers "github.com/mrlokans/reader/internal/http"
	"github.com/mrlokans/reader/internal/middleware"
	"github.com/mrlokans/reader/internal/reader"
	"github.com/mrlokans/reader/internal/scheduler"
	"github.com/mrlokans/reader/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting requests before the queue drains.
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
	return nil
}

// Run wires the store, background workers and HTTP API, then serves.
func Run(cfg *config.Config, version string) error {
	log.Printf("Starting Reader %s", version)

	store, err := OpenStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	// Progress from the reader surface goes through the queue when enabled.
	var sink reader.ProgressSink = reader.DirectSink{Store: store.Documents}
	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		sink = tasks.NewProgressQueue(taskClient, store.Documents)
		go taskClient.Start(bgCtx)
	} else {
		log.Printf("Task queue disabled, applying reader progress inline")
	}

	if cfg.SessionReaper.Enabled {
		reaper := scheduler.NewSessionReaper(store.Sessions, cfg.SessionReaper.Schedule, cfg.SessionReaper.MaxAge)
		if err := reaper.Start(bgCtx); err != nil {
			log.Printf("WARNING: session reaper not started: %v", err)
		}
	}

	sqlDB, err := store.DB.SQL()
	if err != nil {
		return err
	}
	sessionManager, err := middleware.NewSessionManager(sqlDB, cfg.Session.Lifetime, cfg.Session.SecureCookies)
	if err != nil {
		return fmt.Errorf("failed to initialize session manager: %w", err)
	}

	var csrfSecret []byte
	if cfg.HTTP.CSRFSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.HTTP.CSRFSecret)
		if err != nil {
			// Not hex, use as raw bytes
			csrfSecret = []byte(cfg.HTTP.CSRFSecret)
		}
	} else {
		log.Printf("CSRF protection disabled (set CSRF_SECRET to enable)")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Data:               store.DB,
		Documents:          store.Documents,
		Collections:        store.Collections,
		Highlights:         store.Highlights,
		Tags:               store.Tags,
		Sessions:           store.Sessions,
		Review:             store.Review,
		Host:               reader.NewHost(sink, store.Highlights),
		Renderer:           reader.NewRenderer(),
		SessionManager:     sessionManager,
		CSRFSecret:         csrfSecret,
		SecureCookies:      cfg.Session.SecureCookies,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		ReviewBatchSize:    cfg.Review.BatchSize,
		Version:            version,
	})

	onShutdown := func(ctx context.Context) {
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		bgCancel()
	}

	return Serve(router, cfg, onShutdown)
}
