// Package main is the entry point for the IDGuides documentation portal.
// It loads configuration, opens the durable document store, wires the
// optional backends (Valkey page cache, PostgreSQL provisioning
// directory, S3 uploads), and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shad0wcrushers/IDGuides/internal/cache"
	"github.com/Shad0wcrushers/IDGuides/internal/config"
	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
	"github.com/Shad0wcrushers/IDGuides/internal/handlers"
	"github.com/Shad0wcrushers/IDGuides/internal/persist"
	"github.com/Shad0wcrushers/IDGuides/internal/render"
	"github.com/Shad0wcrushers/IDGuides/internal/router"
	"github.com/Shad0wcrushers/IDGuides/internal/storage"
	"github.com/Shad0wcrushers/IDGuides/internal/userdb"
	"github.com/Shad0wcrushers/IDGuides/web"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"data_dir", cfg.DataDir,
	)

	// Durable document collections live as JSON files under the data dir.
	kv, err := persist.NewDir(cfg.DataDir)
	if err != nil {
		slog.Error("failed to open data directory", "error", err)
		os.Exit(1)
	}

	notices := &handlers.NoticeBuffer{}
	store, err := docstore.New(kv, docstore.WithNotifier(notices.Record))
	if err != nil {
		slog.Error("failed to open document store", "error", err)
		os.Exit(1)
	}

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Valkey page cache — optional.
	var pageCache *cache.PageCache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()

		pageCache = cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)
		cancelWatch := pageCache.WatchStore(store)
		defer cancelWatch()
	} else {
		slog.Warn("valkey not configured — page caching disabled")
	}

	// PostgreSQL provisioning directory — optional.
	var userAPI *handlers.UserAPI
	if cfg.ProvisioningEnabled() {
		db, err := userdb.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := userdb.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		// S3 uploads ride along with the provisioning API.
		var storageClient *storage.Client
		if cfg.UploadsEnabled() {
			storageClient, err = storage.New(
				cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
				cfg.S3Bucket, cfg.S3PublicURL,
			)
			if err != nil {
				slog.Error("failed to initialize S3 storage", "error", err)
				os.Exit(1)
			}
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
		} else {
			slog.Warn("s3 storage not configured — image uploads disabled")
		}

		userAPI = handlers.NewUserAPI(userdb.NewStore(db), storageClient)
	} else {
		slog.Warn("postgres not configured — provisioning API disabled")
	}

	publicHandlers := handlers.NewPublic(store, renderer, notices, pageCache)
	authHandlers := handlers.NewAuth(store, renderer, notices)
	adminHandlers := handlers.NewAdmin(store, renderer, notices)

	r := router.New(store, publicHandlers, authHandlers, adminHandlers, userAPI)

	// Compiled static assets, embedded in the binary.
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		slog.Error("failed to mount static assets", "error", err)
		os.Exit(1)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
