// Command main is the entry point for the DevHub API server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devhub/internal/bootstrap"
	"devhub/internal/config"
	"devhub/internal/middleware"
	"devhub/internal/notifications"
	"devhub/internal/observability"
	"devhub/internal/server"
)

// @title DevHub API
// @version 1.0
// @description Developer social network API: profiles, posts, likes and comments
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@devhub.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-auth-token
// @description Token returned by POST /api/auth or POST /api/user.

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := observability.InitTracing(context.Background(), observability.TracingConfig{
		ServiceName:    "devhub-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	db, rdb, err := bootstrap.InitRuntime(cfg, bootstrap.Options{
		SeedDemoData: os.Getenv("SEED_DEMO_DATA") == "true",
	})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	// Outside production, echo activity notifications into the log.
	if rdb != nil && !cfg.IsProduction() {
		if err := notifications.NewNotifier(rdb).Subscribe(context.Background(), func(userID uint, ev notifications.Event) {
			middleware.Logger.Debug("activity notification",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("type", ev.Type),
				slog.Uint64("post_id", uint64(ev.PostID)),
			)
		}); err != nil {
			log.Printf("activity subscriber disabled: %v", err)
		}
	}

	srv, err := server.NewServerWithDeps(cfg, db, rdb)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracer shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
}
