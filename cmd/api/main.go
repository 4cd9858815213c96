package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/medicore-systems/hospital-service/internal/auth"
	"github.com/medicore-systems/hospital-service/internal/config"
	"github.com/medicore-systems/hospital-service/internal/db"
	apphttp "github.com/medicore-systems/hospital-service/internal/http"
	"github.com/medicore-systems/hospital-service/internal/messaging"
	"github.com/medicore-systems/hospital-service/internal/telemetry"
)

func main() {
	log.Println("hospital-service starting")

	cfg := config.Load()
	ctx := context.Background()

	// Initialize OpenTelemetry
	otelCfg := telemetry.LoadConfig()
	provider, err := telemetry.InitProvider(ctx, otelCfg)
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}
	if provider != nil {
		defer provider.Shutdown(context.Background())
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Printf("Warning: metrics initialization failed: %v", err)
		metrics = nil
	}

	// Connect to PostgreSQL
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Connect to RabbitMQ. The service runs without events if the
	// broker is unreachable.
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events disabled: %v", err)
		publisher = nil
	}
	if publisher != nil {
		defer publisher.Close()
	}

	// Set up JWT verification against the SSO realm
	authCfg := auth.LoadConfig()
	jwks, err := auth.NewJWKS(authCfg.JWKSURL, 0)
	if err != nil {
		log.Fatalf("Failed to fetch JWKS: %v", err)
	}
	defer jwks.Close()
	verifier := auth.NewVerifier(authCfg, jwks)

	perms, err := auth.LoadPermissions(cfg.PermissionsPath)
	if err != nil {
		log.Fatalf("Failed to load permissions: %v", err)
	}

	router := apphttp.SetupRouter(database, verifier, perms, publisher, metrics)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("✓ hospital-service listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	log.Println("hospital-service stopped")
}
