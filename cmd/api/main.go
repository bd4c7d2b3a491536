package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/medisense-health/scheduler/internal/adapters/providers/discovery"
	"github.com/medisense-health/scheduler/internal/adapters/providers/severity"
	"github.com/medisense-health/scheduler/internal/adapters/storage"
	"github.com/medisense-health/scheduler/internal/api/handlers"
	"github.com/medisense-health/scheduler/internal/api/routes"
	"github.com/medisense-health/scheduler/internal/application/services"
	"github.com/medisense-health/scheduler/internal/domain/providers"
	"github.com/medisense-health/scheduler/internal/infrastructure/clients/postgres"
	"github.com/medisense-health/scheduler/internal/infrastructure/clients/redis"
	"github.com/medisense-health/scheduler/internal/infrastructure/observability"
	"github.com/medisense-health/scheduler/pkg/config"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize the record store backend
	var blobStore providers.BlobStore
	switch cfg.Storage.Backend {
	case "postgres":
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
		}
		defer pgClient.Close()
		blobStore = storage.NewPostgresAdapter(pgClient)
		log.Println("PostgreSQL record store initialized successfully")
	case "redis":
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to initialize Redis client: %v", err)
		}
		defer redisClient.Close()
		blobStore = storage.NewRedisAdapter(redisClient)
		log.Println("Redis record store initialized successfully")
	case "file":
		blobStore, err = storage.NewFileAdapter(cfg.Storage.FilePath)
		if err != nil {
			log.Fatalf("Failed to initialize file record store: %v", err)
		}
		log.Printf("File record store initialized at %s", cfg.Storage.FilePath)
	default:
		blobStore = storage.NewMemoryAdapter()
		log.Println("In-memory record store initialized (records are not durable)")
	}

	// Initialize collaborator providers
	var discoveryProvider providers.HospitalDiscoveryProvider
	if cfg.Discovery.Provider == "http" {
		discoveryProvider = discovery.NewHTTPAdapter(cfg.Discovery.BaseURL, cfg.Discovery.RadiusKm)
		log.Printf("Hospital discovery provider: %s", cfg.Discovery.BaseURL)
	} else {
		discoveryProvider = discovery.NewMockAdapter()
		log.Println("Hospital discovery provider: mock")
	}

	var severityProvider providers.SeverityProvider
	if cfg.Severity.Provider == "http" {
		severityProvider = severity.NewHTTPAdapter(cfg.Severity.BaseURL)
		log.Printf("Symptom severity provider: %s", cfg.Severity.BaseURL)
	} else {
		severityProvider = severity.NewMockAdapter()
		log.Println("Symptom severity provider: mock")
	}

	// Initialize services
	rankingService := services.NewRankingService()
	recordService := services.NewRecordService(blobStore, cfg.Storage.RecordKey, metrics)
	queryService := services.NewRecordQueryService()
	calendarExporter := services.NewCalendarExporter(cfg.Product.Name, cfg.Product.Domain)
	bookingService := services.NewBookingService(rankingService, recordService, discoveryProvider, severityProvider, metrics)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(bookingService)
	hospitalsHandler := handlers.NewHospitalsHandler(discoveryProvider)
	recordsHandler := handlers.NewRecordsHandler(recordService, queryService, calendarExporter)

	// Set up routes
	router := routes.NewRouter(
		bookingHandler,
		hospitalsHandler,
		recordsHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
