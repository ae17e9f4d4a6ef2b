package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"apmatch/internal/archive"
	"apmatch/internal/catalog"
	"apmatch/internal/config"
	"apmatch/internal/database"
	"apmatch/internal/database/migration"
	handlers "apmatch/internal/http/handler"
	"apmatch/internal/http/middleware"
	"apmatch/internal/ledger/erp"
	"apmatch/internal/otel"
	"apmatch/internal/repository/postgres"
	"apmatch/internal/service"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// OpenTelemetry tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize S3-compatible object storage for archived briefs (MinIO-supported)
	briefs, err := archive.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize brief archive: %v", err)
	}

	// Load the read-only catalog snapshot: purchase orders, delivery
	// receipts and the internal email corpus.
	session, err := catalog.LoadSession(cfg.CatalogDir)
	if err != nil {
		log.Fatalf("failed to load catalogs from %s: %v", cfg.CatalogDir, err)
	}

	poster, err := erp.NewPoster(cfg.Ledger.Endpoint, time.Duration(cfg.Ledger.TimeoutSec)*time.Second)
	if err != nil {
		log.Fatalf("failed to initialize ledger poster: %v", err)
	}

	// Prometheus registry shared by HTTP and pipeline metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize prometheus middleware: %v", err)
	}

	metrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatalf("failed to initialize pipeline metrics: %v", err)
	}

	postings := postgres.NewPostingPostgres(db)
	pipeline := service.NewInvoicePipeline(session, cfg.Matching, poster, postings, briefs, metrics)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())
	app.Use(otelfiber.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected pipeline and stores
	handlers.RegisterRoutes(app, db, pipeline, briefs, postings)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
