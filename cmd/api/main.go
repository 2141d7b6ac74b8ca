package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"personapi/docs"
	"personapi/internal/config"
	"personapi/internal/database"
	"personapi/internal/database/migration"
	handlers "personapi/internal/http/handler"
	"personapi/internal/http/middleware"
	"personapi/internal/logging"
	"personapi/internal/otel"
	"personapi/internal/repository/postgres"
	"personapi/internal/service"
	"personapi/internal/storage"
)

// @title Person API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	log := logging.Stdout(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "tracing_init_failed", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error("tracing_shutdown_failed", err, nil)
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		fatal(log, "database_connect_failed", err)
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := database.RegisterStats(reg, db, cfg.Database.Name); err != nil {
		fatal(log, "metrics_init_failed", err)
	}

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		fatal(log, "database_migration_failed", err)
	}

	tx := postgres.NewTransactor(db)
	// Ages are counted in calendar days of the configured zone
	personSvc := service.NewPersonService(tx, service.WithClock(func() time.Time {
		return time.Now().In(loc)
	}))

	if cfg.SeedFixtures {
		seeded, err := personSvc.InitializeFixtures(ctx)
		if err != nil {
			fatal(log, "fixtures_failed", err)
		}
		log.Info("fixtures_checked", map[string]any{"seeded": seeded})
	}

	// Snapshot exports are optional; without MinIO the export routes are not mounted
	var exportSvc service.ExportService
	if cfg.MinIO.Enabled() {
		objStore, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			fatal(log, "storage_init_failed", err)
		}
		exportSvc = service.NewExportService(objStore, tx)
	} else {
		log.Info("storage_disabled", map[string]any{"reason": "MINIO_ENDPOINT not set"})
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(log, "metrics_init_failed", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(otelfiber.Middleware())
	// RequestID adds/propagates X-Request-ID and tags the request span with it
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, personSvc, exportSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server_shutdown_failed", err, nil)
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", map[string]any{"addr": addr, "app_host": cfg.AppHost})

	if err := app.Listen(addr); err != nil {
		fatal(log, "server_failed", err)
	}
}

func fatal(log *logging.Logger, msg string, err error) {
	log.Error(msg, err, nil)
	os.Exit(1)
}
