package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"invoicely/core/config"
	"invoicely/core/database"
	"invoicely/core/loader"
	"invoicely/core/logger"
	"invoicely/core/middleware/auth"
	"invoicely/core/middleware/rayid"
	"invoicely/core/storage"
	"invoicely/feature/invoice"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "invoicely/docs/swagger"
)

// @title Invoicely API
// @version 1.0
// @description API for reconciling and validating invoice extractions.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the invoice processing server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		// Without it the pipeline still runs; outcomes are just not kept.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, persistence disabled", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to database", zap.String("name", cfg.Database.Name))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		})

		// 5. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(invoice.NewFeature(store, cfg.Storage.Bucket, logg, db, cfg.Engine, cfg.Producer))

		// Middleware Registration
		// RayID must come first so everything downstream can trace.
		app.Use(rayid.New())

		// Request logging with Zap + RayID.
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public endpoints: health probe and API documentation.
		app.Get("/health", healthHandler(db, store, cfg.Storage.Bucket))
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth protects everything registered after it.
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// healthHandler reports liveness of the database and storage dependencies.
func healthHandler(db *gorm.DB, store storage.Client, bucket string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		report := fiber.Map{"status": "ok"}

		if db == nil {
			report["database"] = "disabled"
		} else if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Context()) != nil {
			report["database"] = "down"
			report["status"] = "degraded"
			status = fiber.StatusServiceUnavailable
		} else {
			report["database"] = "ok"
		}

		if ok, err := store.BucketExists(c.Context(), bucket); err != nil || !ok {
			report["storage"] = "down"
			report["status"] = "degraded"
			status = fiber.StatusServiceUnavailable
		} else {
			report["storage"] = "ok"
		}

		return c.Status(status).JSON(report)
	}
}

func init() {
	RootCmd.AddCommand(startCmd)
}
