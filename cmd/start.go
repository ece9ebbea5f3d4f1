package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-bridge/core/archive"
	"booking-bridge/core/config"
	"booking-bridge/core/database"
	"booking-bridge/core/loader"
	"booking-bridge/core/logger"
	"booking-bridge/core/middleware/auth"
	"booking-bridge/core/middleware/rayid"
	"booking-bridge/core/queue"
	"booking-bridge/core/sink"
	"booking-bridge/core/source"

	"booking-bridge/feature/sync"
	"booking-bridge/feature/sync/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "booking-bridge/docs/swagger"
)

// @title Booking Bridge API
// @version 1.0
// @description Reconciliation bridge between the booking platform and the property management ledger.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the booking bridge server",
	Long:  `Starts the HTTP server, the sync worker and all enabled features.`,
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

		// 3. Connect to the local mirror database. The mirror is the
		// engine's memory of last known state; without it nothing works.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to mirror database", zap.Error(err))
		}
		if err := models.Migrate(db); err != nil {
			logg.Fatal("Failed to migrate mirror schema", zap.Error(err))
		}

		// 4. Remote clients
		sourceClient := source.NewClient(cfg.Source)
		sinkClient := sink.NewClient(cfg.Sink)

		// 5. Payload archive (optional)
		var archiveClient archive.Client
		if cfg.Archive.Enabled {
			archiveClient, err = archive.NewClient(cfg.Archive)
			if err != nil {
				logg.Fatal("Failed to create archive client", zap.Error(err))
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := archiveClient.EnsureBucket(ctx, cfg.Archive.Bucket); err != nil {
				logg.Fatal("Failed to prepare archive bucket", zap.Error(err))
			}
			cancel()
			logg.Info("Webhook payload archive enabled", zap.String("bucket", cfg.Archive.Bucket))
		}

		// 6. Sync worker and feature
		worker := queue.NewWorker(logg)

		syncFeature, err := sync.NewFeature(db, sourceClient, sinkClient, archiveClient, cfg.Archive.Bucket, worker, logg)
		if err != nil {
			logg.Fatal("Failed to build sync feature", zap.Error(err))
		}

		mgr := loader.NewManager()
		mgr.Register(syncFeature)

		// 7. Fiber app and middleware
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// RayID must be first to trace everything.
		app.Use(rayid.New())

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

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		// Auth protects the operational endpoints. The webhook route is
		// exempt: the booking platform sends no credentials.
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/webhook"
			},
		}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown: stop intake first, then let the worker
		// finish the jobs already queued.
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		logg.Info("Draining sync queue...", zap.Int("backlog", worker.Len()))
		worker.Wait()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
