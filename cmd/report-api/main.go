package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/janitor"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/handlers"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/report-export-be/cmd/report-api/docs"
)

// @title Report Export API
// @version 1.0
// @description Render table and weekplan grids to HTML, PDF and XLSX reports
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Info().Str("port", cfg.Port).Msg("🚀 Starting report-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := report.NewRuntime(ctx, cfg, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize report runtime")
	}
	defer rt.Close()

	// Temp file sweeper
	scheduler := janitor.NewScheduler()
	sweeper := &janitor.TmpSweeper{Dir: cfg.TmpDir, MaxAge: cfg.TmpMaxAge, Lock: rt.Reports.Locker()}
	if err := scheduler.AddJob("tmp-sweep", cfg.TmpCleanupSchedule, sweeper.Job()); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to schedule temp sweep")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Init handlers
	driver := "none"
	if rt.DB != nil {
		driver = rt.DB.Driver
	}
	healthHandler := handlers.NewHealthHandler(driver, rt.Uploads)
	reportHandler := handlers.NewReportHandler(rt.Reports, cfg.DownloadDir, cfg.PaperFormat)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "Report Export API",
		BodyLimit: 16 * 1024 * 1024,
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Report routes
	app.Post("/reports/table", reportHandler.ExportTable)
	app.Post("/reports/weekplan", reportHandler.ExportWeekplan)
	app.Get("/reports/history", reportHandler.GetHistory)

	// Instructor routes
	if rt.Instructors != nil {
		instructorHandler := handlers.NewInstructorHandler(rt.Instructors)
		app.Get("/instructors", instructorHandler.ListInstructors)
		app.Put("/instructors/:name", instructorHandler.UpsertInstructor)
	} else {
		log.Warn().Msg("⚠️ DATABASE_URL not set, instructor routes disabled")
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("🛑 Shutting down report-api...")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("❌ Shutdown failed")
		}
	}()

	log.Info().Msgf("✅ report-api running at :%s", cfg.Port)
	log.Info().Msgf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("❌ Server stopped")
	}
}
