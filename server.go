package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"agrisphere/config"
	"agrisphere/database"
	"agrisphere/dispatcher"
	"agrisphere/handlers"
	"agrisphere/middleware"
	"agrisphere/routes"
	"agrisphere/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.AppConfig
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
		return err
	}
	defer database.Close()

	h, cleanup := newHandler(ctx, cfg, database.DB)
	defer cleanup()

	app := newApp(cfg, h)

	go func() {
		<-ctx.Done()
		logger.Info("shutting_down")
		_ = app.Shutdown()
	}()

	logger.Info("serving", zap.String("port", cfg.Port), zap.String("database", database.Backend(cfg.DatabaseURL)))
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

// newHandler wires the services. The Gemini client is optional: without a
// key the assistant and market endpoints answer with their failure bodies.
func newHandler(ctx context.Context, cfg config.Config, store database.Store) (*handlers.Handler, func()) {
	client := dispatcher.New(&http.Client{Timeout: cfg.UpstreamTimeout})

	var generator services.Generator
	cleanup := func() {}
	gemini, err := services.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Warn("gemini_disabled", zap.Error(err))
	} else {
		generator = gemini
		cleanup = func() { _ = gemini.Close() }
	}

	return &handlers.Handler{
		Auth: &services.AuthService{
			Store:      store,
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		},
		Weather: &services.WeatherService{
			Client:     client,
			APIKey:     cfg.OpenWeatherAPIKey,
			BaseURL:    cfg.OpenWeatherBaseURL,
			ArchiveURL: cfg.OpenMeteoBaseURL,
			Logger:     logger,
		},
		Prediction: &services.PredictionService{
			Client:  client,
			BaseURL: cfg.PredictionModelURL,
			Store:   store,
			Logger:  logger,
		},
		Assistant: &services.AssistantService{
			Generator: generator,
			Chats:     services.NewChatStore(services.DefaultMaxMessages, services.DefaultMaxSessions, services.DefaultSessionIdleTTL),
			Logger:    logger,
		},
		Market: &services.MarketService{Generator: generator, Location: marketLocation(cfg.MarketTimezone)},
		Store:  store,
		Logger: logger,
	}, cleanup
}

func marketLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("market_timezone_fallback", zap.String("timezone", name), zap.Error(err))
		return services.IndiaStandardTime
	}
	return loc
}

func newApp(cfg config.Config, h *handlers.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "agrisphere",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.SetupRoutes(app, h)
	return app
}

// errorHandler answers errors that escaped the handlers. Fiber errors keep
// their status and message; anything else is logged and reported as a
// generic 500.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"success": false, "error": fe.Message})
	}
	logger.Error("unhandled_error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Internal server error"})
}
