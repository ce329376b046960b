package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"studyquiz/internal/adapter"
	"studyquiz/internal/adapter/textgen"
	"studyquiz/internal/cache"
	"studyquiz/internal/config"
	"studyquiz/internal/document"
	"studyquiz/internal/domain"
	"studyquiz/internal/handler"
	"studyquiz/internal/logger"
	"studyquiz/internal/middleware"
	"studyquiz/internal/service"
	"studyquiz/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize the text-generation backend
	var generator domain.TextGenerator
	switch cfg.LLM.Provider {
	case "googleai":
		generator, err = textgen.NewGoogleAIGenerator(context.Background(), cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create Google AI text generator", zap.Error(err))
		}
	case "openai":
		generator, err = textgen.NewOpenAIGenerator(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create OpenAI text generator", zap.Error(err))
		}
	case "ollama":
		generator, err = textgen.NewOllamaGenerator(cfg.LLM.ServerURL, cfg.LLM.Model, cfg.LLM.Temperature, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create Ollama text generator", zap.Error(err))
		}
	default:
		appLogger.Fatal("Unsupported LLM provider. Please check LLM_PROVIDER in config.", zap.String("provider", cfg.LLM.Provider))
	}
	appLogger.Info("Text generator initialized", zap.String("provider", cfg.LLM.Provider), zap.String("model", cfg.LLM.Model))

	// Quiz caching is optional: without a Redis address every request
	// goes to the LLM backend.
	var quizCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		quizCache = adapter.NewRedisCacheAdapter(redisClient)
	} else {
		appLogger.Info("Redis address not configured; quiz caching disabled")
	}

	sessions := session.NewStore()
	quizService := service.NewQuizService(generator, quizCache, cfg)
	extractors := []document.Extractor{document.PlainTextExtractor{}}
	quizHandler := handler.NewQuizHandler(quizService, sessions, extractors)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	apiGroup := app.Group("/api")
	apiGroup.Post("/quiz/generate", quizHandler.GenerateQuiz)

	sessionGroup := apiGroup.Group("/sessions")
	sessionGroup.Get("/:id", quizHandler.GetSession)
	sessionGroup.Post("/:id/answer", quizHandler.Answer)
	sessionGroup.Post("/:id/next", quizHandler.Next)
	sessionGroup.Post("/:id/previous", quizHandler.Previous)
	sessionGroup.Post("/:id/jump", quizHandler.Jump)
	sessionGroup.Post("/:id/submit", quizHandler.Submit)
	sessionGroup.Get("/:id/score", quizHandler.Score)
	sessionGroup.Delete("/:id", quizHandler.DeleteSession)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
