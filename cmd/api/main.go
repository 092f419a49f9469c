package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/YahyaMd03/ai-prompt-intelligence/internal/adapter/repo"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/http/handlers"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/http/httpapi"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/infra"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/providers/textgen"
	"github.com/YahyaMd03/ai-prompt-intelligence/internal/workflow"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	repository := repo.NewPromptRepository(dbpool, logger)

	var generator textgen.Generator
	switch cfg.PromptProvider {
	case "static":
		generator = textgen.NewStaticGenerator()
	default:
		generator = textgen.NewGroqClient(textgen.GroqOptions{
			APIKey:     cfg.GroqAPIKey,
			Model:      cfg.GroqModel,
			BaseURL:    cfg.GroqBaseURL,
			HTTPClient: &http.Client{Timeout: cfg.GroqTimeout},
			Logger:     &logger,
		})
	}
	logger.Info().
		Str("provider", generator.ProviderName()).
		Str("model", generator.ModelName()).
		Msg("text generation provider ready")

	service := workflow.NewService(repository, generator, logger)
	app := handlers.NewApp(service, logger, cfg.EnablePromptGuard, cfg.RunListLimit)

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		AllowedOrigins:  []string{cfg.FrontendOrigin},
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
