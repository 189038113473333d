package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/config"
	"github.com/fusbox/chatarbor-alternative/internal/domain/chat"
	"github.com/fusbox/chatarbor-alternative/internal/domain/conversation"
	"github.com/fusbox/chatarbor-alternative/internal/domain/feedback"
	"github.com/fusbox/chatarbor-alternative/internal/domain/knowledge"
	"github.com/fusbox/chatarbor-alternative/internal/domain/settings"
	"github.com/fusbox/chatarbor-alternative/internal/domain/tool"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/database"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/llmprovider"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/logger"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/observability"
	feedbackrepo "github.com/fusbox/chatarbor-alternative/internal/infrastructure/repository/feedback"
	knowledgerepo "github.com/fusbox/chatarbor-alternative/internal/infrastructure/repository/knowledge"
	sessionrepo "github.com/fusbox/chatarbor-alternative/internal/infrastructure/repository/session"
	settingsrepo "github.com/fusbox/chatarbor-alternative/internal/infrastructure/repository/settings"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/toolrunner"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/handlers"
)

// Application bundles the long-running pieces of the chat service.
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

// NewApplication constructs the application.
func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

// Start runs the HTTP server until the context is cancelled.
func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	sessionRepository := sessionrepo.NewPostgresRepository(db)
	knowledgeRepository := knowledgerepo.NewPostgresRepository(db)
	settingsRepository := settingsrepo.NewPostgresRepository(db)
	feedbackRepository := feedbackrepo.NewPostgresRepository(db)

	llmClient := llmprovider.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey)
	runnerClient := toolrunner.NewClient(cfg.ToolRunnerURL)
	bridge := tool.NewBridge(runnerClient, cfg.ToolTimeout, log)
	invoker := chat.NewInvoker(llmClient, bridge, cfg.MaxTokens, log)

	knowledgeService := knowledge.NewService(knowledgeRepository, log)
	settingsService := settings.NewService(settingsRepository, log)
	feedbackService := feedback.NewService(feedbackRepository, log)
	chatService := chat.NewService(
		sessionRepository,
		conversation.NewRegistry(),
		knowledgeService,
		settingsService,
		invoker,
		chat.Options{
			DefaultModel:  cfg.ChatModel,
			HistoryWindow: cfg.HistoryWindow,
			RetrievalTopK: cfg.RetrievalTopK,
		},
		log,
	)

	handlerProvider := handlers.NewProvider(chatService, knowledgeService, settingsService, feedbackService, log)
	httpServer := httpserver.New(cfg, log, handlerProvider)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
