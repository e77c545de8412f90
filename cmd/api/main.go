package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/DebasishDas1/HVAC-Lead/cmd/mainconfig"
	"github.com/DebasishDas1/HVAC-Lead/internal/api/router"
	appconfig "github.com/DebasishDas1/HVAC-Lead/internal/config"
	"github.com/DebasishDas1/HVAC-Lead/internal/conversation"
	"github.com/DebasishDas1/HVAC-Lead/internal/http/handlers"
	"github.com/DebasishDas1/HVAC-Lead/internal/leads"
	"github.com/DebasishDas1/HVAC-Lead/internal/llm"
	"github.com/DebasishDas1/HVAC-Lead/internal/observability/metrics"
	"github.com/DebasishDas1/HVAC-Lead/pkg/logging"
)

func main() {
	// Load .env in local development; ignore when absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting hvac-lead API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"llm_provider", cfg.LLMProvider,
		"llm_fallback_provider", cfg.LLMFallbackProvider,
		"session_store", cfg.SessionStore,
		"lead_sink", cfg.LeadSink,
	)

	ctx := context.Background()

	client, err := buildLLMClient(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize LLM client", "error", err)
		os.Exit(1)
	}

	sink, err := buildLeadSink(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize lead sink", "error", err)
		os.Exit(1)
	}
	sink = leads.NewRetrySink(sink, cfg.LeadSinkMaxAttempts, cfg.LeadSinkRetryBaseDelay, logger)

	store := buildSessionStore(cfg)

	chatMetrics := metrics.NewChatMetrics(nil)

	responder := conversation.NewResponder(client)
	workflow := conversation.NewWorkflow(responder, sink, logger, chatMetrics)
	service := conversation.NewService(store, workflow, cfg.LLMTimeout, logger)

	chatHandler := handlers.NewChatHandler(service, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildLLMClient assembles the primary structured backend, wrapped with the
// configured fallback when one is set.
func buildLLMClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (llm.StructuredClient, error) {
	primary, err := buildProviderClient(ctx, cfg, cfg.LLMProvider)
	if err != nil {
		return nil, fmt.Errorf("primary provider %s: %w", cfg.LLMProvider, err)
	}

	if cfg.LLMFallbackProvider == "" {
		return primary, nil
	}

	secondary, err := buildProviderClient(ctx, cfg, cfg.LLMFallbackProvider)
	if err != nil {
		return nil, fmt.Errorf("fallback provider %s: %w", cfg.LLMFallbackProvider, err)
	}
	return llm.NewFallback(primary, secondary, logger), nil
}

func buildProviderClient(ctx context.Context, cfg *appconfig.Config, provider string) (llm.StructuredClient, error) {
	switch provider {
	case appconfig.ProviderGemini:
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case appconfig.ProviderOpenAI:
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case appconfig.ProviderLocal:
		return llm.NewLocalClient(cfg.LocalLLMBaseURL, cfg.LocalLLMModel)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}

func buildLeadSink(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (leads.Sink, error) {
	switch cfg.LeadSink {
	case appconfig.LeadSinkDynamoDB:
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return leads.NewDynamoSink(dynamodb.NewFromConfig(awsCfg), cfg.LeadsTable, logger), nil
	default:
		return leads.NewMockSheetSink(logger, 0), nil
	}
}

func buildSessionStore(cfg *appconfig.Config) conversation.Store {
	switch cfg.SessionStore {
	case appconfig.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		return conversation.NewRedisStore(client, cfg.SessionTTL)
	default:
		return conversation.NewMemoryStore()
	}
}
