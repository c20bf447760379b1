package main

import (
	"context"
	"expvar"
	"log"
	"net/http"
	"runtime"

	"github.com/calderahq/hearth/internal/assistant"
	"github.com/calderahq/hearth/internal/infrastructure/configs"
	"github.com/calderahq/hearth/internal/infrastructure/repository"
	"github.com/calderahq/hearth/internal/infrastructure/tracing"
	"github.com/calderahq/hearth/internal/infrastructure/ws"
	"github.com/calderahq/hearth/internal/presentation/api"
	"github.com/calderahq/hearth/internal/presentation/handler/health"
	"github.com/calderahq/hearth/internal/presentation/handler/lobbies"
	"go.uber.org/zap"
)

const (
	serviceName = "hearth-api"
)

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	store, err := repository.NewMessageStore(cfg.Store.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	registry := repository.NewLobbyRegistry(cfg.Assistant.DefaultKey)
	tracker := ws.NewTracker()

	completion := assistant.NewOpenAIClient(assistant.OpenAIConfig{
		BaseURL:    cfg.Assistant.BaseURL,
		Model:      cfg.Assistant.Model,
		HTTPClient: &http.Client{Timeout: cfg.Assistant.Timeout},
	})
	responder := assistant.NewResponder(registry, completion, logger)

	coordinator := ws.NewCoordinator(registry, tracker, store, responder, logger)

	lobbyHandler := lobbies.NewHandler(registry, store, coordinator, logger)
	healthHandler := health.NewHandler()

	app := api.NewApplication(*cfg, *lobbyHandler, *healthHandler, logger)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	logger.Fatal(app.Run(mux))
}
