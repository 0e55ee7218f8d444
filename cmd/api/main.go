package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"disaster-safety-assistant/config"
	"disaster-safety-assistant/internal/capability"
	"disaster-safety-assistant/internal/classifier"
	dialogueHTTP "disaster-safety-assistant/internal/dialogue/delivery/http"
	"disaster-safety-assistant/internal/dialogue/usecase"
	"disaster-safety-assistant/internal/engine"
	"disaster-safety-assistant/internal/httpserver"
	"disaster-safety-assistant/internal/memory"
	"disaster-safety-assistant/internal/memory/checkpoint"
	"disaster-safety-assistant/internal/memory/longterm"
	"disaster-safety-assistant/internal/reflection"
	"disaster-safety-assistant/pkg/llmgateway"
	"disaster-safety-assistant/pkg/log"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Disaster Safety Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "LLM provider: %s", cfg.LLM.Provider)

	// 3. LLM gateway
	factory, err := llmgateway.NewFactory(llmgateway.ProviderConfig{
		Name:    cfg.LLM.Provider,
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to build provider factory: %v", err)
		return
	}

	gateway, err := llmgateway.New(llmgateway.Config{
		Factory:       factory,
		DefaultModel:  cfg.LLM.Model,
		RetryAttempts: cfg.LLM.RetryAttempts,
		RetryBackoff:  cfg.LLM.RetryDelay,
	}, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize LLM gateway: %v", err)
		return
	}

	// 4. Capabilities
	translate := capability.NewTranslate(gateway, logger)

	registry := capability.NewRegistry()
	registry.Register(capability.NewGeneral(gateway, logger))
	registry.Register(capability.NewClarify(gateway, logger))
	registry.Register(capability.NewFallback())
	registry.Register(capability.NewEvacuation(gateway, logger))
	registry.Register(capability.NewDisasterInfo(gateway, logger))
	registry.Register(capability.NewShelterSearch(gateway, logger))
	registry.Register(capability.NewSMSDraft(gateway, logger))
	registry.Register(capability.NewSafetyGuide(gateway, logger))

	// 5. Classifier + reflection gate
	intentClassifier := classifier.New(gateway, translate, logger)
	gate := reflection.New(reflection.NewLLMEvaluator(gateway), logger)

	// 6. Memory
	if dir := filepath.Dir(cfg.Memory.SQLitePath); dir != "." {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			logger.Errorf(ctx, "Failed to create data directory: %v", mkErr)
			return
		}
	}

	longTermStore, err := longterm.Open(cfg.Memory.SQLitePath)
	if err != nil {
		logger.Errorf(ctx, "Failed to open long-term store: %v", err)
		return
	}
	defer longTermStore.Close()

	checkpointStore := checkpoint.New(cfg.Memory.CheckpointCapacity, cfg.Memory.CheckpointTTL)
	coordinator := memory.New(checkpointStore, longTermStore, logger)

	// 7. Engine + dialogue domain
	eng := engine.New(
		engine.Config{
			TurnTimeout: cfg.Engine.TurnTimeout,
			MaxSteps:    cfg.Engine.MaxSteps,
		},
		intentClassifier,
		registry,
		gate,
		coordinator,
		checkpointStore,
		engine.PassthroughLocationResolver{},
		engine.StaticDeviceStatus{Value: "unknown"},
		translate,
		logger,
	)

	dialogueUC := usecase.New(logger, eng)
	dialogueHandler := dialogueHTTP.New(logger, dialogueUC)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		DialogueHandler: dialogueHandler,
		RateLimitPerMin: cfg.HTTPServer.RateLimitPerMin,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
