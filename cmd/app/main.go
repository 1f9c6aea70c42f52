package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"JarvisGolang/internal/config"
	"JarvisGolang/pkg/log"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	validator := config.NewValidator()
	cfg, err := config.Load(validator)
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	fiberApp := config.NewFiber()

	assistant, err := config.NewAssistant(
		config.WithConfig(cfg),
		config.WithLogger(logger),
		config.WithFiber(fiberApp),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(),
		config.WithSMTPMailer(),
		config.WithWhatsappClient(),
		config.WithGeminiClient(),
		config.WithSystemActions(),
		config.WithVoice(),
		config.WithMiddleware(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}
	defer assistant.Close()

	assistant.RegisterHandlers()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutting down assistant...")
		cancel()
	}()

	logger.Info("Assistant started successfully")

	if err := assistant.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatalf("Assistant stopped: %v", err)
	}
}
