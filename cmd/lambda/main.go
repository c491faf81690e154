package main

import (
	"context"

	"presignup-linker/internal/app"
	"presignup-linker/internal/config"
	"presignup-linker/internal/logger"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		logger.Fatal("failed to load config", map[string]any{
			"error": err.Error(),
		})
	}
	logger.Init(cfg.LogLevel)

	h, err := app.NewHookHandler(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to initialize pre signup handler", map[string]any{
			"error": err.Error(),
		})
	}

	lambda.Start(h.PreSignUp)
}
