package app

import (
	"context"

	"presignup-linker/internal/config"
	"presignup-linker/internal/directory"
	"presignup-linker/internal/logger"
)

func setupDirectory(ctx context.Context, cfg config.Config) (directory.Directory, error) {
	if cfg.DirectoryBackend == config.BackendMemory {
		logger.Warn("using in-memory directory", nil)
		return directory.NewMemory(), nil
	}

	dir, err := directory.NewCognitoFromOptions(ctx, directory.CognitoOptions{
		Region:    cfg.AWSRegion,
		Endpoint:  cfg.CognitoEndpoint,
		AccessKey: cfg.CognitoAccessKey,
		SecretKey: cfg.CognitoSecretKey,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("cognito directory ready", map[string]any{
		"region":   cfg.AWSRegion,
		"endpoint": cfg.CognitoEndpoint,
	})

	return dir, nil
}
