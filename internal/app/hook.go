package app

import (
	"context"

	"presignup-linker/internal/auth/credentials"
	"presignup-linker/internal/auth/handler"
	"presignup-linker/internal/auth/resolver"
	"presignup-linker/internal/config"
)

// NewHookHandler builds the pre-signup handler and its directory client.
// The client is created once and shared by every invocation.
func NewHookHandler(ctx context.Context, cfg config.Config) (*handler.Handler, error) {
	dir, err := setupDirectory(ctx, cfg)
	if err != nil {
		return nil, err
	}

	identityResolver := resolver.NewDirectoryResolver(
		dir,
		credentials.NewGenerator(cfg.PasswordLength),
	)

	return handler.NewHandler(identityResolver), nil
}
