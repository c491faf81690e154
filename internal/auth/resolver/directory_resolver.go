package resolver

import (
	"context"
	"errors"
	"fmt"

	"presignup-linker/internal/auth"
	"presignup-linker/internal/auth/credentials"
	"presignup-linker/internal/directory"
	"presignup-linker/internal/logger"
)

// ErrMissingCreatedUsername is returned when the directory accepted a new
// account but did not report its username, leaving nothing to link to.
var ErrMissingCreatedUsername = errors.New("created user has no username")

// DirectoryResolver resolves federated signups against the identity directory.
type DirectoryResolver struct {
	dir       directory.Directory
	passwords credentials.Generator
}

func NewDirectoryResolver(dir directory.Directory, passwords credentials.Generator) *DirectoryResolver {
	return &DirectoryResolver{
		dir:       dir,
		passwords: passwords,
	}
}

func (r *DirectoryResolver) Resolve(
	ctx context.Context,
	signup Signup,
) (*Resolution, error) {

	// 1. Try email-based linking (existing native account, new provider)
	existing, err := FindUserByEmail(ctx, r.dir, signup.PoolID, signup.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if existing != nil {
		logger.Info("existing user found", map[string]any{
			"user_pool_id": signup.PoolID,
			"username":     existing.Username,
			"provider":     signup.Identity.Provider,
		})

		err = LinkAccounts(
			ctx,
			r.dir,
			signup.Identity.ProviderUserID,
			existing.Username,
			signup.Identity.Provider,
			signup.PoolID,
		)
		if err != nil {
			return nil, fmt.Errorf("link existing user: %w", err)
		}

		return &Resolution{Action: ActionLinked, Username: existing.Username}, nil
	}

	// 2. Create a native account
	created, err := CreateUser(
		ctx,
		r.dir,
		signup.PoolID,
		signup.Email,
		auth.ShapeAttributes(signup.Attributes),
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// 3. Confirm it with a permanent password
	if err := SetUserPassword(ctx, r.dir, r.passwords, signup.PoolID, signup.Email); err != nil {
		return nil, fmt.Errorf("set user password: %w", err)
	}

	if created == nil || created.Username == "" {
		logger.Error("created user has no username", map[string]any{
			"user_pool_id": signup.PoolID,
		})
		return nil, ErrMissingCreatedUsername
	}

	// 4. Merge the federated and native accounts
	err = LinkAccounts(
		ctx,
		r.dir,
		signup.Identity.ProviderUserID,
		created.Username,
		signup.Identity.Provider,
		signup.PoolID,
	)
	if err != nil {
		return nil, fmt.Errorf("link created user: %w", err)
	}

	logger.Info("native user created and linked", map[string]any{
		"user_pool_id": signup.PoolID,
		"username":     created.Username,
		"provider":     signup.Identity.Provider,
	})

	return &Resolution{Action: ActionCreated, Username: created.Username}, nil
}
