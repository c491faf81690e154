package resolver

import (
	"context"

	"presignup-linker/internal/auth/credentials"
	"presignup-linker/internal/directory"
	"presignup-linker/internal/logger"
)

// FindUserByEmail returns the first user in the pool whose email equals
// email, or nil if there is none.
func FindUserByEmail(
	ctx context.Context,
	dir directory.Directory,
	poolID string,
	email string,
) (*directory.User, error) {

	users, err := dir.SearchUsers(ctx, poolID, directory.EmailFilter(email))
	if err != nil {
		logger.Error("error finding user by email", failureFields(poolID, err))
		return nil, err
	}

	if len(users) == 0 {
		return nil, nil
	}

	if len(users) > 1 {
		// the pool should enforce unique emails; pick the first but say so
		logger.Warn("multiple users share email", map[string]any{
			"user_pool_id": poolID,
			"matches":      len(users),
			"chosen":       users[0].Username,
		})
	}

	return &users[0], nil
}

// LinkAccounts merges the federated identity sourceUserID of providerName
// into the native account destinationUsername.
func LinkAccounts(
	ctx context.Context,
	dir directory.Directory,
	sourceUserID string,
	destinationUsername string,
	providerName string,
	poolID string,
) error {

	err := dir.LinkProviderForUser(ctx, poolID, directory.LinkRequest{
		Source: directory.ProviderIdentity{
			ProviderName:   providerName,
			AttributeName:  directory.SubjectAttributeName,
			AttributeValue: sourceUserID,
		},
		Destination: directory.ProviderIdentity{
			ProviderName:   directory.NativeProviderName,
			AttributeValue: destinationUsername,
		},
	})
	if err != nil {
		logger.Error("error linking user accounts", failureFields(poolID, err))
		return err
	}

	return nil
}

// CreateUser provisions a native account without notifying the user.
func CreateUser(
	ctx context.Context,
	dir directory.Directory,
	poolID string,
	username string,
	attributes []directory.Attribute,
) (*directory.User, error) {

	user, err := dir.CreateUser(ctx, directory.CreateUserInput{
		PoolID:          poolID,
		Username:        username,
		Attributes:      attributes,
		SuppressMessage: true,
	})
	if err != nil {
		logger.Error("error creating user", failureFields(poolID, err))
		return nil, err
	}

	return user, nil
}

// SetUserPassword assigns a generated permanent password so the account
// leaves FORCE_CHANGE_PASSWORD and becomes CONFIRMED.
func SetUserPassword(
	ctx context.Context,
	dir directory.Directory,
	generate credentials.Generator,
	poolID string,
	username string,
) error {

	password, err := generate()
	if err != nil {
		logger.Error("error generating password", map[string]any{
			"user_pool_id": poolID,
			"error":        err.Error(),
		})
		return err
	}

	err = dir.SetUserPassword(ctx, directory.SetPasswordInput{
		PoolID:    poolID,
		Username:  username,
		Password:  password,
		Permanent: true,
	})
	if err != nil {
		logger.Error("error setting user password", failureFields(poolID, err))
		return err
	}

	return nil
}

func failureFields(poolID string, err error) map[string]any {
	return map[string]any{
		"user_pool_id": poolID,
		"kind":         directory.KindOf(err).String(),
		"retryable":    directory.IsRetryable(err),
		"error":        err.Error(),
	}
}
