package resolver

import (
	"context"

	"presignup-linker/internal/auth"
)

// Action tells which branch resolved a signup.
type Action string

const (
	// ActionLinked means the identity was linked to an existing native account.
	ActionLinked Action = "linked"
	// ActionCreated means a native account was provisioned and then linked.
	ActionCreated Action = "created"
)

// Signup is a federated signup awaiting reconciliation.
type Signup struct {
	PoolID     string
	Identity   auth.Identity
	Email      string
	Attributes map[string]string
}

type Resolution struct {
	Action   Action
	Username string // native account the identity was linked to
}

// Resolver determines which native account an external identity belongs to.
// It is the ONLY place where identity-to-account mapping logic lives.
type Resolver interface {
	Resolve(
		ctx context.Context,
		signup Signup,
	) (*Resolution, error)
}
