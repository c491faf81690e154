package directory

import (
	"context"
	"strings"
)

const (
	// NativeProviderName identifies accounts whose credentials live in the directory.
	NativeProviderName = "Cognito"

	// SubjectAttributeName names the provider-scoped subject of a federated identity.
	SubjectAttributeName = "Cognito_Subject"
)

// User status values reported by the directory.
const (
	StatusForceChangePassword = "FORCE_CHANGE_PASSWORD"
	StatusConfirmed           = "CONFIRMED"
)

// Directory is the subset of the identity directory's admin API used to
// reconcile federated signups with native accounts.
// Implementations must be safe for concurrent use.
type Directory interface {
	SearchUsers(ctx context.Context, poolID string, filter Filter) ([]User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*User, error)
	SetUserPassword(ctx context.Context, in SetPasswordInput) error
	LinkProviderForUser(ctx context.Context, poolID string, link LinkRequest) error
}

type User struct {
	Username   string
	Status     string
	Enabled    bool
	Attributes map[string]string
}

type Attribute struct {
	Name  string
	Value string
}

// Filter is an exact-match condition on a single user attribute.
type Filter struct {
	Attribute string
	Value     string
}

// EmailFilter matches users whose email equals email.
func EmailFilter(email string) Filter {
	return Filter{Attribute: "email", Value: email}
}

// String renders the filter in the directory's search syntax,
// e.g. email = "a@x.com".
func (f Filter) String() string {
	v := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(f.Value)
	return f.Attribute + ` = "` + v + `"`
}

type CreateUserInput struct {
	PoolID     string
	Username   string
	Attributes []Attribute

	// SuppressMessage prevents the directory from sending the welcome
	// message with a temporary password.
	SuppressMessage bool
}

type SetPasswordInput struct {
	PoolID    string
	Username  string
	Password  string
	Permanent bool
}

// ProviderIdentity names a user as seen by one identity provider.
type ProviderIdentity struct {
	ProviderName   string
	AttributeName  string
	AttributeValue string
}

// LinkRequest merges Source into the Destination account.
type LinkRequest struct {
	Source      ProviderIdentity
	Destination ProviderIdentity
}
