package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"presignup-linker/internal/auth/credentials"
)

var (
	errUserNotFound   = errors.New("user does not exist")
	errUsernameExists = errors.New("user account already exists")
	errAlreadyLinked  = errors.New("provider identity is already linked")
)

// Memory is an in-process Directory for local runs. Passwords are kept as
// bcrypt hashes only.
type Memory struct {
	mu    sync.Mutex
	pools map[string]map[string]*memoryUser
}

type memoryUser struct {
	user         User
	passwordHash string
	identities   []ProviderIdentity
}

func NewMemory() *Memory {
	return &Memory{pools: make(map[string]map[string]*memoryUser)}
}

// AddUser seeds a native account, e.g. one registered with email and password.
func (m *Memory) AddUser(poolID string, u User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.Attributes == nil {
		u.Attributes = map[string]string{}
	}
	m.pool(poolID)[u.Username] = &memoryUser{user: u}
}

// Identities returns the provider identities linked to username.
func (m *Memory) Identities(poolID, username string) []ProviderIdentity {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.pool(poolID)[username]
	if !ok {
		return nil
	}
	return append([]ProviderIdentity(nil), entry.identities...)
}

// CheckPassword verifies password against the stored hash for username.
func (m *Memory) CheckPassword(poolID, username, password string) error {
	m.mu.Lock()
	entry, ok := m.pool(poolID)[username]
	var hash string
	if ok {
		hash = entry.passwordHash
	}
	m.mu.Unlock()

	if !ok || hash == "" {
		return newError("CheckPassword", KindNotFound, errUserNotFound)
	}
	return credentials.VerifyPassword(hash, password)
}

func (m *Memory) SearchUsers(_ context.Context, poolID string, filter Filter) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var users []User
	for _, entry := range m.pool(poolID) {
		value := entry.user.Attributes[filter.Attribute]
		if filter.Attribute == "username" {
			value = entry.user.Username
		}
		if value == filter.Value {
			users = append(users, copyUser(entry.user))
		}
	}

	return users, nil
}

func (m *Memory) CreateUser(_ context.Context, in CreateUserInput) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if in.Username == "" {
		return nil, newError("AdminCreateUser", KindValidation, errors.New("username is required"))
	}

	pool := m.pool(in.PoolID)
	if _, exists := pool[in.Username]; exists {
		return nil, newError("AdminCreateUser", KindValidation, errUsernameExists)
	}

	u := User{
		Username:   in.Username,
		Status:     StatusForceChangePassword,
		Enabled:    true,
		Attributes: make(map[string]string, len(in.Attributes)),
	}
	for _, a := range in.Attributes {
		u.Attributes[a.Name] = a.Value
	}

	pool[in.Username] = &memoryUser{user: u}

	created := copyUser(u)
	return &created, nil
}

func (m *Memory) SetUserPassword(_ context.Context, in SetPasswordInput) error {
	hash, _, err := credentials.HashPassword(in.Password)
	if err != nil {
		return newError("AdminSetUserPassword", KindValidation, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.pool(in.PoolID)[in.Username]
	if !ok {
		return newError("AdminSetUserPassword", KindNotFound, errUserNotFound)
	}

	entry.passwordHash = hash
	if in.Permanent {
		entry.user.Status = StatusConfirmed
	} else {
		entry.user.Status = StatusForceChangePassword
	}

	return nil
}

func (m *Memory) LinkProviderForUser(_ context.Context, poolID string, link LinkRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pool := m.pool(poolID)

	dest, ok := pool[link.Destination.AttributeValue]
	if !ok {
		return newError("AdminLinkProviderForUser", KindNotFound, errUserNotFound)
	}

	for _, entry := range pool {
		for _, id := range entry.identities {
			if id.ProviderName == link.Source.ProviderName && id.AttributeValue == link.Source.AttributeValue {
				return newError("AdminLinkProviderForUser", KindValidation,
					fmt.Errorf("%w: %s", errAlreadyLinked, entry.user.Username))
			}
		}
	}

	dest.identities = append(dest.identities, link.Source)
	return nil
}

func (m *Memory) pool(poolID string) map[string]*memoryUser {
	p, ok := m.pools[poolID]
	if !ok {
		p = make(map[string]*memoryUser)
		m.pools[poolID] = p
	}
	return p
}

func copyUser(u User) User {
	attrs := make(map[string]string, len(u.Attributes))
	for k, v := range u.Attributes {
		attrs[k] = v
	}
	u.Attributes = attrs
	return u
}
