// Package directorytest provides a scripted directory.Directory that records
// every call made to it.
package directorytest

import (
	"context"
	"sync"

	"presignup-linker/internal/directory"
)

const (
	OpSearchUsers         = "SearchUsers"
	OpCreateUser          = "CreateUser"
	OpSetUserPassword     = "SetUserPassword"
	OpLinkProviderForUser = "LinkProviderForUser"
)

// Call is one recorded directory call. Only the fields relevant to Op are set.
type Call struct {
	Op       string
	PoolID   string
	Filter   directory.Filter
	Create   directory.CreateUserInput
	Password directory.SetPasswordInput
	Link     directory.LinkRequest
}

// Recorder answers SearchUsers with Users, CreateUser with Created, and
// fails any operation listed in Errors.
type Recorder struct {
	Users   []directory.User
	Created *directory.User
	Errors  map[string]error

	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Ops returns the recorded operation names in call order.
func (r *Recorder) Ops() []string {
	var ops []string
	for _, c := range r.Calls() {
		ops = append(ops, c.Op)
	}
	return ops
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	return r.Errors[c.Op]
}

func (r *Recorder) SearchUsers(_ context.Context, poolID string, filter directory.Filter) ([]directory.User, error) {
	if err := r.record(Call{Op: OpSearchUsers, PoolID: poolID, Filter: filter}); err != nil {
		return nil, err
	}
	return r.Users, nil
}

func (r *Recorder) CreateUser(_ context.Context, in directory.CreateUserInput) (*directory.User, error) {
	if err := r.record(Call{Op: OpCreateUser, PoolID: in.PoolID, Create: in}); err != nil {
		return nil, err
	}
	if r.Created != nil {
		u := *r.Created
		return &u, nil
	}
	return &directory.User{Username: in.Username, Status: directory.StatusForceChangePassword}, nil
}

func (r *Recorder) SetUserPassword(_ context.Context, in directory.SetPasswordInput) error {
	return r.record(Call{Op: OpSetUserPassword, PoolID: in.PoolID, Password: in})
}

func (r *Recorder) LinkProviderForUser(_ context.Context, poolID string, link directory.LinkRequest) error {
	return r.record(Call{Op: OpLinkProviderForUser, PoolID: poolID, Link: link})
}
