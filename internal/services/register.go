package services

import (
	"context"
	"fmt"
	"log/slog"

	"rubjai/internal/core"
)

// UserStore is the user directory slice of the storage layer.
type UserStore interface {
	FindUserByLineID(ctx context.Context, lineID string) (*core.User, error)
	CreateUser(ctx context.Context, lineID, name string) (*core.User, error)
	UpdateUserName(ctx context.Context, lineID, name string) (*core.User, error)
}

// RegistrationAction is the outcome of the upsert decision.
type RegistrationAction int

const (
	RegisterKeep RegistrationAction = iota
	RegisterCreate
	RegisterUpdateName
)

// DecideRegistration is the pure three-way upsert decision: create when
// the LINE ID is unknown, rename when a non-empty new display name
// differs from the stored one, otherwise keep the stored user as is.
func DecideRegistration(existing *core.User, name string) RegistrationAction {
	if existing == nil {
		return RegisterCreate
	}
	if name != "" && name != existing.Name {
		return RegisterUpdateName
	}
	return RegisterKeep
}

// RegisterResult is the successful outcome of a registration.
type RegisterResult struct {
	User      *core.User
	IsNewUser bool
}

// RegisterService upserts users by LINE identity.
type RegisterService struct {
	users UserStore
}

func NewRegisterService(users UserStore) *RegisterService {
	return &RegisterService{users: users}
}

// Register finds or creates the user for a LINE identity, refreshing
// the display name when it changed. Registering an existing identity
// is not an error; it returns the stored user.
func (s *RegisterService) Register(ctx context.Context, lineID, name string) (RegisterResult, error) {
	if lineID == "" {
		return RegisterResult{}, core.ErrMissingLineID
	}

	existing, err := s.users.FindUserByLineID(ctx, lineID)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("find user: %w", err)
	}

	switch DecideRegistration(existing, name) {
	case RegisterCreate:
		user, err := s.users.CreateUser(ctx, lineID, name)
		if err != nil {
			return RegisterResult{}, fmt.Errorf("create user: %w", err)
		}
		return RegisterResult{User: user, IsNewUser: true}, nil

	case RegisterUpdateName:
		user, err := s.users.UpdateUserName(ctx, lineID, name)
		if err != nil {
			return RegisterResult{}, fmt.Errorf("update user name: %w", err)
		}
		slog.InfoContext(ctx, "User display name updated", "id", user.ID)
		return RegisterResult{User: user}, nil

	default:
		return RegisterResult{User: existing}, nil
	}
}
