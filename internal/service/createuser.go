package service

import (
	"context"

	"github.com/samandr77/docflow/internal/entity"
)

// CreateUser submits the standalone create-user form and returns the
// success text.
func (s *Service) CreateUser(ctx context.Context, in entity.UserInput) (string, error) {
	in.ID = ""

	if err := in.Validate(); err != nil {
		return "", err
	}

	if in.Password == "" {
		return "", entity.NewValidationError("Password is required.")
	}

	if in.Role == "" {
		in.Role = entity.RoleStaff
	}

	if err := s.users.CreateUser(ctx, in); err != nil {
		return "", fail(err, MsgCreateUserFailed)
	}

	return UserCreated(in.Name), nil
}
