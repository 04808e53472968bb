package user

import (
	"context"

	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/user/dto"
)

type UseCase interface {
	CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, filters *dto.UserFilters) ([]model.User, int, error)
	UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Authenticate checks an email and password pair and returns the user.
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	// EnsureAdmin creates the given admin account when no Admin exists yet.
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}
