package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/user"
	"github.com/fekuna/omnipos-poultry-service/internal/user/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userUseCase struct {
	repo     user.Repository
	logger   logger.ZapLogger
	hashCost int
}

func NewUserUseCase(repo user.Repository, log logger.ZapLogger) user.UseCase {
	return &userUseCase{repo: repo, logger: log, hashCost: bcrypt.DefaultCost}
}

// NewUserUseCaseWithCost is NewUserUseCase with an explicit bcrypt cost.
func NewUserUseCaseWithCost(repo user.Repository, log logger.ZapLogger, cost int) user.UseCase {
	return &userUseCase{repo: repo, logger: log, hashCost: cost}
}

func (uc *userUseCase) CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error) {
	name, email, err := validateFields(input.Name, input.Email, input.Role)
	if err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, apperror.Validation("password is required")
	}

	if err := uc.ensureEmailUnique(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &model.User{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:         name,
		Role:         input.Role,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("user", id)
	}
	return u, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context, filters *dto.UserFilters) ([]model.User, int, error) {
	if filters.Role != "" && !filters.Role.Valid() {
		return nil, 0, apperror.Validationf("unknown role %q", filters.Role)
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *userUseCase) UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error) {
	name, email, err := validateFields(input.Name, input.Email, input.Role)
	if err != nil {
		return nil, err
	}

	u, err := uc.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if u.Role == model.RoleAdmin && input.Role != model.RoleAdmin {
		if err := uc.ensureNotLastAdmin(ctx); err != nil {
			return nil, err
		}
	}

	if email != u.Email {
		if err := uc.ensureEmailUnique(ctx, email, u.ID); err != nil {
			return nil, err
		}
	}

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), uc.hashCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}

	u.Name = name
	u.Role = input.Role
	u.Email = email
	u.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id string) error {
	u, err := uc.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == model.RoleAdmin {
		if err := uc.ensureNotLastAdmin(ctx); err != nil {
			return err
		}
	}

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("user", id)
	}
	return nil
}

func (uc *userUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := uc.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.logger.Warn("stored password hash is unreadable", zap.String("user_id", u.ID), zap.Error(err))
		}
		return nil, apperror.Unauthorized("invalid email or password")
	}
	return u, nil
}

func (uc *userUseCase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	admins, err := uc.repo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	_, err = uc.CreateUser(ctx, &dto.CreateUserInput{
		Name:     "Administrator",
		Role:     model.RoleAdmin,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (uc *userUseCase) ensureEmailUnique(ctx context.Context, email, excludeID string) error {
	unique, err := uc.repo.IsEmailUnique(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return apperror.Conflict("email already exists")
	}
	return nil
}

func (uc *userUseCase) ensureNotLastAdmin(ctx context.Context) error {
	admins, err := uc.repo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return apperror.Validation("at least one Admin must remain")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateFields(name, email string, role model.Role) (string, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	switch {
	case name == "":
		return "", "", apperror.Validation("user name is required")
	case email == "":
		return "", "", apperror.Validation("email is required")
	case !role.Valid():
		return "", "", apperror.Validationf("role must be Admin, Manager or Staff, got %q", role)
	}
	return name, email, nil
}
