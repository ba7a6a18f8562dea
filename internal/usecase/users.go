package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/MovieLibrary/internal/auth"
	"github.com/GoArmGo/MovieLibrary/internal/core/ports"
	"github.com/GoArmGo/MovieLibrary/internal/domain"
)

type userUseCase struct {
	users  ports.UserStorage
	hasher *auth.PasswordHasher
	logger *slog.Logger
}

func NewUserUseCase(users ports.UserStorage, hasher *auth.PasswordHasher, logger *slog.Logger) UserUseCase {
	return &userUseCase{users: users, hasher: hasher, logger: logger}
}

func (uc *userUseCase) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	users, err := uc.users.GetMulti(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("usecase: list users: %w", err)
	}
	return users, nil
}

func (uc *userUseCase) Get(ctx context.Context, id uint) (*domain.User, error) {
	user, err := uc.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get user: %w", err)
	}
	if user == nil {
		return nil, domain.NotFound(msgUserNotFound)
	}
	return user, nil
}

// Create — создание пользователя суперпользователем, в отличие от регистрации
// может выдать права суперпользователя.
func (uc *userUseCase) Create(ctx context.Context, in domain.UserCreate) (*domain.User, error) {
	user, err := createUser(ctx, uc.users, uc.hasher, in)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user created by superuser", "user_id", user.ID, "is_superuser", user.IsSuperuser)
	return user, nil
}

func (uc *userUseCase) UpdateSelf(ctx context.Context, current *domain.User, in domain.UserUpdate) (*domain.User, error) {
	return uc.update(ctx, current, in, in.Password)
}

func (uc *userUseCase) Update(ctx context.Context, id uint, in domain.AdminUserUpdate) (*domain.User, error) {
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.update(ctx, existing, in, in.Password)
}

func (uc *userUseCase) update(ctx context.Context, existing *domain.User, patch domain.Patch, password domain.Optional[string]) (*domain.User, error) {
	changes := domain.Changes(patch.Changes())

	username, _ := changes["username"].(string)
	email, _ := changes["email"].(string)
	if err := ensureUnique(ctx, uc.users, username, email, existing.ID); err != nil {
		return nil, err
	}

	if password.HasValue() {
		if password.Value == "" {
			return nil, domain.Invalid("password: must be at least 6 characters")
		}
		digest, err := uc.hasher.Hash(password.Value)
		if err != nil {
			return nil, fmt.Errorf("usecase: %w", err)
		}
		changes["hashed_password"] = digest
	}

	updated, err := uc.users.Update(ctx, existing, changes)
	if err != nil {
		return nil, fmt.Errorf("usecase: update user: %w", err)
	}
	if updated == nil {
		return nil, domain.NotFound(msgUserNotFound)
	}

	uc.logger.Info("user updated", "user_id", existing.ID, "columns", len(changes))
	return updated, nil
}

// Delete удаляет пользователя вместе с его избранным.
func (uc *userUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.users.Remove(ctx, id); err != nil {
		return fmt.Errorf("usecase: delete user: %w", err)
	}
	return nil
}
