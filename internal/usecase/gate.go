package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/MovieLibrary/internal/auth"
	"github.com/GoArmGo/MovieLibrary/internal/core/ports"
	"github.com/GoArmGo/MovieLibrary/internal/domain"
)

const (
	msgCouldNotValidate = "Could not validate credentials"
	msgUserNotFound     = "User not found"
	msgInactiveUser     = "Inactive user"
	msgNotEnoughRights  = "The user doesn't have enough privileges"
)

type gate struct {
	users  ports.UserStorage
	tokens *auth.TokenManager
	logger *slog.Logger
}

func NewAccessGate(users ports.UserStorage, tokens *auth.TokenManager, logger *slog.Logger) AccessGate {
	return &gate{users: users, tokens: tokens, logger: logger}
}

// Resolve декодирует токен и находит пользователя по sub.
// Невалидный токен и удаленный пользователь — обе ошибки domain.ErrUnauthenticated,
// второй случай дополнительно domain.ErrSubjectNotFound.
func (g *gate) Resolve(ctx context.Context, token string) (*domain.User, error) {
	claims, err := g.tokens.Decode(token)
	if err != nil {
		g.logger.Info("token rejected", "reason", err.Error())
		return nil, domain.Unauthenticated(msgCouldNotValidate)
	}

	user, err := g.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("usecase: resolve token subject: %w", err)
	}
	if user == nil {
		g.logger.Warn("token subject not found")
		return nil, &domain.Error{Kind: domain.ErrSubjectNotFound, Message: msgUserNotFound}
	}
	return user, nil
}

func (g *gate) RequireActive(user *domain.User) error {
	if !user.IsActive {
		return domain.Forbidden(msgInactiveUser)
	}
	return nil
}

func (g *gate) RequireSuperuser(user *domain.User) error {
	if !user.IsSuperuser {
		return domain.Forbidden(msgNotEnoughRights)
	}
	return nil
}
