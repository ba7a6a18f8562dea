package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MovieLibrary/internal/auth"
	"github.com/GoArmGo/MovieLibrary/internal/core/ports"
	"github.com/GoArmGo/MovieLibrary/internal/domain"
)

const (
	msgIncorrectCredentials = "Incorrect username or password"
	msgUsernameTaken        = "The user with this username already exists"
	msgEmailTaken           = "The user with this email already exists"
)

type authUseCase struct {
	users    ports.UserStorage
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	tokenTTL time.Duration
	logger   *slog.Logger

	// дайджест для сравнения, когда пользователь не найден
	dummyDigest string
}

// NewAuthUseCase создает сервис аутентификации; tokenTTL — срок жизни токена при логине.
func NewAuthUseCase(
	users ports.UserStorage,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	tokenTTL time.Duration,
	logger *slog.Logger,
) (AuthUseCase, error) {
	dummy, err := hasher.Hash("dummy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("usecase: prepare dummy digest: %w", err)
	}

	return &authUseCase{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		tokenTTL:    tokenTTL,
		logger:      logger,
		dummyDigest: dummy,
	}, nil
}

func (uc *authUseCase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("usecase: lookup user for authentication: %w", err)
	}

	if user == nil {
		// тратим столько же времени, сколько на настоящую проверку
		uc.hasher.Verify(password, uc.dummyDigest)
		return nil, nil
	}

	if !uc.hasher.Verify(password, user.HashedPassword) {
		return nil, nil
	}
	return user, nil
}

func (uc *authUseCase) Login(ctx context.Context, username, password string) (*domain.Token, error) {
	user, err := uc.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.logger.Info("login failed")
		return nil, &domain.Error{Kind: domain.ErrInvalidCredentials, Message: msgIncorrectCredentials}
	}

	token, err := uc.tokens.Issue(user.Username, uc.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("usecase: issue token: %w", err)
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return &domain.Token{AccessToken: token, TokenType: "bearer"}, nil
}

func (uc *authUseCase) Register(ctx context.Context, in domain.UserCreate) error {
	in.IsSuperuser = false
	user, err := createUser(ctx, uc.users, uc.hasher, in)
	if err != nil {
		return err
	}

	uc.logger.Info("user registered", "user_id", user.ID)
	return nil
}

func (uc *authUseCase) EnsureSuperuser(ctx context.Context, username, email, password string) error {
	existing, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("usecase: lookup first superuser: %w", err)
	}
	if existing != nil {
		uc.logger.Info("first superuser already exists", "user_id", existing.ID)
		return nil
	}

	user, err := createUser(ctx, uc.users, uc.hasher, domain.UserCreate{
		Username:    username,
		Email:       email,
		Password:    password,
		IsSuperuser: true,
	})
	if err != nil {
		return fmt.Errorf("usecase: create first superuser: %w", err)
	}

	uc.logger.Info("first superuser created", "user_id", user.ID)
	return nil
}

// createUser проверяет уникальность (сначала username, потом email), хэширует пароль и сохраняет.
func createUser(ctx context.Context, users ports.UserStorage, hasher *auth.PasswordHasher, in domain.UserCreate) (*domain.User, error) {
	if err := ensureUnique(ctx, users, in.Username, in.Email, 0); err != nil {
		return nil, err
	}

	digest, err := hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("usecase: %w", err)
	}

	user, err := users.Create(ctx, &domain.User{
		Username:       in.Username,
		Email:          in.Email,
		FullName:       in.FullName,
		HashedPassword: digest,
		IsActive:       true,
		IsSuperuser:    in.IsSuperuser,
		FavoriteGenre:  in.FavoriteGenre,
	})
	if err != nil {
		return nil, fmt.Errorf("usecase: create user: %w", err)
	}
	return user, nil
}

// ensureUnique проверяет, что username и email не заняты другим пользователем (кроме selfID).
// Пустое значение не проверяется.
func ensureUnique(ctx context.Context, users ports.UserStorage, username, email string, selfID uint) error {
	if username != "" {
		other, err := users.GetByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("usecase: check username: %w", err)
		}
		if other != nil && other.ID != selfID {
			return domain.Conflict(msgUsernameTaken)
		}
	}

	if email != "" {
		other, err := users.GetByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("usecase: check email: %w", err)
		}
		if other != nil && other.ID != selfID {
			return domain.Conflict(msgEmailTaken)
		}
	}
	return nil
}
