package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
)

// AuthUseCase — проверка логина и пароля, выдача токена и регистрация.
type AuthUseCase interface {
	// Authenticate возвращает пользователя или nil, nil. Неизвестный логин и неверный
	// пароль для вызывающего неотличимы.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// Login выдает bearer-токен с sub = username или domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*domain.Token, error)

	// Register — открытая регистрация. Суперпользователя так создать нельзя.
	Register(ctx context.Context, in domain.UserCreate) error

	// EnsureSuperuser создает суперпользователя, если имя свободно.
	EnsureSuperuser(ctx context.Context, username, email, password string) error
}

// AccessGate разрешает токен в пользователя и проверяет его права.
type AccessGate interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
	RequireActive(user *domain.User) error
	RequireSuperuser(user *domain.User) error
}

type UserUseCase interface {
	List(ctx context.Context, skip, limit int) ([]domain.User, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
	Create(ctx context.Context, in domain.UserCreate) (*domain.User, error)
	UpdateSelf(ctx context.Context, current *domain.User, in domain.UserUpdate) (*domain.User, error)
	Update(ctx context.Context, id uint, in domain.AdminUserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id uint) error
}

type GenreUseCase interface {
	List(ctx context.Context, skip, limit int) ([]domain.Genre, error)
	Get(ctx context.Context, id uint) (*domain.Genre, error)
	Create(ctx context.Context, actorID uint, in domain.GenreCreate) (*domain.Genre, error)
	Update(ctx context.Context, actorID, id uint, in domain.GenreUpdate) (*domain.Genre, error)
	Delete(ctx context.Context, actorID, id uint) error
}

type DirectorUseCase interface {
	List(ctx context.Context, skip, limit int) ([]domain.Director, error)
	Get(ctx context.Context, id uint) (*domain.Director, error)
	Create(ctx context.Context, actorID uint, in domain.DirectorCreate) (*domain.Director, error)
	Update(ctx context.Context, actorID, id uint, in domain.DirectorUpdate) (*domain.Director, error)
	Delete(ctx context.Context, actorID, id uint) error
}

type MovieUseCase interface {
	List(ctx context.Context, skip, limit int) ([]domain.Movie, error)
	Get(ctx context.Context, id uint) (*domain.Movie, error)
	Create(ctx context.Context, actorID uint, in domain.MovieCreate) (*domain.Movie, error)
	Update(ctx context.Context, actorID, id uint, in domain.MovieUpdate) (*domain.Movie, error)
	Delete(ctx context.Context, actorID, id uint) error

	// UploadPoster сохраняет файл в файловом хранилище и записывает его URL в poster_url.
	UploadPoster(ctx context.Context, actorID, id uint, file io.Reader, contentType string) (*domain.Movie, error)
	PostersEnabled() bool
}

// FavoriteUseCase — избранное текущего пользователя.
type FavoriteUseCase interface {
	Add(ctx context.Context, user *domain.User, in domain.FavoriteCreate) (*domain.Favorite, error)
	List(ctx context.Context, user *domain.User, skip, limit int) ([]domain.Favorite, error)
	Remove(ctx context.Context, user *domain.User, id uint) error
	RemoveByMovie(ctx context.Context, user *domain.User, movieID uint) error
	Clear(ctx context.Context, user *domain.User) error
}
