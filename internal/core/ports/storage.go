package ports

import (
	"context"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
)

// Repository — общий CRUD, который предоставляет storage.Gateway.
// Get возвращает nil, nil, если записи нет; Remove в этом случае возвращает domain.ErrNotFound.
type Repository[T any] interface {
	Get(ctx context.Context, id uint) (*T, error)
	GetMulti(ctx context.Context, skip, limit int) ([]T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, existing *T, patch domain.Patch) (*T, error)
	Remove(ctx context.Context, id uint) (*T, error)
}

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	Repository[domain.User]
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type GenreStorage interface {
	Repository[domain.Genre]
	GetByName(ctx context.Context, name string) (*domain.Genre, error)
}

type DirectorStorage interface {
	Repository[domain.Director]
}

// MovieStorage — чтение фильмов всегда с жанром и режиссером.
type MovieStorage interface {
	Repository[domain.Movie]
	CountByGenre(ctx context.Context, genreID uint) (int64, error)
	CountByDirector(ctx context.Context, directorID uint) (int64, error)
}

type FavoriteStorage interface {
	Repository[domain.Favorite]
	GetByUserAndMovie(ctx context.Context, userID, movieID uint) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID uint, skip, limit int) ([]domain.Favorite, error)
	RemoveByUser(ctx context.Context, userID uint) (int64, error)
}
