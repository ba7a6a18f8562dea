package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/MovieLibrary/internal/core/ports"
	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/GoArmGo/MovieLibrary/internal/messaging/payloads"
)

const (
	entityFavorite = "favorite"

	msgAlreadyFavorite  = "Movie already in favorites"
	msgFavoriteNotFound = "Favorite not found"
	msgNotEnoughPerms   = "Not enough permissions"
)

type favoriteUseCase struct {
	favorites ports.FavoriteStorage
	movies    ports.MovieStorage
	notifier
}

func NewFavoriteUseCase(favorites ports.FavoriteStorage, movies ports.MovieStorage, events ports.EventPublisher, logger *slog.Logger) FavoriteUseCase {
	return &favoriteUseCase{
		favorites: favorites,
		movies:    movies,
		notifier:  notifier{events: events, logger: logger},
	}
}

// Add добавляет фильм в избранное текущего пользователя. user_id из запроса игнорируется.
func (uc *favoriteUseCase) Add(ctx context.Context, user *domain.User, in domain.FavoriteCreate) (*domain.Favorite, error) {
	movie, err := uc.movies.Get(ctx, in.MovieID)
	if err != nil {
		return nil, fmt.Errorf("usecase: check movie: %w", err)
	}
	if movie == nil {
		return nil, domain.NotFound(msgMovieNotFound)
	}

	existing, err := uc.favorites.GetByUserAndMovie(ctx, user.ID, in.MovieID)
	if err != nil {
		return nil, fmt.Errorf("usecase: %w", err)
	}
	if existing != nil {
		return nil, domain.Conflict(msgAlreadyFavorite)
	}

	favorite, err := uc.favorites.Create(ctx, &domain.Favorite{UserID: user.ID, MovieID: in.MovieID})
	if err != nil {
		return nil, fmt.Errorf("usecase: add favorite: %w", err)
	}

	uc.publish(ctx, entityFavorite, payloads.ActionCreated, favorite.ID, user.ID)
	return favorite, nil
}

func (uc *favoriteUseCase) List(ctx context.Context, user *domain.User, skip, limit int) ([]domain.Favorite, error) {
	favorites, err := uc.favorites.ListByUser(ctx, user.ID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("usecase: %w", err)
	}
	return favorites, nil
}

// Remove удаляет запись избранного; чужую запись удалить нельзя.
func (uc *favoriteUseCase) Remove(ctx context.Context, user *domain.User, id uint) error {
	favorite, err := uc.favorites.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: get favorite: %w", err)
	}
	if favorite == nil {
		return domain.NotFound(msgFavoriteNotFound)
	}
	if favorite.UserID != user.ID {
		return domain.Forbidden(msgNotEnoughPerms)
	}

	return uc.remove(ctx, user, favorite.ID)
}

func (uc *favoriteUseCase) RemoveByMovie(ctx context.Context, user *domain.User, movieID uint) error {
	favorite, err := uc.favorites.GetByUserAndMovie(ctx, user.ID, movieID)
	if err != nil {
		return fmt.Errorf("usecase: %w", err)
	}
	if favorite == nil {
		return domain.NotFound(msgFavoriteNotFound)
	}

	return uc.remove(ctx, user, favorite.ID)
}

func (uc *favoriteUseCase) remove(ctx context.Context, user *domain.User, id uint) error {
	if _, err := uc.favorites.Remove(ctx, id); err != nil {
		return fmt.Errorf("usecase: remove favorite: %w", err)
	}

	uc.publish(ctx, entityFavorite, payloads.ActionDeleted, id, user.ID)
	return nil
}

// Clear удаляет все избранное пользователя. Пустое избранное не ошибка.
func (uc *favoriteUseCase) Clear(ctx context.Context, user *domain.User) error {
	removed, err := uc.favorites.RemoveByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("usecase: %w", err)
	}

	if removed > 0 {
		uc.publish(ctx, entityFavorite, payloads.ActionCleared, user.ID, user.ID)
	}
	return nil
}
