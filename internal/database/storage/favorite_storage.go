package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"gorm.io/gorm"
)

// FavoriteStorage реализует ports.FavoriteStorage.
type FavoriteStorage struct {
	*Gateway[domain.Favorite, *domain.Favorite]
	db     *gorm.DB
	logger *slog.Logger
}

func NewFavoriteStorage(db *gorm.DB, logger *slog.Logger) *FavoriteStorage {
	return &FavoriteStorage{
		Gateway: NewGateway[domain.Favorite, *domain.Favorite](db, logger, "Favorite"),
		db:      db,
		logger:  logger,
	}
}

// GetByUserAndMovie ищет запись по паре (пользователь, фильм) или возвращает nil, nil.
func (s *FavoriteStorage) GetByUserAndMovie(ctx context.Context, userID, movieID uint) (*domain.Favorite, error) {
	var fav domain.Favorite
	err := conn(ctx, s.db).Where("user_id = ? AND movie_id = ?", userID, movieID).First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to select favorite", "user_id", userID, "movie_id", movieID, "error", err)
		return nil, fmt.Errorf("select favorite: %w", err)
	}
	return &fav, nil
}

// ListByUser возвращает избранное пользователя вместе с фильмами, их жанрами и режиссерами.
func (s *FavoriteStorage) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]domain.Favorite, error) {
	start := time.Now()

	favorites := make([]domain.Favorite, 0)
	err := conn(ctx, s.db).
		Preload("Movie.Genre").
		Preload("Movie.Director").
		Where("user_id = ?", userID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&favorites).Error
	if err != nil {
		s.logger.Error("failed to list favorites", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list favorites of user %d: %w", userID, err)
	}

	s.logger.Debug("favorites listed",
		"user_id", userID,
		"count", len(favorites),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return favorites, nil
}

// RemoveByUser удаляет все избранное пользователя и возвращает число удаленных строк.
func (s *FavoriteStorage) RemoveByUser(ctx context.Context, userID uint) (int64, error) {
	res := conn(ctx, s.db).Where("user_id = ?", userID).Delete(&domain.Favorite{})
	if res.Error != nil {
		s.logger.Error("failed to clear favorites", "user_id", userID, "error", res.Error)
		return 0, fmt.Errorf("clear favorites of user %d: %w", userID, res.Error)
	}

	s.logger.Info("favorites cleared", "user_id", userID, "removed", res.RowsAffected)
	return res.RowsAffected, nil
}
