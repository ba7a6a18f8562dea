package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"gorm.io/gorm"
)

// MovieStorage реализует ports.MovieStorage.
// Чтение всегда подгружает жанр и режиссера тем же запросом к хранилищу.
type MovieStorage struct {
	*Gateway[domain.Movie, *domain.Movie]
	db     *gorm.DB
	logger *slog.Logger
}

func NewMovieStorage(db *gorm.DB, logger *slog.Logger) *MovieStorage {
	return &MovieStorage{
		Gateway: NewGateway[domain.Movie, *domain.Movie](db, logger, "Movie"),
		db:      db,
		logger:  logger,
	}
}

func (s *MovieStorage) expanded(ctx context.Context) *gorm.DB {
	return conn(ctx, s.db).Preload("Genre").Preload("Director")
}

func (s *MovieStorage) Get(ctx context.Context, id uint) (*domain.Movie, error) {
	return s.first(ctx, s.expanded(ctx), id)
}

func (s *MovieStorage) GetMulti(ctx context.Context, skip, limit int) ([]domain.Movie, error) {
	return s.list(ctx, s.expanded(ctx), skip, limit)
}

func (s *MovieStorage) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	if err := s.insert(ctx, movie); err != nil {
		return nil, err
	}
	return s.Get(ctx, movie.ID)
}

func (s *MovieStorage) Update(ctx context.Context, existing *domain.Movie, patch domain.Patch) (*domain.Movie, error) {
	if err := s.apply(ctx, existing.ID, patch); err != nil {
		return nil, err
	}
	return s.Get(ctx, existing.ID)
}

// Remove удаляет фильм и все записи избранного, которые на него ссылаются.
func (s *MovieStorage) Remove(ctx context.Context, id uint) (*domain.Movie, error) {
	var removed *domain.Movie
	err := conn(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return fmt.Errorf("delete favorites of movie %d: %w", id, err)
		}
		movie, err := s.remove(ctx, tx, id)
		if err != nil {
			return err
		}
		removed = movie
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// CountByGenre — сколько фильмов ссылается на жанр.
func (s *MovieStorage) CountByGenre(ctx context.Context, genreID uint) (int64, error) {
	return s.countBy(ctx, "genre_id", genreID)
}

// CountByDirector — сколько фильмов ссылается на режиссера.
func (s *MovieStorage) CountByDirector(ctx context.Context, directorID uint) (int64, error) {
	return s.countBy(ctx, "director_id", directorID)
}

func (s *MovieStorage) countBy(ctx context.Context, column string, id uint) (int64, error) {
	start := time.Now()

	var count int64
	if err := conn(ctx, s.db).Model(&domain.Movie{}).Where(column+" = ?", id).Count(&count).Error; err != nil {
		s.logger.Error("failed to count movies", "by", column, "id", id, "error", err)
		return 0, fmt.Errorf("count movies by %s: %w", column, err)
	}

	s.logger.Debug("movies counted", "by", column, "id", id, "count", count, "duration_ms", time.Since(start).Milliseconds())
	return count, nil
}
