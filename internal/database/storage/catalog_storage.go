package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"gorm.io/gorm"
)

// GenreStorage реализует ports.GenreStorage.
type GenreStorage struct {
	*Gateway[domain.Genre, *domain.Genre]
	db     *gorm.DB
	logger *slog.Logger
}

func NewGenreStorage(db *gorm.DB, logger *slog.Logger) *GenreStorage {
	return &GenreStorage{
		Gateway: NewGateway[domain.Genre, *domain.Genre](db, logger, "Genre"),
		db:      db,
		logger:  logger,
	}
}

// GetByName возвращает жанр с точным совпадением имени или nil, nil.
func (s *GenreStorage) GetByName(ctx context.Context, name string) (*domain.Genre, error) {
	var genre domain.Genre
	err := conn(ctx, s.db).Where("name = ?", name).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to select genre by name", "name", name, "error", err)
		return nil, fmt.Errorf("select genre by name: %w", err)
	}
	return &genre, nil
}

// DirectorStorage реализует ports.DirectorStorage. Своих запросов у режиссеров нет.
type DirectorStorage struct {
	*Gateway[domain.Director, *domain.Director]
}

func NewDirectorStorage(db *gorm.DB, logger *slog.Logger) *DirectorStorage {
	return &DirectorStorage{
		Gateway: NewGateway[domain.Director, *domain.Director](db, logger, "Director"),
	}
}
