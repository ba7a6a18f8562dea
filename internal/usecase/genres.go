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
	entityGenre = "genre"

	msgGenreNotFound   = "Genre not found"
	msgGenreExists     = "Genre already exists"
	msgGenreReferenced = "Genre is referenced by existing movies"
)

type genreUseCase struct {
	genres ports.GenreStorage
	movies ports.MovieStorage
	notifier
}

func NewGenreUseCase(genres ports.GenreStorage, movies ports.MovieStorage, events ports.EventPublisher, logger *slog.Logger) GenreUseCase {
	return &genreUseCase{
		genres:   genres,
		movies:   movies,
		notifier: notifier{events: events, logger: logger},
	}
}

func (uc *genreUseCase) List(ctx context.Context, skip, limit int) ([]domain.Genre, error) {
	genres, err := uc.genres.GetMulti(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("usecase: list genres: %w", err)
	}
	return genres, nil
}

func (uc *genreUseCase) Get(ctx context.Context, id uint) (*domain.Genre, error) {
	genre, err := uc.genres.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get genre: %w", err)
	}
	if genre == nil {
		return nil, domain.NotFound(msgGenreNotFound)
	}
	return genre, nil
}

func (uc *genreUseCase) Create(ctx context.Context, actorID uint, in domain.GenreCreate) (*domain.Genre, error) {
	if err := uc.ensureNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	genre, err := uc.genres.Create(ctx, in.Model())
	if err != nil {
		return nil, fmt.Errorf("usecase: create genre: %w", err)
	}

	uc.publish(ctx, entityGenre, payloads.ActionCreated, genre.ID, actorID)
	return genre, nil
}

func (uc *genreUseCase) Update(ctx context.Context, actorID, id uint, in domain.GenreUpdate) (*domain.Genre, error) {
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name.HasValue() && in.Name.Value != existing.Name {
		if err := uc.ensureNameFree(ctx, in.Name.Value, id); err != nil {
			return nil, err
		}
	}

	genre, err := uc.genres.Update(ctx, existing, in)
	if err != nil {
		return nil, fmt.Errorf("usecase: update genre: %w", err)
	}
	if genre == nil {
		return nil, domain.NotFound(msgGenreNotFound)
	}

	uc.publish(ctx, entityGenre, payloads.ActionUpdated, id, actorID)
	return genre, nil
}

// Delete запрещен, пока на жанр ссылается хотя бы один фильм.
func (uc *genreUseCase) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}

	count, err := uc.movies.CountByGenre(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: %w", err)
	}
	if count > 0 {
		return domain.Conflict(msgGenreReferenced)
	}

	if _, err := uc.genres.Remove(ctx, id); err != nil {
		return fmt.Errorf("usecase: delete genre: %w", err)
	}

	uc.publish(ctx, entityGenre, payloads.ActionDeleted, id, actorID)
	return nil
}

func (uc *genreUseCase) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	other, err := uc.genres.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("usecase: check genre name: %w", err)
	}
	if other != nil && other.ID != selfID {
		return domain.Conflict(msgGenreExists)
	}
	return nil
}
