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
	entityDirector = "director"

	msgDirectorNotFound   = "Director not found"
	msgDirectorReferenced = "Director is referenced by existing movies"
)

type directorUseCase struct {
	directors ports.DirectorStorage
	movies    ports.MovieStorage
	notifier
}

func NewDirectorUseCase(directors ports.DirectorStorage, movies ports.MovieStorage, events ports.EventPublisher, logger *slog.Logger) DirectorUseCase {
	return &directorUseCase{
		directors: directors,
		movies:    movies,
		notifier:  notifier{events: events, logger: logger},
	}
}

func (uc *directorUseCase) List(ctx context.Context, skip, limit int) ([]domain.Director, error) {
	directors, err := uc.directors.GetMulti(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("usecase: list directors: %w", err)
	}
	return directors, nil
}

func (uc *directorUseCase) Get(ctx context.Context, id uint) (*domain.Director, error) {
	director, err := uc.directors.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get director: %w", err)
	}
	if director == nil {
		return nil, domain.NotFound(msgDirectorNotFound)
	}
	return director, nil
}

func (uc *directorUseCase) Create(ctx context.Context, actorID uint, in domain.DirectorCreate) (*domain.Director, error) {
	director, err := uc.directors.Create(ctx, in.Model())
	if err != nil {
		return nil, fmt.Errorf("usecase: create director: %w", err)
	}

	uc.publish(ctx, entityDirector, payloads.ActionCreated, director.ID, actorID)
	return director, nil
}

func (uc *directorUseCase) Update(ctx context.Context, actorID, id uint, in domain.DirectorUpdate) (*domain.Director, error) {
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	director, err := uc.directors.Update(ctx, existing, in)
	if err != nil {
		return nil, fmt.Errorf("usecase: update director: %w", err)
	}
	if director == nil {
		return nil, domain.NotFound(msgDirectorNotFound)
	}

	uc.publish(ctx, entityDirector, payloads.ActionUpdated, id, actorID)
	return director, nil
}

func (uc *directorUseCase) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := uc.Get(ctx, id); err != nil {
		return err
	}

	count, err := uc.movies.CountByDirector(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: %w", err)
	}
	if count > 0 {
		return domain.Conflict(msgDirectorReferenced)
	}

	if _, err := uc.directors.Remove(ctx, id); err != nil {
		return fmt.Errorf("usecase: delete director: %w", err)
	}

	uc.publish(ctx, entityDirector, payloads.ActionDeleted, id, actorID)
	return nil
}
