package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"

	"github.com/google/uuid"

	"github.com/GoArmGo/MovieLibrary/internal/core/ports"
	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/GoArmGo/MovieLibrary/internal/messaging/payloads"
)

const (
	entityMovie = "movie"

	msgMovieNotFound = "Movie not found"
)

// ErrPostersDisabled — файловое хранилище не настроено.
var ErrPostersDisabled = errors.New("poster storage is not configured")

type movieUseCase struct {
	movies    ports.MovieStorage
	genres    ports.GenreStorage
	directors ports.DirectorStorage
	files     ports.FileStorage
	notifier
}

// NewMovieUseCase создает сервис фильмов. files может быть nil: тогда загрузка постеров недоступна.
func NewMovieUseCase(
	movies ports.MovieStorage,
	genres ports.GenreStorage,
	directors ports.DirectorStorage,
	files ports.FileStorage,
	events ports.EventPublisher,
	logger *slog.Logger,
) MovieUseCase {
	return &movieUseCase{
		movies:    movies,
		genres:    genres,
		directors: directors,
		files:     files,
		notifier:  notifier{events: events, logger: logger},
	}
}

func (uc *movieUseCase) List(ctx context.Context, skip, limit int) ([]domain.Movie, error) {
	movies, err := uc.movies.GetMulti(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("usecase: list movies: %w", err)
	}
	return movies, nil
}

func (uc *movieUseCase) Get(ctx context.Context, id uint) (*domain.Movie, error) {
	movie, err := uc.movies.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: get movie: %w", err)
	}
	if movie == nil {
		return nil, domain.NotFound(msgMovieNotFound)
	}
	return movie, nil
}

func (uc *movieUseCase) Create(ctx context.Context, actorID uint, in domain.MovieCreate) (*domain.Movie, error) {
	if err := uc.checkReferences(ctx, in.GenreID, in.DirectorID); err != nil {
		return nil, err
	}

	movie, err := uc.movies.Create(ctx, in.Model())
	if err != nil {
		return nil, fmt.Errorf("usecase: create movie: %w", err)
	}

	uc.publish(ctx, entityMovie, payloads.ActionCreated, movie.ID, actorID)
	return movie, nil
}

func (uc *movieUseCase) Update(ctx context.Context, actorID, id uint, in domain.MovieUpdate) (*domain.Movie, error) {
	existing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var genreID, directorID uint
	if in.GenreID.HasValue() && in.GenreID.Value != existing.GenreID {
		genreID = in.GenreID.Value
	}
	if in.DirectorID.HasValue() && in.DirectorID.Value != existing.DirectorID {
		directorID = in.DirectorID.Value
	}
	if err := uc.checkReferences(ctx, genreID, directorID); err != nil {
		return nil, err
	}

	return uc.update(ctx, actorID, existing, in)
}

func (uc *movieUseCase) update(ctx context.Context, actorID uint, existing *domain.Movie, patch domain.Patch) (*domain.Movie, error) {
	movie, err := uc.movies.Update(ctx, existing, patch)
	if err != nil {
		return nil, fmt.Errorf("usecase: update movie: %w", err)
	}
	if movie == nil {
		return nil, domain.NotFound(msgMovieNotFound)
	}

	uc.publish(ctx, entityMovie, payloads.ActionUpdated, existing.ID, actorID)
	return movie, nil
}

// Delete удаляет фильм и ссылающееся на него избранное.
func (uc *movieUseCase) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := uc.movies.Remove(ctx, id); err != nil {
		return fmt.Errorf("usecase: delete movie: %w", err)
	}

	uc.publish(ctx, entityMovie, payloads.ActionDeleted, id, actorID)
	return nil
}

func (uc *movieUseCase) PostersEnabled() bool {
	return uc.files != nil
}

func (uc *movieUseCase) UploadPoster(ctx context.Context, actorID, id uint, file io.Reader, contentType string) (*domain.Movie, error) {
	if uc.files == nil {
		return nil, ErrPostersDisabled
	}

	existing, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := posterKey(id, contentType)
	url, err := uc.files.UploadFile(ctx, key, file, contentType)
	if err != nil {
		return nil, fmt.Errorf("usecase: upload poster: %w", err)
	}

	movie, err := uc.update(ctx, actorID, existing, domain.Changes{"poster_url": url})
	if err != nil {
		// строка не обновилась, файл больше никому не нужен
		if delErr := uc.files.DeleteFile(ctx, key); delErr != nil {
			uc.logger.Warn("failed to delete orphaned poster", "key", key, "error", delErr)
		}
		return nil, err
	}

	uc.logger.Info("poster uploaded", "movie_id", id, "key", key)
	return movie, nil
}

func posterKey(movieID uint, contentType string) string {
	ext := ""
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	return fmt.Sprintf("movies/%d/%s%s", movieID, uuid.NewString(), ext)
}

// checkReferences проверяет существование жанра и режиссера. Нулевой id не проверяется.
func (uc *movieUseCase) checkReferences(ctx context.Context, genreID, directorID uint) error {
	if genreID != 0 {
		genre, err := uc.genres.Get(ctx, genreID)
		if err != nil {
			return fmt.Errorf("usecase: check genre: %w", err)
		}
		if genre == nil {
			return domain.NotFound(msgGenreNotFound)
		}
	}

	if directorID != 0 {
		director, err := uc.directors.Get(ctx, directorID)
		if err != nil {
			return fmt.Errorf("usecase: check director: %w", err)
		}
		if director == nil {
			return domain.NotFound(msgDirectorNotFound)
		}
	}
	return nil
}
