package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/GoArmGo/MovieLibrary/internal/usecase"
)

// maxPosterSize — ограничение размера загружаемого постера.
const maxPosterSize = 10 << 20

type MovieHandler struct {
	*CatalogHandler[domain.Movie, domain.MovieCreate, domain.MovieUpdate]
	movies usecase.MovieUseCase
}

func NewMovieHandler(movies usecase.MovieUseCase, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{
		CatalogHandler: NewCatalogHandler[domain.Movie, domain.MovieCreate, domain.MovieUpdate](movies, "Movie", logger),
		movies:         movies,
	}
}

// UploadPoster принимает multipart поле file и сохраняет его как постер фильма.
func (h *MovieHandler) UploadPoster(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPosterSize)
	if err := r.ParseMultipartForm(maxPosterSize); err != nil {
		respondWithDomainError(w, r, domain.Invalid("invalid multipart body: "+err.Error()), h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithDomainError(w, r, domain.Invalid("file is required"), h.logger)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h.logger.Info("uploading poster", "movie_id", id, "size", header.Size, "content_type", contentType)

	movie, err := h.movies.UploadPoster(r.Context(), actorID(r), id, file, contentType)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, movie, h.logger)
}
