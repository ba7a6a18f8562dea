package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/GoArmGo/MovieLibrary/internal/usecase"
)

// FavoriteHandler — избранное текущего пользователя.
type FavoriteHandler struct {
	favorites usecase.FavoriteUseCase
	logger    *slog.Logger
}

func NewFavoriteHandler(favorites usecase.FavoriteUseCase, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var in domain.FavoriteCreate
	if err := decodeAndValidate(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	favorite, err := h.favorites.Add(r.Context(), CurrentUser(r.Context()), in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, favorite, h.logger)
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	favorites, err := h.favorites.List(r.Context(), CurrentUser(r.Context()), skip, limit)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, favorites, h.logger)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	if err := h.favorites.Remove(r.Context(), CurrentUser(r.Context()), id); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusOK, "Movie removed from favorites", h.logger)
}

func (h *FavoriteHandler) RemoveByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "movie_id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	if err := h.favorites.RemoveByMovie(r.Context(), CurrentUser(r.Context()), movieID); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusOK, "Movie removed from favorites", h.logger)
}

// Clear всегда отвечает одинаково, даже если избранное уже пустое.
func (h *FavoriteHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.favorites.Clear(r.Context(), CurrentUser(r.Context())); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusOK, "All movies removed from favorites", h.logger)
}
