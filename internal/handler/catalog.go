package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// catalogService — общий контракт жанров, режиссеров и фильмов.
type catalogService[T, C, U any] interface {
	List(ctx context.Context, skip, limit int) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, actorID uint, in C) (*T, error)
	Update(ctx context.Context, actorID, id uint, in U) (*T, error)
	Delete(ctx context.Context, actorID, id uint) error
}

// CatalogHandler обслуживает однотипные маршруты сущности каталога:
// чтение открыто, запись только для суперпользователя.
type CatalogHandler[T, C, U any] struct {
	service catalogService[T, C, U]
	entity  string
	logger  *slog.Logger
}

func NewCatalogHandler[T, C, U any](service catalogService[T, C, U], entity string, logger *slog.Logger) *CatalogHandler[T, C, U] {
	return &CatalogHandler[T, C, U]{service: service, entity: entity, logger: logger}
}

func (h *CatalogHandler[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	items, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, items, h.logger)
}

func (h *CatalogHandler[T, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, item, h.logger)
}

func (h *CatalogHandler[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var in C
	if err := decodeAndValidate(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), actorID(r), in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, item, h.logger)
}

func (h *CatalogHandler[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	var in U
	if err := decodeAndValidate(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), actorID(r), id, in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, item, h.logger)
}

func (h *CatalogHandler[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), actorID(r), id); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusOK, h.entity+" deleted successfully", h.logger)
}

func actorID(r *http.Request) uint {
	if user := CurrentUser(r.Context()); user != nil {
		return user.ID
	}
	return 0
}
