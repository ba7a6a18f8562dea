package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/GoArmGo/MovieLibrary/internal/usecase"
)

type UserHandler struct {
	users  usecase.UserUseCase
	logger *slog.Logger
}

func NewUserHandler(users usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	users, err := h.users.List(r.Context(), skip, limit)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.UserCreate
	if err := decodeAndValidate(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.users.Create(r.Context(), in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusCreated, user, h.logger)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, CurrentUser(r.Context()), h.logger)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var in domain.UserUpdate
	if err := decodeAndValidate(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.users.UpdateSelf(r.Context(), CurrentUser(r.Context()), in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	var in domain.AdminUserUpdate
	if err := decodeAndValidate(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	user, err := h.users.Update(r.Context(), id, in)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, user, h.logger)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}
	respondWithMessage(w, http.StatusOK, "User deleted successfully", h.logger)
}
