package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/GoArmGo/MovieLibrary/internal/usecase"
)

// AuthHandler — логин и открытая регистрация.
type AuthHandler struct {
	auth   usecase.AuthUseCase
	logger *slog.Logger
}

func NewAuthHandler(auth usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// Login принимает form-urlencoded username и password и выдает токен.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithDomainError(w, r, domain.Invalid("invalid form body"), h.logger)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		h.logger.Warn("missing login fields")
		respondWithDomainError(w, r, domain.Invalid("username and password are required"), h.logger)
		return
	}

	token, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, token, h.logger)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in domain.UserCreate
	if err := decodeAndValidate(r, &in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	if err := h.auth.Register(r.Context(), in); err != nil {
		respondWithDomainError(w, r, err, h.logger)
		return
	}

	respondWithMessage(w, http.StatusCreated, "User created successfully", h.logger)
}
