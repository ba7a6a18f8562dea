package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/GoArmGo/MovieLibrary/internal/database/storage"
	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/GoArmGo/MovieLibrary/internal/usecase"
)

const msgNotAuthenticated = "Not authenticated"

type userKey struct{}

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}

			logger.Info("http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", ww.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// DBScope выдает запросу одно соединение из пула и возвращает его после ответа.
func DBScope(db *gorm.DB, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			served := false
			err := storage.Acquire(r.Context(), db, func(ctx context.Context) error {
				served = true
				next.ServeHTTP(w, r.WithContext(ctx))
				return nil
			})
			if err != nil && !served {
				logger.Error("failed to acquire database connection", "path", r.URL.Path, "error", err)
				respondWithError(w, http.StatusServiceUnavailable, "Database unavailable", logger)
			}
		})
	}
}

// Authenticator — middleware авторизации поверх usecase.AccessGate.
type Authenticator struct {
	gate   usecase.AccessGate
	logger *slog.Logger
}

func NewAuthenticator(gate usecase.AccessGate, logger *slog.Logger) *Authenticator {
	return &Authenticator{gate: gate, logger: logger}
}

// Authenticate читает bearer-токен и кладет пользователя в контекст запроса.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respondWithDomainError(w, r, domain.Unauthenticated(msgNotAuthenticated), a.logger)
			return
		}

		user, err := a.gate.Resolve(r.Context(), token)
		if err != nil {
			respondWithDomainError(w, r, err, a.logger)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
	})
}

// RequireActive пропускает только активных пользователей. Ставится после Authenticate.
func (a *Authenticator) RequireActive(next http.Handler) http.Handler {
	return a.require(a.gate.RequireActive, next)
}

// RequireSuperuser пропускает только суперпользователей. Ставится после Authenticate.
func (a *Authenticator) RequireSuperuser(next http.Handler) http.Handler {
	return a.require(a.gate.RequireSuperuser, next)
}

func (a *Authenticator) require(check func(*domain.User) error, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())
		if user == nil {
			respondWithDomainError(w, r, domain.Unauthenticated(msgNotAuthenticated), a.logger)
			return
		}
		if err := check(user); err != nil {
			respondWithDomainError(w, r, err, a.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser возвращает пользователя, положенного Authenticate, или nil.
func CurrentUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey{}).(*domain.User)
	return user
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
