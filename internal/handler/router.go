package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"gorm.io/gorm"

	"github.com/GoArmGo/MovieLibrary/internal/config"
	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/GoArmGo/MovieLibrary/internal/metrics"
	"github.com/GoArmGo/MovieLibrary/internal/usecase"
)

// Pinger проверяет доступность базы для /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps — все, что нужно роутеру.
type Deps struct {
	Config  *config.Config
	Logger  *slog.Logger
	DB      *gorm.DB
	Pinger  Pinger
	Metrics *metrics.Metrics

	Auth      usecase.AuthUseCase
	Gate      usecase.AccessGate
	Users     usecase.UserUseCase
	Genres    usecase.GenreUseCase
	Directors usecase.DirectorUseCase
	Movies    usecase.MovieUseCase
	Favorites usecase.FavoriteUseCase
}

// NewRouter собирает chi роутер со всеми маршрутами API.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	log := d.Logger

	authn := NewAuthenticator(d.Gate, log)
	authH := NewAuthHandler(d.Auth, log)
	userH := NewUserHandler(d.Users, log)
	genreH := NewCatalogHandler[domain.Genre, domain.GenreCreate, domain.GenreUpdate](d.Genres, "Genre", log)
	directorH := NewCatalogHandler[domain.Director, domain.DirectorCreate, domain.DirectorUpdate](d.Directors, "Director", log)
	movieH := NewMovieHandler(d.Movies, log)
	favoriteH := NewFavoriteHandler(d.Favorites, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respondWithMessage(w, http.StatusOK, "Welcome to "+cfg.ProjectName+" API", log)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.Pinger.Ping(ctx); err != nil {
			log.Error("health check failed", "error", err)
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, log)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, log)
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route(cfg.APIV1Str, func(api chi.Router) {
		api.Use(DBScope(d.DB, log))

		api.Route("/auth", func(r chi.Router) {
			r.With(httprate.LimitByIP(cfg.LoginRateLimit, time.Minute)).Post("/login", authH.Login)
			r.Post("/register", authH.Register)
		})

		api.Route("/users", func(r chi.Router) {
			r.Use(authn.Authenticate)

			r.Group(func(r chi.Router) {
				r.Use(authn.RequireActive)
				r.Get("/me", userH.Me)
				r.Put("/me", userH.UpdateMe)
			})

			r.Group(func(r chi.Router) {
				r.Use(authn.RequireSuperuser)
				r.Get("/", userH.List)
				r.Post("/", userH.Create)
				r.Get("/{id}", userH.Get)
				r.Put("/{id}", userH.Update)
				r.Delete("/{id}", userH.Delete)
			})
		})

		api.Route("/genres", func(r chi.Router) {
			r.Get("/", genreH.List)
			r.Get("/{id}", genreH.Get)
			r.Group(func(r chi.Router) {
				r.Use(authn.Authenticate, authn.RequireSuperuser)
				r.Post("/", genreH.Create)
				r.Put("/{id}", genreH.Update)
				r.Delete("/{id}", genreH.Delete)
			})
		})

		api.Route("/directors", func(r chi.Router) {
			r.Get("/", directorH.List)
			r.Get("/{id}", directorH.Get)
			r.Group(func(r chi.Router) {
				r.Use(authn.Authenticate, authn.RequireSuperuser)
				r.Post("/", directorH.Create)
				r.Put("/{id}", directorH.Update)
				r.Delete("/{id}", directorH.Delete)
			})
		})

		api.Route("/movies", func(r chi.Router) {
			r.Get("/", movieH.List)
			r.Get("/{id}", movieH.Get)
			r.Group(func(r chi.Router) {
				r.Use(authn.Authenticate, authn.RequireSuperuser)
				r.Post("/", movieH.Create)
				r.Put("/{id}", movieH.Update)
				r.Delete("/{id}", movieH.Delete)
				if d.Movies.PostersEnabled() {
					r.Put("/{id}/poster", movieH.UploadPoster)
				}
			})
		})

		api.Route("/favorites", func(r chi.Router) {
			r.Use(authn.Authenticate, authn.RequireActive)
			r.Post("/", favoriteH.Add)
			r.Get("/", favoriteH.List)
			r.Delete("/", favoriteH.Clear)
			r.Delete("/{id}", favoriteH.Remove)
			r.Delete("/movie/{movie_id}", favoriteH.RemoveByMovie)
		})
	})

	return r
}
