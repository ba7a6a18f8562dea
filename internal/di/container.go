package di

import (
	"context"
	"fmt"

	"github.com/GoArmGo/MovieLibrary/internal/adapter/storage/minio"
	"github.com/GoArmGo/MovieLibrary/internal/app"
	"github.com/GoArmGo/MovieLibrary/internal/auth"
	"github.com/GoArmGo/MovieLibrary/internal/config"
	"github.com/GoArmGo/MovieLibrary/internal/core/ports"
	"github.com/GoArmGo/MovieLibrary/internal/database/client"
	"github.com/GoArmGo/MovieLibrary/internal/database/storage"
	"github.com/GoArmGo/MovieLibrary/internal/handler"
	"github.com/GoArmGo/MovieLibrary/internal/logger"
	"github.com/GoArmGo/MovieLibrary/internal/messaging"
	"github.com/GoArmGo/MovieLibrary/internal/metrics"
	"github.com/GoArmGo/MovieLibrary/internal/rabbitmq"
	"github.com/GoArmGo/MovieLibrary/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp(ctx context.Context) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	if cfg.UsesDefaultSecret() {
		slogger.Warn("SECRET_KEY is not set, tokens are signed with the insecure default key")
	}

	// 2. Подключение к базе
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.Gorm, slogger)
	genreStorage := storage.NewGenreStorage(dbClient.Gorm, slogger)
	directorStorage := storage.NewDirectorStorage(dbClient.Gorm, slogger)
	movieStorage := storage.NewMovieStorage(dbClient.Gorm, slogger)
	favoriteStorage := storage.NewFavoriteStorage(dbClient.Gorm, slogger)

	// 4. Пароли и токены
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens, err := auth.NewTokenManager(cfg.SecretKey, cfg.Algorithm)
	if err != nil {
		_ = dbClient.Close()
		return nil, fmt.Errorf("token manager: %w", err)
	}

	// 5. Внешние сервисы: RabbitMQ и S3/MinIO, оба необязательные
	var publisher ports.EventPublisher = messaging.NopPublisher{}
	if cfg.EventsEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			_ = dbClient.Close()
			return nil, err
		}
		publisher = rabbitMQClient
	} else {
		slogger.Info("RABBITMQ_URL is not set, catalog events are disabled")
	}

	var fileStorage ports.FileStorage
	if cfg.PosterStorageEnabled() {
		minioClient, err := minio.NewMinioClient(ctx, cfg, slogger)
		if err != nil {
			closePublisher(publisher)
			_ = dbClient.Close()
			return nil, err
		}
		fileStorage = minioClient
	} else {
		slogger.Info("MINIO_ENDPOINT is not set, poster upload is disabled")
	}

	// 6. Инициализация бизнес-логики (usecases)
	authUseCase, err := usecase.NewAuthUseCase(userStorage, hasher, tokens, cfg.AccessTokenTTL(), slogger)
	if err != nil {
		closePublisher(publisher)
		_ = dbClient.Close()
		return nil, err
	}

	router := handler.NewRouter(handler.Deps{
		Config:    cfg,
		Logger:    slogger,
		DB:        dbClient.Gorm,
		Pinger:    dbClient,
		Metrics:   metrics.New(),
		Auth:      authUseCase,
		Gate:      usecase.NewAccessGate(userStorage, tokens, slogger),
		Users:     usecase.NewUserUseCase(userStorage, hasher, slogger),
		Genres:    usecase.NewGenreUseCase(genreStorage, movieStorage, publisher, slogger),
		Directors: usecase.NewDirectorUseCase(directorStorage, movieStorage, publisher, slogger),
		Movies:    usecase.NewMovieUseCase(movieStorage, genreStorage, directorStorage, fileStorage, publisher, slogger),
		Favorites: usecase.NewFavoriteUseCase(favoriteStorage, movieStorage, publisher, slogger),
	})

	// 7. Сборка итогового приложения
	application := app.NewApp(cfg, slogger, dbClient, router, authUseCase, publisher)

	slogger.Info("all dependencies initialized")
	return application, nil
}

func closePublisher(p ports.EventPublisher) {
	if closer, ok := p.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
