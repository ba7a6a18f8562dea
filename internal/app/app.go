package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/MovieLibrary/internal/config"
	"github.com/GoArmGo/MovieLibrary/internal/core/ports"
	"github.com/GoArmGo/MovieLibrary/internal/database/client"
	"github.com/GoArmGo/MovieLibrary/internal/usecase"
)

type App struct {
	Config    *config.Config
	logger    *slog.Logger
	db        *client.Client
	handler   http.Handler
	auth      usecase.AuthUseCase
	publisher ports.EventPublisher
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	db *client.Client,
	handler http.Handler,
	auth usecase.AuthUseCase,
	publisher ports.EventPublisher,
) *App {
	return &App{
		Config:    cfg,
		logger:    logger,
		db:        db,
		handler:   handler,
		auth:      auth,
		publisher: publisher,
	}
}

// Logger — основной логгер приложения.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run выполняет приложение в одном из режимов:
// server — миграции, первый суперпользователь и HTTP сервер до сигнала завершения;
// migrate — только миграции.
func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer func() {
		// аккуратно закрываем ресурсы
		if err := a.Shutdown(); err != nil {
			a.logger.Error("shutdown failed", "error", err)
		}
	}()

	a.logger.Info("running application", "mode", mode)

	switch mode {
	case "migrate":
		return a.db.Migrate()

	case "server":
		if err := a.db.Migrate(); err != nil {
			return err
		}
		if err := a.bootstrap(ctx); err != nil {
			return err
		}
		return runServer(ctx, a.Config, a.handler, a.logger)

	default:
		return fmt.Errorf("unknown mode %q (use 'server' or 'migrate')", mode)
	}
}

func (a *App) bootstrap(ctx context.Context) error {
	if !a.Config.BootstrapSuperuser() {
		return nil
	}
	su := a.Config.FirstSuperuser
	if err := a.auth.EnsureSuperuser(ctx, su.Username, su.Email, su.Password); err != nil {
		return fmt.Errorf("bootstrap first superuser: %w", err)
	}
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error

	// если publisher имеет метод Close — вызываем его
	if closer, ok := a.publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event publisher: %w", err))
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	a.logger.Info("resources released")
	return errors.Join(errs...)
}
