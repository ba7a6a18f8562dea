package app

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GoArmGo/MovieLibrary/internal/auth"
	"github.com/GoArmGo/MovieLibrary/internal/config"
	"github.com/GoArmGo/MovieLibrary/internal/database/client"
	"github.com/GoArmGo/MovieLibrary/internal/database/storage"
	"github.com/GoArmGo/MovieLibrary/internal/logger"
	"github.com/GoArmGo/MovieLibrary/internal/messaging"
	"github.com/GoArmGo/MovieLibrary/internal/usecase"
)

func newTestApp(t *testing.T, cfg *config.Config) (*App, *client.Client) {
	t.Helper()
	cfg.DatabaseURL = "sqlite://" + filepath.Join(t.TempDir(), "app.db")
	cfg.DBMaxOpenConns = 2

	log := logger.Discard()
	db, err := client.NewClient(cfg, log)
	require.NoError(t, err)

	tokens, err := auth.NewTokenManager("app-test-secret", "HS256")
	require.NoError(t, err)
	authUC, err := usecase.NewAuthUseCase(storage.NewUserStorage(db.Gorm, log), auth.NewPasswordHasher(bcrypt.MinCost), tokens, time.Minute, log)
	require.NoError(t, err)

	return NewApp(cfg, log, db, http.NotFoundHandler(), authUC, messaging.NopPublisher{}), db
}

func TestRunMigrateMode(t *testing.T) {
	a, db := newTestApp(t, &config.Config{})

	require.NoError(t, a.Run(context.Background(), "migrate"))

	// после Run соединение закрыто
	assert.Error(t, db.Ping(context.Background()))
}

func TestRunRejectsUnknownMode(t *testing.T) {
	a, _ := newTestApp(t, &config.Config{})

	err := a.Run(context.Background(), "worker")
	assert.ErrorContains(t, err, "unknown mode")
}

func TestBootstrapCreatesFirstSuperuser(t *testing.T) {
	cfg := &config.Config{}
	cfg.FirstSuperuser.Username = "root"
	cfg.FirstSuperuser.Email = "root@example.com"
	cfg.FirstSuperuser.Password = "rootpass"
	a, db := newTestApp(t, cfg)
	defer db.Close()

	require.NoError(t, db.Migrate())
	require.NoError(t, a.bootstrap(context.Background()))

	user, err := storage.NewUserStorage(db.Gorm, logger.Discard()).GetByUsername(context.Background(), "root")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsSuperuser)
}

func TestRunServerStopsOnCancel(t *testing.T) {
	cfg := &config.Config{ServerPort: "0", APIV1Str: "/api/v1"}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, cfg, http.NotFoundHandler(), logger.Discard()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
