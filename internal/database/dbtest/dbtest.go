// Package dbtest поднимает временную SQLite базу с примененными миграциями для тестов.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/GoArmGo/MovieLibrary/internal/config"
	"github.com/GoArmGo/MovieLibrary/internal/database/client"
	"github.com/GoArmGo/MovieLibrary/internal/logger"
)

// New создает клиент к новой базе в t.TempDir() и закрывает его по окончании теста.
func New(t testing.TB) *client.Client {
	t.Helper()

	cfg := &config.Config{
		DatabaseURL:    "sqlite://" + filepath.Join(t.TempDir(), "test.db"),
		DBMaxOpenConns: 4,
		DBMaxIdleConns: 2,
	}

	c, err := client.NewClient(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := c.Migrate(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return c
}
