package client

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/MovieLibrary/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations
var migrationsFS embed.FS

// Dialect — поддерживаемые СУБД.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Client держит единый пул соединений: sqlx поверх него для служебных задач
// (ping, миграции) и gorm для хранилищ.
type Client struct {
	DB      *sqlx.DB
	Gorm    *gorm.DB
	Dialect Dialect

	migrateURL string
	logger     *slog.Logger
}

// target — разобранный DATABASE_URL.
type target struct {
	dialect    Dialect
	driver     string
	dsn        string
	migrateURL string
}

func parseDatabaseURL(raw string) (target, error) {
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return target{dialect: Postgres, driver: "postgres", dsn: raw, migrateURL: raw}, nil

	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if path == "" {
			return target{}, errors.New("sqlite database path is empty")
		}
		if i := strings.Index(path, "?"); i >= 0 {
			path = path[:i]
		}
		return target{
			dialect:    SQLite,
			driver:     "sqlite3",
			dsn:        fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path),
			migrateURL: "sqlite3://" + path,
		}, nil

	default:
		return target{}, fmt.Errorf("unsupported database url scheme in %q", redact(raw))
	}
}

// NewClient открывает пул соединений, проверяет его и поднимает gorm поверх того же пула.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	t, err := parseDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(t.driver, t.dsn)
	if err != nil {
		logger.Error("failed to open database connection", "dialect", t.dialect, "error", err)
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	var dialector gorm.Dialector
	switch t.dialect {
	case Postgres:
		dialector = postgres.New(postgres.Config{Conn: db.DB})
	default:
		dialector = sqlite.New(sqlite.Config{DriverName: t.driver, DSN: t.dsn, Conn: db.DB})
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		_ = db.Close()
		logger.Error("failed to initialize gorm", "error", err)
		return nil, fmt.Errorf("initialize gorm: %w", err)
	}

	logger.Info("database connection established successfully",
		"dialect", t.dialect,
		"dsn", redact(cfg.DatabaseURL),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &Client{
		DB:         db,
		Gorm:       gormDB,
		Dialect:    t.dialect,
		migrateURL: t.migrateURL,
		logger:     logger,
	}, nil
}

// Migrate применяет все миграции для текущего диалекта.
// Мигратор открывает собственное соединение и закрывает его по завершении.
func (c *Client) Migrate() error {
	start := time.Now()

	src, err := iofs.New(migrationsFS, "migrations/"+string(c.Dialect))
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, c.migrateURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			c.logger.Warn("failed to close migrator", "source_error", srcErr, "database_error", dbErr)
		}
	}()

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		c.logger.Info("migrations are up to date", "dialect", c.Dialect)
	case err != nil:
		c.logger.Error("failed to apply migrations", "error", err)
		return fmt.Errorf("apply migrations: %w", err)
	default:
		c.logger.Info("migrations applied successfully",
			"dialect", c.Dialect,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return nil
}

// Ping проверяет доступность базы.
func (c *Client) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Client) Close() error {
	start := time.Now()
	err := c.DB.Close()
	if err != nil {
		c.logger.Error("failed to close database connection", "error", err)
		return err
	}
	c.logger.Info("database connection closed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// redact скрывает пароль в строке подключения перед логированием.
func redact(raw string) string {
	at := strings.LastIndex(raw, "@")
	scheme := strings.Index(raw, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return raw
	}
	creds := raw[scheme+3 : at]
	if i := strings.Index(creds, ":"); i >= 0 {
		return raw[:scheme+3] + creds[:i] + ":***" + raw[at:]
	}
	return raw
}
