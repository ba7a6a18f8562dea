package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"gorm.io/gorm"
)

// Gateway — обобщенный CRUD поверх gorm для сущности T.
// Конкретные хранилища встраивают его и добавляют свои запросы.
type Gateway[T any, PT interface {
	*T
	domain.Entity
}] struct {
	db     *gorm.DB
	logger *slog.Logger
	entity string
}

// NewGateway создает CRUD для сущности; entity используется в логах и сообщениях об ошибках.
func NewGateway[T any, PT interface {
	*T
	domain.Entity
}](db *gorm.DB, logger *slog.Logger, entity string) *Gateway[T, PT] {
	return &Gateway[T, PT]{db: db, logger: logger, entity: entity}
}

func (g *Gateway[T, PT]) conn(ctx context.Context) *gorm.DB {
	return conn(ctx, g.db)
}

// Get возвращает строку по первичному ключу или nil, nil, если ее нет.
func (g *Gateway[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	return g.first(ctx, g.conn(ctx), id)
}

func (g *Gateway[T, PT]) first(ctx context.Context, q *gorm.DB, id uint) (*T, error) {
	start := time.Now()

	var item T
	err := q.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		g.logger.Warn("entity not found", "entity", g.entity, "id", id)
		return nil, nil
	}
	if err != nil {
		g.logger.Error("failed to get entity", "entity", g.entity, "id", id, "error", err)
		return nil, fmt.Errorf("get %s %d: %w", g.entity, id, err)
	}

	g.logger.Debug("entity fetched", "entity", g.entity, "id", id, "duration_ms", time.Since(start).Milliseconds())
	return &item, nil
}

// GetMulti возвращает страницу строк в порядке первичного ключа.
// skip и limit передаются в базу как есть.
func (g *Gateway[T, PT]) GetMulti(ctx context.Context, skip, limit int) ([]T, error) {
	return g.list(ctx, g.conn(ctx), skip, limit)
}

func (g *Gateway[T, PT]) list(ctx context.Context, q *gorm.DB, skip, limit int) ([]T, error) {
	start := time.Now()

	items := make([]T, 0)
	err := q.Order("id ASC").Offset(skip).Limit(limit).Find(&items).Error
	if err != nil {
		g.logger.Error("failed to list entities", "entity", g.entity, "error", err)
		return nil, fmt.Errorf("list %s: %w", g.entity, err)
	}

	g.logger.Debug("entities listed",
		"entity", g.entity,
		"skip", skip,
		"limit", limit,
		"count", len(items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return items, nil
}

// Create вставляет строку и возвращает ее перечитанной из базы.
func (g *Gateway[T, PT]) Create(ctx context.Context, item *T) (*T, error) {
	if err := g.insert(ctx, item); err != nil {
		return nil, err
	}
	return g.Get(ctx, PT(item).PrimaryKey())
}

func (g *Gateway[T, PT]) insert(ctx context.Context, item *T) error {
	start := time.Now()

	if err := g.conn(ctx).Create(item).Error; err != nil {
		g.logger.Error("failed to create entity", "entity", g.entity, "error", err)
		return fmt.Errorf("create %s: %w", g.entity, translateError(err))
	}

	g.logger.Info("entity created",
		"entity", g.entity,
		"id", PT(item).PrimaryKey(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Update применяет только колонки из patch и возвращает обновленную строку.
func (g *Gateway[T, PT]) Update(ctx context.Context, existing *T, patch domain.Patch) (*T, error) {
	id := PT(existing).PrimaryKey()
	if err := g.apply(ctx, id, patch); err != nil {
		return nil, err
	}
	return g.Get(ctx, id)
}

func (g *Gateway[T, PT]) apply(ctx context.Context, id uint, patch domain.Patch) error {
	start := time.Now()

	changes := patch.Changes()
	if len(changes) == 0 {
		return nil
	}

	var model T
	res := g.conn(ctx).Model(&model).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		g.logger.Error("failed to update entity", "entity", g.entity, "id", id, "error", res.Error)
		return fmt.Errorf("update %s %d: %w", g.entity, id, translateError(res.Error))
	}

	g.logger.Info("entity updated",
		"entity", g.entity,
		"id", id,
		"columns", len(changes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Remove удаляет строку и возвращает ее прежнее состояние.
// Отсутствие строки — ошибка domain.ErrNotFound.
func (g *Gateway[T, PT]) Remove(ctx context.Context, id uint) (*T, error) {
	return g.remove(ctx, g.conn(ctx), id)
}

func (g *Gateway[T, PT]) remove(ctx context.Context, q *gorm.DB, id uint) (*T, error) {
	start := time.Now()

	item, err := g.first(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound(fmt.Sprintf("%s not found", g.entity))
	}

	res := q.Delete(item)
	if res.Error != nil {
		g.logger.Error("failed to delete entity", "entity", g.entity, "id", id, "error", res.Error)
		return nil, fmt.Errorf("delete %s %d: %w", g.entity, id, translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, domain.NotFound(fmt.Sprintf("%s not found", g.entity))
	}

	g.logger.Info("entity deleted", "entity", g.entity, "id", id, "duration_ms", time.Since(start).Milliseconds())
	return item, nil
}
