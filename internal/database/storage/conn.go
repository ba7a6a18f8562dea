package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type connKey struct{}

// Acquire выделяет одно соединение из пула на время fn и возвращает его
// в пул при любом выходе: успех, ошибка или паника.
// Все хранилища внутри fn работают через это соединение.
func Acquire(ctx context.Context, db *gorm.DB, fn func(ctx context.Context) error) error {
	var fnErr error
	err := db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		scoped := tx.Session(&gorm.Session{NewDB: true, Context: ctx})
		fnErr = fn(context.WithValue(ctx, connKey{}, scoped))
		return fnErr
	})
	if err != nil && fnErr == nil {
		return fmt.Errorf("acquire database connection: %w", err)
	}
	return err
}

// conn возвращает соединение запроса, если оно есть, иначе общий пул.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if scoped, ok := ctx.Value(connKey{}).(*gorm.DB); ok {
		return scoped.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
