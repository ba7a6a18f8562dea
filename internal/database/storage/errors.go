package storage

import (
	"errors"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// translateError сопоставляет ошибки ограничений драйверов с доменными ошибками.
// Остальные ошибки возвращаются как есть.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return domain.Conflict("Resource already exists")
		case "23503":
			return domain.Conflict("Resource is referenced by other records")
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return domain.Conflict("Resource already exists")
		case sqlite3.ErrConstraintForeignKey:
			return domain.Conflict("Resource is referenced by other records")
		}
	}
	return err
}
