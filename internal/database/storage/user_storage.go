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

// UserStorage реализует ports.UserStorage.
type UserStorage struct {
	*Gateway[domain.User, *domain.User]
	db     *gorm.DB
	logger *slog.Logger
}

func NewUserStorage(db *gorm.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{
		Gateway: NewGateway[domain.User, *domain.User](db, logger, "User"),
		db:      db,
		logger:  logger,
	}
}

// GetByUsername возвращает пользователя по имени или nil, nil.
func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getBy(ctx, "username", username)
}

// GetByEmail возвращает пользователя по email или nil, nil.
func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getBy(ctx, "email", email)
}

func (s *UserStorage) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	start := time.Now()

	var user domain.User
	err := conn(ctx, s.db).Where(column+" = ?", value).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Debug("user not found", "by", column)
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to select user", "by", column, "error", err)
		return nil, fmt.Errorf("select user by %s: %w", column, err)
	}

	s.logger.Debug("user found", "user_id", user.ID, "duration_ms", time.Since(start).Milliseconds())
	return &user, nil
}

// Remove удаляет пользователя вместе с его избранным в одной транзакции.
func (s *UserStorage) Remove(ctx context.Context, id uint) (*domain.User, error) {
	var removed *domain.User
	err := conn(ctx, s.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return fmt.Errorf("delete favorites of user %d: %w", id, err)
		}
		user, err := s.remove(ctx, tx, id)
		if err != nil {
			return err
		}
		removed = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
