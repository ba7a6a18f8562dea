package domain

import (
	"time"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName       *string   `json:"full_name"`
	HashedPassword string    `json:"-" gorm:"not null"`
	IsActive       bool      `json:"is_active"`
	IsSuperuser    bool      `json:"is_superuser"`
	FavoriteGenre  *string   `json:"favorite_genre"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u User) PrimaryKey() uint {
	return u.ID
}

// UserCreate — тело запроса на регистрацию и на создание пользователя администратором.
type UserCreate struct {
	Username      string  `json:"username" validate:"required,min=3,max=50"`
	Email         string  `json:"email" validate:"required,email,max=255"`
	FullName      *string `json:"full_name" validate:"omitempty,max=255"`
	Password      string  `json:"password" validate:"required,min=6,max=72"`
	FavoriteGenre *string `json:"favorite_genre" validate:"omitempty,max=255"`
	IsSuperuser   bool    `json:"is_superuser"`
}

// UserUpdate — частичное обновление своего профиля.
type UserUpdate struct {
	Username      Optional[string] `json:"username" validate:"omitempty,min=3,max=50"`
	Email         Optional[string] `json:"email" validate:"omitempty,email,max=255"`
	FullName      Optional[string] `json:"full_name" validate:"omitempty,max=255"`
	Password      Optional[string] `json:"password" validate:"omitempty,min=6,max=72"`
	FavoriteGenre Optional[string] `json:"favorite_genre" validate:"omitempty,max=255"`
}

func (u UserUpdate) Check() error {
	return firstError(
		requireValue(u.Username, "username"),
		requireValue(u.Email, "email"),
		requireValue(u.Password, "password"),
	)
}

// Changes не содержит пароль: его хэширует сервис.
func (u UserUpdate) Changes() map[string]any {
	changes := Changes{}
	u.Username.apply(changes, "username")
	u.Email.apply(changes, "email")
	u.FullName.apply(changes, "full_name")
	u.FavoriteGenre.apply(changes, "favorite_genre")
	return changes
}

// AdminUserUpdate — обновление пользователя суперпользователем.
type AdminUserUpdate struct {
	UserUpdate
	IsActive    Optional[bool] `json:"is_active"`
	IsSuperuser Optional[bool] `json:"is_superuser"`
}

func (u AdminUserUpdate) Check() error {
	if err := u.UserUpdate.Check(); err != nil {
		return err
	}
	if u.IsActive.IsNull() || u.IsSuperuser.IsNull() {
		return Invalid("is_active and is_superuser cannot be null")
	}
	return nil
}

func (u AdminUserUpdate) Changes() map[string]any {
	changes := Changes(u.UserUpdate.Changes())
	u.IsActive.apply(changes, "is_active")
	u.IsSuperuser.apply(changes, "is_superuser")
	return changes
}
