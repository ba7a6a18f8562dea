package domain

import "time"

// Favorite — фильм в избранном у пользователя.
// Уникальность пары (user_id, movie_id) проверяется в сервисе перед вставкой.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	MovieID   uint      `json:"movie_id" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f Favorite) PrimaryKey() uint {
	return f.ID
}

// FavoriteCreate — тело запроса. user_id принимается, но игнорируется:
// владелец всегда текущий пользователь.
type FavoriteCreate struct {
	MovieID uint  `json:"movie_id" validate:"required"`
	UserID  *uint `json:"user_id,omitempty"`
}
