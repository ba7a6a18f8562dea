package domain

import "time"

// Genre соответствует таблице genres
type Genre struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Genre) TableName() string {
	return "genres"
}

func (g Genre) PrimaryKey() uint {
	return g.ID
}

type GenreCreate struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}

func (c GenreCreate) Model() *Genre {
	return &Genre{Name: c.Name, Description: c.Description}
}

type GenreUpdate struct {
	Name        Optional[string] `json:"name" validate:"omitempty,min=1,max=100"`
	Description Optional[string] `json:"description"`
}

func (u GenreUpdate) Check() error {
	return requireValue(u.Name, "name")
}

func (u GenreUpdate) Changes() map[string]any {
	changes := Changes{}
	u.Name.apply(changes, "name")
	u.Description.apply(changes, "description")
	return changes
}
