package domain

import "time"

// Director соответствует таблице directors
type Director struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	FirstName string     `json:"first_name" gorm:"not null"`
	LastName  string     `json:"last_name" gorm:"not null"`
	BirthDate *time.Time `json:"birth_date"`
	Biography *string    `json:"biography"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Director) TableName() string {
	return "directors"
}

func (d Director) PrimaryKey() uint {
	return d.ID
}

type DirectorCreate struct {
	FirstName string     `json:"first_name" validate:"required,max=100"`
	LastName  string     `json:"last_name" validate:"required,max=100"`
	BirthDate *time.Time `json:"birth_date"`
	Biography *string    `json:"biography"`
}

func (c DirectorCreate) Model() *Director {
	return &Director{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		BirthDate: c.BirthDate,
		Biography: c.Biography,
	}
}

type DirectorUpdate struct {
	FirstName Optional[string]    `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  Optional[string]    `json:"last_name" validate:"omitempty,min=1,max=100"`
	BirthDate Optional[time.Time] `json:"birth_date"`
	Biography Optional[string]    `json:"biography"`
}

func (u DirectorUpdate) Check() error {
	return firstError(
		requireValue(u.FirstName, "first_name"),
		requireValue(u.LastName, "last_name"),
	)
}

func (u DirectorUpdate) Changes() map[string]any {
	changes := Changes{}
	u.FirstName.apply(changes, "first_name")
	u.LastName.apply(changes, "last_name")
	u.BirthDate.apply(changes, "birth_date")
	u.Biography.apply(changes, "biography")
	return changes
}
