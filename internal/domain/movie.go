package domain

import "time"

// Movie соответствует таблице movies.
// Genre и Director заполняются только при жадной загрузке.
type Movie struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description *string    `json:"description"`
	ReleaseDate *time.Time `json:"release_date"`
	Duration    *int       `json:"duration"`
	Rating      *float64   `json:"rating"`
	PosterURL   *string    `json:"poster_url"`
	GenreID     uint       `json:"genre_id" gorm:"not null"`
	DirectorID  uint       `json:"director_id" gorm:"not null"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Genre    *Genre    `json:"genre,omitempty" gorm:"foreignKey:GenreID"`
	Director *Director `json:"director,omitempty" gorm:"foreignKey:DirectorID"`
}

func (Movie) TableName() string {
	return "movies"
}

func (m Movie) PrimaryKey() uint {
	return m.ID
}

type MovieCreate struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description"`
	ReleaseDate *time.Time `json:"release_date"`
	Duration    *int       `json:"duration" validate:"omitempty,gt=0"`
	Rating      *float64   `json:"rating" validate:"omitempty,gte=0,lte=10"`
	PosterURL   *string    `json:"poster_url" validate:"omitempty,url"`
	GenreID     uint       `json:"genre_id" validate:"required"`
	DirectorID  uint       `json:"director_id" validate:"required"`
}

func (c MovieCreate) Model() *Movie {
	return &Movie{
		Title:       c.Title,
		Description: c.Description,
		ReleaseDate: c.ReleaseDate,
		Duration:    c.Duration,
		Rating:      c.Rating,
		PosterURL:   c.PosterURL,
		GenreID:     c.GenreID,
		DirectorID:  c.DirectorID,
	}
}

type MovieUpdate struct {
	Title       Optional[string]    `json:"title" validate:"omitempty,min=1,max=255"`
	Description Optional[string]    `json:"description"`
	ReleaseDate Optional[time.Time] `json:"release_date"`
	Duration    Optional[int]       `json:"duration" validate:"omitempty,gt=0"`
	Rating      Optional[float64]   `json:"rating" validate:"omitempty,gte=0,lte=10"`
	PosterURL   Optional[string]    `json:"poster_url" validate:"omitempty,url"`
	GenreID     Optional[uint]      `json:"genre_id" validate:"omitempty,gt=0"`
	DirectorID  Optional[uint]      `json:"director_id" validate:"omitempty,gt=0"`
}

func (u MovieUpdate) Check() error {
	if u.Duration.IsEmpty() {
		return Invalid("duration must be greater than 0")
	}
	return firstError(
		requireValue(u.Title, "title"),
		requireValue(u.GenreID, "genre_id"),
		requireValue(u.DirectorID, "director_id"),
	)
}

func (u MovieUpdate) Changes() map[string]any {
	changes := Changes{}
	u.Title.apply(changes, "title")
	u.Description.apply(changes, "description")
	u.ReleaseDate.apply(changes, "release_date")
	u.Duration.apply(changes, "duration")
	u.Rating.apply(changes, "rating")
	u.PosterURL.apply(changes, "poster_url")
	u.GenreID.apply(changes, "genre_id")
	u.DirectorID.apply(changes, "director_id")
	return changes
}
