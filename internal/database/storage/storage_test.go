package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/GoArmGo/MovieLibrary/internal/database/dbtest"
	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/GoArmGo/MovieLibrary/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	users     *UserStorage
	genres    *GenreStorage
	directors *DirectorStorage
	movies    *MovieStorage
	favorites *FavoriteStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c := dbtest.New(t)
	log := logger.Discard()
	return &fixture{
		db:        c.Gorm,
		users:     NewUserStorage(c.Gorm, log),
		genres:    NewGenreStorage(c.Gorm, log),
		directors: NewDirectorStorage(c.Gorm, log),
		movies:    NewMovieStorage(c.Gorm, log),
		favorites: NewFavoriteStorage(c.Gorm, log),
	}
}

func strPtr(s string) *string { return &s }

func (f *fixture) seedMovie(t *testing.T, title string) *domain.Movie {
	t.Helper()
	ctx := context.Background()

	genre, err := f.genres.GetByName(ctx, "Drama")
	require.NoError(t, err)
	if genre == nil {
		genre, err = f.genres.Create(ctx, &domain.Genre{Name: "Drama"})
		require.NoError(t, err)
	}
	director, err := f.directors.Create(ctx, &domain.Director{FirstName: "Akira", LastName: "Kurosawa"})
	require.NoError(t, err)

	rating := 7.5
	movie, err := f.movies.Create(ctx, &domain.Movie{
		Title:       title,
		Description: strPtr("about " + title),
		Rating:      &rating,
		GenreID:     genre.ID,
		DirectorID:  director.ID,
	})
	require.NoError(t, err)
	return movie
}

func (f *fixture) seedUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), &domain.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "digest",
		IsActive:       true,
	})
	require.NoError(t, err)
	return user
}

func TestGatewayCreateGetAndRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.genres.Create(ctx, &domain.Genre{Name: "Comedy", Description: strPtr("funny")})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := f.genres.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Comedy", got.Name)

	missing, err := f.genres.Get(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	removed, err := f.genres.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = f.genres.Remove(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Genre not found", err.Error())
}

func TestGatewayCreateTranslatesUniqueViolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.genres.Create(ctx, &domain.Genre{Name: "Horror"})
	require.NoError(t, err)

	_, err = f.genres.Create(ctx, &domain.Genre{Name: "Horror"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGatewayGetMultiPaginatesInIDOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		_, err := f.genres.Create(ctx, &domain.Genre{Name: name})
		require.NoError(t, err)
	}

	first, err := f.genres.GetMulti(ctx, 0, 2)
	require.NoError(t, err)
	second, err := f.genres.GetMulti(ctx, 2, 2)
	require.NoError(t, err)
	all, err := f.genres.GetMulti(ctx, 0, 100)
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	require.Len(t, all, 5)
	assert.Equal(t, []uint{all[0].ID, all[1].ID}, []uint{first[0].ID, first[1].ID})
	assert.Equal(t, []uint{all[2].ID, all[3].ID}, []uint{second[0].ID, second[1].ID})

	empty, err := f.genres.GetMulti(ctx, 10, 2)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMovieUpdateIsPartialAndEager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	movie := f.seedMovie(t, "Ran")
	require.NotNil(t, movie.Genre)
	require.NotNil(t, movie.Director)
	assert.Equal(t, "Drama", movie.Genre.Name)
	assert.Equal(t, "Kurosawa", movie.Director.LastName)

	updated, err := f.movies.Update(ctx, movie, domain.MovieUpdate{Rating: domain.Some(9.0)})
	require.NoError(t, err)

	assert.Equal(t, 9.0, *updated.Rating)
	assert.Equal(t, "Ran", updated.Title)
	assert.Equal(t, "about Ran", *updated.Description)
	assert.Equal(t, movie.GenreID, updated.GenreID)
	assert.Equal(t, movie.DirectorID, updated.DirectorID)
	assert.NotNil(t, updated.Genre)

	cleared, err := f.movies.Update(ctx, updated, domain.MovieUpdate{Description: domain.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
	assert.Equal(t, 9.0, *cleared.Rating)

	noop, err := f.movies.Update(ctx, cleared, domain.MovieUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "Ran", noop.Title)
}

func TestMovieCountsAndForeignKeyRestrict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	movie := f.seedMovie(t, "Ikiru")

	count, err := f.movies.CountByGenre(ctx, movie.GenreID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	count, err = f.movies.CountByDirector(ctx, movie.DirectorID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = f.genres.Remove(ctx, movie.GenreID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	still, err := f.genres.Get(ctx, movie.GenreID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestFavoritesListExpandedAndCleared(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.seedUser(t, "alice")
	other := f.seedUser(t, "bob")
	m1 := f.seedMovie(t, "Ran")
	m2 := f.seedMovie(t, "Ikiru")

	for _, fav := range []domain.Favorite{
		{UserID: user.ID, MovieID: m1.ID},
		{UserID: user.ID, MovieID: m2.ID},
		{UserID: other.ID, MovieID: m1.ID},
	} {
		_, err := f.favorites.Create(ctx, &fav)
		require.NoError(t, err)
	}

	pair, err := f.favorites.GetByUserAndMovie(ctx, user.ID, m2.ID)
	require.NoError(t, err)
	require.NotNil(t, pair)

	none, err := f.favorites.GetByUserAndMovie(ctx, other.ID, m2.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	list, err := f.favorites.ListByUser(ctx, user.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Movie)
	assert.Equal(t, "Ran", list[0].Movie.Title)
	require.NotNil(t, list[0].Movie.Genre)
	require.NotNil(t, list[0].Movie.Director)
	assert.Equal(t, "Drama", list[0].Movie.Genre.Name)

	removed, err := f.favorites.RemoveByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	removed, err = f.favorites.RemoveByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)

	left, err := f.favorites.ListByUser(ctx, other.ID, 0, 100)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestRemovingMovieOrUserDropsTheirFavorites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.seedUser(t, "alice")
	bob := f.seedUser(t, "bob")
	movie := f.seedMovie(t, "Ran")
	kept := f.seedMovie(t, "Ikiru")

	for _, fav := range []domain.Favorite{
		{UserID: alice.ID, MovieID: movie.ID},
		{UserID: bob.ID, MovieID: movie.ID},
		{UserID: bob.ID, MovieID: kept.ID},
	} {
		_, err := f.favorites.Create(ctx, &fav)
		require.NoError(t, err)
	}

	_, err := f.movies.Remove(ctx, movie.ID)
	require.NoError(t, err)

	bobs, err := f.favorites.ListByUser(ctx, bob.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, kept.ID, bobs[0].MovieID)

	_, err = f.users.Remove(ctx, bob.ID)
	require.NoError(t, err)

	bobs, err = f.favorites.ListByUser(ctx, bob.ID, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, bobs)

	_, err = f.users.Remove(ctx, bob.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserLookups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.seedUser(t, "alice")

	byName, err := f.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, alice.ID, byName.ID)
	assert.True(t, byName.IsActive)

	byEmail, err := f.users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	missing, err := f.users.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = f.users.Create(ctx, &domain.User{Username: "alice", Email: "other@example.com", HashedPassword: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAcquireReleasesConnection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sqlDB, err := f.db.DB()
	require.NoError(t, err)

	err = Acquire(ctx, f.db, func(ctx context.Context) error {
		assert.Equal(t, 1, sqlDB.Stats().InUse)
		_, err := f.genres.Create(ctx, &domain.Genre{Name: "Noir"})
		require.NoError(t, err)
		genre, err := f.genres.GetByName(ctx, "Noir")
		require.NoError(t, err)
		assert.NotNil(t, genre)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, sqlDB.Stats().InUse)

	boom := errors.New("boom")
	err = Acquire(ctx, f.db, func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, sqlDB.Stats().InUse)

	assert.Panics(t, func() {
		_ = Acquire(ctx, f.db, func(ctx context.Context) error { panic("fault") })
	})
	assert.Equal(t, 0, sqlDB.Stats().InUse)
}
