package validation

import (
	"context"
	"testing"

	"github.com/GoArmGo/MovieLibrary/internal/domain"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructCreatePayloads(t *testing.T) {
	ctx := context.Background()
	rating := 11.0

	tests := []struct {
		name    string
		payload interface{}
		wantErr string
	}{
		{"valid genre", &domain.GenreCreate{Name: "Drama"}, ""},
		{"genre without name", &domain.GenreCreate{}, "name is required"},
		{"valid user", &domain.UserCreate{Username: "alice", Email: "alice@example.com", Password: "secret1"}, ""},
		{"bad email", &domain.UserCreate{Username: "alice", Email: "nope", Password: "secret1"}, "email must be a valid email address"},
		{"short password", &domain.UserCreate{Username: "alice", Email: "a@b.co", Password: "123"}, "password must be at least 6"},
		{"movie rating out of range", &domain.MovieCreate{Title: "X", GenreID: 1, DirectorID: 1, Rating: &rating}, "rating must be at most 10"},
		{"movie without references", &domain.MovieCreate{Title: "X"}, "genre_id is required"},
		{"favorite without movie", &domain.FavoriteCreate{}, "movie_id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(ctx, tt.payload)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateStructOptionalFields(t *testing.T) {
	ctx := context.Background()

	var ok domain.MovieUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"rating": 9.0}`), &ok))
	assert.NoError(t, ValidateStruct(ctx, &ok))

	var tooHigh domain.MovieUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"rating": 42}`), &tooHigh))
	err := ValidateStruct(ctx, &tooHigh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating")

	var clearsDescription domain.MovieUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"description": null}`), &clearsDescription))
	assert.NoError(t, ValidateStruct(ctx, &clearsDescription))

	var nullTitle domain.MovieUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"title": null}`), &nullTitle))
	err = ValidateStruct(ctx, &nullTitle)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var badEmail domain.AdminUserUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"email": "broken"}`), &badEmail))
	err = ValidateStruct(ctx, &badEmail)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
