package domain

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var u MovieUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"rating": 9.0, "description": null}`), &u))

	assert.False(t, u.Title.Set)
	assert.True(t, u.Description.IsNull())
	assert.True(t, u.Rating.HasValue())
	assert.Equal(t, 9.0, u.Rating.Value)

	changes := u.Changes()
	assert.Equal(t, map[string]any{"rating": 9.0, "description": nil}, changes)
}

func TestMovieUpdateCheckRejectsNullRequiredColumns(t *testing.T) {
	var u MovieUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"title": null}`), &u))

	err := u.Check()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestUpdateCheckRejectsEmptyRequiredValues(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		target  interface{ Check() error }
	}{
		{"empty username", `{"username": ""}`, &UserUpdate{}},
		{"empty email", `{"email": ""}`, &UserUpdate{}},
		{"empty password", `{"password": ""}`, &AdminUserUpdate{}},
		{"empty title", `{"title": ""}`, &MovieUpdate{}},
		{"zero genre", `{"genre_id": 0}`, &MovieUpdate{}},
		{"zero director", `{"director_id": 0}`, &MovieUpdate{}},
		{"zero duration", `{"duration": 0}`, &MovieUpdate{}},
		{"empty genre name", `{"name": ""}`, &GenreUpdate{}},
		{"empty first name", `{"first_name": ""}`, &DirectorUpdate{}},
		{"null last name", `{"last_name": null}`, &DirectorUpdate{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, json.Unmarshal([]byte(tt.payload), tt.target))
			assert.ErrorIs(t, tt.target.Check(), ErrValidation)
		})
	}
}

func TestUpdateCheckAllowsZeroOnOptionalColumns(t *testing.T) {
	var u MovieUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"rating": 0, "description": ""}`), &u))
	assert.NoError(t, u.Check())

	var d DirectorUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"biography": ""}`), &d))
	assert.NoError(t, d.Check())
}

func TestAdminUserUpdateChanges(t *testing.T) {
	var u AdminUserUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"full_name": "Ann Lee", "is_active": false, "password": "newpass1"}`), &u))

	require.NoError(t, u.Check())
	assert.Equal(t, map[string]any{"full_name": "Ann Lee", "is_active": false}, u.Changes())
	assert.True(t, u.Password.HasValue())
}

func TestOptionalMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A Optional[int] `json:"a"`
		B Optional[int] `json:"b"`
	}{A: Some(3), B: Null[int]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null}`, string(out))
}

func TestDomainErrorUnwrap(t *testing.T) {
	err := NotFound("Movie not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Movie not found", err.Error())

	var de *Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, ErrNotFound, de.Kind)

	assert.ErrorIs(t, ErrSubjectNotFound, ErrUnauthenticated)
}
