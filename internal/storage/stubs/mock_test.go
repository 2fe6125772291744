package stubs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage"
)

func TestMockDB_EventReplaceCycle(t *testing.T) {
	ctx := context.Background()
	db := NewMockDB()

	date := time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC)
	err := db.ReplaceSourceEvents(ctx, "siteA", []models.EventRow{
		{Title: "Concert A", VenueName: "Hall1", City: "Minsk", Country: "Belarus", Category: "concert", Artist: "X", Date: &date},
	})
	require.NoError(t, err)

	rows, err := db.ListEventRows(ctx, "Minsk", "concert")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "siteA", rows[0].Source)

	keys, err := db.ListEventKeys(ctx, "siteA")
	require.NoError(t, err)
	assert.True(t, keys[storage.EventKey{Title: "Concert A", Venue: "Hall1", Date: date}])

	// Replace wipes the previous run
	err = db.ReplaceSourceEvents(ctx, "siteA", nil)
	require.NoError(t, err)
	rows, err = db.ListEventRows(ctx, "Minsk", "concert")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMockDB_ListCities(t *testing.T) {
	ctx := context.Background()
	db := NewMockDB()

	err := db.ReplaceSourceEvents(ctx, "siteA", []models.EventRow{
		{Title: "A", VenueName: "H", City: "Minsk", Country: "Belarus", Category: "concert"},
		{Title: "B", VenueName: "H", City: "Moscow", Country: "Russia", Category: "concert"},
		{Title: "C", VenueName: "H", City: "Minsk", Country: "Belarus", Category: "theatre"},
	})
	require.NoError(t, err)

	cities, err := db.ListCities(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Minsk", "Moscow"}, cities)

	cities, err = db.ListCities(ctx, "Belarus")
	require.NoError(t, err)
	assert.Equal(t, []string{"Minsk"}, cities)
}

func TestMockDB_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	db := NewMockDB()

	_, err := db.GetUser(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	require.NoError(t, db.EnsureUser(ctx, 42, "Darina"))
	require.NoError(t, db.EnsureUser(ctx, 42, "Other Name"), "second ensure must not overwrite")

	user, err := db.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Darina", user.Name)
	assert.False(t, user.Onboarded)

	require.NoError(t, db.SetUserRegions(ctx, 42, []string{"Minsk", "Belarus"}))
	require.NoError(t, db.SetUserLanguage(ctx, 42, "ru"))
	require.NoError(t, db.SetOnboarded(ctx, 42))

	user, err = db.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, []string{"Minsk", "Belarus"}, user.Regions)
	assert.Equal(t, "ru", user.Language)
	assert.True(t, user.Onboarded)

	regions, err := db.ListUserRegions(ctx, []int64{42, 99})
	require.NoError(t, err)
	assert.Equal(t, map[int64][]string{42: {"Minsk", "Belarus"}}, regions)
}

func TestMockDB_ArtistSearch(t *testing.T) {
	ctx := context.Background()
	db := NewMockDB()
	require.NoError(t, db.Initialize(ctx))

	names, err := db.ListArtistNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "Imagine Dragons")

	names, err = db.SearchArtistNames(ctx, "imagine")
	require.NoError(t, err)
	assert.Equal(t, []string{"Imagine Dragons"}, names)

	names, err = db.SearchArtistNames(ctx, "nothing here")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMockDB_Favorites(t *testing.T) {
	ctx := context.Background()
	db := NewMockDB()

	require.NoError(t, db.AddFavorite(ctx, models.Favorite{UserID: 1, Artist: "X", Regions: []string{"Minsk"}}))
	require.NoError(t, db.AddFavorite(ctx, models.Favorite{UserID: 2, Artist: "X"}))
	require.NoError(t, db.AddFavorite(ctx, models.Favorite{UserID: 1, Artist: "Y"}))

	favs, err := db.ListFavoritesByArtist(ctx, "X")
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, int64(1), favs[0].UserID)
	assert.Equal(t, int64(2), favs[1].UserID)

	favs, err = db.ListUserFavorites(ctx, 1)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "X", favs[0].Artist)
	assert.Equal(t, "Y", favs[1].Artist)

	require.NoError(t, db.SetFavoritePaused(ctx, 1, "X", true))
	favs, err = db.ListUserFavorites(ctx, 1)
	require.NoError(t, err)
	assert.True(t, favs[0].Paused)

	require.NoError(t, db.RemoveFavorite(ctx, 1, "X"))
	favs, err = db.ListUserFavorites(ctx, 1)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Y", favs[0].Artist)
}
