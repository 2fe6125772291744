package storage

import (
	"context"
	"errors"
	"time"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
)

// ErrUserNotFound is returned by Catalog.GetUser for unknown ids
var ErrUserNotFound = errors.New("user not found")

// EventKey identifies a raw event row for diffing between scraper runs.
// A nil row date maps to the zero time.
type EventKey struct {
	Title string
	Venue string
	Date  time.Time
}

// KeyOf builds the diff key for a raw event row
func KeyOf(row models.EventRow) EventKey {
	key := EventKey{Title: row.Title, Venue: row.VenueName}
	if row.Date != nil {
		key.Date = *row.Date
	}
	return key
}

// EventStore holds scraped event rows. The table is derived state: each
// scraper run replaces the rows of its source wholesale.
type EventStore interface {
	// ReplaceSourceEvents drops all rows of source and inserts rows
	ReplaceSourceEvents(ctx context.Context, source string, rows []models.EventRow) error
	// ListEventRows returns raw rows for a (city, category) pair
	ListEventRows(ctx context.Context, city, category string) ([]models.EventRow, error)
	// ListEventKeys returns the diff keys of all rows of a source
	ListEventKeys(ctx context.Context, source string) (map[EventKey]bool, error)
	// ListCities returns the distinct cities with events, optionally scoped to a country
	ListCities(ctx context.Context, country string) ([]string, error)

	Initialize(ctx context.Context) error
	Close() error
}

// Catalog holds the durable, incrementally mutated entities: users,
// artists and favorites.
type Catalog interface {
	// User operations
	EnsureUser(ctx context.Context, id int64, name string) error
	GetUser(ctx context.Context, id int64) (models.User, error)
	SetUserRegions(ctx context.Context, id int64, regions []string) error
	SetUserLanguage(ctx context.Context, id int64, language string) error
	SetOnboarded(ctx context.Context, id int64) error
	// ListUserRegions returns the general tracked-region list per user id
	ListUserRegions(ctx context.Context, ids []int64) (map[int64][]string, error)

	// Artist operations
	UpsertArtist(ctx context.Context, name, genre string) error
	ListArtistNames(ctx context.Context) ([]string, error)
	// SearchArtistNames is the cheap substring tier of the two-tier search
	SearchArtistNames(ctx context.Context, query string) ([]string, error)

	// Favorite operations
	AddFavorite(ctx context.Context, fav models.Favorite) error
	RemoveFavorite(ctx context.Context, userID int64, artist string) error
	SetFavoritePaused(ctx context.Context, userID int64, artist string, paused bool) error
	ListUserFavorites(ctx context.Context, userID int64) ([]models.Favorite, error)
	ListFavoritesByArtist(ctx context.Context, artist string) ([]models.Favorite, error)

	Initialize(ctx context.Context) error
	Close() error
}
