package stubs

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage"
)

type favoriteKey struct {
	userID int64
	artist string
}

// MockDB is an in-memory implementation of both the EventStore and
// Catalog interfaces for testing
type MockDB struct {
	mu        sync.RWMutex
	events    map[string][]models.EventRow // keyed by source
	users     map[int64]models.User
	artists   map[string]models.Artist
	favorites map[favoriteKey]models.Favorite
}

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{
		events:    make(map[string][]models.EventRow),
		users:     make(map[int64]models.User),
		artists:   make(map[string]models.Artist),
		favorites: make(map[favoriteKey]models.Favorite),
	}
}

// Initialize seeds a few artists so search flows have candidates
func (m *MockDB) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range []models.Artist{
		{Name: "Imagine Dragons", Genre: "rock"},
		{Name: "Coldplay", Genre: "rock"},
		{Name: "Molchat Doma", Genre: "post-punk"},
	} {
		m.artists[a.Name] = a
	}
	return nil
}

// ReplaceSourceEvents drops all rows of source and stores rows
func (m *MockDB) ReplaceSourceEvents(ctx context.Context, source string, rows []models.EventRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]models.EventRow, len(rows))
	copy(stored, rows)
	for i := range stored {
		stored[i].Source = source
	}
	m.events[source] = stored
	return nil
}

// ListEventRows returns raw rows for a (city, category) pair
func (m *MockDB) ListEventRows(ctx context.Context, city, category string) ([]models.EventRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []models.EventRow
	for _, rows := range m.events {
		for _, row := range rows {
			if row.City == city && row.Category == category {
				result = append(result, row)
			}
		}
	}
	return result, nil
}

// ListEventKeys returns the diff keys of all rows of a source
func (m *MockDB) ListEventKeys(ctx context.Context, source string) (map[storage.EventKey]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make(map[storage.EventKey]bool)
	for _, row := range m.events[source] {
		keys[storage.KeyOf(row)] = true
	}
	return keys, nil
}

// ListCities returns distinct cities with events, optionally scoped to a country
func (m *MockDB) ListCities(ctx context.Context, country string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var cities []string
	for _, rows := range m.events {
		for _, row := range rows {
			if country != "" && row.Country != country {
				continue
			}
			if !seen[row.City] {
				seen[row.City] = true
				cities = append(cities, row.City)
			}
		}
	}
	sort.Strings(cities)
	return cities, nil
}

// EnsureUser creates the user row if it does not exist yet
func (m *MockDB) EnsureUser(ctx context.Context, id int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		m.users[id] = models.User{ID: id, Name: name, Language: "en"}
	}
	return nil
}

// GetUser returns a user by id
func (m *MockDB) GetUser(ctx context.Context, id int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}
	return user, nil
}

// SetUserRegions replaces the user's tracked-region list
func (m *MockDB) SetUserRegions(ctx context.Context, id int64, regions []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := m.users[id]
	user.ID = id
	user.Regions = append([]string(nil), regions...)
	m.users[id] = user
	return nil
}

// SetUserLanguage updates the user's display language
func (m *MockDB) SetUserLanguage(ctx context.Context, id int64, language string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := m.users[id]
	user.ID = id
	user.Language = language
	m.users[id] = user
	return nil
}

// SetOnboarded marks the user's onboarding as complete
func (m *MockDB) SetOnboarded(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user := m.users[id]
	user.ID = id
	user.Onboarded = true
	m.users[id] = user
	return nil
}

// ListUserRegions returns the tracked-region list per user id
func (m *MockDB) ListUserRegions(ctx context.Context, ids []int64) (map[int64][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	regions := make(map[int64][]string)
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			regions[id] = user.Regions
		}
	}
	return regions, nil
}

// UpsertArtist creates the artist or updates its genre
func (m *MockDB) UpsertArtist(ctx context.Context, name, genre string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.artists[name] = models.Artist{Name: name, Genre: genre}
	return nil
}

// ListArtistNames returns every known artist name, sorted
func (m *MockDB) ListArtistNames(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.artists))
	for name := range m.artists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// SearchArtistNames returns artist names containing query, case-insensitive
func (m *MockDB) SearchArtistNames(ctx context.Context, query string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q := strings.ToLower(query)
	var names []string
	for name := range m.artists {
		if strings.Contains(strings.ToLower(name), q) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// AddFavorite creates or refreshes a (user, artist) subscription
func (m *MockDB) AddFavorite(ctx context.Context, fav models.Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.favorites[favoriteKey{userID: fav.UserID, artist: fav.Artist}] = fav
	return nil
}

// RemoveFavorite deletes a (user, artist) subscription
func (m *MockDB) RemoveFavorite(ctx context.Context, userID int64, artist string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.favorites, favoriteKey{userID: userID, artist: artist})
	return nil
}

// SetFavoritePaused pauses or resumes a subscription
func (m *MockDB) SetFavoritePaused(ctx context.Context, userID int64, artist string, paused bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := favoriteKey{userID: userID, artist: artist}
	if fav, ok := m.favorites[key]; ok {
		fav.Paused = paused
		m.favorites[key] = fav
	}
	return nil
}

// ListUserFavorites returns all favorites of a user, sorted by artist
func (m *MockDB) ListUserFavorites(ctx context.Context, userID int64) ([]models.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var favorites []models.Favorite
	for _, fav := range m.favorites {
		if fav.UserID == userID {
			favorites = append(favorites, fav)
		}
	}
	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].Artist < favorites[j].Artist
	})
	return favorites, nil
}

// ListFavoritesByArtist returns all favorites tracking an artist name
func (m *MockDB) ListFavoritesByArtist(ctx context.Context, artist string) ([]models.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var favorites []models.Favorite
	for _, fav := range m.favorites {
		if fav.Artist == artist {
			favorites = append(favorites, fav)
		}
	}
	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].UserID < favorites[j].UserID
	})
	return favorites, nil
}

// Close is a no-op for the mock
func (m *MockDB) Close() error {
	return nil
}
