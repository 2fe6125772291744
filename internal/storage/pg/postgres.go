package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage"
)

// PostgresDB stores the durable catalog: users, artists, favorites
type PostgresDB struct {
	db *gorm.DB
}

type userRecord struct {
	ID        int64 `gorm:"primaryKey"`
	Name      string
	Language  string
	Regions   pq.StringArray `gorm:"type:text[]"`
	Onboarded bool
}

func (userRecord) TableName() string { return "users" }

type artistRecord struct {
	Name  string `gorm:"primaryKey"`
	Genre string
}

func (artistRecord) TableName() string { return "artists" }

type favoriteRecord struct {
	UserID  int64          `gorm:"primaryKey"`
	Artist  string         `gorm:"primaryKey"`
	Regions pq.StringArray `gorm:"type:text[]"`
	Paused  bool
}

func (favoriteRecord) TableName() string { return "favorites" }

// NewPostgresDB opens a connection to Postgres
func NewPostgresDB(dsn string) (*PostgresDB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return &PostgresDB{db: db}, nil
}

// Initialize creates the catalog schema
func (p *PostgresDB) Initialize(ctx context.Context) error {
	err := p.db.WithContext(ctx).AutoMigrate(&userRecord{}, &artistRecord{}, &favoriteRecord{})
	if err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}

// EnsureUser creates the user row if it does not exist yet
func (p *PostgresDB) EnsureUser(ctx context.Context, id int64, name string) error {
	record := userRecord{ID: id, Name: name, Language: "en"}
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to ensure user %d: %w", id, err)
	}
	return nil
}

// GetUser returns a user by Telegram account id
func (p *PostgresDB) GetUser(ctx context.Context, id int64) (models.User, error) {
	var record userRecord
	err := p.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, storage.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return models.User{
		ID:        record.ID,
		Name:      record.Name,
		Language:  record.Language,
		Regions:   record.Regions,
		Onboarded: record.Onboarded,
	}, nil
}

// SetUserRegions replaces the user's tracked-region list
func (p *PostgresDB) SetUserRegions(ctx context.Context, id int64, regions []string) error {
	err := p.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).
		Update("regions", pq.StringArray(regions)).Error
	if err != nil {
		return fmt.Errorf("failed to set regions for user %d: %w", id, err)
	}
	return nil
}

// SetUserLanguage updates the user's display language
func (p *PostgresDB) SetUserLanguage(ctx context.Context, id int64, language string) error {
	err := p.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).
		Update("language", language).Error
	if err != nil {
		return fmt.Errorf("failed to set language for user %d: %w", id, err)
	}
	return nil
}

// SetOnboarded marks the user's onboarding as complete
func (p *PostgresDB) SetOnboarded(ctx context.Context, id int64) error {
	err := p.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).
		Update("onboarded", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark user %d onboarded: %w", id, err)
	}
	return nil
}

// ListUserRegions returns the general tracked-region list per user id
func (p *PostgresDB) ListUserRegions(ctx context.Context, ids []int64) (map[int64][]string, error) {
	if len(ids) == 0 {
		return map[int64][]string{}, nil
	}

	var records []userRecord
	err := p.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user regions: %w", err)
	}

	regions := make(map[int64][]string, len(records))
	for _, r := range records {
		regions[r.ID] = r.Regions
	}
	return regions, nil
}

// UpsertArtist creates the artist or updates its genre
func (p *PostgresDB) UpsertArtist(ctx context.Context, name, genre string) error {
	record := artistRecord{Name: name, Genre: genre}
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"genre"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert artist %s: %w", name, err)
	}
	return nil
}

// ListArtistNames returns every known artist name
func (p *PostgresDB) ListArtistNames(ctx context.Context) ([]string, error) {
	var names []string
	err := p.db.WithContext(ctx).Model(&artistRecord{}).
		Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list artist names: %w", err)
	}
	return names, nil
}

// SearchArtistNames returns artist names containing query, case-insensitive
func (p *PostgresDB) SearchArtistNames(ctx context.Context, query string) ([]string, error) {
	var names []string
	err := p.db.WithContext(ctx).Model(&artistRecord{}).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search artist names: %w", err)
	}
	return names, nil
}

// AddFavorite creates or refreshes a (user, artist) subscription
func (p *PostgresDB) AddFavorite(ctx context.Context, fav models.Favorite) error {
	record := favoriteRecord{
		UserID:  fav.UserID,
		Artist:  fav.Artist,
		Regions: fav.Regions,
		Paused:  fav.Paused,
	}
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "artist"}},
			DoUpdates: clause.AssignmentColumns([]string{"regions", "paused"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite deletes a (user, artist) subscription
func (p *PostgresDB) RemoveFavorite(ctx context.Context, userID int64, artist string) error {
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND artist = ?", userID, artist).
		Delete(&favoriteRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// SetFavoritePaused pauses or resumes a subscription
func (p *PostgresDB) SetFavoritePaused(ctx context.Context, userID int64, artist string, paused bool) error {
	err := p.db.WithContext(ctx).Model(&favoriteRecord{}).
		Where("user_id = ? AND artist = ?", userID, artist).
		Update("paused", paused).Error
	if err != nil {
		return fmt.Errorf("failed to update favorite: %w", err)
	}
	return nil
}

// ListUserFavorites returns all favorites of a user
func (p *PostgresDB) ListUserFavorites(ctx context.Context, userID int64) ([]models.Favorite, error) {
	var records []favoriteRecord
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("artist").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites of user %d: %w", userID, err)
	}
	return toFavorites(records), nil
}

// ListFavoritesByArtist returns all favorites tracking an artist name.
// The match is exact: this feeds the notification path.
func (p *PostgresDB) ListFavoritesByArtist(ctx context.Context, artist string) ([]models.Favorite, error) {
	var records []favoriteRecord
	err := p.db.WithContext(ctx).
		Where("artist = ?", artist).
		Order("user_id").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for artist %s: %w", artist, err)
	}
	return toFavorites(records), nil
}

func toFavorites(records []favoriteRecord) []models.Favorite {
	favorites := make([]models.Favorite, 0, len(records))
	for _, r := range records {
		favorites = append(favorites, models.Favorite{
			UserID:  r.UserID,
			Artist:  r.Artist,
			Regions: r.Regions,
			Paused:  r.Paused,
		})
	}
	return favorites
}

// Close closes the underlying connection pool
func (p *PostgresDB) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
