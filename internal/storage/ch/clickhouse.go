package ch

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage"
)

// ClickHouseDB stores scraped event rows
type ClickHouseDB struct {
	conn clickhouse.Conn
}

// NewClickHouseDB creates a new ClickHouse connection
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	addr := fmt.Sprintf("%s:%d", host, port)

	options := &clickhouse.Options{
		Addr:     []string{addr},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}
	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Initialize is a no-op - tables are managed via migrations
func (db *ClickHouseDB) Initialize(ctx context.Context) error {
	// Tables are managed via migrations (see migrations/ directory)
	return nil
}

// ReplaceSourceEvents drops all rows of the given source and bulk-inserts
// the fresh run. The event table is derived state, so losing rows between
// the delete and the insert only hides events until the next run.
func (db *ClickHouseDB) ReplaceSourceEvents(ctx context.Context, source string, rows []models.EventRow) error {
	err := db.conn.Exec(ctx, `ALTER TABLE events DELETE WHERE source = ? SETTINGS mutations_sync = 1`, source)
	if err != nil {
		return fmt.Errorf("failed to drop events of source %s: %w", source, err)
	}

	if len(rows) == 0 {
		return nil
	}

	batch, err := db.conn.PrepareBatch(ctx, `INSERT INTO events
		(title, venue_name, city, country, category, artist, date, link, price_min, price_max, source)`)
	if err != nil {
		return fmt.Errorf("failed to prepare event batch: %w", err)
	}
	for _, row := range rows {
		err := batch.Append(
			row.Title, row.VenueName, row.City, row.Country, row.Category,
			row.Artist, row.Date, row.Link, row.PriceMin, row.PriceMax, source,
		)
		if err != nil {
			return fmt.Errorf("failed to append event row: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to insert events: %w", err)
	}
	return nil
}

// ListEventRows returns raw event rows for a (city, category) pair
func (db *ClickHouseDB) ListEventRows(ctx context.Context, city, category string) ([]models.EventRow, error) {
	rows, err := db.conn.Query(ctx, `SELECT title, venue_name, city, country, category, artist, date, link, price_min, price_max, source
		FROM events WHERE city = ? AND category = ?`, city, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list event rows: %w", err)
	}
	defer rows.Close()

	var result []models.EventRow
	for rows.Next() {
		var row models.EventRow
		if err := rows.Scan(&row.Title, &row.VenueName, &row.City, &row.Country, &row.Category,
			&row.Artist, &row.Date, &row.Link, &row.PriceMin, &row.PriceMax, &row.Source); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		result = append(result, row)
	}
	return result, nil
}

// ListEventKeys returns the diff keys of all rows of a source
func (db *ClickHouseDB) ListEventKeys(ctx context.Context, source string) (map[storage.EventKey]bool, error) {
	rows, err := db.conn.Query(ctx, `SELECT title, venue_name, date FROM events WHERE source = ?`, source)
	if err != nil {
		return nil, fmt.Errorf("failed to list event keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[storage.EventKey]bool)
	for rows.Next() {
		var row models.EventRow
		if err := rows.Scan(&row.Title, &row.VenueName, &row.Date); err != nil {
			return nil, fmt.Errorf("failed to scan event key: %w", err)
		}
		keys[storage.KeyOf(row)] = true
	}
	return keys, nil
}

// ListCities returns distinct cities with events, optionally scoped to a country
func (db *ClickHouseDB) ListCities(ctx context.Context, country string) ([]string, error) {
	query := `SELECT DISTINCT city FROM events ORDER BY city`
	args := []interface{}{}
	if country != "" {
		query = `SELECT DISTINCT city FROM events WHERE country = ? ORDER BY city`
		args = append(args, country)
	}

	rows, err := db.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}
	return cities, nil
}

// Close closes the database connection
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
