package models

import "time"

// Artist represents a tracked performer. Names are globally unique.
type Artist struct {
	Name  string
	Genre string
}

// Venue represents an event venue, identified by (name, city, country)
type Venue struct {
	Name    string
	City    string
	Country string
}

// EventRow is a single raw row produced by a scraper run. Rows sharing
// (Title, VenueName) describe the same displayed event and get merged
// by the aggregator.
type EventRow struct {
	Title     string
	VenueName string
	City      string
	Country   string
	Category  string
	Artist    string
	Date      *time.Time
	Link      string
	PriceMin  *float64
	PriceMax  *float64
	Source    string
}

// EventGroup is the deduplicated, display-ready aggregation of one or
// more raw event rows sharing a title and venue.
type EventGroup struct {
	Title     string
	VenueName string
	Dates     []time.Time
	Links     []string
	PriceMin  *float64
	PriceMax  *float64
}

// User represents a bot user, identified by Telegram account id
type User struct {
	ID        int64
	Name      string
	Language  string
	Regions   []string
	Onboarded bool
}

// Favorite is a user's tracked artist, optionally scoped to a region
// list distinct from the user's general tracked regions.
type Favorite struct {
	UserID  int64
	Artist  string
	Regions []string
	Paused  bool
}
