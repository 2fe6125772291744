package events

import (
	"go.uber.org/zap"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
)

// ResolveRecipients determines which users should be told about a newly
// observed event row. favorites must already be scoped to the row's artist
// name by exact comparison; fuzzy matching is never used on the
// notification path. userRegions carries each user's general tracked-region
// list.
//
// A favorite is in scope when its own region list matches the row's
// (city, country); a favorite with no region list of its own falls back
// to the user's general list, and a user with no regions either is
// notified unconditionally. Paused favorites are skipped.
//
// The result is deduplicated by user id: one notification per user per
// row no matter how many favorites matched. A row with no artist yields
// an empty set and a logged warning; ingestion never aborts on one
// malformed row.
func ResolveRecipients(row models.EventRow, favorites []models.Favorite, userRegions map[int64][]string, logger *zap.Logger) []int64 {
	if row.Artist == "" {
		logger.Warn("event row has no artist, skipping notification",
			zap.String("title", row.Title),
			zap.String("venue", row.VenueName),
			zap.String("source", row.Source),
		)
		return nil
	}

	seen := make(map[int64]bool)
	var recipients []int64

	for _, fav := range favorites {
		if fav.Artist != row.Artist || fav.Paused || seen[fav.UserID] {
			continue
		}

		// Favorite-level regions override the user's general list.
		regions := fav.Regions
		if len(regions) == 0 {
			regions = userRegions[fav.UserID]
		}
		if len(regions) > 0 && !RegionMatches(row.City, row.Country, regions) {
			continue
		}

		seen[fav.UserID] = true
		recipients = append(recipients, fav.UserID)
	}

	return recipients
}
