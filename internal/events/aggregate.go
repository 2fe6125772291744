package events

import (
	"sort"
	"time"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
)

type groupKey struct {
	title string
	venue string
}

// Aggregate merges raw event rows into display groups. Rows sharing
// (Title, VenueName) under exact, case-sensitive equality collapse into
// one group with deduplicated sorted dates, deduplicated links in
// first-seen order, and the widest price range seen across the group.
//
// Groups are ordered by their earliest date ascending; groups with no
// dates sort last. The result is independent of input row order except
// for link ordering within a group.
func Aggregate(rows []models.EventRow) []models.EventGroup {
	if len(rows) == 0 {
		return nil
	}

	type acc struct {
		group models.EventGroup
		dates map[time.Time]bool
		links map[string]bool
	}

	byKey := make(map[groupKey]*acc)
	var order []groupKey

	for _, row := range rows {
		key := groupKey{title: row.Title, venue: row.VenueName}
		a, ok := byKey[key]
		if !ok {
			a = &acc{
				group: models.EventGroup{Title: row.Title, VenueName: row.VenueName},
				dates: make(map[time.Time]bool),
				links: make(map[string]bool),
			}
			byKey[key] = a
			order = append(order, key)
		}

		if row.Date != nil && !a.dates[*row.Date] {
			a.dates[*row.Date] = true
			a.group.Dates = append(a.group.Dates, *row.Date)
		}
		if row.Link != "" && !a.links[row.Link] {
			a.links[row.Link] = true
			a.group.Links = append(a.group.Links, row.Link)
		}
		if row.PriceMin != nil && (a.group.PriceMin == nil || *row.PriceMin < *a.group.PriceMin) {
			v := *row.PriceMin
			a.group.PriceMin = &v
		}
		if row.PriceMax != nil && (a.group.PriceMax == nil || *row.PriceMax > *a.group.PriceMax) {
			v := *row.PriceMax
			a.group.PriceMax = &v
		}
	}

	groups := make([]models.EventGroup, 0, len(order))
	for _, key := range order {
		a := byKey[key]
		sort.Slice(a.group.Dates, func(i, j int) bool {
			return a.group.Dates[i].Before(a.group.Dates[j])
		})
		groups = append(groups, a.group)
	}

	// Earliest date first, dateless groups last. Stable so that groups
	// sharing a first date keep first-seen order.
	sort.SliceStable(groups, func(i, j int) bool {
		gi, gj := groups[i], groups[j]
		if len(gi.Dates) == 0 {
			return false
		}
		if len(gj.Dates) == 0 {
			return true
		}
		return gi.Dates[0].Before(gj.Dates[0])
	})

	return groups
}
