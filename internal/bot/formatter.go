package bot

import (
	"fmt"
	"strings"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
)

var categoryTitles = map[string]string{
	"concert": "Concerts",
	"theatre": "Theatre",
	"sport":   "Sports",
}

// FormatEventGroups renders an aggregated event listing. At most pageSize
// groups are shown; a trailing line notes how many were cut.
func FormatEventGroups(city, category string, groups []models.EventGroup, pageSize int) string {
	title := categoryTitles[category]
	if title == "" {
		title = category
	}

	if len(groups) == 0 {
		return fmt.Sprintf("Nothing found in %s (%s) yet. Check back later!", city, title)
	}

	total := len(groups)
	if total > pageSize {
		groups = groups[:pageSize]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 %s — %s\n\n", city, title)

	for i, group := range groups {
		fmt.Fprintf(&sb, "%d. %s — %s\n", i+1, group.Title, group.VenueName)

		if len(group.Dates) > 0 {
			dates := make([]string, 0, len(group.Dates))
			for _, d := range group.Dates {
				dates = append(dates, d.Format("02.01.2006"))
			}
			fmt.Fprintf(&sb, "   📆 %s\n", strings.Join(dates, ", "))
		}

		fmt.Fprintf(&sb, "   💰 %s\n", formatPriceRange(group.PriceMin, group.PriceMax))

		for _, link := range group.Links {
			fmt.Fprintf(&sb, "   🎟 %s\n", link)
		}
	}

	if total > pageSize {
		fmt.Fprintf(&sb, "\n…and %d more", total-pageSize)
	}

	return sb.String()
}

// FormatNewEvent renders a notification about a freshly scraped event row
func FormatNewEvent(row models.EventRow) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🆕 %s — new event!\n\n%s\n📍 %s, %s\n", row.Artist, row.Title, row.VenueName, row.City)

	if row.Date != nil {
		fmt.Fprintf(&sb, "📆 %s\n", row.Date.Format("02.01.2006 15:04"))
	}

	fmt.Fprintf(&sb, "💰 %s\n", formatPriceRange(row.PriceMin, row.PriceMax))

	if row.Link != "" {
		fmt.Fprintf(&sb, "🎟 %s\n", row.Link)
	}
	return sb.String()
}

// formatPriceRange renders a price range, "—" when no prices are known
func formatPriceRange(min, max *float64) string {
	switch {
	case min == nil && max == nil:
		return "—"
	case min != nil && max != nil:
		if *min == *max {
			return formatPrice(*min)
		}
		return fmt.Sprintf("%s – %s", formatPrice(*min), formatPrice(*max))
	case min != nil:
		return fmt.Sprintf("from %s", formatPrice(*min))
	default:
		return fmt.Sprintf("up to %s", formatPrice(*max))
	}
}

func formatPrice(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
