package sources

import (
	"strconv"
	"strings"
	"time"
)

// Russian genitive month names as they appear on the ticket sites
var russianMonths = map[string]time.Month{
	"января":   time.January,
	"февраля":  time.February,
	"марта":    time.March,
	"апреля":   time.April,
	"мая":      time.May,
	"июня":     time.June,
	"июля":     time.July,
	"августа":  time.August,
	"сентября": time.September,
	"октября":  time.October,
	"ноября":   time.November,
	"декабря":  time.December,
}

// parseRussianDate reads dates like "14 сентября 2026" or
// "14 сентября 2026, 19:00". Returns nil when the text does not parse.
func parseRussianDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	datePart := text
	timePart := ""
	if idx := strings.Index(text, ","); idx >= 0 {
		datePart = strings.TrimSpace(text[:idx])
		timePart = strings.TrimSpace(text[idx+1:])
	}

	fields := strings.Fields(datePart)
	if len(fields) != 3 {
		return nil
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil
	}
	month, ok := russianMonths[strings.ToLower(fields[1])]
	if !ok {
		return nil
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil
	}

	hour, minute := 0, 0
	if timePart != "" {
		if clock, err := time.Parse("15:04", timePart); err == nil {
			hour, minute = clock.Hour(), clock.Minute()
		}
	}

	date := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	return &date
}

// parseNumericDate reads dates like "14.09.2026" or "14.09.2026 19:00"
func parseNumericDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	for _, layout := range []string{"02.01.2006 15:04", "02.01.2006"} {
		if date, err := time.Parse(layout, text); err == nil {
			return &date
		}
	}
	return nil
}

// parsePriceRange reads price texts like "45 BYN", "от 45 BYN",
// "45 – 120 BYN". Missing or free listings yield two nils.
func parsePriceRange(text string) (*float64, *float64) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil, nil
	}

	fromOnly := strings.HasPrefix(text, "от ")

	var prices []float64
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return r != '.' && r != ',' && (r < '0' || r > '9')
	}) {
		field = strings.ReplaceAll(field, ",", ".")
		if value, err := strconv.ParseFloat(strings.Trim(field, "."), 64); err == nil {
			prices = append(prices, value)
		}
	}

	switch {
	case len(prices) == 0:
		return nil, nil
	case fromOnly:
		return &prices[0], nil
	case len(prices) == 1:
		return &prices[0], &prices[0]
	default:
		min, max := prices[0], prices[0]
		for _, p := range prices[1:] {
			if p < min {
				min = p
			}
			if p > max {
				max = p
			}
		}
		return &min, &max
	}
}
