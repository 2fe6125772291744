package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
)

const bezkassiraDefaultURL = "https://bezkassira.by/afisha/"

// Bezkassira scrapes the bezkassira.by afisha, which mixes concerts,
// theatre and sport on one page
type Bezkassira struct {
	client  *http.Client
	listURL string
}

func NewBezkassira() *Bezkassira {
	return &Bezkassira{
		client:  &http.Client{Timeout: 30 * time.Second},
		listURL: bezkassiraDefaultURL,
	}
}

func (b *Bezkassira) Name() string {
	return "bezkassira.by"
}

func (b *Bezkassira) Fetch(ctx context.Context) ([]models.EventRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.listURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse afisha: %w", err)
	}

	return parseBezkassira(doc), nil
}

// The afisha marks the genre on each card; anything unrecognized is
// listed as a concert
var bezkassiraCategories = map[string]string{
	"концерт":   "concert",
	"спектакль": "theatre",
	"театр":     "theatre",
	"спорт":     "sport",
}

func parseBezkassira(doc *goquery.Document) []models.EventRow {
	var rows []models.EventRow

	doc.Find("div.afisha-item").Each(func(_ int, item *goquery.Selection) {
		category := "concert"
		genre := strings.ToLower(strings.TrimSpace(item.Find(".afisha-item__genre").Text()))
		if mapped, ok := bezkassiraCategories[genre]; ok {
			category = mapped
		}

		// Venue and city come as "Дворец Спорта, Минск"
		venue := strings.TrimSpace(item.Find(".afisha-item__place").Text())
		city := ""
		if idx := strings.LastIndex(venue, ","); idx >= 0 {
			city = strings.TrimSpace(venue[idx+1:])
			venue = strings.TrimSpace(venue[:idx])
		}

		title := strings.TrimSpace(item.Find(".afisha-item__title").Text())
		row := models.EventRow{
			Title:     title,
			Artist:    title,
			VenueName: venue,
			City:      city,
			Country:   "Belarus",
			Category:  category,
			Date:      parseNumericDate(item.Find(".afisha-item__date").Text()),
		}
		row.PriceMin, row.PriceMax = parsePriceRange(item.Find(".afisha-item__price").Text())

		if href, ok := item.Find("a").First().Attr("href"); ok {
			row.Link = absoluteURL("https://bezkassira.by", href)
		}

		rows = append(rows, row)
	})

	return rows
}
