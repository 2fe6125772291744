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

const kvitkiDefaultURL = "https://www.kvitki.by/rus/bileti/koncerti/"

// Kvitki scrapes the kvitki.by concert listing
type Kvitki struct {
	client  *http.Client
	listURL string
}

func NewKvitki() *Kvitki {
	return &Kvitki{
		client:  &http.Client{Timeout: 30 * time.Second},
		listURL: kvitkiDefaultURL,
	}
}

func (k *Kvitki) Name() string {
	return "kvitki.by"
}

func (k *Kvitki) Fetch(ctx context.Context) ([]models.EventRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.listURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	return parseKvitki(doc), nil
}

func parseKvitki(doc *goquery.Document) []models.EventRow {
	var rows []models.EventRow

	doc.Find("div.event-card").Each(func(_ int, card *goquery.Selection) {
		row := models.EventRow{
			Title:     strings.TrimSpace(card.Find(".event-card__title").Text()),
			Artist:    strings.TrimSpace(card.Find(".event-card__artist").Text()),
			VenueName: strings.TrimSpace(card.Find(".event-card__venue").Text()),
			City:      strings.TrimSpace(card.Find(".event-card__city").Text()),
			Country:   "Belarus",
			Category:  "concert",
			Date:      parseRussianDate(card.Find(".event-card__date").Text()),
		}
		row.PriceMin, row.PriceMax = parsePriceRange(card.Find(".event-card__price").Text())

		if href, ok := card.Find("a.event-card__link").Attr("href"); ok {
			row.Link = absoluteURL("https://www.kvitki.by", href)
		}

		rows = append(rows, row)
	})

	return rows
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return base + "/" + strings.TrimPrefix(href, "/")
}
