package sources

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kvitkiFixture = `
<html><body>
<div class="event-list">
  <div class="event-card">
    <a class="event-card__link" href="/rus/concert/12345"></a>
    <div class="event-card__title">Molchat Doma. Live</div>
    <div class="event-card__artist">Molchat Doma</div>
    <div class="event-card__venue">Дворец Спорта</div>
    <div class="event-card__city">Минск</div>
    <div class="event-card__date">14 сентября 2026, 19:00</div>
    <div class="event-card__price">от 45 BYN</div>
  </div>
  <div class="event-card">
    <a class="event-card__link" href="https://www.kvitki.by/rus/concert/67890"></a>
    <div class="event-card__title">Симфонический оркестр</div>
    <div class="event-card__venue">Филармония</div>
    <div class="event-card__city">Минск</div>
    <div class="event-card__date">скоро в продаже</div>
    <div class="event-card__price"></div>
  </div>
</div>
</body></html>`

func TestParseKvitki(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(kvitkiFixture))
	require.NoError(t, err)

	rows := parseKvitki(doc)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Molchat Doma. Live", first.Title)
	assert.Equal(t, "Molchat Doma", first.Artist)
	assert.Equal(t, "Дворец Спорта", first.VenueName)
	assert.Equal(t, "Минск", first.City)
	assert.Equal(t, "Belarus", first.Country)
	assert.Equal(t, "concert", first.Category)
	assert.Equal(t, "https://www.kvitki.by/rus/concert/12345", first.Link)
	require.NotNil(t, first.Date)
	assert.Equal(t, time.Date(2026, time.September, 14, 19, 0, 0, 0, time.UTC), *first.Date)
	require.NotNil(t, first.PriceMin)
	assert.Equal(t, 45.0, *first.PriceMin)
	assert.Nil(t, first.PriceMax)

	// Unannounced dates and prices stay nil instead of failing the card
	second := rows[1]
	assert.Equal(t, "Симфонический оркестр", second.Title)
	assert.Equal(t, "https://www.kvitki.by/rus/concert/67890", second.Link)
	assert.Nil(t, second.Date)
	assert.Nil(t, second.PriceMin)
	assert.Nil(t, second.PriceMax)
}

func TestParseKvitkiEmptyPage(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)

	assert.Empty(t, parseKvitki(doc))
}
