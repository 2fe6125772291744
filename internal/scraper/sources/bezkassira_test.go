package sources

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bezkassiraFixture = `
<html><body>
<div class="afisha">
  <div class="afisha-item">
    <a href="/event/gig-1"></a>
    <div class="afisha-item__title">Макс Корж</div>
    <div class="afisha-item__genre">Концерт</div>
    <div class="afisha-item__place">Минск-Арена, Минск</div>
    <div class="afisha-item__date">20.11.2026 20:00</div>
    <div class="afisha-item__price">60 – 250 BYN</div>
  </div>
  <div class="afisha-item">
    <a href="/event/play-7"></a>
    <div class="afisha-item__title">Вишнёвый сад</div>
    <div class="afisha-item__genre">Спектакль</div>
    <div class="afisha-item__place">Купаловский театр, Минск</div>
    <div class="afisha-item__date">03.12.2026 19:00</div>
    <div class="afisha-item__price">25 BYN</div>
  </div>
  <div class="afisha-item">
    <a href="/event/match-9"></a>
    <div class="afisha-item__title">Хоккей: Динамо</div>
    <div class="afisha-item__genre">неизвестно</div>
    <div class="afisha-item__place">Арена</div>
    <div class="afisha-item__date"></div>
    <div class="afisha-item__price"></div>
  </div>
</div>
</body></html>`

func TestParseBezkassira(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bezkassiraFixture))
	require.NoError(t, err)

	rows := parseBezkassira(doc)
	require.Len(t, rows, 3)

	concert := rows[0]
	assert.Equal(t, "Макс Корж", concert.Title)
	assert.Equal(t, "Макс Корж", concert.Artist, "afisha cards carry no separate artist field")
	assert.Equal(t, "concert", concert.Category)
	assert.Equal(t, "Минск-Арена", concert.VenueName)
	assert.Equal(t, "Минск", concert.City)
	assert.Equal(t, "https://bezkassira.by/event/gig-1", concert.Link)
	require.NotNil(t, concert.Date)
	assert.Equal(t, time.Date(2026, time.November, 20, 20, 0, 0, 0, time.UTC), *concert.Date)
	require.NotNil(t, concert.PriceMin)
	require.NotNil(t, concert.PriceMax)
	assert.Equal(t, 60.0, *concert.PriceMin)
	assert.Equal(t, 250.0, *concert.PriceMax)

	theatre := rows[1]
	assert.Equal(t, "theatre", theatre.Category)
	assert.Equal(t, "Купаловский театр", theatre.VenueName)

	// Unknown genres default to concert; venue without a comma keeps
	// the city empty
	other := rows[2]
	assert.Equal(t, "concert", other.Category)
	assert.Equal(t, "Арена", other.VenueName)
	assert.Empty(t, other.City)
	assert.Nil(t, other.Date)
}
