package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage/stubs"
)

type fakeSource struct {
	name string
	rows []models.EventRow
	err  error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context) ([]models.EventRow, error) {
	return f.rows, f.err
}

type recordingNotifier struct {
	rows []models.EventRow
}

func (n *recordingNotifier) NotifyNewRows(ctx context.Context, rows []models.EventRow) {
	n.rows = append(n.rows, rows...)
}

func TestRunner_NotifiesOnlyNewRows(t *testing.T) {
	ctx := context.Background()
	db := stubs.NewMockDB()
	notifier := &recordingNotifier{}

	date := time.Date(2026, time.September, 14, 19, 0, 0, 0, time.UTC)
	source := &fakeSource{
		name: "siteA",
		rows: []models.EventRow{
			{Title: "Gig", VenueName: "Hall", City: "Minsk", Date: &date},
		},
	}

	runner := NewRunner([]Source{source}, db, notifier, zap.NewNop())

	// First run: everything is new
	runner.RunOnce(ctx)
	require.Len(t, notifier.rows, 1)
	assert.Equal(t, "Gig", notifier.rows[0].Title)
	assert.Equal(t, "siteA", notifier.rows[0].Source, "runner stamps the source")

	// Second run with the same listing: nothing new
	notifier.rows = nil
	runner.RunOnce(ctx)
	assert.Empty(t, notifier.rows)

	// A row appears on the site: only it is announced
	source.rows = append(source.rows, models.EventRow{
		Title: "New Gig", VenueName: "Hall", City: "Minsk", Date: &date,
	})
	runner.RunOnce(ctx)
	require.Len(t, notifier.rows, 1)
	assert.Equal(t, "New Gig", notifier.rows[0].Title)

	rows, err := db.ListEventRows(ctx, "Minsk", "")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "store holds the full current listing")
}

func TestRunner_SkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	db := stubs.NewMockDB()
	notifier := &recordingNotifier{}

	source := &fakeSource{
		name: "siteA",
		rows: []models.EventRow{
			{Title: "", VenueName: "Hall", City: "Minsk"},
			{Title: "Gig", VenueName: "", City: "Minsk"},
			{Title: "Gig", VenueName: "Hall", City: "Minsk"},
		},
	}

	NewRunner([]Source{source}, db, notifier, zap.NewNop()).RunOnce(ctx)

	require.Len(t, notifier.rows, 1)
	rows, err := db.ListEventRows(ctx, "Minsk", "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRunner_FailingSourceDoesNotAbortOthers(t *testing.T) {
	ctx := context.Background()
	db := stubs.NewMockDB()
	notifier := &recordingNotifier{}

	broken := &fakeSource{name: "siteA", err: errors.New("connection refused")}
	healthy := &fakeSource{
		name: "siteB",
		rows: []models.EventRow{{Title: "Gig", VenueName: "Hall", City: "Minsk"}},
	}

	NewRunner([]Source{broken, healthy}, db, notifier, zap.NewNop()).RunOnce(ctx)

	require.Len(t, notifier.rows, 1)
	assert.Equal(t, "siteB", notifier.rows[0].Source)
}

func TestRunner_ReplaceDropsVanishedRows(t *testing.T) {
	ctx := context.Background()
	db := stubs.NewMockDB()

	source := &fakeSource{
		name: "siteA",
		rows: []models.EventRow{
			{Title: "Gig", VenueName: "Hall", City: "Minsk"},
			{Title: "Cancelled Gig", VenueName: "Hall", City: "Minsk"},
		},
	}
	runner := NewRunner([]Source{source}, db, nil, zap.NewNop())

	runner.RunOnce(ctx)

	source.rows = source.rows[:1]
	runner.RunOnce(ctx)

	rows, err := db.ListEventRows(ctx, "Minsk", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gig", rows[0].Title)
}
