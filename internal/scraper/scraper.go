package scraper

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage"
)

// Source fetches the current event listing of one ticket site
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.EventRow, error)
}

// Notifier receives rows that were not present in the previous scrape
type Notifier interface {
	NotifyNewRows(ctx context.Context, rows []models.EventRow)
}

// Runner refreshes the event store from all configured sources
type Runner struct {
	sources  []Source
	store    storage.EventStore
	notifier Notifier
	logger   *zap.Logger
}

func NewRunner(sources []Source, store storage.EventStore, notifier Notifier, logger *zap.Logger) *Runner {
	return &Runner{
		sources:  sources,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// RunOnce scrapes every source. A failing source does not abort the others.
func (r *Runner) RunOnce(ctx context.Context) {
	for _, source := range r.sources {
		if err := r.runSource(ctx, source); err != nil {
			r.logger.Error("Scrape failed",
				zap.String("source", source.Name()),
				zap.Error(err),
			)
		}
	}
}

func (r *Runner) runSource(ctx context.Context, source Source) error {
	name := source.Name()

	fetched, err := source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", name, err)
	}

	rows := r.sanitize(name, fetched)

	known, err := r.store.ListEventKeys(ctx, name)
	if err != nil {
		return fmt.Errorf("list keys for %s: %w", name, err)
	}

	var fresh []models.EventRow
	for _, row := range rows {
		if !known[storage.KeyOf(row)] {
			fresh = append(fresh, row)
		}
	}

	if err := r.store.ReplaceSourceEvents(ctx, name, rows); err != nil {
		return fmt.Errorf("replace %s events: %w", name, err)
	}

	r.logger.Info("Scrape complete",
		zap.String("source", name),
		zap.Int("rows", len(rows)),
		zap.Int("new", len(fresh)),
	)

	if r.notifier != nil && len(fresh) > 0 {
		r.notifier.NotifyNewRows(ctx, fresh)
	}
	return nil
}

// sanitize drops rows a parser produced without the fields everything
// downstream keys on, and stamps the source name
func (r *Runner) sanitize(source string, fetched []models.EventRow) []models.EventRow {
	rows := make([]models.EventRow, 0, len(fetched))
	for _, row := range fetched {
		if row.Title == "" || row.VenueName == "" {
			r.logger.Warn("Skipping malformed row",
				zap.String("source", source),
				zap.String("title", row.Title),
				zap.String("venue", row.VenueName),
			)
			continue
		}
		row.Source = source
		rows = append(rows, row)
	}
	return rows
}
