package bot

import (
	"context"

	"go.uber.org/zap"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/events"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
)

// NotifyNewRows fans out notifications for freshly scraped event rows.
// Recipients are resolved per row from exact artist-name favorites and
// region scope; each user gets at most one message per row. A row that
// cannot be resolved is logged and skipped, never fatal.
func (b *Bot) NotifyNewRows(ctx context.Context, rows []models.EventRow) {
	for _, row := range rows {
		recipients, err := b.resolveRow(ctx, row)
		if err != nil {
			b.logger.Warn("Failed to resolve notification recipients",
				zap.String("title", row.Title),
				zap.String("artist", row.Artist),
				zap.Error(err),
			)
			continue
		}
		if len(recipients) == 0 {
			continue
		}

		text := FormatNewEvent(row)
		for _, userID := range recipients {
			b.sendText(userID, text)
		}

		b.logger.Info("Notified subscribers about new event",
			zap.String("title", row.Title),
			zap.String("artist", row.Artist),
			zap.Int("recipients", len(recipients)),
		)
	}
}

// resolveRow fetches the favorites and user regions feeding the resolver
func (b *Bot) resolveRow(ctx context.Context, row models.EventRow) ([]int64, error) {
	if row.Artist == "" {
		// The resolver logs and returns empty for artistless rows
		return events.ResolveRecipients(row, nil, nil, b.logger), nil
	}

	favorites, err := b.catalog.ListFavoritesByArtist(ctx, row.Artist)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(favorites))
	for _, fav := range favorites {
		ids = append(ids, fav.UserID)
	}
	userRegions, err := b.catalog.ListUserRegions(ctx, ids)
	if err != nil {
		return nil, err
	}

	return events.ResolveRecipients(row, favorites, userRegions, b.logger), nil
}
