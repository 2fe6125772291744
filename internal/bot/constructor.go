package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/match"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage"
)

// NewBot creates a new Telegram bot
func NewBot(token string, events storage.EventStore, catalog storage.Catalog, pageSize int, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot created", zap.String("bot_username", api.Self.UserName))

	return &Bot{
		api:        api,
		eventStore: events,
		catalog:    catalog,
		searcher:   newArtistSearcher(catalog, logger),
		states:     make(map[int64]*ConversationState),
		logger:     logger,
		pageSize:   pageSize,
	}, nil
}

// newArtistSearcher wires the two-tier search over the artist catalog
func newArtistSearcher(catalog storage.Catalog, logger *zap.Logger) *match.Searcher {
	return match.NewSearcher(match.FuncSource{
		Substring: catalog.SearchArtistNames,
		All:       catalog.ListArtistNames,
	}, logger)
}
