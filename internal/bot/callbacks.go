package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/events"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
)

// handleLanguageCallback stores the picked language during onboarding
func (b *Bot) handleLanguageCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	language := strings.TrimPrefix(query.Data, "lang:")

	if err := b.catalog.SetUserLanguage(ctx, userID, language); err != nil {
		b.sendText(query.Message.Chat.ID, fmt.Sprintf("Error: %v", err))
		return
	}

	state, ok := b.getState(userID)
	if !ok || state.Command != "onboarding" {
		return
	}
	state.Step = 2

	b.sendText(query.Message.Chat.ID,
		"Now send the regions you want to track, comma separated (cities or countries).\n\nExample: Minsk, Belarus")
}

// handleArtistCallback offers subscribe options for the picked artist
func (b *Bot) handleArtistCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	artist := strings.TrimPrefix(query.Data, "artist:")

	state, ok := b.getState(userID)
	if !ok {
		// Stale button after the conversation ended; recreate enough state
		state = &ConversationState{Command: "search", Data: make(map[string]interface{})}
		b.setState(userID, state)
	}
	state.Data["artist"] = artist
	state.Step = 3

	msg := tgbotapi.NewMessage(query.Message.Chat.ID, fmt.Sprintf("🎤 %s", artist))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔔 Subscribe", "fav:"+artist),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📍 Subscribe in specific regions", "favregion:"+artist),
		),
	)
	b.sendMessage(msg)
}

// handleFavoriteCallback subscribes without a region restriction
func (b *Bot) handleFavoriteCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	artist := strings.TrimPrefix(query.Data, "fav:")

	err := b.catalog.AddFavorite(ctx, models.Favorite{UserID: userID, Artist: artist})
	if err != nil {
		b.sendText(query.Message.Chat.ID, fmt.Sprintf("Error: %v", err))
		return
	}

	b.sendText(query.Message.Chat.ID, fmt.Sprintf("Subscribed to %s 🔔", artist))

	if state, ok := b.getState(userID); ok {
		state.Step = -1
	}
}

// handleFavoriteRegionCallback asks for the region list scoping the favorite
func (b *Bot) handleFavoriteRegionCallback(query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	artist := strings.TrimPrefix(query.Data, "favregion:")

	state, ok := b.getState(userID)
	if !ok {
		state = &ConversationState{Command: "search", Data: make(map[string]interface{})}
		b.setState(userID, state)
	}
	state.Data["artist"] = artist
	state.Data["awaiting_fav_regions"] = true
	state.Step = 3

	b.sendText(query.Message.Chat.ID,
		fmt.Sprintf("Where should %s events reach you? Send regions, comma separated.\n\nExample: Minsk", artist))
}

// handleEventCityCallback stores the picked region and asks for a category
func (b *Bot) handleEventCityCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	city := strings.TrimPrefix(query.Data, "evcity:")

	state, ok := b.getState(userID)
	if !ok {
		state = &ConversationState{Command: "events", Data: make(map[string]interface{})}
		b.setState(userID, state)
	}
	state.Data["city"] = city
	state.Step = 2

	msg := tgbotapi.NewMessage(query.Message.Chat.ID, "🎭 Pick a category:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎵 Concerts", "evcat:concert"),
			tgbotapi.NewInlineKeyboardButtonData("🎭 Theatre", "evcat:theatre"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚽ Sports", "evcat:sport"),
		),
	)
	b.sendMessage(msg)
}

// handleEventCategoryCallback renders the aggregated event listing
func (b *Bot) handleEventCategoryCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	category := strings.TrimPrefix(query.Data, "evcat:")

	state, ok := b.getState(userID)
	if !ok {
		b.sendText(query.Message.Chat.ID, "Please start over with /events")
		return
	}
	city, _ := state.Data["city"].(string)
	if city == "" {
		b.sendText(query.Message.Chat.ID, "Please start over with /events")
		state.Step = -1
		return
	}

	rows, err := b.eventStore.ListEventRows(ctx, city, category)
	if err != nil {
		b.sendText(query.Message.Chat.ID, fmt.Sprintf("Error: %v", err))
		state.Step = -1
		return
	}

	groups := events.Aggregate(rows)
	b.sendText(query.Message.Chat.ID, FormatEventGroups(city, category, groups, b.pageSize))

	state.Step = -1
}

// handleSubscriptionPauseCallback toggles a favorite's paused flag
func (b *Bot) handleSubscriptionPauseCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	artist := strings.TrimPrefix(query.Data, "subpause:")

	favorites, err := b.catalog.ListUserFavorites(ctx, userID)
	if err != nil {
		b.sendText(query.Message.Chat.ID, fmt.Sprintf("Error: %v", err))
		return
	}

	for _, fav := range favorites {
		if fav.Artist != artist {
			continue
		}
		if err := b.catalog.SetFavoritePaused(ctx, userID, artist, !fav.Paused); err != nil {
			b.sendText(query.Message.Chat.ID, fmt.Sprintf("Error: %v", err))
			return
		}
		if fav.Paused {
			b.sendText(query.Message.Chat.ID, fmt.Sprintf("Resumed %s 🔔", artist))
		} else {
			b.sendText(query.Message.Chat.ID, fmt.Sprintf("Paused %s ⏸", artist))
		}
		return
	}

	b.sendText(query.Message.Chat.ID, "Subscription not found. Use /subscriptions")
}

// handleSubscriptionDeleteCallback removes a favorite
func (b *Bot) handleSubscriptionDeleteCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	artist := strings.TrimPrefix(query.Data, "subdel:")

	if err := b.catalog.RemoveFavorite(ctx, userID, artist); err != nil {
		b.sendText(query.Message.Chat.ID, fmt.Sprintf("Error: %v", err))
		return
	}

	b.sendText(query.Message.Chat.ID, fmt.Sprintf("Unsubscribed from %s", artist))
}
