package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			msg := tgbotapi.NewMessage(message.Chat.ID, "An error occurred while processing your request. Please try again.")
			b.sendMessage(msg)
		}
	}()

	userID := message.From.ID
	ctx := context.Background()

	// Check if user is in a conversation
	if state, ok := b.getState(userID); ok {
		if state.Step == -1 {
			b.clearState(userID)
		} else if message.IsCommand() {
			// Any command interrupts an ongoing conversation
			b.clearState(userID)
		} else {
			b.handleConversation(ctx, message, state)
			if state.Step == -1 {
				b.clearState(userID)
			}
			return
		}
	}

	if !message.IsCommand() {
		return
	}

	switch message.Command() {
	case "start":
		b.handleStart(ctx, message)
	case "search":
		b.handleSearchStart(message)
	case "events":
		b.handleEventsStart(ctx, message)
	case "subscriptions":
		b.handleSubscriptions(ctx, message)
	case "regions":
		b.handleRegions(ctx, message)
	case "help":
		b.handleHelp(message)
	default:
		msg := tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
		b.sendMessage(msg)
	}
}

// handleCallbackQuery processes inline keyboard button clicks
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	userID := query.From.ID
	ctx := context.Background()

	// Answer the callback query to remove loading state
	if b.api != nil {
		callback := tgbotapi.NewCallback(query.ID, "")
		b.api.Request(callback)
	}

	data := query.Data
	switch {
	case strings.HasPrefix(data, "lang:"):
		b.handleLanguageCallback(ctx, query)
	case strings.HasPrefix(data, "artist:"):
		b.handleArtistCallback(ctx, query)
	case strings.HasPrefix(data, "fav:"):
		b.handleFavoriteCallback(ctx, query)
	case strings.HasPrefix(data, "favregion:"):
		b.handleFavoriteRegionCallback(query)
	case strings.HasPrefix(data, "evcity:"):
		b.handleEventCityCallback(ctx, query)
	case strings.HasPrefix(data, "evcat:"):
		b.handleEventCategoryCallback(ctx, query)
	case strings.HasPrefix(data, "subpause:"):
		b.handleSubscriptionPauseCallback(ctx, query)
	case strings.HasPrefix(data, "subdel:"):
		b.handleSubscriptionDeleteCallback(ctx, query)
	}

	// Clean up completed conversations
	if state, ok := b.getState(userID); ok && state.Step == -1 {
		b.clearState(userID)
	}
}
