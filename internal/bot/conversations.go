package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
)

// handleConversation processes multi-step conversations
func (b *Bot) handleConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Command {
	case "onboarding":
		b.handleOnboardingConversation(ctx, message, state)
	case "search":
		b.handleSearchConversation(ctx, message, state)
	case "regions":
		b.handleRegionsConversation(ctx, message, state)
	}
}

// parseRegions splits a comma-separated region list
func parseRegions(text string) []string {
	var regions []string
	for _, part := range strings.Split(text, ",") {
		if region := strings.TrimSpace(part); region != "" {
			regions = append(regions, region)
		}
	}
	return regions
}

// handleOnboardingConversation handles the first-contact setup
func (b *Bot) handleOnboardingConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Step {
	case 1:
		// Waiting for the language callback; nudge on stray text
		msg := tgbotapi.NewMessage(message.Chat.ID, "Please pick a language using the buttons above.")
		b.sendMessage(msg)

	case 2: // Waiting for the region list
		regions := parseRegions(message.Text)
		if len(regions) == 0 {
			msg := tgbotapi.NewMessage(message.Chat.ID, "Please send at least one region.\n\nExample: Minsk, Belarus")
			b.sendMessage(msg)
			return
		}

		userID := message.From.ID
		if err := b.catalog.SetUserRegions(ctx, userID, regions); err != nil {
			msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Error saving regions: %v", err))
			b.sendMessage(msg)
			return
		}
		if err := b.catalog.SetOnboarded(ctx, userID); err != nil {
			msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Error: %v", err))
			b.sendMessage(msg)
			return
		}

		text := fmt.Sprintf("All set! Tracking: %s\n\n%s", strings.Join(regions, ", "), helpText)
		msg := tgbotapi.NewMessage(message.Chat.ID, text)
		b.sendMessage(msg)

		state.Step = -1 // Mark conversation as complete
	}
}

// handleSearchConversation handles the artist search multi-step process
func (b *Bot) handleSearchConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Step {
	case 1: // Waiting for the search query
		query := strings.TrimSpace(message.Text)
		if query == "" {
			msg := tgbotapi.NewMessage(message.Chat.ID, "Please send an artist name:")
			b.sendMessage(msg)
			return
		}

		names, err := b.searcher.Search(ctx, query, b.pageSize)
		if err != nil {
			msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Error: %v", err))
			b.sendMessage(msg)
			state.Step = -1
			return
		}

		if len(names) == 0 {
			msg := tgbotapi.NewMessage(message.Chat.ID, "Nothing found. Try a different spelling or another artist.")
			b.sendMessage(msg)
			state.Step = -1
			return
		}

		var rows [][]tgbotapi.InlineKeyboardButton
		for _, name := range names {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(name, "artist:"+name),
			))
		}

		msg := tgbotapi.NewMessage(message.Chat.ID, "🎤 Pick an artist:")
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
		b.sendMessage(msg)

		state.Step = 2

	case 3: // Waiting for a region list scoping the new favorite
		if _, ok := state.Data["awaiting_fav_regions"]; !ok {
			return
		}

		regions := parseRegions(message.Text)
		if len(regions) == 0 {
			msg := tgbotapi.NewMessage(message.Chat.ID, "Please send at least one region.\n\nExample: Minsk")
			b.sendMessage(msg)
			return
		}

		artist, _ := state.Data["artist"].(string)
		userID := message.From.ID
		err := b.catalog.AddFavorite(ctx, models.Favorite{
			UserID:  userID,
			Artist:  artist,
			Regions: regions,
		})
		if err != nil {
			msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Error: %v", err))
			b.sendMessage(msg)
		} else {
			text := fmt.Sprintf("Subscribed to %s in: %s 🔔", artist, strings.Join(regions, ", "))
			msg := tgbotapi.NewMessage(message.Chat.ID, text)
			b.sendMessage(msg)
		}

		state.Step = -1
	}
}

// handleRegionsConversation handles replacing the tracked-region list
func (b *Bot) handleRegionsConversation(ctx context.Context, message *tgbotapi.Message, state *ConversationState) {
	switch state.Step {
	case 1: // Waiting for the new region list
		regions := parseRegions(message.Text)
		if len(regions) == 0 {
			msg := tgbotapi.NewMessage(message.Chat.ID, "Please send at least one region.\n\nExample: Minsk, Belarus")
			b.sendMessage(msg)
			return
		}

		userID := message.From.ID
		if err := b.catalog.SetUserRegions(ctx, userID, regions); err != nil {
			msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Error saving regions: %v", err))
			b.sendMessage(msg)
			return
		}

		msg := tgbotapi.NewMessage(message.Chat.ID, "Updated. Tracking: "+strings.Join(regions, ", "))
		b.sendMessage(msg)

		state.Step = -1
	}
}
