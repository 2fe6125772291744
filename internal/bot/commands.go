package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `Available commands:
/search - Find an artist and subscribe to their events
/events - Browse events in your regions
/subscriptions - Manage your subscriptions
/regions - Manage your tracked regions
/help - Show this message`

// handleStart greets the user and launches onboarding on first contact
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	if err := b.catalog.EnsureUser(ctx, userID, message.From.FirstName); err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Error: %v", err))
		b.sendMessage(msg)
		return
	}

	user, err := b.catalog.GetUser(ctx, userID)
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Error: %v", err))
		b.sendMessage(msg)
		return
	}

	if user.Onboarded {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Welcome back! 🎫\n\n"+helpText)
		b.sendMessage(msg)
		return
	}

	b.setState(userID, &ConversationState{
		Command: "onboarding",
		Step:    1,
		Data:    make(map[string]interface{}),
	})

	msg := tgbotapi.NewMessage(message.Chat.ID, "Welcome to the event bot! 🎫\n\nFirst, pick your language:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("English", "lang:en"),
			tgbotapi.NewInlineKeyboardButtonData("Русский", "lang:ru"),
		),
	)
	b.sendMessage(msg)
}

// handleHelp shows available commands
func (b *Bot) handleHelp(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, helpText)
	b.sendMessage(msg)
}

// handleSearchStart initiates the artist search conversation
func (b *Bot) handleSearchStart(message *tgbotapi.Message) {
	userID := message.From.ID
	b.setState(userID, &ConversationState{
		Command: "search",
		Step:    1,
		Data:    make(map[string]interface{}),
	})

	msg := tgbotapi.NewMessage(message.Chat.ID, "🔎 Who are you looking for? Send an artist name:")
	b.sendMessage(msg)
}

// handleEventsStart initiates the event browsing conversation
func (b *Bot) handleEventsStart(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	user, err := b.catalog.GetUser(ctx, userID)
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Please run /start first.")
		b.sendMessage(msg)
		return
	}

	if len(user.Regions) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "You have no tracked regions yet. Set them up with /regions")
		b.sendMessage(msg)
		return
	}

	b.setState(userID, &ConversationState{
		Command: "events",
		Step:    1,
		Data:    make(map[string]interface{}),
	})

	// One button per tracked region (2 columns)
	var rows [][]tgbotapi.InlineKeyboardButton
	var currentRow []tgbotapi.InlineKeyboardButton
	for i, region := range user.Regions {
		currentRow = append(currentRow, tgbotapi.NewInlineKeyboardButtonData(region, "evcity:"+region))
		if len(currentRow) == 2 || i == len(user.Regions)-1 {
			rows = append(rows, currentRow)
			currentRow = []tgbotapi.InlineKeyboardButton{}
		}
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, "📍 Pick a region:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.sendMessage(msg)
}

// handleSubscriptions lists the user's favorites with manage buttons
func (b *Bot) handleSubscriptions(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	favorites, err := b.catalog.ListUserFavorites(ctx, userID)
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Error: %v", err))
		b.sendMessage(msg)
		return
	}

	if len(favorites) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "No subscriptions yet. Find an artist with /search")
		b.sendMessage(msg)
		return
	}

	var text strings.Builder
	text.WriteString("Your subscriptions:\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, fav := range favorites {
		status := "🔔 active"
		toggle := "⏸ Pause"
		if fav.Paused {
			status = "⏸ paused"
			toggle = "▶️ Resume"
		}
		scope := "everywhere"
		if len(fav.Regions) > 0 {
			scope = strings.Join(fav.Regions, ", ")
		}
		text.WriteString(fmt.Sprintf("%d. %s — %s (%s)\n", i+1, fav.Artist, status, scope))

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toggle+" "+fav.Artist, "subpause:"+fav.Artist),
			tgbotapi.NewInlineKeyboardButtonData("🗑 "+fav.Artist, "subdel:"+fav.Artist),
		))
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.sendMessage(msg)
}

// handleRegions shows the tracked regions and starts the edit conversation
func (b *Bot) handleRegions(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	user, err := b.catalog.GetUser(ctx, userID)
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Please run /start first.")
		b.sendMessage(msg)
		return
	}

	current := "none"
	if len(user.Regions) > 0 {
		current = strings.Join(user.Regions, ", ")
	}

	b.setState(userID, &ConversationState{
		Command: "regions",
		Step:    1,
		Data:    make(map[string]interface{}),
	})

	text := fmt.Sprintf("Your tracked regions: %s\n\nSend a new comma-separated list of cities or countries.\n\nExample: Minsk, Belarus", current)
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}
