package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/models"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage/stubs"
)

// Note: We can't easily mock tgbotapi.BotAPI, so tests focus on internal logic
// without actually sending messages to Telegram

func newTestBot(t *testing.T) (*Bot, *stubs.MockDB) {
	t.Helper()

	db := stubs.NewMockDB()
	require.NoError(t, db.Initialize(context.Background()))

	return &Bot{
		api:        nil, // Not needed for internal logic tests
		eventStore: db,
		catalog:    db,
		searcher:   newArtistSearcher(db, zap.NewNop()),
		states:     make(map[int64]*ConversationState),
		logger:     zap.NewNop(),
		pageSize:   20,
	}, db
}

func textMessage(userID, chatID int64, text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID, FirstName: "Test"},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
	if len(text) > 0 && text[0] == '/' {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return msg
}

func callback(userID, chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		From:    &tgbotapi.User{ID: userID},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}
}

func TestBot_OnboardingConversation(t *testing.T) {
	bot, db := newTestBot(t)
	ctx := context.Background()
	userID, chatID := int64(123), int64(456)

	// /start creates the user and opens onboarding
	bot.handleMessage(textMessage(userID, chatID, "/start"))

	state, ok := bot.getState(userID)
	require.True(t, ok, "Expected conversation state to be created")
	assert.Equal(t, "onboarding", state.Command)
	assert.Equal(t, 1, state.Step)

	user, err := db.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.False(t, user.Onboarded)

	// Language pick advances to the region step
	bot.handleCallbackQuery(callback(userID, chatID, "lang:ru"))

	state, ok = bot.getState(userID)
	require.True(t, ok)
	assert.Equal(t, 2, state.Step)

	user, err = db.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "ru", user.Language)

	// Region list completes onboarding
	bot.handleMessage(textMessage(userID, chatID, "Minsk, Belarus"))

	_, ok = bot.getState(userID)
	assert.False(t, ok, "completed conversation should be cleaned up")

	user, err = db.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.True(t, user.Onboarded)
	assert.Equal(t, []string{"Minsk", "Belarus"}, user.Regions)
}

func TestBot_SearchConversation(t *testing.T) {
	bot, db := newTestBot(t)
	ctx := context.Background()
	userID, chatID := int64(123), int64(456)

	require.NoError(t, db.EnsureUser(ctx, userID, "Test"))

	bot.handleMessage(textMessage(userID, chatID, "/search"))

	state, ok := bot.getState(userID)
	require.True(t, ok)
	assert.Equal(t, "search", state.Command)
	assert.Equal(t, 1, state.Step)

	// A partial query should still find the artist
	bot.handleMessage(textMessage(userID, chatID, "imagine drag"))

	state, ok = bot.getState(userID)
	require.True(t, ok)
	assert.Equal(t, 2, state.Step, "results shown, waiting for artist pick")

	// Pick the artist, then subscribe without a region restriction
	bot.handleCallbackQuery(callback(userID, chatID, "artist:Imagine Dragons"))

	state, ok = bot.getState(userID)
	require.True(t, ok)
	assert.Equal(t, 3, state.Step)
	assert.Equal(t, "Imagine Dragons", state.Data["artist"])

	bot.handleCallbackQuery(callback(userID, chatID, "fav:Imagine Dragons"))

	favorites, err := db.ListUserFavorites(ctx, userID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Imagine Dragons", favorites[0].Artist)
	assert.Empty(t, favorites[0].Regions)

	_, ok = bot.getState(userID)
	assert.False(t, ok, "completed conversation should be cleaned up")
}

func TestBot_SearchNothingFound(t *testing.T) {
	bot, _ := newTestBot(t)
	userID, chatID := int64(123), int64(456)

	bot.handleMessage(textMessage(userID, chatID, "/search"))
	bot.handleMessage(textMessage(userID, chatID, "qqqqzzzz"))

	_, ok := bot.getState(userID)
	assert.False(t, ok, "empty result should end the conversation")
}

func TestBot_RegionScopedSubscription(t *testing.T) {
	bot, db := newTestBot(t)
	ctx := context.Background()
	userID, chatID := int64(123), int64(456)

	bot.handleMessage(textMessage(userID, chatID, "/search"))
	bot.handleMessage(textMessage(userID, chatID, "Coldplay"))
	bot.handleCallbackQuery(callback(userID, chatID, "artist:Coldplay"))
	bot.handleCallbackQuery(callback(userID, chatID, "favregion:Coldplay"))

	state, ok := bot.getState(userID)
	require.True(t, ok)
	assert.Equal(t, 3, state.Step)
	assert.Contains(t, state.Data, "awaiting_fav_regions")

	bot.handleMessage(textMessage(userID, chatID, "Minsk"))

	favorites, err := db.ListUserFavorites(ctx, userID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, []string{"Minsk"}, favorites[0].Regions)
}

func TestBot_CommandInterruptsConversation(t *testing.T) {
	bot, _ := newTestBot(t)
	userID, chatID := int64(123), int64(456)

	bot.handleMessage(textMessage(userID, chatID, "/search"))
	_, ok := bot.getState(userID)
	require.True(t, ok)

	// A new command cancels the pending conversation
	bot.handleMessage(textMessage(userID, chatID, "/help"))
	_, ok = bot.getState(userID)
	assert.False(t, ok)
}

func TestBot_EventsConversation(t *testing.T) {
	bot, db := newTestBot(t)
	ctx := context.Background()
	userID, chatID := int64(123), int64(456)

	require.NoError(t, db.EnsureUser(ctx, userID, "Test"))
	require.NoError(t, db.SetUserRegions(ctx, userID, []string{"Minsk"}))

	require.NoError(t, db.ReplaceSourceEvents(ctx, "siteA", []models.EventRow{
		{Title: "Concert", VenueName: "Hall", City: "Minsk", Country: "Belarus", Category: "concert", Artist: "X"},
	}))

	bot.handleMessage(textMessage(userID, chatID, "/events"))

	state, ok := bot.getState(userID)
	require.True(t, ok)
	assert.Equal(t, "events", state.Command)

	bot.handleCallbackQuery(callback(userID, chatID, "evcity:Minsk"))

	state, ok = bot.getState(userID)
	require.True(t, ok)
	assert.Equal(t, 2, state.Step)
	assert.Equal(t, "Minsk", state.Data["city"])

	bot.handleCallbackQuery(callback(userID, chatID, "evcat:concert"))

	_, ok = bot.getState(userID)
	assert.False(t, ok, "listing rendered, conversation complete")
}

func TestBot_EventsRequiresRegions(t *testing.T) {
	bot, db := newTestBot(t)
	ctx := context.Background()
	userID, chatID := int64(123), int64(456)

	require.NoError(t, db.EnsureUser(ctx, userID, "Test"))

	bot.handleMessage(textMessage(userID, chatID, "/events"))

	_, ok := bot.getState(userID)
	assert.False(t, ok, "no conversation without tracked regions")
}

func TestBot_SubscriptionManagement(t *testing.T) {
	bot, db := newTestBot(t)
	ctx := context.Background()
	userID, chatID := int64(123), int64(456)

	require.NoError(t, db.AddFavorite(ctx, models.Favorite{UserID: userID, Artist: "Coldplay"}))

	// Pause toggles the flag
	bot.handleCallbackQuery(callback(userID, chatID, "subpause:Coldplay"))
	favorites, err := db.ListUserFavorites(ctx, userID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.True(t, favorites[0].Paused)

	// Second toggle resumes
	bot.handleCallbackQuery(callback(userID, chatID, "subpause:Coldplay"))
	favorites, err = db.ListUserFavorites(ctx, userID)
	require.NoError(t, err)
	assert.False(t, favorites[0].Paused)

	// Delete removes the favorite
	bot.handleCallbackQuery(callback(userID, chatID, "subdel:Coldplay"))
	favorites, err = db.ListUserFavorites(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestBot_ResolveRow(t *testing.T) {
	bot, db := newTestBot(t)
	ctx := context.Background()

	require.NoError(t, db.EnsureUser(ctx, 1, "A"))
	require.NoError(t, db.SetUserRegions(ctx, 1, []string{"Belarus"}))
	require.NoError(t, db.AddFavorite(ctx, models.Favorite{UserID: 1, Artist: "X"}))
	require.NoError(t, db.AddFavorite(ctx, models.Favorite{UserID: 2, Artist: "X", Regions: []string{"Minsk"}}))
	require.NoError(t, db.AddFavorite(ctx, models.Favorite{UserID: 3, Artist: "X", Regions: []string{"Germany"}}))

	row := models.EventRow{Title: "Gig", VenueName: "Hall", Artist: "X", City: "Minsk", Country: "Belarus"}
	recipients, err := bot.resolveRow(ctx, row)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, recipients)

	// Artistless rows resolve to nobody without erroring
	recipients, err = bot.resolveRow(ctx, models.EventRow{Title: "Gig", VenueName: "Hall"})
	require.NoError(t, err)
	assert.Empty(t, recipients)
}
