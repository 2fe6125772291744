package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MinesMe/Bot-for-Darina-sub000/internal/bot"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/config"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/scraper"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/scraper/sources"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage/ch"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage/pg"
	"github.com/MinesMe/Bot-for-Darina-sub000/internal/storage/stubs"
)

// App represents the bot application
type App struct {
	config     *config.Config
	logger     *zap.Logger
	eventStore storage.EventStore
	catalog    storage.Catalog
	bot        *bot.Bot
	runner     *scraper.Runner
	server     *http.Server

	scrapeCancel context.CancelFunc
}

// New creates and initializes a new application instance
func New() (*App, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded configuration from .env")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	logger.Info("Starting event bot")

	if err := app.initStorage(); err != nil {
		return nil, err
	}

	if err := app.initBot(); err != nil {
		return nil, err
	}

	app.initScraper()
	app.initHTTPServer()

	return app, nil
}

// initStorage connects the event store and the catalog
func (a *App) initStorage() error {
	ctx := context.Background()

	if a.config.UseMockDB {
		a.logger.Info("Using in-memory storage")
		db := stubs.NewMockDB()
		if err := db.Initialize(ctx); err != nil {
			return fmt.Errorf("failed to initialize mock storage: %w", err)
		}
		a.eventStore = db
		a.catalog = db
		return nil
	}

	a.logger.Info("Connecting to ClickHouse",
		zap.String("host", a.config.ClickHouseHost),
		zap.Int("port", a.config.ClickHousePort),
		zap.String("database", a.config.ClickHouseDatabase),
		zap.Bool("tls", a.config.ClickHouseUseTLS),
	)
	eventStore, err := ch.NewClickHouseDB(
		a.config.ClickHouseHost,
		a.config.ClickHousePort,
		a.config.ClickHouseDatabase,
		a.config.ClickHouseUser,
		a.config.ClickHousePassword,
		a.config.ClickHouseUseTLS,
	)
	if err != nil {
		return fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}
	if err := eventStore.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize event store: %w", err)
	}

	a.logger.Info("Connecting to Postgres")
	catalog, err := pg.NewPostgresDB(a.config.PostgresDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	if err := catalog.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}

	a.eventStore = eventStore
	a.catalog = catalog
	return nil
}

// initBot initializes the Telegram bot
func (a *App) initBot() error {
	telegramBot, err := bot.NewBot(
		a.config.TelegramToken,
		a.eventStore,
		a.catalog,
		a.config.PageSize,
		a.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	a.bot = telegramBot
	return nil
}

// initScraper wires the ticket site scrapers; new rows go straight to
// the bot's notifier
func (a *App) initScraper() {
	a.runner = scraper.NewRunner(
		[]scraper.Source{sources.NewKvitki(), sources.NewBezkassira()},
		a.eventStore,
		a.bot,
		a.logger,
	)
}

// initHTTPServer starts the health check and webhook endpoints
func (a *App) initHTTPServer() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		mode := "polling"
		if a.config.WebhookMode {
			mode = "webhook"
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Event bot is running (mode: %s)", mode)
	})

	// Webhook endpoint (only used in webhook mode)
	mux.HandleFunc("/telegram-webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			a.logger.Error("Error decoding webhook update", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Process in background to respond quickly to Telegram
		go a.bot.HandleWebhookUpdate(update)

		w.WriteHeader(http.StatusOK)
	})

	a.server = &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", port))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	scrapeCtx, cancel := context.WithCancel(context.Background())
	a.scrapeCancel = cancel
	go a.runner.Start(scrapeCtx, a.config.ScrapeInterval)

	if a.config.WebhookMode {
		a.logger.Info("Starting bot in webhook mode", zap.String("url", a.config.WebhookURL))
		if err := a.bot.StartWebhook(a.config.WebhookURL); err != nil {
			return fmt.Errorf("failed to setup webhook: %w", err)
		}
	} else {
		go func() {
			a.logger.Info("Starting bot in polling mode")
			if err := a.bot.Start(); err != nil {
				a.logger.Fatal("Failed to start bot", zap.Error(err))
			}
		}()
	}

	<-sigChan

	a.logger.Info("Shutting down")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	if a.scrapeCancel != nil {
		a.scrapeCancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := a.eventStore.Close(); err != nil {
		a.logger.Error("Error closing event store", zap.Error(err))
		return err
	}
	if err := a.catalog.Close(); err != nil {
		a.logger.Error("Error closing catalog", zap.Error(err))
		return err
	}

	a.logger.Info("Shutdown complete")
	_ = a.logger.Sync()
	return nil
}
