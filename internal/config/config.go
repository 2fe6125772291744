package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // URL for webhook (required if WebhookMode is true)

	// ClickHouse configuration (event rows)
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool

	// Postgres configuration (users, artists, favorites)
	PostgresDSN string

	UseMockDB bool

	// Display and scraping policy
	PageSize       int           // max event groups per rendered page
	ScrapeInterval time.Duration // how often scrapers run
	APIPort        string        // HTTP port for the CRUD API service
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = os.Getenv("WEBHOOK_URL")
		if config.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}

	// Use Mock DB (default: false)
	config.UseMockDB = os.Getenv("USE_MOCK_DB") == "true"

	// Storage configuration (required if not using mock)
	if !config.UseMockDB {
		config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
		if config.ClickHouseHost == "" {
			return nil, fmt.Errorf("CLICKHOUSE_HOST is required when USE_MOCK_DB is not set")
		}

		portStr := os.Getenv("CLICKHOUSE_PORT")
		if portStr == "" {
			config.ClickHousePort = 9000 // Default ClickHouse native port
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return nil, fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
			}
			config.ClickHousePort = port
		}

		config.ClickHouseDatabase = os.Getenv("CLICKHOUSE_DATABASE")
		if config.ClickHouseDatabase == "" {
			config.ClickHouseDatabase = "default"
		}

		config.ClickHouseUser = os.Getenv("CLICKHOUSE_USER")
		if config.ClickHouseUser == "" {
			config.ClickHouseUser = "default"
		}

		config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
		// Password is optional, can be empty

		config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"

		config.PostgresDSN = os.Getenv("POSTGRES_DSN")
		if config.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required when USE_MOCK_DB is not set")
		}
	}

	// Page size for event listings (default 20)
	config.PageSize = 20
	if pageStr := os.Getenv("PAGE_SIZE"); pageStr != "" {
		size, err := strconv.Atoi(pageStr)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid PAGE_SIZE: %s", pageStr)
		}
		config.PageSize = size
	}

	// Scrape interval in minutes (default 360 = every 6 hours)
	intervalMinutes := 360
	if intervalStr := os.Getenv("SCRAPE_INTERVAL_MINUTES"); intervalStr != "" {
		minutes, err := strconv.Atoi(intervalStr)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid SCRAPE_INTERVAL_MINUTES: %s", intervalStr)
		}
		intervalMinutes = minutes
	}
	config.ScrapeInterval = time.Duration(intervalMinutes) * time.Minute

	config.APIPort = os.Getenv("API_PORT")
	if config.APIPort == "" {
		config.APIPort = "8081"
	}

	return config, nil
}
