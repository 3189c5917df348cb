package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Telegram  TelegramConfig
	Shopify   ShopifyConfig
	Feed      FeedConfig
	Reconcile ReconcileConfig
	Data      DataConfig
	Admin     AdminConfig
	Log       LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// TelegramConfig holds the bot transport settings
type TelegramConfig struct {
	Token          string
	UpdateTimeout  int  // long-poll timeout in seconds
	Debug          bool // log raw API traffic
	AllowedChatIDs []int64
	// ReportInterval is the period between report broadcasts to
	// subscribed chats. Zero disables broadcasts.
	ReportInterval time.Duration
}

// ShopifyConfig holds the store API settings
type ShopifyConfig struct {
	// Store is the myshopify domain, e.g. "nikki-fashion.myshopify.com"
	Store        string
	AdminToken   string
	APIVersion   string
	CustomDomain string
	Timeout      time.Duration
}

// FeedConfig holds the tracking feed settings
type FeedConfig struct {
	// URL is the published-sheet CSV endpoint.
	URL     string
	Timeout time.Duration
}

// ReconcileConfig holds reconciliation pass settings
type ReconcileConfig struct {
	// CarrierName is the fixed carrier attached to fulfillments and
	// shipping lines.
	CarrierName string
	// Throttle is the pause between processed records.
	Throttle time.Duration
	// Interval enables periodic passes when positive; zero means
	// operator-triggered only.
	Interval time.Duration
	// JobTimeout bounds a single pass.
	JobTimeout time.Duration
}

// DataConfig holds the flat-file store locations
type DataConfig struct {
	// Dir is the base directory for all bot-owned files.
	Dir string
	// LedgerFile is the newline-separated processed tracking ID ledger.
	LedgerFile string
	// AlertsFile, TicketsFile, AutoRestockFile, NotificationsFile are
	// whole-file JSON stores, one per concern.
	AlertsFile        string
	TicketsFile       string
	AutoRestockFile   string
	NotificationsFile string
}

// AdminConfig holds the local admin HTTP server settings
type AdminConfig struct {
	Enabled bool
	Addr    string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with NIKKI_ prefix (e.g. NIKKI_SHOPIFY_ADMIN_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("NIKKI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Telegram: TelegramConfig{
			Token:          v.GetString("telegram.token"),
			UpdateTimeout:  v.GetInt("telegram.update_timeout"),
			Debug:          v.GetBool("telegram.debug"),
			AllowedChatIDs: toInt64Slice(v.GetIntSlice("telegram.allowed_chat_ids")),
			ReportInterval: v.GetDuration("telegram.report_interval"),
		},
		Shopify: ShopifyConfig{
			Store:        v.GetString("shopify.store"),
			AdminToken:   v.GetString("shopify.admin_token"),
			APIVersion:   v.GetString("shopify.api_version"),
			CustomDomain: v.GetString("shopify.custom_domain"),
			Timeout:      v.GetDuration("shopify.timeout"),
		},
		Feed: FeedConfig{
			URL:     v.GetString("feed.url"),
			Timeout: v.GetDuration("feed.timeout"),
		},
		Reconcile: ReconcileConfig{
			CarrierName: v.GetString("reconcile.carrier_name"),
			Throttle:    v.GetDuration("reconcile.throttle"),
			Interval:    v.GetDuration("reconcile.interval"),
			JobTimeout:  v.GetDuration("reconcile.job_timeout"),
		},
		Data: DataConfig{
			Dir:               v.GetString("data.dir"),
			LedgerFile:        v.GetString("data.ledger_file"),
			AlertsFile:        v.GetString("data.alerts_file"),
			TicketsFile:       v.GetString("data.tickets_file"),
			AutoRestockFile:   v.GetString("data.auto_restock_file"),
			NotificationsFile: v.GetString("data.notifications_file"),
		},
		Admin: AdminConfig{
			Enabled: v.GetBool("admin.enabled"),
			Addr:    v.GetString("admin.addr"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// toInt64Slice converts viper's int slice to chat IDs
func toInt64Slice(in []int) []int64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]int64, len(in))
	for i, n := range in {
		out[i] = int64(n)
	}
	return out
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "nikkifashion-bot"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Telegram.UpdateTimeout == 0 {
		cfg.Telegram.UpdateTimeout = 30
	}
	if cfg.Telegram.ReportInterval == 0 {
		cfg.Telegram.ReportInterval = 24 * time.Hour
	}
	if cfg.Shopify.APIVersion == "" {
		cfg.Shopify.APIVersion = "2025-07"
	}
	if cfg.Shopify.CustomDomain == "" {
		cfg.Shopify.CustomDomain = "https://nikkifashion.com"
	}
	if cfg.Shopify.Timeout == 0 {
		cfg.Shopify.Timeout = 15 * time.Second
	}
	if cfg.Feed.Timeout == 0 {
		cfg.Feed.Timeout = 30 * time.Second
	}
	if cfg.Reconcile.CarrierName == "" {
		cfg.Reconcile.CarrierName = "Delhivery"
	}
	if cfg.Reconcile.Throttle == 0 {
		cfg.Reconcile.Throttle = 500 * time.Millisecond
	}
	if cfg.Reconcile.JobTimeout == 0 {
		cfg.Reconcile.JobTimeout = 10 * time.Minute
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.LedgerFile == "" {
		cfg.Data.LedgerFile = "processed_tracking_ids.txt"
	}
	if cfg.Data.AlertsFile == "" {
		cfg.Data.AlertsFile = "inventory_alerts.json"
	}
	if cfg.Data.TicketsFile == "" {
		cfg.Data.TicketsFile = "support_tickets.json"
	}
	if cfg.Data.AutoRestockFile == "" {
		cfg.Data.AutoRestockFile = "auto_restock.json"
	}
	if cfg.Data.NotificationsFile == "" {
		cfg.Data.NotificationsFile = "notifications.json"
	}
	if cfg.Admin.Addr == "" {
		cfg.Admin.Addr = "127.0.0.1:8090"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Reconcile.Throttle < 0 {
		return fmt.Errorf("reconcile.throttle cannot be negative")
	}
	if c.App.Env == "production" {
		if c.Telegram.Token == "" {
			return fmt.Errorf("telegram.token is required in production")
		}
		if c.Shopify.Store == "" {
			return fmt.Errorf("shopify.store is required in production")
		}
		if c.Shopify.AdminToken == "" {
			return fmt.Errorf("shopify.admin_token is required in production")
		}
		if c.Feed.URL == "" {
			return fmt.Errorf("feed.url is required in production")
		}
	}
	return nil
}
