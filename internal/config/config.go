package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Bot       BotConfig
	Payment   PaymentConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port int
	// PublicURL is the externally reachable base URL the Telegram webhook is
	// registered against.
	PublicURL string
}

type BotConfig struct {
	Token        string
	AdminID      int64
	WebAppURL    string
	ManagerEmail string
}

type PaymentConfig struct {
	Receiver string
	Account  string
	BIC      string
}

type RateLimitConfig struct {
	Window   time.Duration
	Max      int
	Cooldown time.Duration
}

type StorageConfig struct {
	DataDir string
	// RegionsFile optionally extends the built-in local-region gazetteer.
	RegionsFile string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 3000)
	viper.SetDefault("SERVER_URL", "http://localhost:3000")
	viper.SetDefault("ADMIN_ID", 0)
	viper.SetDefault("WEBAPP_URL", "")
	viper.SetDefault("MANAGER_EMAIL", "")
	viper.SetDefault("PAYMENT_RECEIVER", "")
	viper.SetDefault("PAYMENT_ACCOUNT", "")
	viper.SetDefault("PAYMENT_BIK", "")
	viper.SetDefault("RATE_LIMIT_WINDOW", "60s")
	viper.SetDefault("RATE_LIMIT_MAX", 20)
	viper.SetDefault("RATE_LIMIT_COOLDOWN", "1s")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("REGIONS_FILE", "")
	viper.SetDefault("LOG_LEVEL", "info")

	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, errors.New("BOT_TOKEN is required")
	}

	window, err := time.ParseDuration(viper.GetString("RATE_LIMIT_WINDOW"))
	if err != nil {
		return nil, err
	}

	cooldown, err := time.ParseDuration(viper.GetString("RATE_LIMIT_COOLDOWN"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      viper.GetInt("SERVER_PORT"),
			PublicURL: viper.GetString("SERVER_URL"),
		},
		Bot: BotConfig{
			Token:        token,
			AdminID:      viper.GetInt64("ADMIN_ID"),
			WebAppURL:    viper.GetString("WEBAPP_URL"),
			ManagerEmail: viper.GetString("MANAGER_EMAIL"),
		},
		Payment: PaymentConfig{
			Receiver: viper.GetString("PAYMENT_RECEIVER"),
			Account:  viper.GetString("PAYMENT_ACCOUNT"),
			BIC:      viper.GetString("PAYMENT_BIK"),
		},
		RateLimit: RateLimitConfig{
			Window:   window,
			Max:      viper.GetInt("RATE_LIMIT_MAX"),
			Cooldown: cooldown,
		},
		Storage: StorageConfig{
			DataDir:     viper.GetString("DATA_DIR"),
			RegionsFile: viper.GetString("REGIONS_FILE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
