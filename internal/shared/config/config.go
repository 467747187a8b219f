//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"

	postDomain "github.com/uramit/channel-caption-bot/internal/modules/post/domain"
	"github.com/uramit/channel-caption-bot/internal/shared/errors"
)

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

type Config struct {
	TelegramBotToken     string             `koanf:"telegram_bot_token"`
	TelegramAPIURL       string             `koanf:"telegram_api_url"`
	ChannelUsername      string             `koanf:"channel_username"`
	ChannelChatID        int64              `koanf:"channel_chat_id"`
	AdminUserID          int64              `koanf:"admin_user_id"`
	OpsChatID            int64              `koanf:"ops_chat_id"`
	DeveloperURL         string             `koanf:"developer_url"`
	Dialect              postDomain.Dialect `koanf:"dialect"`
	EscapeBody           bool               `koanf:"escape_body"`
	BroadcastConcurrency int                `koanf:"broadcast_concurrency"`
	BroadcastRatePerSec  int                `koanf:"broadcast_rate_per_sec"`
	WebhookURL           string             `koanf:"webhook_url"`
	WebhookSecret        string             `koanf:"webhook_secret"`
	HTTPPort             string             `koanf:"http_port"`
	StoragePath          string             `koanf:"storage_path"`
	AppEnv               AppEnv             `koanf:"app_env"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	// Convert TELEGRAM_BOT_TOKEN -> telegram_bot_token
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("telegram_api_url") {
		k.Set("telegram_api_url", "https://api.telegram.org")
	}
	if !k.Exists("storage_path") {
		k.Set("storage_path", "./data")
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("dialect") {
		k.Set("dialect", "markdown_v2")
	}
	if !k.Exists("broadcast_concurrency") {
		k.Set("broadcast_concurrency", 4)
	}
	if !k.Exists("broadcast_rate_per_sec") {
		k.Set("broadcast_rate_per_sec", 25)
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Parse Dialect from string. An invalid value is a configuration
	// error, not an excuse to change the operator's markup mode.
	dialect, err := postDomain.ParseDialect(k.String("dialect"))
	if err != nil {
		return nil, oops.With("dialect", k.String("dialect"), "context", "invalid dialect").Wrap(err)
	}
	cfg.Dialect = dialect

	// Parse AppEnv from string if needed
	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		if env, err := ParseAppEnv(appEnvStr); err == nil {
			cfg.AppEnv = env
		} else {
			cfg.AppEnv = AppEnvProduction
		}
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	// Validate required fields
	if cfg.TelegramBotToken == "" {
		return nil, errors.ErrMissingBotToken
	}
	if cfg.ChannelUsername == "" {
		return nil, errors.ErrMissingChannel
	}

	return &cfg, nil
}
