// Package config provides configuration loading and validation for the bot.
// Values come from defaults, an optional config.yaml, and BOT_-prefixed
// environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// BotInfo holds the bot's platform identity, retrieved at startup and kept
// in the config for runtime use.
type BotInfo struct {
	ID        int64
	Username  string
	FirstName string
}

// Config defines all application configuration parameters.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	AI        AIConfig        `mapstructure:"ai"`
	Market    MarketConfig    `mapstructure:"market"`
	History   HistoryConfig   `mapstructure:"history"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds Telegram settings. CallName is the display phrase
// users type to address the bot in groups.
type TelegramConfig struct {
	Token       string `mapstructure:"token"         validate:"required"`
	AdminUserID int64  `mapstructure:"admin_user_id" validate:"required,gt=0"`
	CallName    string `mapstructure:"call_name"     validate:"required"`

	// BotInfo is filled at runtime from GetMe, never from the file.
	BotInfo BotInfo `mapstructure:"-"`
}

// AIConfig holds completion-service settings. Backend selects between the
// OpenAI-compatible HTTP client and the Gemini SDK client.
type AIConfig struct {
	Backend         string        `mapstructure:"backend"          validate:"oneof=openai gemini"`
	Token           string        `mapstructure:"token"            validate:"required"`
	BaseURL         string        `mapstructure:"base_url"         validate:"required,url"`
	Model           string        `mapstructure:"model"            validate:"required"`
	Temperature     float32       `mapstructure:"temperature"      validate:"min=0,max=2"`
	Timeout         time.Duration `mapstructure:"timeout"          validate:"min=1s,max=10m"`
	Instruction     string        `mapstructure:"instruction"`
	InstructionFile string        `mapstructure:"instruction_file"`
}

// MarketConfig holds market-data service settings.
type MarketConfig struct {
	APIKey   string        `mapstructure:"api_key"   validate:"required"`
	BaseURL  string        `mapstructure:"base_url"  validate:"required,url"`
	Source   string        `mapstructure:"source"    validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout"   validate:"min=1s,max=5m"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"min=10s"`
	Limit    int           `mapstructure:"limit"     validate:"min=1,max=20"`
}

// HistoryConfig bounds the per-user conversation buffer.
type HistoryConfig struct {
	MaxTurns int `mapstructure:"max_turns" validate:"min=1,max=100"`
}

// DatabaseConfig holds SQLite settings for the message archive.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// TaskConfig describes one scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// MessagesConfig holds every user-visible canned message so deployments can
// localize or reword them.
type MessagesConfig struct {
	Welcome         string `mapstructure:"welcome"`
	HistoryReset    string `mapstructure:"history_reset"`
	ResetAllDone    string `mapstructure:"reset_all_done"`
	Unauthorized    string `mapstructure:"unauthorized"`
	GeneralError    string `mapstructure:"general_error"`
	CompletionError string `mapstructure:"completion_error"`
	CompletionEmpty string `mapstructure:"completion_empty"`
	MarketError     string `mapstructure:"market_error"`
	MarketEmpty     string `mapstructure:"market_empty"`
	ArchiveEmpty    string `mapstructure:"archive_empty"`
	PromptCurrent   string `mapstructure:"prompt_current"`
	PromptSet       string `mapstructure:"prompt_set"`
	PromptUsage     string `mapstructure:"prompt_usage"`
}

// Load reads configuration from the given YAML file (optional), BOT_*
// environment variables, and built-in defaults, then validates the result.
// Missing required secrets fail here so the process never starts
// half-configured.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		// Missing config file is fine; env vars and defaults apply.
	}

	cfg := &Config{}
	// Environment values arrive as strings; decode them into typed fields.
	weakDecode := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(cfg, weakDecode); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	// Secrets default to empty so env-only values are seen by Unmarshal;
	// validation rejects them when still unset.
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_user_id", 0)
	v.SetDefault("telegram.call_name", "سس خرسی")

	v.SetDefault("ai.backend", "openai")
	v.SetDefault("ai.token", "")
	v.SetDefault("ai.instruction_file", "")
	v.SetDefault("ai.base_url", "https://api.avalai.ir/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.timeout", time.Minute)
	v.SetDefault("ai.instruction", "You are a helpful assistant.")

	v.SetDefault("market.api_key", "")
	v.SetDefault("market.base_url", "https://api.navasan.tech/latest/")
	v.SetDefault("market.source", "نرخ لحظه‌ای بازار")
	v.SetDefault("market.timeout", 15*time.Second)
	v.SetDefault("market.cache_ttl", 5*time.Minute)
	v.SetDefault("market.limit", 6)

	v.SetDefault("history.max_turns", 10)

	v.SetDefault("database.path", "storage.db")

	v.SetDefault("scheduler.tasks.market_refresh.enabled", true)
	v.SetDefault("scheduler.tasks.market_refresh.schedule", "*/5 * * * *")
	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 4 * * *")

	v.SetDefault("messages.welcome", "سلام! من {call_name} هستم 🐻🍯\nتو گروه فقط وقتی اسممو صدا بزنی جواب میدم.\nمثال: {call_name} سلام")
	v.SetDefault("messages.history_reset", "🧹 حافظه گفتگو پاک شد.")
	v.SetDefault("messages.reset_all_done", "🧹 تمام حافظه‌های گفتگو و آرشیو پیام‌ها پاک شد.")
	v.SetDefault("messages.unauthorized", "🚫 اجازه استفاده از این دستور را ندارید.")
	v.SetDefault("messages.general_error", "❌ خطایی رخ داد. کمی بعد دوباره تلاش کنید.")
	v.SetDefault("messages.completion_error", "خطای سرویس پاسخ‌گویی: %s")
	v.SetDefault("messages.completion_empty", "پاسخی دریافت نشد.")
	v.SetDefault("messages.market_error", "خطا در دریافت نرخ‌های بازار: %s")
	v.SetDefault("messages.market_empty", "فعلا داده‌ای از بازار در دسترس نیست.")
	v.SetDefault("messages.archive_empty", "آرشیو این گفتگو خالی است.")
	v.SetDefault("messages.prompt_current", "پرامپت سیستم فعلی:\n\n%s")
	v.SetDefault("messages.prompt_set", "✅ پرامپت سیستم (برای همین اجرا) تنظیم شد.")
	v.SetDefault("messages.prompt_usage", "استفاده: /setprompt <متن پرامپت>")
}
