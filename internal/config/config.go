package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Config struct {
	// Telegram bot token issued by BotFather.
	BotToken string `env:"GATE_KEEPER,required"`
	// Public username of the bot, used in the tg://resolve deep link.
	BotName string `env:"BOT_NAME" envDefault:"SafeguardRobot"`
	// Chat that receives the verification audit copy. Zero disables it.
	OwnerChatID int64 `env:"BOT_OWNER"`

	WebAppLink string `env:"WEB_APP_LINK" envDefault:"https://safeguard.example.com/verify"`

	// Optional remote overrides for the bundled prompt images.
	TapVerifyImage   string `env:"SAFEGUARD_TAP_VERIFY"`
	ClickVerifyImage string `env:"SAFEGUARD_CLICK_VERIFY"`
	VerifiedImage    string `env:"SAFEGUARD_VERIFIED"`

	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	// How long an issued attempt may be redeemed. Expired attempts fall
	// back to the default channel slot.
	AttemptTTL time.Duration `env:"ATTEMPT_TTL" envDefault:"1h"`
	// Retention for saved channel configs. Zero keeps them forever.
	ConfigTTL time.Duration `env:"CONFIG_TTL"`

	Port                   int           `env:"PORT" envDefault:"8000"`
	Debug                  bool          `env:"DEBUG"`
	TelegramRequestTimeout time.Duration `env:"TELEGRAM_REQUEST_TIMEOUT" envDefault:"10s"`

	SentryDSN string `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.WebAppLink, validation.Required, is.URL),
		validation.Field(&c.TapVerifyImage, is.URL),
		validation.Field(&c.ClickVerifyImage, is.URL),
		validation.Field(&c.VerifiedImage, is.URL),
		validation.Field(&c.Port, validation.Min(1), validation.Max(65535)),
	)
}

// Address picks the listen address. Debug binds to the loopback interface
// only, the way local web-app development expects it.
func (c *Config) Address() string {
	if c.Debug {
		return fmt.Sprintf("127.0.0.1:%d", c.Port)
	}
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}
