package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend     BackendConfig
	Redis       RedisConfig
	ImageSearch ImageSearchConfig
	Mail        MailConfig
	Payment     PaymentConfig
	Order       OrderConfig
	Login       LoginConfig
}

// BackendConfig points at the external restaurant REST backend that owns all
// persistence and authorization decisions.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=https://localhost:7207/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR,  default=localhost:6379"`
	DB         int           `env:"REDIS_DB,    default=0"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
	DraftTTL   time.Duration `env:"DRAFT_TTL,   default=2h"`
}

type ImageSearchConfig struct {
	Endpoint  string        `env:"IMAGE_SEARCH_ENDPOINT, default=https://api.unsplash.com/search/photos"`
	AccessKey string        `env:"IMAGE_SEARCH_KEY"`
	PerPage   int           `env:"IMAGE_SEARCH_PER_PAGE, default=9"`
	Timeout   time.Duration `env:"IMAGE_SEARCH_TIMEOUT,  default=5s"`
}

type MailConfig struct {
	Endpoint   string        `env:"MAIL_ENDPOINT"`
	ServiceID  string        `env:"MAIL_SERVICE_ID"`
	TemplateID string        `env:"MAIL_TEMPLATE_ID"`
	PublicKey  string        `env:"MAIL_PUBLIC_KEY"`
	Timeout    time.Duration `env:"MAIL_TIMEOUT, default=10s"`
	Workers    int           `env:"MAIL_WORKERS, default=4"`
}

// PaymentConfig tunes the simulated card processor.
type PaymentConfig struct {
	Delay time.Duration `env:"PAYMENT_DELAY, default=1500ms"`
}

type OrderConfig struct {
	// RejectZeroTotal turns stale selections (no resolvable menu items) into
	// a validation failure instead of a zero-total submission.
	RejectZeroTotal bool `env:"ORDER_REJECT_ZERO_TOTAL, default=false"`
}

type LoginConfig struct {
	RatePerMinute int `env:"LOGIN_RATE_PER_MINUTE, default=10"`
	RateBurst     int `env:"LOGIN_RATE_BURST,      default=5"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
