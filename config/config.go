package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Storage     StorageConfig
	JWT         JWTConfig
	Mail        MailConfig
	Pesapal     PesapalConfig
	Admin       AdminConfig
	Listing     ListingConfig
	ExpertStore string `env:"EXPERT_STORE" envDefault:"sql"`
}

type ServerConfig struct {
	AppEnv         string   `env:"APP_ENV" envDefault:"production"`
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DB_DSN" envDefault:"file:agromarket.db?_foreign_keys=on"`
}

// MongoConfig is only used when ExpertStore is "mongo".
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DATABASE" envDefault:"agromarket"`
}

// RedisConfig disables the listing cache when Addr is empty.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type StorageConfig struct {
	Driver        string `env:"STORAGE_DRIVER" envDefault:"inline"`
	Bucket        string `env:"S3_BUCKET" envDefault:"agromarket"`
	MaxInlineSize int64  `env:"INLINE_MAX_BYTES" envDefault:"2097152"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET,required,notEmpty"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"720h"`
}

type MailConfig struct {
	From        string `env:"FROM_EMAIL"`
	Password    string `env:"FROM_EMAIL_PASSWORD"`
	SMTPHost    string `env:"FROM_EMAIL_SMTP"`
	SMTPAddress string `env:"SMTP_ADDRESS"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
}

type PesapalConfig struct {
	BaseURL        string `env:"PESAPAL_BASE_URL" envDefault:"https://pay.pesapal.com/v3"`
	ConsumerKey    string `env:"PESAPAL_CONSUMER_KEY"`
	ConsumerSecret string `env:"PESAPAL_CONSUMER_SECRET"`
	NotificationID string `env:"PESAPAL_NOTIFICATION_ID"`
	CallbackURL    string `env:"PESAPAL_CALLBACK_URL"`
	Currency       string `env:"PESAPAL_CURRENCY" envDefault:"KES"`
}

type AdminConfig struct {
	SuperAdminEmail string `env:"SUPER_ADMIN_EMAIL"`
}

type ListingConfig struct {
	PageSize int `env:"LISTING_PAGE_SIZE" envDefault:"12"`
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development"
}

// Load reads .env when present and then parses the process environment.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
