package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"eyewear"`

	AMQPURL        string `env:"AMQP_URL"` // empty disables order event publishing
	OrderQueueName string `env:"ORDER_QUEUE" envDefault:"orders.placed"`

	JWTSecret   string `env:"JWT_SECRET,required"`
	AdminAPIKey string `env:"ADMIN_API_KEY,required"`

	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsJSON string `env:"FIREBASE_CREDENTIALS_JSON"`

	UploadsDir string `env:"UPLOADS_DIR" envDefault:"/var/www/framecart/uploads"`
	BackupDir  string `env:"BACKUP_DIR" envDefault:"/var/www/framecart/backup/uploads"`
	PublicURL  string `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`

	// Payment gateway (Telr hosted page)
	TelrStoreID       int    `env:"TELR_STORE_ID"`
	TelrAuthKey       string `env:"TELR_AUTH_KEY"`
	TelrAPIURL        string `env:"TELR_API_URL" envDefault:"https://secure.telr.com/gateway/order.json"`
	TelrMode          string `env:"TELR_MODE" envDefault:"sandbox"`
	TelrWebhookSecret string `env:"TELR_WEBHOOK_SECRET"`
	TelrSuccessURL    string `env:"TELR_SUCCESS_URL"`
	TelrFailureURL    string `env:"TELR_FAILURE_URL"`
	TelrCancelURL     string `env:"TELR_CANCEL_URL"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// DSN builds the postgres connection string when DATABASE_URL is not set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
