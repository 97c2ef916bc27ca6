package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"siso/pkg/errors"
)

// MaxUploadURLTTL caps how long an issued write URL may stay valid.
const MaxUploadURLTTL = 15 * time.Minute

type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	FirebaseProject            string `env:"FIREBASE_PROJECT_ID"`
	FirebaseServiceAccountJSON string `env:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	FirebaseServiceAccountPath string `env:"FIREBASE_SERVICE_ACCOUNT_PATH"`

	StorageProvider        string `env:"STORAGE_PROVIDER" envDefault:"s3"`
	StorageBucket          string `env:"STORAGE_BUCKET"`
	StoragePublicURLBase   string `env:"STORAGE_PUBLIC_URL_BASE"`
	StorageEndpoint        string `env:"STORAGE_ENDPOINT"`
	StorageRegion          string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	StorageAccessKeyID     string `env:"STORAGE_ACCESS_KEY_ID"`
	StorageSecretAccessKey string `env:"STORAGE_SECRET_ACCESS_KEY"`

	UploadURLTTL   time.Duration `env:"UPLOAD_URL_TTL" envDefault:"300s"`
	UploadMaxBytes int64         `env:"UPLOAD_MAX_BYTES" envDefault:"20971520"`

	DedupeBackend string        `env:"DEDUPE_BACKEND" envDefault:"memory"`
	DedupeWindow  time.Duration `env:"DEDUPE_WINDOW" envDefault:"10m"`
	DedupeSize    int           `env:"DEDUPE_SIZE" envDefault:"4096"`
	RedisURL      string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"0s"`
	ReconcileGrace    time.Duration `env:"RECONCILE_GRACE" envDefault:"1h"`
	ReconcileLookback time.Duration `env:"RECONCILE_LOOKBACK" envDefault:"24h"`
	ReconcileMode     string        `env:"RECONCILE_MODE" envDefault:"flag"`

	WSAllowedOrigins []string `env:"WS_ALLOWED_ORIGINS" envSeparator:","`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.StorageProvider = strings.ToLower(strings.TrimSpace(cfg.StorageProvider))
	cfg.DedupeBackend = strings.ToLower(strings.TrimSpace(cfg.DedupeBackend))
	cfg.ReconcileMode = strings.ToLower(strings.TrimSpace(cfg.ReconcileMode))

	return cfg, nil
}

// ValidateStorage checks the settings every credential issuance depends on.
// main calls it before serving so a missing bucket is a startup failure.
func (c *Config) ValidateStorage() error {
	switch {
	case strings.TrimSpace(c.StorageBucket) == "":
		return errors.Configuration("STORAGE_BUCKET is not set")
	case strings.TrimSpace(c.StoragePublicURLBase) == "":
		return errors.Configuration("STORAGE_PUBLIC_URL_BASE is not set")
	case c.StorageProvider != "s3" && c.StorageProvider != "gcs":
		return errors.Configuration(fmt.Sprintf("unsupported STORAGE_PROVIDER %q", c.StorageProvider))
	case c.StorageProvider == "s3" && strings.TrimSpace(c.StorageEndpoint) == "":
		return errors.Configuration("STORAGE_ENDPOINT is required for the s3 provider")
	case c.UploadURLTTL <= 0 || c.UploadURLTTL > MaxUploadURLTTL:
		return errors.Configuration(fmt.Sprintf("UPLOAD_URL_TTL must be between 1s and %s", MaxUploadURLTTL))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
