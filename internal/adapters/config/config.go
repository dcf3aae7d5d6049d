package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"midas/pkg/errors"
)

type Config struct {
	App           AppConfig
	Firestore     FirestoreConfig
	ErrorTracking ErrorTrackingConfig
	Metrics       MetricsConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"midas"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

// FirestoreConfig describes the single document store client used for
// profile persistence. Exactly one credential source must be configured:
// a service account file, or the ambient application-default credentials.
type FirestoreConfig struct {
	ProjectID          string `envconfig:"FIRESTORE_PROJECT_ID" required:"true"`
	CredentialsFile    string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
	DefaultCredentials bool   `envconfig:"FIRESTORE_DEFAULT_CREDENTIALS" default:"false"`
}

// Validate enforces the mutually exclusive credential sources.
func (c FirestoreConfig) Validate() error {
	if c.CredentialsFile != "" && c.DefaultCredentials {
		return errors.Wrap(errors.ErrConfiguration,
			"GOOGLE_APPLICATION_CREDENTIALS and FIRESTORE_DEFAULT_CREDENTIALS are mutually exclusive")
	}
	if c.CredentialsFile == "" && !c.DefaultCredentials {
		return errors.Wrap(errors.ErrConfiguration,
			"set GOOGLE_APPLICATION_CREDENTIALS or FIRESTORE_DEFAULT_CREDENTIALS=true")
	}
	if c.CredentialsFile != "" {
		if _, err := os.Stat(c.CredentialsFile); err != nil {
			return errors.Wrapf(errors.ErrConfiguration,
				"credentials file %q not readable", c.CredentialsFile)
		}
	}
	return nil
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	Provider    string `envconfig:"ERROR_TRACKING_PROVIDER" default:"sentry"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Addr    string `envconfig:"METRICS_ADDR" default:":9090"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
