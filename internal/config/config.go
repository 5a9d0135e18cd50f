package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config is resolved once at process start from the environment.
type Config struct {
	// DevMode selects the in-memory backing for events and auth
	DevMode bool `env:"DEV_MODE" envDefault:"false"`
	// DevRole is the initial simulated role in dev mode
	DevRole string `env:"DEV_ROLE" envDefault:"admin"`

	ProjectID     string `env:"GOOGLE_CLOUD_PROJECT" envDefault:"local-project-id"`
	DatabaseID    string `env:"FIRESTORE_DATABASE_ID" envDefault:"(default)"`
	StorageBucket string `env:"FIREBASE_STORAGE_BUCKET"`
	APIKey        string `env:"FIREBASE_API_KEY"`

	AuthEmulatorHost    string `env:"FIREBASE_AUTH_EMULATOR_HOST"`
	StorageEmulatorHost string `env:"STORAGE_EMULATOR_HOST"`
	AdminUID            string `env:"FIRESTORE_ADMIN_UID"`

	AppEnv            string `env:"APP_ENV" envDefault:"development"`
	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`

	Port      string `env:"PORT" envDefault:"5000"`
	LocalOnly bool   `env:"LOCAL_ONLY" envDefault:"false"`
}

// Load parses the process environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Wrap(err, "Load: cannot parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the parser cannot.
func (c Config) Validate() error {
	switch c.DevRole {
	case "admin", "readonly":
	default:
		return errors.Errorf("Validate: DEV_ROLE must be admin or readonly, got %q", c.DevRole)
	}
	if !c.DevMode && c.ProjectID == "" {
		return errors.New("Validate: GOOGLE_CLOUD_PROJECT is required outside dev mode")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Bucket returns the storage bucket, defaulting to the Firebase naming scheme.
func (c Config) Bucket() string {
	if c.StorageBucket != "" {
		return c.StorageBucket
	}
	return c.ProjectID + ".appspot.com"
}

// StorageDownloadBase is where download URLs point, the emulator when set.
func (c Config) StorageDownloadBase() string {
	if c.StorageEmulatorHost != "" {
		host := c.StorageEmulatorHost
		if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
			host = "http://" + host
		}
		return host
	}
	return ""
}
