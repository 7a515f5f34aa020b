package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Google     GoogleConfig     `yaml:"google"`
	Drive      DriveConfig      `yaml:"drive"`
	Sheets     SheetsConfig     `yaml:"sheets"`
	Dedupe     DedupeConfig     `yaml:"dedupe"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
// An empty DSN is not an error: persistence and dashboard features
// degrade to no-op responses instead.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// GoogleConfig holds the credentials used for the Drive and Sheets APIs.
// When both a refresh token and a service-account file are configured,
// the refresh token takes priority.
type GoogleConfig struct {
	CredentialsFile   string `yaml:"credentials_file"`
	OAuthClientID     string `yaml:"oauth_client_id"`
	OAuthClientSecret string `yaml:"oauth_client_secret"`
	OAuthRefreshToken string `yaml:"oauth_refresh_token"`
}

// DriveConfig holds the remote evidence storage configuration.
type DriveConfig struct {
	ParentFolderID string `yaml:"parent_folder_id"`
}

// SheetsConfig holds the summary spreadsheet configuration.
type SheetsConfig struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`
	Range         string `yaml:"range"`
}

// DedupeConfig holds the duplicate-submission window configuration.
type DedupeConfig struct {
	WindowSeconds int           `yaml:"window_seconds"`
	Window        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// CatalogConfig points at an optional substation catalog override file.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Fallback identifiers used when neither the config file nor the
// environment provides one.
const (
	DefaultParentFolderID = "1nY8kQxRjVdEoP2wTzGmScAfLuB3hJ7iK"
	DefaultSpreadsheetID  = "1aB2cD3eF4gH5iJ6kL7mN8oP9qR0sT1uV2wX3yZ4"
)

// Load reads the configuration from the given path and applies
// environment overrides. A missing file is tolerated; the environment
// and defaults then carry the whole configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		log.Printf("config file %s not found; using environment and defaults", path)
	} else {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}

	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 10
	}
	if cfg.Database.ConnMaxLifetimeMinutes <= 0 {
		cfg.Database.ConnMaxLifetimeMinutes = 60
	}

	if cfg.Drive.ParentFolderID == "" {
		cfg.Drive.ParentFolderID = DefaultParentFolderID
	}
	if cfg.Sheets.SpreadsheetID == "" {
		cfg.Sheets.SpreadsheetID = DefaultSpreadsheetID
	}
	if cfg.Sheets.Range == "" {
		cfg.Sheets.Range = "Inspections!A:H"
	}

	if cfg.Dedupe.WindowSeconds <= 0 {
		cfg.Dedupe.WindowSeconds = 10
	}
	cfg.Dedupe.Window = time.Duration(cfg.Dedupe.WindowSeconds) * time.Second

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setIfEnv(&cfg.Database.DSN, "DATABASE_DSN")
	setIfEnv(&cfg.Google.CredentialsFile, "GOOGLE_CREDENTIALS_FILE")
	setIfEnv(&cfg.Google.OAuthClientID, "GOOGLE_OAUTH_CLIENT_ID")
	setIfEnv(&cfg.Google.OAuthClientSecret, "GOOGLE_OAUTH_CLIENT_SECRET")
	setIfEnv(&cfg.Google.OAuthRefreshToken, "GOOGLE_OAUTH_REFRESH_TOKEN")
	setIfEnv(&cfg.Drive.ParentFolderID, "DRIVE_PARENT_FOLDER_ID")
	setIfEnv(&cfg.Sheets.SpreadsheetID, "SHEET_SPREADSHEET_ID")
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
