package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultTokenURL and DefaultTranslateURL point at the public TexTra
// (minna no jidou hon'yaku) endpoints for the general ja->en NT model.
const (
	DefaultTokenURL     = "https://mt-auto-minhon-mlt.ucri.jgn-x.jp/oauth2/token.php"
	DefaultTranslateURL = "https://mt-auto-minhon-mlt.ucri.jgn-x.jp/api/mt/generalNT_ja_en/"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// TexTra credentials are validated lazily at point of use, not
	// here: a partially configured process is fine until the missing
	// field is actually needed.
	APIKey       string `envconfig:"TEXTRA_API_KEY"`
	APISecret    string `envconfig:"TEXTRA_API_SECRET"`
	UserName     string `envconfig:"TEXTRA_USER_NAME"`
	TokenURL     string `envconfig:"TEXTRA_TOKEN_URL"`
	TranslateURL string `envconfig:"TEXTRA_API_URL"`

	HTTPTimeout time.Duration `envconfig:"TEXTRA_HTTP_TIMEOUT" default:"30s"`

	// DATABASE_URL is optional; translation history is disabled when
	// it is empty.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBMinConns  int32  `envconfig:"MINHON_DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"MINHON_DB_MAX_CONNS" default:"4"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.TokenURL) == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if strings.TrimSpace(cfg.TranslateURL) == "" {
		cfg.TranslateURL = DefaultTranslateURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("TEXTRA_HTTP_TIMEOUT must be positive")
	}
	if c.DBMinConns < 0 {
		return fmt.Errorf("MINHON_DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("MINHON_DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("MINHON_DB_MIN_CONNS (%d) cannot exceed MINHON_DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}

// HistoryEnabled reports whether a database is configured for the
// translation history log.
func (c *Config) HistoryEnabled() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}
