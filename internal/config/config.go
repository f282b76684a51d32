package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Settings are the service settings. Values come from defaults, then the
// optional YAML file, then TPP_* environment variables.
type Settings struct {
	HTTPAddr        string          `yaml:"http_addr"`
	SeedPath        string          `yaml:"seed_path"`
	LogLevel        string          `yaml:"log_level"`
	Environment     string          `yaml:"environment"`
	RedirectDelay   time.Duration   `yaml:"redirect_delay"`
	StartingBalance decimal.Decimal `yaml:"starting_balance"`
	ConsentKey      string          `yaml:"consent_key"`
	ConsentTTL      time.Duration   `yaml:"consent_ttl"`
	TxnIDAttempts   int             `yaml:"txn_id_attempts"`
}

func Defaults() Settings {
	return Settings{
		HTTPAddr:        ":8080",
		SeedPath:        "configs/seed.json",
		LogLevel:        "info",
		Environment:     EnvironmentDevelopment,
		RedirectDelay:   time.Second,
		StartingBalance: decimal.NewFromInt(500),
		ConsentTTL:      5 * 24 * time.Hour,
		TxnIDAttempts:   100,
	}
}

// Load builds the settings. An empty path skips the file.
func Load(path string) (Settings, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read settings %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode settings %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.ConsentKey == "" {
		key, err := randomKey()
		if err != nil {
			return cfg, err
		}
		cfg.ConsentKey = key
	}
	return cfg, cfg.Validate()
}

func (s Settings) Validate() error {
	if s.HTTPAddr == "" {
		return errors.New("config: http_addr required")
	}
	if s.SeedPath == "" {
		return errors.New("config: seed_path required")
	}
	if s.RedirectDelay < 0 {
		return errors.New("config: redirect_delay must not be negative")
	}
	if s.StartingBalance.IsNegative() {
		return errors.New("config: starting_balance must not be negative")
	}
	if s.ConsentTTL <= 0 {
		return errors.New("config: consent_ttl must be positive")
	}
	if s.TxnIDAttempts <= 0 {
		return errors.New("config: txn_id_attempts must be positive")
	}
	return nil
}

func applyEnv(cfg *Settings) error {
	cfg.HTTPAddr = getenvDefault("TPP_HTTP_ADDR", cfg.HTTPAddr)
	cfg.SeedPath = getenvDefault("TPP_SEED_PATH", cfg.SeedPath)
	cfg.LogLevel = getenvDefault("TPP_LOG_LEVEL", cfg.LogLevel)
	cfg.Environment = getenvDefault("TPP_ENV", cfg.Environment)
	cfg.ConsentKey = getenvDefault("TPP_CONSENT_KEY", cfg.ConsentKey)

	if v := os.Getenv("TPP_REDIRECT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TPP_REDIRECT_DELAY: %w", err)
		}
		cfg.RedirectDelay = d
	}
	if v := os.Getenv("TPP_CONSENT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TPP_CONSENT_TTL: %w", err)
		}
		cfg.ConsentTTL = d
	}
	if v := os.Getenv("TPP_STARTING_BALANCE"); v != "" {
		b, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("TPP_STARTING_BALANCE: %w", err)
		}
		cfg.StartingBalance = b
	}
	if v := os.Getenv("TPP_TXN_ID_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TPP_TXN_ID_ATTEMPTS: %w", err)
		}
		cfg.TxnIDAttempts = n
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func randomKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate consent key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
