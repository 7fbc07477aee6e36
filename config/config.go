package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/compound/analysis"
	"github.com/rustyeddy/compound/currency"
	"github.com/rustyeddy/compound/notify"
	"github.com/rustyeddy/compound/plan"
	"github.com/rustyeddy/compound/store"
)

// Config is the complete application configuration.
type Config struct {
	Plan     plan.Settings         `json:"plan" yaml:"plan"`
	Store    store.Options         `json:"store" yaml:"store"`
	Analysis analysis.Config       `json:"analysis" yaml:"analysis"`
	Telegram notify.TelegramConfig `json:"telegram" yaml:"telegram"`
	Server   ServerConfig          `json:"server" yaml:"server"`
	Logging  LoggingConfig         `json:"logging" yaml:"logging"`
	Currency string                `json:"currency" yaml:"currency"` // display currency
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// Environment variables consulted by LoadEnv, in order of preference.
var (
	APIKeyEnv        = []string{"COMPOUND_API_KEY", "API_KEY"}
	TelegramTokenEnv = []string{"COMPOUND_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN"}
)

// LoadFromFile loads configuration from a YAML or JSON file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// JSON field names differ from the YAML ones, so .json files are never
	// read as YAML. Anything else tries YAML first and falls back to JSON.
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		*cfg = Config{}
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", jerr)
		}
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// setDefaults fills zero values from Default. Plan settings are taken as a
// whole when the file has no plan section.
func setDefaults(cfg *Config) {
	def := Default()

	if cfg.Plan == (plan.Settings{}) {
		cfg.Plan = def.Plan
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = def.Store.Type
		if cfg.Store.Path == "" {
			cfg.Store.Path = def.Store.Path
		}
	}
	if cfg.Store.Prefix == "" && cfg.Store.Type == "redis" {
		cfg.Store.Prefix = "compound:"
	}
	if cfg.Analysis.Model == "" {
		cfg.Analysis.Model = def.Analysis.Model
	}
	if cfg.Analysis.Timeout <= 0 {
		cfg.Analysis.Timeout = def.Analysis.Timeout
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}
}

// LoadEnv reads .env files (missing files are ignored) and fills secrets the
// config file left empty.
func (c *Config) LoadEnv(files ...string) {
	_ = godotenv.Load(files...)

	if c.Analysis.APIKey == "" {
		c.Analysis.APIKey = firstEnv(APIKeyEnv)
	}
	if c.Telegram.BotToken == "" {
		c.Telegram.BotToken = firstEnv(TelegramTokenEnv)
	}
}

func firstEnv(keys []string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := plan.Check(c.Plan).Err(); err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if _, err := currency.Parse(c.Currency); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	// The bot token may still arrive through LoadEnv.
	if c.Telegram.Enabled && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat_id required when enabled")
	}
	return nil
}

// DisplayCurrency is the parsed display currency, USD when unset or unknown.
func (c *Config) DisplayCurrency() currency.Code {
	code, err := currency.Parse(c.Currency)
	if err != nil {
		return currency.Canonical
	}
	return code
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Plan: plan.DefaultSettings(),
		Store: store.Options{
			Type: "sqlite",
			Path: "./compound.sqlite",
		},
		Analysis: analysis.Config{
			Model:   "gpt-4o-mini",
			Timeout: 60 * time.Second,
		},
		Server:   ServerConfig{Addr: ":8080"},
		Logging:  LoggingConfig{Level: "info"},
		Currency: string(currency.USD),
	}
}
