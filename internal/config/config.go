package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Symbols struct {
		File   string `yaml:"file" default:"EQUITY_L.csv" validate:"required"`
		Column string `yaml:"column" default:"SYMBOL" validate:"required"`
	} `yaml:"symbols"`
	Provider struct {
		Name    string        `yaml:"name" default:"yahoo" validate:"oneof=yahoo financego mock"`
		BaseURL string        `yaml:"base_url" default:"https://query1.finance.yahoo.com" validate:"omitempty,url"`
		Suffix  string        `yaml:"suffix" default:".NS"`
		Timeout time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
	} `yaml:"provider"`
	Session struct {
		Timezone string `yaml:"timezone" default:"Asia/Kolkata" validate:"required"`
		Open     string `yaml:"open" default:"09:15" validate:"datetime=15:04"`
		Close    string `yaml:"close" default:"15:30" validate:"datetime=15:04"`
		PreClose string `yaml:"pre_close" default:"15:15" validate:"datetime=15:04"`
	} `yaml:"session"`
	Export struct {
		Filename string `yaml:"filename" default:"data.csv" validate:"required"`
	} `yaml:"export"`
	Server struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8501" validate:"min=1,max=65535"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// suffixNone stands for bare tickers, since an empty suffix takes the default.
const suffixNone = "none"

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file yields an all-defaults config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKSCOPE_PROVIDER"); v != "" {
		cfg.Provider.Name = v
	}
	if v := os.Getenv("SYMBOLS_FILE"); v != "" {
		cfg.Symbols.File = v
	}
	if v, ok := os.LookupEnv("SYMBOL_SUFFIX"); ok {
		if v == "" {
			v = suffixNone
		}
		cfg.Provider.Suffix = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	// Defaults
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if cfg.Provider.Suffix == suffixNone {
		cfg.Provider.Suffix = ""
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
