package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"readTimeout"`
		WriteTimeout    time.Duration `yaml:"writeTimeout"`
		IdleTimeout     time.Duration `yaml:"idleTimeout"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
		AllowedOrigins  []string      `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`

	Model struct {
		Provider         string `yaml:"provider"`
		APIKey           string `yaml:"apiKey"`
		BaseURL          string `yaml:"baseURL"`
		Name             string `yaml:"name"`
		SearchName       string `yaml:"searchName"`
		MaxTokens        int    `yaml:"maxTokens"`
		WebSearchMaxUses int    `yaml:"webSearchMaxUses"`
	} `yaml:"model"`

	Strategies struct {
		PageSnapshot     bool          `yaml:"pageSnapshot"`
		SnapshotMaxBytes int64         `yaml:"snapshotMaxBytes"`
		SnapshotTimeout  time.Duration `yaml:"snapshotTimeout"`
	} `yaml:"strategies"`
}

// Load reads the YAML file at path (a missing file is fine), then applies
// .env and environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	// .env is a local convenience; deployments set real env vars
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MODEL_PROVIDER"); v != "" {
		c.Model.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("MODEL_NAME"); v != "" {
		c.Model.Name = v
	}
	if c.Model.APIKey == "" {
		switch c.provider() {
		case ProviderOpenAI:
			c.Model.APIKey = os.Getenv("OPENAI_API_KEY")
		default:
			c.Model.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	// model calls with web search can run well past a minute
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 3 * time.Minute
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Model.Provider = c.provider()
	if c.Model.MaxTokens == 0 {
		c.Model.MaxTokens = 4096
	}
}

func (c *Config) provider() string {
	if c.Model.Provider == "" {
		return ProviderAnthropic
	}
	return c.Model.Provider
}

func (c *Config) Validate() error {
	switch c.Model.Provider {
	case ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Model.MaxTokens < 0 {
		return fmt.Errorf("model maxTokens must be positive")
	}
	return nil
}

// HasCredential reports whether a model API key is available.
func (c *Config) HasCredential() bool {
	return c.Model.APIKey != ""
}
