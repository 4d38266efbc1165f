package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported extraction providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
	Export ExportConfig `yaml:"export"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr    string `yaml:"http_addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

// LLMConfig holds extraction-service configuration
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ExportConfig holds report output configuration
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:    ":8080",
			MaxUploadMB: 32,
		},
		LLM: LLMConfig{
			Provider:    ProviderGemini,
			Temperature: 0.0,
			Timeout:     2 * time.Minute,
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

// LoadConfig loads configuration from defaults, an optional YAML file and
// environment variables, in that order of precedence (env wins).
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return NewAppError(CodeConfig, "read config file "+path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return NewAppError(CodeConfig, "parse config file "+path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.HTTPAddr = getEnv("HTTP_ADDR", c.Server.HTTPAddr)
	c.Server.MaxUploadMB = getEnvAsInt("MAX_UPLOAD_MB", c.Server.MaxUploadMB)

	c.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", c.LLM.Provider))
	c.LLM.Model = getEnv("LLM_MODEL", c.LLM.Model)
	c.LLM.BaseURL = getEnv("LLM_BASE_URL", c.LLM.BaseURL)
	c.LLM.Temperature = getEnvAsFloat32("LLM_TEMPERATURE", c.LLM.Temperature)
	c.LLM.Timeout = getEnvAsDuration("LLM_TIMEOUT", c.LLM.Timeout)

	// Provider-specific keys take precedence over the generic one.
	key := getEnv("API_KEY", c.LLM.APIKey)
	switch c.LLM.Provider {
	case ProviderGemini:
		key = getEnv("GEMINI_API_KEY", key)
	case ProviderOpenAI:
		key = getEnv("OPENAI_API_KEY", key)
	}
	c.LLM.APIKey = key

	c.Export.Dir = getEnv("EXPORT_DIR", c.Export.Dir)
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration. A missing API key is not an
// error here: every extraction call fails fast on it instead.
func (c *Config) Validate() error {
	v := NewValidator().
		Field("server.http_addr", c.Server.HTTPAddr, Required).
		Field("llm.provider", c.LLM.Provider, Required, OneOf(ProviderGemini, ProviderOpenAI)).
		Field("server.max_upload_mb", c.Server.MaxUploadMB, Positive).
		Field("export.dir", c.Export.Dir, Required)
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		v.Add(ValidationError{Field: "llm.temperature", Value: c.LLM.Temperature, Message: "must be between 0 and 2"})
	}
	if err := v.Error(); err != nil {
		return NewAppError(CodeConfig, "invalid configuration", fmt.Errorf("%w: %v", ErrInvalidInput, err))
	}
	return nil
}

// HasAPIKey reports whether an extraction credential is configured.
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.LLM.APIKey) != ""
}
