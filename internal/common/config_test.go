package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "HTTP_ADDR", "MAX_UPLOAD_MB",
		"LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "LLM_TEMPERATURE", "LLM_TIMEOUT",
		"API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY", "EXPORT_DIR",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Success case - defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
		assert.Equal(t, 32, cfg.Server.MaxUploadMB)
		assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
		assert.Equal(t, 2*time.Minute, cfg.LLM.Timeout)
		assert.Equal(t, ".", cfg.Export.Dir)
		assert.False(t, cfg.HasAPIKey())
	})

	t.Run("Success case - file overrides defaults", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, `
server:
  http_addr: ":9090"
llm:
  provider: openai
  model: gpt-4o
  api_key: from-file
  timeout: 45s
export:
  dir: /tmp/reports
`)

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
		assert.Equal(t, 32, cfg.Server.MaxUploadMB)
		assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
		assert.Equal(t, "gpt-4o", cfg.LLM.Model)
		assert.Equal(t, "from-file", cfg.LLM.APIKey)
		assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
		assert.Equal(t, "/tmp/reports", cfg.Export.Dir)
	})

	t.Run("Success case - environment wins over file", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "llm:\n  provider: gemini\n  api_key: from-file\n")
		t.Setenv("LLM_PROVIDER", "OpenAI")
		t.Setenv("API_KEY", "generic")
		t.Setenv("OPENAI_API_KEY", "specific")
		t.Setenv("LLM_TEMPERATURE", "0.3")
		t.Setenv("MAX_UPLOAD_MB", "not-a-number")

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
		assert.Equal(t, "specific", cfg.LLM.APIKey)
		assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-6)
		assert.Equal(t, 32, cfg.Server.MaxUploadMB)
	})

	t.Run("Success case - generic key when no provider key is set", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("API_KEY", "generic")
		t.Setenv("OPENAI_API_KEY", "ignored-for-gemini")

		cfg, err := LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, "generic", cfg.LLM.APIKey)
	})

	t.Run("Success case - CONFIG_FILE is used when no path is given", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", writeConfig(t, "export:\n  dir: out\n"))

		cfg, err := LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, "out", cfg.Export.Dir)
	})

	t.Run("Error case - missing file", func(t *testing.T) {
		clearEnv(t)

		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

		require.Error(t, err)
		assert.Equal(t, CodeConfig, CodeOf(err))
	})

	t.Run("Error case - malformed YAML", func(t *testing.T) {
		clearEnv(t)

		_, err := LoadConfig(writeConfig(t, "server: [unclosed"))

		require.Error(t, err)
		assert.Equal(t, CodeConfig, CodeOf(err))
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Success case - defaults without an API key", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("Error case - unknown provider", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.LLM.Provider = "anthropic"

		err := cfg.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, CodeConfig, CodeOf(err))
		assert.Contains(t, err.Error(), "llm.provider")
	})

	t.Run("Error case - several problems reported together", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Server.HTTPAddr = " "
		cfg.Server.MaxUploadMB = 0
		cfg.LLM.Temperature = 3

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.http_addr")
		assert.Contains(t, err.Error(), "server.max_upload_mb")
		assert.Contains(t, err.Error(), "llm.temperature")
	})
}
