// Package provider builds the configured extraction client.
package provider

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm/gemini"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm/openai"
)

// NewExtractor returns the client for cfg.Provider. A missing API key is not
// an error here; the returned client rejects every call instead.
func NewExtractor(cfg common.LLMConfig, logger *slog.Logger) (llm.FieldExtractor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Provider {
	case common.ProviderGemini, "":
		c := gemini.NewClient(gemini.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
		logger.Info("llm.provider.ready", "provider", common.ProviderGemini, "model", c.Model(), "has_api_key", cfg.APIKey != "")
		return c, nil
	case common.ProviderOpenAI:
		c := openai.NewClient(openai.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
		logger.Info("llm.provider.ready", "provider", common.ProviderOpenAI, "model", c.Model(), "has_api_key", cfg.APIKey != "")
		return c, nil
	default:
		return nil, common.NewAppError(common.CodeConfig,
			fmt.Sprintf("unknown llm provider %q", cfg.Provider), common.ErrInvalidInput)
	}
}
