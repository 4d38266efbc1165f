package gemini

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Config for the Gemini client.
type Config struct {
	APIKey      string        // empty: every call fails with a config error
	BaseURL     string        // override for the Gemini API endpoint (tests, proxies)
	Model       string        // default gemini-2.5-flash
	Temperature float32       // 0..2
	Timeout     time.Duration // per-request timeout
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger

	mu     sync.Mutex
	client *genai.Client
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

// Model reports the configured model name.
func (c *Client) Model() string { return c.cfg.Model }
