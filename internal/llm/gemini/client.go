package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm"
)

var _ llm.FieldExtractor = (*Client)(nil)

// ExtractFields implements llm.FieldExtractor. The PDF travels as inline
// data next to the instruction text; the response is constrained to JSON
// matching the extraction schema.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (entity.ContractFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	client, err := c.genaiClient(ctx)
	if err != nil {
		c.log.Error("llm.extract.client_error", "req_id", rid, "file", req.FileName, "error", err)
		return entity.ContractFields{}, nil, err
	}

	schema, err := ResponseSchema()
	if err != nil {
		return entity.ContractFields{}, nil, common.ConfigError(err)
	}

	c.log.Info("llm.extract.start", append([]any{
		"req_id", rid,
		"provider", common.ProviderGemini,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"file", req.FileName,
		"bytes", len(req.Data),
		"pages", req.Pages,
	}, common.LogAttrs(ctx)...)...)

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.cfg.Temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(req.Data, req.MIMEType),
			genai.NewPartFromText(llm.BuildUserPrompt()),
		}, genai.RoleUser),
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := client.Models.GenerateContent(callCtx, c.cfg.Model, contents, config)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ContractFields{}, nil, common.TransportError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		c.log.Error("llm.extract.no_candidates",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ContractFields{}, nil, common.ParseError("no data returned from Gemini", common.ErrEmptyResponse)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		c.log.Error("llm.extract.empty_text",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ContractFields{}, nil, common.ParseError("no data returned from Gemini", common.ErrEmptyResponse)
	}

	out, cleaned, err := llm.DecodeContract([]byte(text), c.log)
	if err != nil {
		c.log.Error("llm.extract.parse_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ContractFields{}, cleaned, err
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"file", req.FileName,
		"buyer", out.Buyer.Name,
		"has_spouse", out.Spouse.Name != "",
		"unit_type", out.Property.UnitType,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, cleaned, nil
}

// genaiClient returns the shared genai client, creating it on first use.
// A missing API key is reported on every call, before any network traffic.
func (c *Client) genaiClient(ctx context.Context) (*genai.Client, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, common.ConfigError(common.ErrMissingAPIKey)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     c.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, common.ConfigError(fmt.Errorf("create Gemini client: %w", err))
	}
	c.client = client
	return client, nil
}
