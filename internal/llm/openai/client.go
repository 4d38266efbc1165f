package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm"
)

var _ llm.FieldExtractor = (*Client)(nil)

// ExtractFields implements llm.FieldExtractor using chat/completions with the
// PDF attached as a file content part.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (entity.ContractFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	if strings.TrimSpace(c.cfg.APIKey) == "" {
		c.log.Error("llm.extract.missing_api_key", "req_id", rid, "file", req.FileName)
		return entity.ContractFields{}, nil, common.ConfigError(common.ErrMissingAPIKey)
	}

	c.log.Info("llm.extract.start", append([]any{
		"req_id", rid,
		"provider", common.ProviderOpenAI,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"file", req.FileName,
		"bytes", len(req.Data),
		"pages", req.Pages,
	}, common.LogAttrs(ctx)...)...)

	schema := llm.BuildContractJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": []map[string]any{
				{
					"type": "file",
					"file": map[string]any{
						"filename":  req.FileName,
						"file_data": req.DataURL(),
					},
				},
				{"type": "text", "text": llm.BuildUserPrompt()},
			}},
			{"role": "system", "content": llm.SchemaMessage(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, httpErr := llm.SendJSON(ctx, c.httpClient, rid, endpoint, body, headers, c.log)
	if httpErr != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "status", status, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ContractFields{}, raw, common.TransportError(httpErr)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ContractFields{}, raw, common.ParseError("decode openai response", err)
	}
	if len(cc.Choices) == 0 || strings.TrimSpace(cc.Choices[0].Message.Content) == "" {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ContractFields{}, raw, common.ParseError("no content in openai response", common.ErrEmptyResponse)
	}

	out, cleaned, err := llm.DecodeContract([]byte(cc.Choices[0].Message.Content), c.log)
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

func (c *Client) String() string {
	return fmt.Sprintf("openai(%s)", c.cfg.Model)
}
