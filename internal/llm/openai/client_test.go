package openai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/contracts-extractor/constants"
	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/llm"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRequest() llm.ExtractRequest {
	return llm.ExtractRequest{
		FileName: "contrato.pdf",
		MIMEType: constants.MIMETypePDF,
		Data:     []byte("%PDF-1.4"),
		Base64:   "JVBERi0xLjQ=",
		Pages:    3,
	}
}

func chatResponse(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(b)
}

func TestClient_ExtractFields(t *testing.T) {
	t.Run("Success case - sends the PDF as a file part and decodes the reply", func(t *testing.T) {
		var body map[string]any
		var auth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			auth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, _ = io.WriteString(w, chatResponse(`{"comprador":{"nome":"Ana"},"renda":{"rendaFamiliar":8000}}`))
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-4o-mini"}, quietLogger())

		out, raw, err := c.ExtractFields(context.Background(), sampleRequest())

		require.NoError(t, err)
		assert.Equal(t, "Ana", out.Buyer.Name)
		assert.Equal(t, "8000", out.Income.Family)
		assert.JSONEq(t, `{"comprador":{"nome":"Ana"},"renda":{"rendaFamiliar":"8000"}}`, string(raw))

		assert.Equal(t, "Bearer sk-test", auth)
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
		msgs := body["messages"].([]any)
		require.Len(t, msgs, 3)
		user := msgs[1].(map[string]any)
		parts := user["content"].([]any)
		file := parts[0].(map[string]any)["file"].(map[string]any)
		assert.Equal(t, "contrato.pdf", file["filename"])
		assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjQ=", file["file_data"])
		assert.Contains(t, parts[1].(map[string]any)["text"], "Item 7.1")
		assert.Contains(t, msgs[2].(map[string]any)["content"], "JSON Schema")
	})

	t.Run("Error case - missing API key fails before any request", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer srv.Close()

		c := NewClient(Config{BaseURL: srv.URL}, quietLogger())

		for i := 0; i < 2; i++ {
			_, _, err := c.ExtractFields(context.Background(), sampleRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrMissingAPIKey)
			assert.Equal(t, common.CodeConfig, common.CodeOf(err))
		}
		assert.Zero(t, hits.Load())
	})

	t.Run("Error case - service error is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":{"message":"rate limited"}}`)
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, quietLogger())

		_, _, err := c.ExtractFields(context.Background(), sampleRequest())

		require.Error(t, err)
		assert.Equal(t, common.CodeTransport, common.CodeOf(err))
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("Error case - client timeout is a transport error", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, quietLogger())

		_, _, err := c.ExtractFields(context.Background(), sampleRequest())

		require.Error(t, err)
		assert.Equal(t, common.CodeTransport, common.CodeOf(err))
	})

	t.Run("Error case - empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"choices":[]}`)
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, quietLogger())

		_, _, err := c.ExtractFields(context.Background(), sampleRequest())

		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrEmptyResponse)
	})

	t.Run("Success case - group answered as a plain string is treated as absent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, chatResponse(`{"comprador":{"nome":"Ana"},"conjuge":"Não informado"}`))
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, quietLogger())

		out, _, err := c.ExtractFields(context.Background(), sampleRequest())

		require.NoError(t, err)
		assert.Equal(t, "Ana", out.Buyer.Name)
		assert.Empty(t, out.Spouse.Name)
	})

	t.Run("Error case - reply without a JSON object", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, chatResponse(`Não encontrei dados.`))
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, quietLogger())

		_, _, err := c.ExtractFields(context.Background(), sampleRequest())

		require.Error(t, err)
		assert.Equal(t, common.CodeParse, common.CodeOf(err))
	})
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{}, nil)

	assert.Equal(t, DefaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, DefaultModel, c.Model())
	assert.Equal(t, 2*time.Minute, c.httpClient.Timeout)
}
