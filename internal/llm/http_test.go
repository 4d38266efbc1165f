package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
)

func TestSendJSON(t *testing.T) {
	t.Run("Success case - one request id across request and response logs", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `{"ok":true}`)
		}))
		defer srv.Close()
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		ctx := common.WithRunID(context.Background(), "run-1")

		raw, status, err := SendJSON(ctx, srv.Client(), "call-1", srv.URL, map[string]string{"a": "b"},
			map[string]string{"Authorization": "Bearer k"}, logger)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"ok":true}`, string(raw))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		for _, line := range lines {
			var rec map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &rec))
			assert.Equal(t, "call-1", rec["req_id"])
		}
		assert.Contains(t, lines[0], `"run_id":"run-1"`)
	})

	t.Run("Error case - non-2xx keeps the body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, `upstream down`)
		}))
		defer srv.Close()

		raw, status, err := SendJSON(context.Background(), srv.Client(), "", srv.URL, struct{}{}, nil, quietLogger())

		require.Error(t, err)
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, "upstream down", string(raw))
		assert.Contains(t, err.Error(), "502")
	})
}
