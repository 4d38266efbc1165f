package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// NormalizeAndSanitizeJSON
// - Coerces numbers and booleans to strings (income is often returned as a number)
// - Drops null leaves
// - Trims strings
// - Removes unknown groups and unknown keys inside groups
// - Drops groups that are not objects ("conjuge": "Não informado"), so an
//   absent spouse reads as no spouse data
// Only a top-level value that is not an object is an error.
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}
	if m == nil {
		return nil, nil, fmt.Errorf("sanitize: top-level value is not an object")
	}

	dropped := make([]string, 0, 8)
	groups := GroupKeys()

	for k, v := range m {
		if !slices.Contains(groups, k) {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
			continue
		}
		switch g := v.(type) {
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		case map[string]any:
			dropped = append(dropped, sanitizeGroup(k, g)...)
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		slices.Sort(dropped)
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}

func sanitizeGroup(group string, g map[string]any) []string {
	var dropped []string
	allowed := FieldKeys(group)
	for k, v := range g {
		path := group + "." + k
		if !slices.Contains(allowed, k) {
			delete(g, k)
			dropped = append(dropped, path+"(unknown)")
			continue
		}
		switch t := v.(type) {
		case string:
			g[k] = strings.TrimSpace(t)
		case json.Number:
			g[k] = t.String()
		case float64:
			g[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			g[k] = strconv.FormatBool(t)
		case nil:
			delete(g, k)
			dropped = append(dropped, path+"(null)")
		default:
			// unexpected type -> drop
			delete(g, k)
			dropped = append(dropped, path+"(type)")
		}
	}
	return dropped
}
