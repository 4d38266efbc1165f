package llm

import (
	"bytes"
)

// ExtractJSONObject returns the outermost JSON object in a model reply,
// tolerating markdown code fences and leading or trailing prose.
// It returns nil when the reply holds no object at all.
func ExtractJSONObject(reply []byte) []byte {
	s := bytes.TrimSpace(reply)
	if len(s) == 0 {
		return nil
	}
	if bytes.HasPrefix(s, []byte("```")) {
		s = bytes.TrimPrefix(s, []byte("```"))
		if nl := bytes.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:] // drop the language tag line
		}
		s = bytes.TrimSuffix(bytes.TrimSpace(s), []byte("```"))
		s = bytes.TrimSpace(s)
	}
	start := bytes.IndexByte(s, '{')
	end := bytes.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return nil
	}
	return s[start : end+1]
}
