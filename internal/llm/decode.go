package llm

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/joseph-ayodele/contracts-extractor/internal/common"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
)

// DecodeContract turns a raw model reply into ContractFields. The reply is
// untrusted: it is located, sanitized and validated against
// BuildContractJSONSchema before decoding. The returned bytes are the
// sanitized JSON (or the best raw form available on failure).
func DecodeContract(reply []byte, logger *slog.Logger) (entity.ContractFields, []byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	obj := ExtractJSONObject(reply)
	if obj == nil {
		if len(bytes.TrimSpace(reply)) == 0 {
			return entity.ContractFields{}, nil, common.ParseError("empty response", common.ErrEmptyResponse)
		}
		return entity.ContractFields{}, reply, common.ParseError("response holds no JSON object", common.ErrEmptyResponse)
	}

	cleaned, _, err := NormalizeAndSanitizeJSON(obj, logger)
	if err != nil {
		return entity.ContractFields{}, obj, common.ParseError("response is not valid JSON", err)
	}

	if err := ValidateContractJSON(cleaned); err != nil {
		logger.Error("llm.extract.schema_validation_failed", "error", err, "content", string(cleaned))
		return entity.ContractFields{}, cleaned, common.ParseError("response does not match schema", err)
	}

	var out entity.ContractFields
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return entity.ContractFields{}, cleaned, common.ParseError("unmarshal fields", err)
	}
	return out, cleaned, nil
}
