package llm

import (
	"encoding/json"
	"strings"

	"github.com/joseph-ayodele/contracts-extractor/constants"
)

// BuildUserPrompt is the instruction sent alongside the PDF.
func BuildUserPrompt() string {
	parts := []string{
		"Analise este documento PDF de contrato imobiliário.",
		"Extraia as informações solicitadas nos campos JSON.",
		"",
		"Item 1: Dados do Comprador(a)/Devedor(a) e seu Cônjuge (se houver).",
		"Item 2: Renda Familiar e percentuais. Procure por valores em R$ para renda individual e familiar.",
		"Item 7.1: Do Imóvel Objeto da Venda. Tipo, frações, valores e descrição.",
		"",
		`Se uma informação não for encontrada, retorne uma string vazia ou "` + constants.NotInformed + `".`,
	}
	return strings.Join(parts, "\n")
}

// BuildSystemPrompt is used by providers that take the schema as text rather
// than as a native response constraint.
func BuildSystemPrompt() string {
	parts := []string{
		"You extract fields from Brazilian real-estate purchase contracts.",
		"Return ONLY a JSON object that matches the provided JSON Schema.",
		"Every value is a string copied from the document; keep currency symbols, dates and numbers as written.",
		"Use the exact keys from the schema. Do not add keys. Never output null.",
	}
	return strings.Join(parts, " ")
}

// SchemaMessage renders the schema for inclusion in a system message.
func SchemaMessage(schema map[string]any) string {
	return "JSON Schema:\n" + mustJSON(schema)
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
