package llm

// SchemaField is one leaf of the extraction schema. All leaves are strings.
type SchemaField struct {
	Key         string
	Description string
}

// SchemaGroup is one top-level object of the extraction schema.
type SchemaGroup struct {
	Key         string
	Description string
	Fields      []SchemaField
}

// ContractGroups is the fixed extraction contract, in output order.
var ContractGroups = []SchemaGroup{
	{
		Key: "comprador",
		Fields: []SchemaField{
			{Key: "nome", Description: "Nome completo do comprador"},
			{Key: "nomeRegistroCivil", Description: "Nome como consta no registro civil, se diferente"},
			{Key: "filiacaoMae", Description: "Nome da mãe"},
			{Key: "nacionalidade"},
			{Key: "regimeCasamento"},
			{Key: "rg", Description: "Número do RG"},
			{Key: "endereco", Description: "Endereço completo"},
			{Key: "municipio"},
			{Key: "dataNascimento"},
			{Key: "estadoCivil"},
			{Key: "dataCasamento"},
			{Key: "profissao"},
		},
	},
	{
		Key:         "conjuge",
		Description: "Dados do cônjuge, se houver",
		Fields: []SchemaField{
			{Key: "nome"},
			{Key: "nomeRegistroCivil"},
			{Key: "nacionalidade"},
			{Key: "rg"},
			{Key: "dataNascimento"},
			{Key: "estadoCivil"},
			{Key: "profissao"},
		},
	},
	{
		Key: "renda",
		Fields: []SchemaField{
			{Key: "rendaIndividual", Description: "Renda do cliente identificada pelo R$"},
			{Key: "rendaFamiliar", Description: "Renda familiar total"},
		},
	},
	{
		Key: "imovel",
		Fields: []SchemaField{
			{Key: "tipoUnidade"},
			{Key: "fracaoIdeal"},
			{Key: "valorAvaliacaoTerreno", Description: "Valor de avaliação da fração do terreno"},
			{Key: "descricaoUnidade", Description: "Descrição completa da unidade"},
		},
	},
}

// BuildContractJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// Providers receive it as a structured output constraint and we use it locally to validate.
// No field is required: the model may omit anything it cannot find.
func BuildContractJSONSchema() map[string]any {
	props := make(map[string]any, len(ContractGroups))
	for _, g := range ContractGroups {
		props[g.Key] = groupSchema(g)
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func groupSchema(g SchemaGroup) map[string]any {
	fields := make(map[string]any, len(g.Fields))
	for _, f := range g.Fields {
		fields[f.Key] = stringProp(f.Description)
	}
	out := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           fields,
	}
	if g.Description != "" {
		out["description"] = g.Description
	}
	return out
}

func stringProp(desc string) map[string]any {
	p := map[string]any{"type": "string"}
	if desc != "" {
		p["description"] = desc
	}
	return p
}

// GroupKeys lists the top-level keys in output order.
func GroupKeys() []string {
	keys := make([]string, 0, len(ContractGroups))
	for _, g := range ContractGroups {
		keys = append(keys, g.Key)
	}
	return keys
}

// FieldKeys lists the leaf keys of group in output order, or nil if group is unknown.
func FieldKeys(group string) []string {
	for _, g := range ContractGroups {
		if g.Key != group {
			continue
		}
		keys := make([]string, 0, len(g.Fields))
		for _, f := range g.Fields {
			keys = append(keys, f.Key)
		}
		return keys
	}
	return nil
}
