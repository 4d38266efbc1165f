package export

import (
	"github.com/joseph-ayodele/contracts-extractor/constants"
	"github.com/joseph-ayodele/contracts-extractor/internal/entity"
)

// Column maps one report header to the record field it shows.
type Column struct {
	Header string
	Value  func(fileName string, d entity.ContractFields) string
}

// Columns is the fixed report layout: file name, buyer (A), spouse (A),
// income (B), property (C).
var Columns = []Column{
	{"Arquivo", func(n string, _ entity.ContractFields) string { return n }},

	{"A - NOME", buyer(func(b entity.Buyer) string { return b.Name })},
	{"A - NOME REGISTRO CIVIL", buyer(func(b entity.Buyer) string { return b.CivilRegistryName })},
	{"A - FILIAÇÃO MÃE", buyer(func(b entity.Buyer) string { return b.MotherName })},
	{"A - NACIONALIDADE", buyer(func(b entity.Buyer) string { return b.Nationality })},
	{"A - REGIME CASAMENTO", buyer(func(b entity.Buyer) string { return b.MaritalRegime })},
	{"A - R.G. N.", buyer(func(b entity.Buyer) string { return b.IDNumber })},
	{"A - ENDEREÇO", buyer(func(b entity.Buyer) string { return b.Address })},
	{"A - MUNICIPIO", buyer(func(b entity.Buyer) string { return b.Municipality })},
	{"A - DATA NASCIMENTO", buyer(func(b entity.Buyer) string { return b.BirthDate })},
	{"A - ESTADO CIVIL", buyer(func(b entity.Buyer) string { return b.MaritalStatus })},
	{"A - DATA DE CASAMENTO", buyer(func(b entity.Buyer) string { return b.MarriageDate })},
	{"A - PROFISSÃO", buyer(func(b entity.Buyer) string { return b.Profession })},

	// Only the spouse name falls back to "N/A"; the other spouse columns stay empty.
	{"A - CÔNJUGE", spouse(func(s entity.Spouse) string {
		if s.Name == "" {
			return constants.MissingSpouseName
		}
		return s.Name
	})},
	{"A - CÔNJUGE REGISTRO CIVIL", spouse(func(s entity.Spouse) string { return s.CivilRegistryName })},
	{"A - CÔNJUGE NACIONALIDADE", spouse(func(s entity.Spouse) string { return s.Nationality })},
	{"A - CÔNJUGE R.G.", spouse(func(s entity.Spouse) string { return s.IDNumber })},
	{"A - CÔNJUGE DATA NASC.", spouse(func(s entity.Spouse) string { return s.BirthDate })},
	{"A - CÔNJUGE EST. CIVIL", spouse(func(s entity.Spouse) string { return s.MaritalStatus })},
	{"A - CÔNJUGE PROFISSÃO", spouse(func(s entity.Spouse) string { return s.Profession })},

	{"B - RENDA INDIVIDUAL", income(func(i entity.Income) string { return i.Individual })},
	{"B - RENDA FAMILIAR", income(func(i entity.Income) string { return i.Family })},

	{"C - TIPO DA UNIDADE", property(func(p entity.Property) string { return p.UnitType })},
	{"C - FRAÇÃO IDEAL", property(func(p entity.Property) string { return p.IdealFraction })},
	{"C - VAL. AVAL. FRAÇÃO TERRENO", property(func(p entity.Property) string { return p.LandAppraisal })},
	{"C - DESCRIÇÃO DA UNIDADE", property(func(p entity.Property) string { return p.UnitDescription })},
}

// Headers returns the report header row.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}

func buyer(f func(entity.Buyer) string) func(string, entity.ContractFields) string {
	return func(_ string, d entity.ContractFields) string { return f(d.Buyer) }
}

func spouse(f func(entity.Spouse) string) func(string, entity.ContractFields) string {
	return func(_ string, d entity.ContractFields) string { return f(d.Spouse) }
}

func income(f func(entity.Income) string) func(string, entity.ContractFields) string {
	return func(_ string, d entity.ContractFields) string { return f(d.Income) }
}

func property(f func(entity.Property) string) func(string, entity.ContractFields) string {
	return func(_ string, d entity.ContractFields) string { return f(d.Property) }
}
