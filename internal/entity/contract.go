package entity

// ContractFields is the structured record extracted from one contract PDF.
// Every leaf is free text exactly as the extraction service returned it.
type ContractFields struct {
	Buyer    Buyer    `json:"comprador"`
	Spouse   Spouse   `json:"conjuge"`
	Income   Income   `json:"renda"`
	Property Property `json:"imovel"`
}

// Buyer holds the purchaser (Item 1) data.
type Buyer struct {
	Name              string `json:"nome,omitempty"`
	CivilRegistryName string `json:"nomeRegistroCivil,omitempty"`
	MotherName        string `json:"filiacaoMae,omitempty"`
	Nationality       string `json:"nacionalidade,omitempty"`
	MaritalRegime     string `json:"regimeCasamento,omitempty"`
	IDNumber          string `json:"rg,omitempty"`
	Address           string `json:"endereco,omitempty"`
	Municipality      string `json:"municipio,omitempty"`
	BirthDate         string `json:"dataNascimento,omitempty"`
	MaritalStatus     string `json:"estadoCivil,omitempty"`
	MarriageDate      string `json:"dataCasamento,omitempty"`
	Profession        string `json:"profissao,omitempty"`
}

// Spouse holds the purchaser's spouse data, when there is one.
type Spouse struct {
	Name              string `json:"nome,omitempty"`
	CivilRegistryName string `json:"nomeRegistroCivil,omitempty"`
	Nationality       string `json:"nacionalidade,omitempty"`
	IDNumber          string `json:"rg,omitempty"`
	BirthDate         string `json:"dataNascimento,omitempty"`
	MaritalStatus     string `json:"estadoCivil,omitempty"`
	Profession        string `json:"profissao,omitempty"`
}

// Income holds Item 2.
type Income struct {
	Individual string `json:"rendaIndividual,omitempty"`
	Family     string `json:"rendaFamiliar,omitempty"`
}

// Property holds Item 7.1.
type Property struct {
	UnitType        string `json:"tipoUnidade,omitempty"`
	IdealFraction   string `json:"fracaoIdeal,omitempty"`
	LandAppraisal   string `json:"valorAvaliacaoTerreno,omitempty"`
	UnitDescription string `json:"descricaoUnidade,omitempty"`
}
