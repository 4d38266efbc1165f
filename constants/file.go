package constants

// MIMETypePDF is the only content type accepted at intake.
const MIMETypePDF = "application/pdf"

// Report output.
const (
	ReportFileName  = "Relatorio_Extracao_Imoveis.xlsx"
	ReportSheetName = "Relatório Dados"
	ReportMIMEType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Fallback markers.
const (
	// MissingSpouseName is written in place of an absent spouse name. Other absent
	// fields are exported as empty strings.
	MissingSpouseName = "N/A"
	// NotInformed is what the model is told to return for fields it cannot find.
	NotInformed = "Não informado"
	// ExtractionFailed is the job message used when a failure carries no text.
	ExtractionFailed = "Falha na extração"
)
