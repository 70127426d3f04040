package domain

import "time"

// Severity classifica a criticidade de um alerta executivo.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Rank ordena severidades para apresentação: HIGH antes de MEDIUM antes de LOW.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

// Tipos de alerta produzidos pelo motor de alertas. A ordem de avaliação das
// regras define qual tipo prevalece quando mais de uma condição dispara.
const (
	AlertRevenueBelowBudget  = "Revenue Significantly Below Budget"
	AlertMarginBelowTarget   = "Operating Margin Below Target"
	AlertExcessiveContractor = "Excessive Contractor Spend"
	AlertHighDSO             = "Collections Issue - High DSO"
	AlertNoMajorIssues       = "No Major Issues"
)

// ExecutiveAlert é um alerta derivado pelo motor de alertas a partir do
// período mais recente de cada unidade. Nunca é persistido como estado
// autoritativo: é recalculado a cada passada sobre o snapshot corrente.
type ExecutiveAlert struct {
	ID              string   `json:"id"`
	UnitID          int      `json:"unit_id"`
	UnitName        string   `json:"unit_name"`
	Period          Period   `json:"period"`
	AlertType       string   `json:"alert_type"`
	Severity        Severity `json:"severity"`
	FinancialImpact float64  `json:"financial_impact"`
	Recommendation  string   `json:"recommendation"`
	Owner           string   `json:"owner"`

	// Valores que sustentam o alerta, para leitura no painel
	RevenueVariance    float64  `json:"revenue_variance"`
	OperatingMarginPct float64  `json:"operating_margin_pct"`
	ContractorPct      float64  `json:"contractor_pct"`
	DSODays            *float64 `json:"dso_days,omitempty"`
}

// AlertCounts totaliza os alertas derivados por severidade.
type AlertCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// AlertReport é a saída completa do motor de alertas sobre um snapshot,
// ordenada por severidade (HIGH, MEDIUM, LOW) com ordem estável dentro de
// cada faixa.
type AlertReport struct {
	AsOf   Period           `json:"as_of"`
	Alerts []ExecutiveAlert `json:"alerts"`
	Counts AlertCounts      `json:"counts"`
}

// CuratedAlert é uma linha da tabela executive_alerts.csv: alertas redigidos
// manualmente pelos cenários do gerador, servidos como dado de referência e
// distintos da saída do motor de alertas.
type CuratedAlert struct {
	AlertID           int       `json:"alert_id"`
	UnitID            int       `json:"unit_id"`
	UnitName          string    `json:"unit_name"`
	Severity          Severity  `json:"severity"`
	Category          string    `json:"category"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	FinancialImpact   float64   `json:"financial_impact"`
	RecommendedAction string    `json:"recommended_action"`
	Owner             string    `json:"owner"`
	DateRaised        time.Time `json:"date_raised"`
	Status            string    `json:"status"`
}
