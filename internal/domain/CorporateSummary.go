package domain

// CorporateSummary consolida o P&L de todas as unidades em um mês.
// RevenuePerEmployee fica nulo quando o headcount total do mês é 0.
type CorporateSummary struct {
	Period Period `json:"period"`

	TotalRevenue         float64 `json:"total_revenue"`
	TotalGrossProfit     float64 `json:"total_gross_profit"`
	TotalOperatingIncome float64 `json:"total_operating_income"`
	TotalHeadcount       int     `json:"total_headcount"`

	GrossMarginPct     float64  `json:"corporate_gross_margin_pct"`
	OperatingMarginPct float64  `json:"corporate_operating_margin_pct"`
	RevenuePerEmployee *float64 `json:"revenue_per_employee,omitempty"`

	Units int `json:"units"` // unidades com registro no mês
}

// CorporateSummaryReport é a resposta completa da consolidação corporativa,
// ordenada do mês mais recente para o mais antigo.
type CorporateSummaryReport struct {
	AsOf      Period             `json:"as_of"`
	Summaries []CorporateSummary `json:"summaries"`
}
