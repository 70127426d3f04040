package domain

// OperationalMetric representa os indicadores operacionais mensais de uma
// unidade. Nem toda unidade acompanha todos os indicadores: campos ausentes
// no dataset ficam nulos e são tratados como "métrica indisponível" pelos
// cálculos, nunca como zero.
type OperationalMetric struct {
	UnitID   int    `json:"unit_id"`
	UnitName string `json:"unit_name"`
	Period   Period `json:"period"`

	Customers *int `json:"customers,omitempty"`

	// Métricas de receita recorrente (verticais Software e Infrastructure)
	ARR          *float64 `json:"arr,omitempty"`
	MRR          *float64 `json:"mrr,omitempty"`
	ChurnRatePct *float64 `json:"churn_rate_pct,omitempty"`
	NRRPct       *float64 `json:"nrr_pct,omitempty"`

	// Métricas de pipeline (vertical Sales)
	Pipeline    *float64 `json:"pipeline,omitempty"`
	WinRatePct  *float64 `json:"win_rate_pct,omitempty"`
	AvgDealSize *float64 `json:"avg_deal_size,omitempty"`

	// Métricas comuns
	DSODays              *float64 `json:"dso_days,omitempty"`
	CAC                  *float64 `json:"cac,omitempty"`
	LTV                  *float64 `json:"ltv,omitempty"`
	LTVCACRatio          *float64 `json:"ltv_cac_ratio,omitempty"`
	EmployeeSatisfaction *float64 `json:"employee_satisfaction,omitempty"`
}
