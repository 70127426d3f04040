package domain

// Faixas de classificação de performance por margem operacional média.
// Avaliadas da maior para a menor: a primeira que casar define o tier.
const (
	TierStarPerformer     = "Star Performer"
	TierSolidPerformer    = "Solid Performer"
	TierNeedsImprovement  = "Needs Improvement"
	TierCriticalAttention = "Critical Attention Required"
)

// PerformanceTierFor classifica a margem operacional média de um trimestre.
func PerformanceTierFor(avgOperatingMarginPct float64) string {
	switch {
	case avgOperatingMarginPct >= 25:
		return TierStarPerformer
	case avgOperatingMarginPct >= 15:
		return TierSolidPerformer
	case avgOperatingMarginPct >= 5:
		return TierNeedsImprovement
	default:
		return TierCriticalAttention
	}
}

// UnitPerformance resume o desempenho de uma unidade dentro de um trimestre.
type UnitPerformance struct {
	UnitID   int    `json:"unit_id"`
	UnitName string `json:"unit_name"`
	Vertical string `json:"vertical"`
	Region   string `json:"region"`

	QTDRevenue         float64 `json:"qtd_revenue"`
	QTDOperatingIncome float64 `json:"qtd_operating_income"`
	AvgOperatingMargin float64 `json:"avg_operating_margin_pct"`
	AvgRevenueVariance float64 `json:"avg_revenue_variance"`
	CurrentHeadcount   int     `json:"current_headcount"`

	PerformanceTier string `json:"performance_tier"`
	Months          int    `json:"months"` // meses do trimestre com registro
}

// UnitRankingReport é o ranking de unidades de um trimestre, ordenado por
// margem operacional média decrescente com desempate por unit_id crescente.
type UnitRankingReport struct {
	Quarter string            `json:"quarter"`
	Year    int               `json:"year"`
	Ranking []UnitPerformance `json:"ranking"`
}
