package domain

// Classificações de tendência de margem sobre a variação de 6 meses.
const (
	TrendSevereCompression   = "Severe Compression"
	TrendModerateCompression = "Moderate Compression"
	TrendImproving           = "Improving"
	TrendStable              = "Stable"
)

// MarginTrendFor classifica a variação da margem operacional em 6 meses,
// em pontos percentuais.
func MarginTrendFor(change6Mo float64) string {
	switch {
	case change6Mo < -5:
		return TrendSevereCompression
	case change6Mo < -2:
		return TrendModerateCompression
	case change6Mo > 2:
		return TrendImproving
	default:
		return TrendStable
	}
}

// MarginTrend compara a margem operacional corrente de uma unidade com as
// margens de 3 e 6 meses atrás, buscadas por chave de calendário
// (unidade, ano, mês). Quando o mês de referência não existe na série, o
// campo de variação correspondente fica nulo em vez de apontar para um
// registro deslocado.
type MarginTrend struct {
	UnitID   int    `json:"unit_id"`
	UnitName string `json:"unit_name"`
	AsOf     Period `json:"as_of"`

	CurrentMarginPct float64  `json:"current_margin_pct"`
	MarginPct3MoAgo  *float64 `json:"margin_pct_3mo_ago,omitempty"`
	MarginPct6MoAgo  *float64 `json:"margin_pct_6mo_ago,omitempty"`
	Change3Mo        *float64 `json:"margin_change_3mo,omitempty"`
	Change6Mo        *float64 `json:"margin_change_6mo,omitempty"`

	Classification string `json:"classification"`
}
