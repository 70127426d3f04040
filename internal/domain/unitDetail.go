package domain

// UnitDetail agrega tudo que o painel exibe para uma unidade: a linha de
// referência, a série mensal de P&L, as métricas operacionais e a alocação
// de recursos. Métricas e alocação são junções opcionais: quando ausentes no
// dataset ficam nulas, sem erro.
type UnitDetail struct {
	Unit       BusinessUnit        `json:"unit"`
	PnL        []MonthlyRecord     `json:"pnl"`
	Metrics    []OperationalMetric `json:"metrics,omitempty"`
	Allocation *ResourceAllocation `json:"allocation,omitempty"`
}
