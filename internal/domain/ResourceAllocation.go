package domain

import "github.com/vfg2006/executive-ops-api/pkg/utils"

// ResourceAllocation representa a alocação anual de orçamento e headcount de
// uma unidade de negócio. Uma linha por unidade por ciclo de planejamento.
type ResourceAllocation struct {
	UnitID   int    `json:"unit_id"`
	UnitName string `json:"unit_name"`

	AnnualBudget float64 `json:"annual_budget"`
	Q1Spend      float64 `json:"q1_spend"`
	Q2Spend      float64 `json:"q2_spend"`
	Q3Spend      float64 `json:"q3_spend"`
	Q4Projected  float64 `json:"q4_projected"`

	TotalHeadcount       int `json:"total_headcount"`
	EngineeringHeadcount int `json:"engineering_headcount"`
	SalesHeadcount       int `json:"sales_headcount"`
	MarketingHeadcount   int `json:"marketing_headcount"`
	OpsHeadcount         int `json:"ops_headcount"`

	ContractorFTE float64 `json:"contractor_fte"`
	AvgSalary     float64 `json:"avg_salary"`
	OpenPositions int     `json:"open_positions"`
}

// YTDSpend soma os gastos realizados dos três primeiros trimestres.
func (a ResourceAllocation) YTDSpend() float64 {
	return a.Q1Spend + a.Q2Spend + a.Q3Spend
}

// BudgetUtilizationPct calcula o percentual do orçamento anual já consumido.
// Retorna 0 quando o orçamento é 0.
func (a ResourceAllocation) BudgetUtilizationPct() float64 {
	if a.AnnualBudget == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(100 * a.YTDSpend() / a.AnnualBudget)
}

// ProjectedFullYearSpend soma o realizado com a projeção do Q4.
func (a ResourceAllocation) ProjectedFullYearSpend() float64 {
	return a.YTDSpend() + a.Q4Projected
}

// AllocationOverview é a linha de alocação enriquecida com os derivados de
// utilização de orçamento exibidos no painel.
type AllocationOverview struct {
	ResourceAllocation

	YTDSpendTotal          float64 `json:"ytd_spend"`
	BudgetUtilization      float64 `json:"budget_utilization_pct"`
	ProjectedFullYearTotal float64 `json:"projected_full_year_spend"`
}

// NewAllocationOverview calcula os derivados de uma alocação.
func NewAllocationOverview(a ResourceAllocation) AllocationOverview {
	return AllocationOverview{
		ResourceAllocation:     a,
		YTDSpendTotal:          utils.RoundWithTwoDecimalPlace(a.YTDSpend()),
		BudgetUtilization:      a.BudgetUtilizationPct(),
		ProjectedFullYearTotal: utils.RoundWithTwoDecimalPlace(a.ProjectedFullYearSpend()),
	}
}
