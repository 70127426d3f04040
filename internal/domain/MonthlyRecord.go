package domain

// MonthlyRecord representa uma linha mensal de P&L de uma unidade de negócio.
// Invariantes do dataset:
//
//	gross_profit = revenue - cogs
//	total_opex = personnel + contractor + marketing + other
//	operating_income = gross_profit - total_opex
//
// Existe no máximo um registro por par (unidade, período).
type MonthlyRecord struct {
	UnitID   int    `json:"unit_id"`
	UnitName string `json:"unit_name"`
	Vertical string `json:"vertical"`
	Region   string `json:"region"`
	Period   Period `json:"period"`
	Quarter  string `json:"quarter"` // Q1..Q4, derivado do período

	Revenue        float64 `json:"revenue"`
	COGS           float64 `json:"cogs"`
	GrossProfit    float64 `json:"gross_profit"`
	GrossMarginPct float64 `json:"gross_margin_pct"`

	PersonnelCost  float64 `json:"personnel_cost"`
	ContractorCost float64 `json:"contractor_cost"`
	Marketing      float64 `json:"marketing"`
	OtherOpex      float64 `json:"other_opex"`
	TotalOpex      float64 `json:"total_opex"`

	OperatingIncome    float64 `json:"operating_income"`
	OperatingMarginPct float64 `json:"operating_margin_pct"`

	Headcount int `json:"headcount"`

	BudgetRevenue           float64 `json:"budget_revenue"`
	BudgetOperatingIncome   float64 `json:"budget_operating_income"`
	RevenueVariance         float64 `json:"revenue_variance"`
	OperatingIncomeVariance float64 `json:"operating_income_variance"`
}

// ContractorPctOfLabor calcula o percentual do custo de contractors sobre o
// custo total de mão de obra do registro. Retorna 0 quando não há custo.
func (r MonthlyRecord) ContractorPctOfLabor() float64 {
	labor := r.ContractorCost + r.PersonnelCost
	if labor == 0 {
		return 0
	}
	return 100 * r.ContractorCost / labor
}
