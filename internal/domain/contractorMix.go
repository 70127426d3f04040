package domain

// Rótulos do mix de mão de obra contratada sobre a folha.
const (
	MixHighReliance = "High Contractor Reliance"
	MixAboveTarget  = "Above Target"
	MixHealthy      = "Healthy Mix"
)

// ContractorMixLabelFor classifica o percentual de contractors sobre o custo
// total de mão de obra.
func ContractorMixLabelFor(contractorPct float64) string {
	switch {
	case contractorPct > 30:
		return MixHighReliance
	case contractorPct > 20:
		return MixAboveTarget
	default:
		return MixHealthy
	}
}

// ContractorMix analisa o peso de contractors na folha de uma unidade sobre
// uma janela móvel de meses. PotentialAnnualSavings assume a premissa fixa de
// negócio de 20% de redução de custo na conversão de contractors para FTE.
type ContractorMix struct {
	UnitID       int    `json:"unit_id"`
	UnitName     string `json:"unit_name"`
	WindowMonths int    `json:"window_months"`
	AsOf         Period `json:"as_of"`

	AvgContractorCost      float64 `json:"avg_contractor_cost"`
	AvgPersonnelCost       float64 `json:"avg_personnel_cost"`
	ContractorPctOfLabor   float64 `json:"contractor_pct_of_labor"`
	Label                  string  `json:"label"`
	PotentialAnnualSavings float64 `json:"potential_annual_savings"`
}
