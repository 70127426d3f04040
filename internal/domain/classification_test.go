package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceTierFor(t *testing.T) {
	tests := []struct {
		name     string
		margin   float64
		expected string
	}{
		{name: "Margem de 30 deve ser Star Performer", margin: 30, expected: TierStarPerformer},
		{name: "Margem exatamente 25 deve ser Star Performer", margin: 25, expected: TierStarPerformer},
		{name: "Margem de 20 deve ser Solid Performer", margin: 20, expected: TierSolidPerformer},
		{name: "Margem exatamente 15 deve ser Solid Performer", margin: 15, expected: TierSolidPerformer},
		{name: "Margem de 10 deve ser Needs Improvement", margin: 10, expected: TierNeedsImprovement},
		{name: "Margem exatamente 5 deve ser Needs Improvement", margin: 5, expected: TierNeedsImprovement},
		{name: "Margem de 4.99 deve ser Critical Attention", margin: 4.99, expected: TierCriticalAttention},
		{name: "Margem negativa deve ser Critical Attention", margin: -12.5, expected: TierCriticalAttention},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PerformanceTierFor(tt.margin))
		})
	}
}

func TestMarginTrendFor(t *testing.T) {
	tests := []struct {
		name     string
		change   float64
		expected string
	}{
		{name: "Queda maior que 5 pontos deve ser Severe Compression", change: -5.01, expected: TrendSevereCompression},
		{name: "Queda de exatamente 5 pontos deve ser Moderate Compression", change: -5, expected: TrendModerateCompression},
		{name: "Queda de 3 pontos deve ser Moderate Compression", change: -3, expected: TrendModerateCompression},
		{name: "Queda de exatamente 2 pontos deve ser Stable", change: -2, expected: TrendStable},
		{name: "Variação nula deve ser Stable", change: 0, expected: TrendStable},
		{name: "Alta de exatamente 2 pontos deve ser Stable", change: 2, expected: TrendStable},
		{name: "Alta acima de 2 pontos deve ser Improving", change: 2.01, expected: TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MarginTrendFor(tt.change))
		})
	}
}

func TestContractorMixLabelFor(t *testing.T) {
	tests := []struct {
		name     string
		pct      float64
		expected string
	}{
		{name: "Percentual acima de 30 deve ser High Contractor Reliance", pct: 30.01, expected: MixHighReliance},
		{name: "Percentual exatamente 30 deve ser Above Target", pct: 30, expected: MixAboveTarget},
		{name: "Percentual de 25 deve ser Above Target", pct: 25, expected: MixAboveTarget},
		{name: "Percentual exatamente 20 deve ser Healthy Mix", pct: 20, expected: MixHealthy},
		{name: "Percentual de 10 deve ser Healthy Mix", pct: 10, expected: MixHealthy},
		{name: "Percentual zero deve ser Healthy Mix", pct: 0, expected: MixHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContractorMixLabelFor(tt.pct))
		})
	}
}

func TestContractorPctOfLabor(t *testing.T) {
	tests := []struct {
		name     string
		record   MonthlyRecord
		expected float64
	}{
		{
			name:     "Mix de 300k contractor sobre 700k pessoal deve dar 30%",
			record:   MonthlyRecord{ContractorCost: 300000, PersonnelCost: 700000},
			expected: 30,
		},
		{
			name:     "Folha só de contractors deve dar 100%",
			record:   MonthlyRecord{ContractorCost: 50000, PersonnelCost: 0},
			expected: 100,
		},
		{
			name:     "Folha sem custo deve dar 0 em vez de dividir por zero",
			record:   MonthlyRecord{ContractorCost: 0, PersonnelCost: 0},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.record.ContractorPctOfLabor(), 1e-9)
		})
	}
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 0, SeverityHigh.Rank())
	assert.Equal(t, 1, SeverityMedium.Rank())
	assert.Equal(t, 2, SeverityLow.Rank())
	assert.Equal(t, 2, Severity("UNKNOWN").Rank())

	assert.Less(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Less(t, SeverityMedium.Rank(), SeverityLow.Rank())
}
