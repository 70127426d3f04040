package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validScenario monta o menor cenário executável para os testes de validação.
func validScenario() *Scenario {
	return &Scenario{
		Year: 2024,
		Seed: 7,
		Units: []UnitSpec{
			{UnitID: 1, Name: "SaaS Platform", Vertical: "Software", Region: "North America", Performance: PerformanceHigh},
			{UnitID: 2, Name: "Enterprise Sales", Vertical: "Sales", Region: "EMEA", Performance: PerformanceMedium},
		},
		Profiles: map[string]Profile{
			PerformanceHigh: {
				BaseRevenue:   Range{Min: 8_000_000, Max: 12_000_000},
				MonthlyGrowth: Range{Min: 0.03, Max: 0.05},
				GrossMargin:   Range{Min: 0.65, Max: 0.75},
				AnnualBudget:  Range{Min: 80_000_000, Max: 120_000_000},
			},
			PerformanceMedium: {
				BaseRevenue:   Range{Min: 5_000_000, Max: 8_000_000},
				MonthlyGrowth: Range{Min: 0.02, Max: 0.04},
				GrossMargin:   Range{Min: 0.55, Max: 0.65},
				AnnualBudget:  Range{Min: 60_000_000, Max: 90_000_000},
			},
		},
	}
}

func TestDefaultScenario(t *testing.T) {
	scenario, err := DefaultScenario()
	require.NoError(t, err)

	assert.Equal(t, 2024, scenario.Year)
	assert.Equal(t, int64(42), scenario.Seed)
	assert.Len(t, scenario.Units, 12)
	assert.Len(t, scenario.Profiles, 4)
	assert.Len(t, scenario.Alerts, 5)

	require.NotNil(t, scenario.ContractorSpike)
	assert.Equal(t, 4, scenario.ContractorSpike.UnitID)
	assert.Equal(t, 7, scenario.ContractorSpike.FromMonth)
	assert.InDelta(t, 0.60, scenario.ContractorSpike.Ratio.Min, 1e-9)
	assert.InDelta(t, 0.70, scenario.ContractorSpike.Ratio.Max, 1e-9)
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Scenario)
		wantErr string
	}{
		{
			name:   "Cenário mínimo válido deve passar",
			mutate: func(s *Scenario) {},
		},
		{
			name:    "Ano fora do intervalo deve falhar",
			mutate:  func(s *Scenario) { s.Year = 0 },
			wantErr: "ano 0 fora do intervalo",
		},
		{
			name:    "Cenário sem unidades deve falhar",
			mutate:  func(s *Scenario) { s.Units = nil },
			wantErr: "nenhuma unidade de negócio definida",
		},
		{
			name:    "Identificador de unidade não positivo deve falhar",
			mutate:  func(s *Scenario) { s.Units[0].UnitID = 0 },
			wantErr: "com identificador 0",
		},
		{
			name:    "Identificador de unidade duplicado deve falhar",
			mutate:  func(s *Scenario) { s.Units[1].UnitID = 1 },
			wantErr: "identificador de unidade duplicado 1",
		},
		{
			name:    "Unidade sem nome deve falhar",
			mutate:  func(s *Scenario) { s.Units[0].Name = "" },
			wantErr: "unidade 1 sem nome",
		},
		{
			name:    "Perfil desconhecido deve falhar",
			mutate:  func(s *Scenario) { s.Units[0].Performance = "hypergrowth" },
			wantErr: `perfil desconhecido "hypergrowth"`,
		},
		{
			name: "Faixa invertida em um perfil deve falhar",
			mutate: func(s *Scenario) {
				profile := s.Profiles[PerformanceHigh]
				profile.GrossMargin = Range{Min: 0.75, Max: 0.65}
				s.Profiles[PerformanceHigh] = profile
			},
			wantErr: "faixa gross_margin invertida",
		},
		{
			name: "Pico de terceirizados apontando para unidade desconhecida deve falhar",
			mutate: func(s *Scenario) {
				s.ContractorSpike = &ContractorSpike{UnitID: 99, FromMonth: 7, Ratio: Range{Min: 0.6, Max: 0.7}}
			},
			wantErr: "unidade desconhecida 99",
		},
		{
			name: "Pico de terceirizados com mês inicial inválido deve falhar",
			mutate: func(s *Scenario) {
				s.ContractorSpike = &ContractorSpike{UnitID: 1, FromMonth: 13, Ratio: Range{Min: 0.6, Max: 0.7}}
			},
			wantErr: "mês inicial 13",
		},
		{
			name: "Pico de terceirizados com faixa invertida deve falhar",
			mutate: func(s *Scenario) {
				s.ContractorSpike = &ContractorSpike{UnitID: 1, FromMonth: 7, Ratio: Range{Min: 0.7, Max: 0.6}}
			},
			wantErr: "pico de terceirizados com faixa invertida",
		},
		{
			name: "Alerta apontando para unidade desconhecida deve falhar",
			mutate: func(s *Scenario) {
				s.Alerts = []AlertSpec{{AlertID: 1, UnitID: 99, Severity: "HIGH", DateRaised: "2024-09-15"}}
			},
			wantErr: "alerta 1 aponta para unidade desconhecida 99",
		},
		{
			name: "Alerta com severidade desconhecida deve falhar",
			mutate: func(s *Scenario) {
				s.Alerts = []AlertSpec{{AlertID: 1, UnitID: 1, Severity: "CRITICAL", DateRaised: "2024-09-15"}}
			},
			wantErr: `severidade desconhecida "CRITICAL"`,
		},
		{
			name: "Alerta com data inválida deve falhar",
			mutate: func(s *Scenario) {
				s.Alerts = []AlertSpec{{AlertID: 1, UnitID: 1, Severity: "HIGH", DateRaised: "15/09/2024"}}
			},
			wantErr: `alerta 1 com data "15/09/2024"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := validScenario()
			tt.mutate(scenario)

			err := scenario.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	t.Run("Deve carregar um cenário customizado de arquivo YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scenario.yaml")
		content := `year: 2025
seed: 99
units:
  - unit_id: 1
    name: Test Unit
    vertical: Software
    region: Global
    performance: high
profiles:
  high:
    base_revenue: { min: 1000000, max: 2000000 }
    monthly_growth: { min: 0.01, max: 0.02 }
    gross_margin: { min: 0.50, max: 0.60 }
    annual_budget: { min: 10000000, max: 20000000 }
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		scenario, err := LoadScenario(path)
		require.NoError(t, err)
		assert.Equal(t, 2025, scenario.Year)
		assert.Equal(t, int64(99), scenario.Seed)
		require.Len(t, scenario.Units, 1)
		assert.Equal(t, "Test Unit", scenario.Units[0].Name)
	})

	t.Run("Arquivo inexistente deve falhar nomeando o caminho", func(t *testing.T) {
		_, err := LoadScenario("/nao/existe/scenario.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/nao/existe/scenario.yaml")
	})

	t.Run("Cenário inválido no arquivo deve falhar na validação", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scenario.yaml")
		require.NoError(t, os.WriteFile(path, []byte("year: 2024\nseed: 1\n"), 0o644))

		_, err := LoadScenario(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nenhuma unidade de negócio definida")
	})
}
