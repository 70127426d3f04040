package generator

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"github.com/vfg2006/executive-ops-api/pkg/utils"
	"gopkg.in/yaml.v3"
)

//go:embed scenario.yaml
var defaultScenarioYAML []byte

// Perfis de desempenho aceitos no cenário
const (
	PerformanceHigh       = "high"
	PerformanceGrowing    = "growing"
	PerformanceStruggling = "struggling"
	PerformanceMedium     = "medium"
)

// Range delimita um sorteio uniforme [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Profile agrupa as faixas financeiras de um perfil de desempenho
type Profile struct {
	BaseRevenue   Range `yaml:"base_revenue"`
	MonthlyGrowth Range `yaml:"monthly_growth"`
	GrossMargin   Range `yaml:"gross_margin"`
	AnnualBudget  Range `yaml:"annual_budget"`
}

// UnitSpec descreve uma unidade de negócio do cenário
type UnitSpec struct {
	UnitID      int    `yaml:"unit_id"`
	Name        string `yaml:"name"`
	Vertical    string `yaml:"vertical"`
	Region      string `yaml:"region"`
	Performance string `yaml:"performance"`
}

// ContractorSpike roteiriza o estouro de terceirizados de uma unidade a
// partir de um mês do ano
type ContractorSpike struct {
	UnitID    int   `yaml:"unit_id"`
	FromMonth int   `yaml:"from_month"`
	Ratio     Range `yaml:"ratio"`
}

// AlertSpec é um alerta curado que acompanha o cenário como narrativa fixa
type AlertSpec struct {
	AlertID           int     `yaml:"alert_id"`
	UnitID            int     `yaml:"unit_id"`
	UnitName          string  `yaml:"unit_name"`
	Severity          string  `yaml:"severity"`
	Category          string  `yaml:"category"`
	Title             string  `yaml:"title"`
	Description       string  `yaml:"description"`
	FinancialImpact   float64 `yaml:"financial_impact"`
	RecommendedAction string  `yaml:"recommended_action"`
	Owner             string  `yaml:"owner"`
	DateRaised        string  `yaml:"date_raised"`
	Status            string  `yaml:"status"`
}

// Scenario é o roteiro completo de geração do dataset
type Scenario struct {
	Year            int                `yaml:"year"`
	Seed            int64              `yaml:"seed"`
	Units           []UnitSpec         `yaml:"units"`
	Profiles        map[string]Profile `yaml:"profiles"`
	ContractorSpike *ContractorSpike   `yaml:"contractor_spike"`
	Alerts          []AlertSpec        `yaml:"alerts"`
}

// DefaultScenario retorna o cenário embarcado no binário
func DefaultScenario() (*Scenario, error) {
	return parseScenario(defaultScenarioYAML)
}

// LoadScenario carrega um cenário customizado a partir de um arquivo YAML
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler o arquivo de cenário %s", path)
	}

	return parseScenario(raw)
}

func parseScenario(raw []byte) (*Scenario, error) {
	scenario := &Scenario{}
	if err := yaml.Unmarshal(raw, scenario); err != nil {
		return nil, errors.Wrap(err, "erro ao interpretar o cenário")
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	return scenario, nil
}

// Validate garante que o cenário é executável antes de qualquer sorteio
func (s *Scenario) Validate() error {
	if s.Year < 1900 || s.Year > 9999 {
		return errors.Errorf("cenário inválido: ano %d fora do intervalo esperado", s.Year)
	}

	if len(s.Units) == 0 {
		return errors.New("cenário inválido: nenhuma unidade de negócio definida")
	}

	seen := make(map[int]bool, len(s.Units))
	for _, unit := range s.Units {
		if unit.UnitID <= 0 {
			return errors.Errorf("cenário inválido: unidade %q com identificador %d", unit.Name, unit.UnitID)
		}

		if seen[unit.UnitID] {
			return errors.Errorf("cenário inválido: identificador de unidade duplicado %d", unit.UnitID)
		}
		seen[unit.UnitID] = true

		if unit.Name == "" {
			return errors.Errorf("cenário inválido: unidade %d sem nome", unit.UnitID)
		}

		if _, ok := s.Profiles[unit.Performance]; !ok {
			return errors.Errorf("cenário inválido: unidade %d com perfil desconhecido %q", unit.UnitID, unit.Performance)
		}
	}

	for name, profile := range s.Profiles {
		ranges := map[string]Range{
			"base_revenue":   profile.BaseRevenue,
			"monthly_growth": profile.MonthlyGrowth,
			"gross_margin":   profile.GrossMargin,
			"annual_budget":  profile.AnnualBudget,
		}
		for field, r := range ranges {
			if r.Min > r.Max {
				return errors.Errorf("cenário inválido: perfil %s com faixa %s invertida", name, field)
			}
		}
	}

	if spike := s.ContractorSpike; spike != nil {
		if !seen[spike.UnitID] {
			return errors.Errorf("cenário inválido: pico de terceirizados aponta para unidade desconhecida %d", spike.UnitID)
		}

		if spike.FromMonth < 1 || spike.FromMonth > 12 {
			return errors.Errorf("cenário inválido: pico de terceirizados com mês inicial %d", spike.FromMonth)
		}

		if spike.Ratio.Min > spike.Ratio.Max {
			return errors.New("cenário inválido: pico de terceirizados com faixa invertida")
		}
	}

	for _, alert := range s.Alerts {
		if !seen[alert.UnitID] {
			return errors.Errorf("cenário inválido: alerta %d aponta para unidade desconhecida %d", alert.AlertID, alert.UnitID)
		}

		switch alert.Severity {
		case "HIGH", "MEDIUM", "LOW":
		default:
			return errors.Errorf("cenário inválido: alerta %d com severidade desconhecida %q", alert.AlertID, alert.Severity)
		}

		if _, err := utils.ParseDate(alert.DateRaised); err != nil {
			return errors.Errorf("cenário inválido: alerta %d com data %q", alert.AlertID, alert.DateRaised)
		}
	}

	return nil
}

func (s *Scenario) profileFor(unit UnitSpec) Profile {
	return s.Profiles[unit.Performance]
}

func (s *Scenario) spikeApplies(unitID, month int) bool {
	return s.ContractorSpike != nil &&
		s.ContractorSpike.UnitID == unitID &&
		month >= s.ContractorSpike.FromMonth
}
