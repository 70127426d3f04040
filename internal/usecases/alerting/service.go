package alerting

import (
	"fmt"
	"sort"

	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/domain"
	"github.com/vfg2006/executive-ops-api/pkg/metrics"
	"github.com/vfg2006/executive-ops-api/pkg/utils"
)

// Constantes das regras de alerta. Valores fixos de negócio: alterar um
// corte muda o contrato do painel executivo.
const (
	// Cortes das regras que definem o tipo do alerta
	revenueVarianceThreshold = -1_000_000
	marginThreshold          = 10
	contractorPctThreshold   = 40
	dsoDaysThreshold         = 60

	// Corte adicional de severidade HIGH por margem
	criticalMarginThreshold = 5

	// Filtro de inclusão, propositalmente mais frouxo que as regras acima:
	// uma unidade pode entrar na saída e ainda assim reportar
	// "No Major Issues". Comportamento herdado do painel, preservado.
	inclusionRevenueVariance = -500_000
	inclusionMargin          = 15
	inclusionContractorPct   = 30
	inclusionDSODays         = 50
)

// Recomendações fixas por tipo de alerta
var recommendations = map[string]string{
	domain.AlertRevenueBelowBudget:  "Review demand forecast and pipeline coverage with unit leadership",
	domain.AlertMarginBelowTarget:   "Initiate cost review targeting discretionary spend and pricing",
	domain.AlertExcessiveContractor: "Evaluate contractor-to-FTE conversion for core roles",
	domain.AlertHighDSO:             "Escalate collections follow-up and review credit terms",
	domain.AlertNoMajorIssues:       "No immediate action required, keep monitoring",
}

// AlertGenerator deriva alertas executivos do snapshot corrente
type AlertGenerator interface {
	// GenerateAlerts avalia as regras sobre o período mais recente de cada
	// unidade. Saída ordenada por severidade com ordem estável por unidade.
	GenerateAlerts() (*domain.AlertReport, error)
}

type Service struct {
	dataset datastore.SnapshotProvider
}

// NewService cria o motor de alertas
func NewService(dataset datastore.SnapshotProvider) AlertGenerator {
	return &Service{dataset: dataset}
}

// GenerateAlerts percorre o registro mais recente de cada unidade, aplica o
// filtro de inclusão e avalia as regras em ordem fixa: a primeira que casar
// define o tipo do alerta. Unidade sem linha de métricas operacionais no
// período simplesmente não dispara os predicados de DSO.
func (s *Service) GenerateAlerts() (*domain.AlertReport, error) {
	snapshot, err := s.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	report := &domain.AlertReport{
		AsOf:   snapshot.LatestPeriod(),
		Alerts: []domain.ExecutiveAlert{},
	}

	for _, record := range snapshot.LatestRecords() {
		var dso *float64
		if metric, ok := snapshot.MetricAt(record.UnitID, record.Period); ok {
			dso = metric.DSODays
		}

		contractorPct := record.ContractorPctOfLabor()

		if !included(record, contractorPct, dso) {
			continue
		}

		alert := buildAlert(record, contractorPct, dso)
		report.Alerts = append(report.Alerts, alert)

		switch alert.Severity {
		case domain.SeverityHigh:
			report.Counts.High++
		case domain.SeverityMedium:
			report.Counts.Medium++
		default:
			report.Counts.Low++
		}

		metrics.AlertsComputedTotal.WithLabelValues(string(alert.Severity)).Inc()
	}

	// HIGH antes de MEDIUM antes de LOW, estável dentro da faixa
	sort.SliceStable(report.Alerts, func(i, j int) bool {
		return report.Alerts[i].Severity.Rank() < report.Alerts[j].Severity.Rank()
	})

	return report, nil
}

// included aplica o filtro de inclusão frouxo.
func included(r domain.MonthlyRecord, contractorPct float64, dso *float64) bool {
	if r.RevenueVariance < inclusionRevenueVariance {
		return true
	}
	if r.OperatingMarginPct < inclusionMargin {
		return true
	}
	if contractorPct > inclusionContractorPct {
		return true
	}
	if dso != nil && *dso > inclusionDSODays {
		return true
	}
	return false
}

// buildAlert avalia as regras em ordem e monta o alerta da unidade.
func buildAlert(r domain.MonthlyRecord, contractorPct float64, dso *float64) domain.ExecutiveAlert {
	alertType := domain.AlertNoMajorIssues
	var impact float64

	switch {
	case r.RevenueVariance < revenueVarianceThreshold:
		alertType = domain.AlertRevenueBelowBudget
		impact = r.RevenueVariance
	case r.OperatingMarginPct < marginThreshold:
		alertType = domain.AlertMarginBelowTarget
		impact = r.OperatingIncomeVariance
	case contractorPct > contractorPctThreshold:
		alertType = domain.AlertExcessiveContractor
		// Excesso sobre a faixa saudável de 20% da folha
		impact = -(r.ContractorCost - 0.20*(r.ContractorCost+r.PersonnelCost))
	case dso != nil && *dso > dsoDaysThreshold:
		alertType = domain.AlertHighDSO
	}

	severity := domain.SeverityLow
	switch {
	case r.RevenueVariance < revenueVarianceThreshold || r.OperatingMarginPct < criticalMarginThreshold:
		severity = domain.SeverityHigh
	case contractorPct > contractorPctThreshold || (dso != nil && *dso > dsoDaysThreshold):
		severity = domain.SeverityMedium
	}

	return domain.ExecutiveAlert{
		ID:                 fmt.Sprintf("EA-%d-%s", r.UnitID, r.Period),
		UnitID:             r.UnitID,
		UnitName:           r.UnitName,
		Period:             r.Period,
		AlertType:          alertType,
		Severity:           severity,
		FinancialImpact:    utils.RoundWithTwoDecimalPlace(impact),
		Recommendation:     recommendations[alertType],
		Owner:              fmt.Sprintf("Unit %d GM", r.UnitID),
		RevenueVariance:    r.RevenueVariance,
		OperatingMarginPct: r.OperatingMarginPct,
		ContractorPct:      utils.RoundWithTwoDecimalPlace(contractorPct),
		DSODays:            dso,
	}
}
