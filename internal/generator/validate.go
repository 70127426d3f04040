package generator

import (
	"github.com/pkg/errors"
	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/domain"
	"github.com/vfg2006/executive-ops-api/internal/usecases/reporting"
)

// ValidationReport resume as verificações feitas sobre um dataset gravado
// em disco. Os indicadores vêm do mesmo caminho de cálculo usado pela API.
type ValidationReport struct {
	RowCounts    map[string]int `json:"row_counts"`
	LatestPeriod domain.Period  `json:"latest_period"`

	TotalRevenue         float64 `json:"total_revenue"`
	TotalOperatingIncome float64 `json:"total_operating_income"`
	OperatingMarginPct   float64 `json:"operating_margin_pct"`
	TotalHeadcount       int     `json:"total_headcount"`

	TopUnitName      string  `json:"top_unit_name"`
	TopUnitMarginPct float64 `json:"top_unit_margin_pct"`

	CuratedAlerts    int     `json:"curated_alerts"`
	HighSeverity     int     `json:"high_severity"`
	TotalAlertImpact float64 `json:"total_alert_impact"`

	TotalAnnualBudget     float64 `json:"total_annual_budget"`
	TotalPlannedHeadcount int     `json:"total_planned_headcount"`
}

type staticProvider struct {
	snapshot *datastore.Snapshot
}

func (p staticProvider) Snapshot() (*datastore.Snapshot, error) {
	return p.snapshot, nil
}

// ValidateDir carrega o dataset do diretório, confere a integridade
// referencial entre as tabelas e devolve os indicadores do mês mais
// recente. Qualquer tabela ausente, coluna faltando ou referência quebrada
// interrompe a validação com erro.
func ValidateDir(dir string) (*ValidationReport, error) {
	snapshot, err := datastore.LoadSnapshot(dir)
	if err != nil {
		return nil, err
	}

	if err := checkReferences(snapshot); err != nil {
		return nil, err
	}

	report := &ValidationReport{
		RowCounts:    snapshot.RowCounts(),
		LatestPeriod: snapshot.LatestPeriod(),
	}

	reporter := reporting.NewService(staticProvider{snapshot})
	summary, err := reporter.CorporateSummary(nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consolidar o mês mais recente")
	}

	if len(summary.Summaries) > 0 {
		latest := summary.Summaries[0]
		report.TotalRevenue = latest.TotalRevenue
		report.TotalOperatingIncome = latest.TotalOperatingIncome
		report.OperatingMarginPct = latest.OperatingMarginPct
		report.TotalHeadcount = latest.TotalHeadcount
	}

	for _, record := range snapshot.LatestRecords() {
		if report.TopUnitName == "" || record.OperatingMarginPct > report.TopUnitMarginPct {
			report.TopUnitName = record.UnitName
			report.TopUnitMarginPct = record.OperatingMarginPct
		}
	}

	report.CuratedAlerts = len(snapshot.CuratedAlerts)
	for _, alert := range snapshot.CuratedAlerts {
		if alert.Severity == domain.SeverityHigh {
			report.HighSeverity++
		}
		report.TotalAlertImpact += alert.FinancialImpact
	}

	for _, allocation := range snapshot.Allocations {
		report.TotalAnnualBudget += allocation.AnnualBudget
		report.TotalPlannedHeadcount += allocation.TotalHeadcount
	}

	return report, nil
}

// checkReferences garante que toda linha das tabelas satélites aponta para
// uma unidade existente na tabela de referência.
func checkReferences(snapshot *datastore.Snapshot) error {
	for _, record := range snapshot.PnL {
		if _, ok := snapshot.Unit(record.UnitID); !ok {
			return errors.Errorf("unidade desconhecida %d na tabela %s", record.UnitID, datastore.TableMonthlyPnL)
		}
	}

	for _, metric := range snapshot.Metrics {
		if _, ok := snapshot.Unit(metric.UnitID); !ok {
			return errors.Errorf("unidade desconhecida %d na tabela %s", metric.UnitID, datastore.TableOperationalMetrics)
		}
	}

	for _, allocation := range snapshot.Allocations {
		if _, ok := snapshot.Unit(allocation.UnitID); !ok {
			return errors.Errorf("unidade desconhecida %d na tabela %s", allocation.UnitID, datastore.TableResourceAllocation)
		}
	}

	for _, alert := range snapshot.CuratedAlerts {
		if _, ok := snapshot.Unit(alert.UnitID); !ok {
			return errors.Errorf("unidade desconhecida %d na tabela %s", alert.UnitID, datastore.TableExecutiveAlerts)
		}
	}

	return nil
}
