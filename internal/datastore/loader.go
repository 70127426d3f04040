package datastore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vfg2006/executive-ops-api/internal/domain"
	"github.com/vfg2006/executive-ops-api/pkg/utils"
)

// Nomes dos arquivos do dataset dentro do diretório configurado.
var tableFiles = map[string]string{
	TableBusinessUnits:      "business_units.csv",
	TableMonthlyPnL:         "monthly_pnl.csv",
	TableOperationalMetrics: "operational_metrics.csv",
	TableResourceAllocation: "resource_allocation.csv",
	TableExecutiveAlerts:    "executive_alerts.csv",
}

// LoadSnapshot lê as cinco tabelas do diretório e monta um snapshot novo.
// Tabela ou coluna obrigatória ausente interrompe a carga com erro nomeando
// o que falta; nenhum snapshot parcial é produzido.
func LoadSnapshot(dir string) (*Snapshot, error) {
	units, err := loadBusinessUnits(filepath.Join(dir, tableFiles[TableBusinessUnits]))
	if err != nil {
		return nil, err
	}

	pnl, err := loadMonthlyPnL(filepath.Join(dir, tableFiles[TableMonthlyPnL]))
	if err != nil {
		return nil, err
	}

	metrics, err := loadOperationalMetrics(filepath.Join(dir, tableFiles[TableOperationalMetrics]))
	if err != nil {
		return nil, err
	}

	allocations, err := loadResourceAllocations(filepath.Join(dir, tableFiles[TableResourceAllocation]))
	if err != nil {
		return nil, err
	}

	curated, err := loadCuratedAlerts(filepath.Join(dir, tableFiles[TableExecutiveAlerts]))
	if err != nil {
		return nil, err
	}

	return NewSnapshot(units, pnl, metrics, allocations, curated, time.Now().UTC()), nil
}

// table é uma tabela CSV lida por completo, com resolução de colunas pelo
// nome do cabeçalho. Colunas extras desconhecidas são ignoradas.
type table struct {
	name    string
	columns map[string]int
	rows    [][]string
}

func readTable(path, name string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabela %s: erro ao abrir %s: %w", name, path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tabela %s: erro ao ler CSV: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("tabela %s: arquivo vazio, cabeçalho ausente", name)
	}

	columns := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		columns[col] = i
	}

	return &table{name: name, columns: columns, rows: records[1:]}, nil
}

// require resolve os índices das colunas obrigatórias, falhando com o nome
// da primeira coluna ausente.
func (t *table) require(names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for _, n := range names {
		i, ok := t.columns[n]
		if !ok {
			return nil, fmt.Errorf("tabela %s: coluna obrigatória ausente: %s", t.name, n)
		}
		idx[n] = i
	}
	return idx, nil
}

func (t *table) cell(row []string, idx map[string]int, col string) string {
	i := idx[col]
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *table) parseErr(line int, col, value string) error {
	return fmt.Errorf("tabela %s, linha %d, coluna %s: valor inválido %q", t.name, line+2, col, value)
}

func (t *table) intCell(row []string, idx map[string]int, col string, line int) (int, error) {
	raw := t.cell(row, idx, col)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, t.parseErr(line, col, raw)
	}
	return v, nil
}

func (t *table) floatCell(row []string, idx map[string]int, col string, line int) (float64, error) {
	raw := t.cell(row, idx, col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, t.parseErr(line, col, raw)
	}
	return v, nil
}

// optFloatCell interpreta uma célula numérica opcional: vazia vira nil
// (métrica indisponível), nunca zero.
func (t *table) optFloatCell(row []string, idx map[string]int, col string, line int) (*float64, error) {
	raw := t.cell(row, idx, col)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, t.parseErr(line, col, raw)
	}
	return &v, nil
}

func (t *table) optIntCell(row []string, idx map[string]int, col string, line int) (*int, error) {
	raw := t.cell(row, idx, col)
	if raw == "" {
		return nil, nil
	}
	// pandas serializa inteiros de colunas anuláveis como float (ex: 250.0)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, t.parseErr(line, col, raw)
	}
	v := int(f)
	return &v, nil
}

func (t *table) periodCell(row []string, idx map[string]int, col string, line int) (domain.Period, error) {
	raw := t.cell(row, idx, col)
	parsed, err := utils.ParseDate(raw)
	if err != nil || raw == "" {
		return domain.Period{}, t.parseErr(line, col, raw)
	}
	return domain.PeriodFromDate(*parsed), nil
}

func loadBusinessUnits(path string) ([]domain.BusinessUnit, error) {
	t, err := readTable(path, TableBusinessUnits)
	if err != nil {
		return nil, err
	}

	idx, err := t.require("unit_id", "name", "vertical", "region")
	if err != nil {
		return nil, err
	}
	// Coluna opcional com o perfil de performance do gerador
	perfIdx, hasPerf := t.columns["performance"]

	units := make([]domain.BusinessUnit, 0, len(t.rows))
	for line, row := range t.rows {
		unitID, err := t.intCell(row, idx, "unit_id", line)
		if err != nil {
			return nil, err
		}

		u := domain.BusinessUnit{
			UnitID:   unitID,
			Name:     t.cell(row, idx, "name"),
			Vertical: t.cell(row, idx, "vertical"),
			Region:   t.cell(row, idx, "region"),
		}
		if hasPerf && perfIdx < len(row) {
			u.Performance = row[perfIdx]
		}
		units = append(units, u)
	}

	return units, nil
}

func loadMonthlyPnL(path string) ([]domain.MonthlyRecord, error) {
	t, err := readTable(path, TableMonthlyPnL)
	if err != nil {
		return nil, err
	}

	idx, err := t.require(
		"unit_id", "unit_name", "vertical", "region", "date",
		"revenue", "cogs", "gross_profit", "gross_margin_pct",
		"personnel_cost", "contractor_cost", "marketing", "other_opex",
		"total_opex", "operating_income", "operating_margin_pct",
		"headcount", "budget_revenue", "budget_operating_income",
		"revenue_variance", "operating_income_variance",
	)
	if err != nil {
		return nil, err
	}

	seen := make(map[unitPeriodKey]bool, len(t.rows))

	records := make([]domain.MonthlyRecord, 0, len(t.rows))
	for line, row := range t.rows {
		unitID, err := t.intCell(row, idx, "unit_id", line)
		if err != nil {
			return nil, err
		}
		period, err := t.periodCell(row, idx, "date", line)
		if err != nil {
			return nil, err
		}

		key := unitPeriodKey{unitID, period}
		if seen[key] {
			return nil, fmt.Errorf("tabela %s: registro duplicado para a unidade %d no período %s",
				t.name, unitID, period)
		}
		seen[key] = true

		headcount, err := t.intCell(row, idx, "headcount", line)
		if err != nil {
			return nil, err
		}

		r := domain.MonthlyRecord{
			UnitID:    unitID,
			UnitName:  t.cell(row, idx, "unit_name"),
			Vertical:  t.cell(row, idx, "vertical"),
			Region:    t.cell(row, idx, "region"),
			Period:    period,
			Quarter:   period.Quarter(),
			Headcount: headcount,
		}

		floats := []struct {
			col string
			dst *float64
		}{
			{"revenue", &r.Revenue},
			{"cogs", &r.COGS},
			{"gross_profit", &r.GrossProfit},
			{"gross_margin_pct", &r.GrossMarginPct},
			{"personnel_cost", &r.PersonnelCost},
			{"contractor_cost", &r.ContractorCost},
			{"marketing", &r.Marketing},
			{"other_opex", &r.OtherOpex},
			{"total_opex", &r.TotalOpex},
			{"operating_income", &r.OperatingIncome},
			{"operating_margin_pct", &r.OperatingMarginPct},
			{"budget_revenue", &r.BudgetRevenue},
			{"budget_operating_income", &r.BudgetOperatingIncome},
			{"revenue_variance", &r.RevenueVariance},
			{"operating_income_variance", &r.OperatingIncomeVariance},
		}
		for _, f := range floats {
			v, err := t.floatCell(row, idx, f.col, line)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}

		records = append(records, r)
	}

	return records, nil
}

func loadOperationalMetrics(path string) ([]domain.OperationalMetric, error) {
	t, err := readTable(path, TableOperationalMetrics)
	if err != nil {
		return nil, err
	}

	idx, err := t.require(
		"unit_id", "unit_name", "date",
		"customers", "arr", "mrr", "churn_rate_pct", "nrr_pct",
		"pipeline", "win_rate_pct", "avg_deal_size",
		"dso_days", "cac", "ltv", "ltv_cac_ratio", "employee_satisfaction",
	)
	if err != nil {
		return nil, err
	}

	metrics := make([]domain.OperationalMetric, 0, len(t.rows))
	for line, row := range t.rows {
		unitID, err := t.intCell(row, idx, "unit_id", line)
		if err != nil {
			return nil, err
		}
		period, err := t.periodCell(row, idx, "date", line)
		if err != nil {
			return nil, err
		}

		m := domain.OperationalMetric{
			UnitID:   unitID,
			UnitName: t.cell(row, idx, "unit_name"),
			Period:   period,
		}

		if m.Customers, err = t.optIntCell(row, idx, "customers", line); err != nil {
			return nil, err
		}

		optFloats := []struct {
			col string
			dst **float64
		}{
			{"arr", &m.ARR},
			{"mrr", &m.MRR},
			{"churn_rate_pct", &m.ChurnRatePct},
			{"nrr_pct", &m.NRRPct},
			{"pipeline", &m.Pipeline},
			{"win_rate_pct", &m.WinRatePct},
			{"avg_deal_size", &m.AvgDealSize},
			{"dso_days", &m.DSODays},
			{"cac", &m.CAC},
			{"ltv", &m.LTV},
			{"ltv_cac_ratio", &m.LTVCACRatio},
			{"employee_satisfaction", &m.EmployeeSatisfaction},
		}
		for _, f := range optFloats {
			v, err := t.optFloatCell(row, idx, f.col, line)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}

		metrics = append(metrics, m)
	}

	return metrics, nil
}

func loadResourceAllocations(path string) ([]domain.ResourceAllocation, error) {
	t, err := readTable(path, TableResourceAllocation)
	if err != nil {
		return nil, err
	}

	idx, err := t.require(
		"unit_id", "unit_name", "annual_budget",
		"q1_spend", "q2_spend", "q3_spend", "q4_projected",
		"total_headcount", "engineering_headcount", "sales_headcount",
		"marketing_headcount", "ops_headcount",
		"contractor_fte", "avg_salary", "open_positions",
	)
	if err != nil {
		return nil, err
	}

	allocations := make([]domain.ResourceAllocation, 0, len(t.rows))
	for line, row := range t.rows {
		unitID, err := t.intCell(row, idx, "unit_id", line)
		if err != nil {
			return nil, err
		}

		a := domain.ResourceAllocation{
			UnitID:   unitID,
			UnitName: t.cell(row, idx, "unit_name"),
		}

		floats := []struct {
			col string
			dst *float64
		}{
			{"annual_budget", &a.AnnualBudget},
			{"q1_spend", &a.Q1Spend},
			{"q2_spend", &a.Q2Spend},
			{"q3_spend", &a.Q3Spend},
			{"q4_projected", &a.Q4Projected},
			{"contractor_fte", &a.ContractorFTE},
			{"avg_salary", &a.AvgSalary},
		}
		for _, f := range floats {
			v, err := t.floatCell(row, idx, f.col, line)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}

		ints := []struct {
			col string
			dst *int
		}{
			{"total_headcount", &a.TotalHeadcount},
			{"engineering_headcount", &a.EngineeringHeadcount},
			{"sales_headcount", &a.SalesHeadcount},
			{"marketing_headcount", &a.MarketingHeadcount},
			{"ops_headcount", &a.OpsHeadcount},
			{"open_positions", &a.OpenPositions},
		}
		for _, f := range ints {
			v, err := t.intCell(row, idx, f.col, line)
			if err != nil {
				return nil, err
			}
			*f.dst = v
		}

		allocations = append(allocations, a)
	}

	return allocations, nil
}

func loadCuratedAlerts(path string) ([]domain.CuratedAlert, error) {
	t, err := readTable(path, TableExecutiveAlerts)
	if err != nil {
		return nil, err
	}

	idx, err := t.require(
		"alert_id", "unit_id", "unit_name", "severity", "category",
		"title", "description", "financial_impact",
		"recommended_action", "owner", "date_raised", "status",
	)
	if err != nil {
		return nil, err
	}

	alerts := make([]domain.CuratedAlert, 0, len(t.rows))
	for line, row := range t.rows {
		alertID, err := t.intCell(row, idx, "alert_id", line)
		if err != nil {
			return nil, err
		}
		unitID, err := t.intCell(row, idx, "unit_id", line)
		if err != nil {
			return nil, err
		}
		impact, err := t.floatCell(row, idx, "financial_impact", line)
		if err != nil {
			return nil, err
		}

		rawDate := t.cell(row, idx, "date_raised")
		raised, err := utils.ParseDate(rawDate)
		if err != nil || rawDate == "" {
			return nil, t.parseErr(line, "date_raised", rawDate)
		}

		alerts = append(alerts, domain.CuratedAlert{
			AlertID:           alertID,
			UnitID:            unitID,
			UnitName:          t.cell(row, idx, "unit_name"),
			Severity:          domain.Severity(t.cell(row, idx, "severity")),
			Category:          t.cell(row, idx, "category"),
			Title:             t.cell(row, idx, "title"),
			Description:       t.cell(row, idx, "description"),
			FinancialImpact:   impact,
			RecommendedAction: t.cell(row, idx, "recommended_action"),
			Owner:             t.cell(row, idx, "owner"),
			DateRaised:        *raised,
			Status:            t.cell(row, idx, "status"),
		})
	}

	return alerts, nil
}
