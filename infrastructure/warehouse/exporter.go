// Package warehouse espelha o snapshot do dataset em um Postgres externo que
// serve a superfície de consultas SQL. O espelho é unidirecional: a API nunca
// lê do banco, os CSVs continuam sendo a fonte autoritativa.
package warehouse

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/executive-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/domain"
	"github.com/vfg2006/executive-ops-api/pkg/metrics"
)

// ExportStats resume uma exportação concluída
type ExportStats struct {
	RowsByTable map[string]int `json:"rows_by_table"`
	Duration    time.Duration  `json:"duration"`
}

type Exporter interface {
	// Export espelha as cinco tabelas do snapshot em uma única transação
	Export(ctx context.Context, snapshot *datastore.Snapshot) (*ExportStats, error)
	Ping(ctx context.Context) error
}

type postgresExporter struct {
	conn postgres.Conn
}

func NewExporter(conn postgres.Conn) Exporter {
	return &postgresExporter{conn: conn}
}

func (e *postgresExporter) Ping(ctx context.Context) error {
	return e.conn.Ping(ctx)
}

func (e *postgresExporter) Export(ctx context.Context, snapshot *datastore.Snapshot) (*ExportStats, error) {
	stats := &ExportStats{RowsByTable: make(map[string]int)}
	start := time.Now()

	err := e.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		// Unidades primeiro: as demais tabelas referenciam business_units
		if err := e.exportUnits(ctx, tx, snapshot.Units); err != nil {
			return err
		}
		stats.RowsByTable[datastore.TableBusinessUnits] = len(snapshot.Units)

		if err := e.exportPnL(ctx, tx, snapshot.PnL); err != nil {
			return err
		}
		stats.RowsByTable[datastore.TableMonthlyPnL] = len(snapshot.PnL)

		if err := e.exportMetrics(ctx, tx, snapshot.Metrics); err != nil {
			return err
		}
		stats.RowsByTable[datastore.TableOperationalMetrics] = len(snapshot.Metrics)

		if err := e.exportAllocations(ctx, tx, snapshot.Allocations); err != nil {
			return err
		}
		stats.RowsByTable[datastore.TableResourceAllocation] = len(snapshot.Allocations)

		if err := e.exportCuratedAlerts(ctx, tx, snapshot.CuratedAlerts); err != nil {
			return err
		}
		stats.RowsByTable[datastore.TableExecutiveAlerts] = len(snapshot.CuratedAlerts)

		return nil
	})
	if err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)

	for table, rows := range stats.RowsByTable {
		metrics.WarehouseRowsExported.WithLabelValues(table).Add(float64(rows))
	}

	return stats, nil
}

func (e *postgresExporter) exportUnits(ctx context.Context, tx *sql.Tx, units []domain.BusinessUnit) error {
	if len(units) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("business_units").
		Columns("unit_id", "name", "vertical", "region", "performance").
		PlaceholderFormat(squirrel.Dollar)

	for _, unit := range units {
		query = query.Values(unit.UnitID, unit.Name, unit.Vertical, unit.Region, unit.Performance)
	}

	query = query.Suffix(`
		ON CONFLICT (unit_id) DO UPDATE SET
			name = EXCLUDED.name,
			vertical = EXCLUDED.vertical,
			region = EXCLUDED.region,
			performance = EXCLUDED.performance,
			refreshed_at = CURRENT_TIMESTAMP
	`)

	return execInsert(ctx, tx, query, datastore.TableBusinessUnits)
}

func (e *postgresExporter) exportPnL(ctx context.Context, tx *sql.Tx, records []domain.MonthlyRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("monthly_pnl").
		Columns(
			"unit_id", "unit_name", "vertical", "region", "month_date", "month", "quarter",
			"revenue", "cogs", "gross_profit", "gross_margin_pct",
			"personnel_cost", "contractor_cost", "marketing", "other_opex",
			"total_opex", "operating_income", "operating_margin_pct",
			"headcount", "budget_revenue", "budget_operating_income",
			"revenue_variance", "operating_income_variance",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, r := range records {
		query = query.Values(
			r.UnitID, r.UnitName, r.Vertical, r.Region, r.Period.Date(), r.Period.Month, r.Quarter,
			r.Revenue, r.COGS, r.GrossProfit, r.GrossMarginPct,
			r.PersonnelCost, r.ContractorCost, r.Marketing, r.OtherOpex,
			r.TotalOpex, r.OperatingIncome, r.OperatingMarginPct,
			r.Headcount, r.BudgetRevenue, r.BudgetOperatingIncome,
			r.RevenueVariance, r.OperatingIncomeVariance,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (unit_id, month_date) DO UPDATE SET
			unit_name = EXCLUDED.unit_name,
			vertical = EXCLUDED.vertical,
			region = EXCLUDED.region,
			month = EXCLUDED.month,
			quarter = EXCLUDED.quarter,
			revenue = EXCLUDED.revenue,
			cogs = EXCLUDED.cogs,
			gross_profit = EXCLUDED.gross_profit,
			gross_margin_pct = EXCLUDED.gross_margin_pct,
			personnel_cost = EXCLUDED.personnel_cost,
			contractor_cost = EXCLUDED.contractor_cost,
			marketing = EXCLUDED.marketing,
			other_opex = EXCLUDED.other_opex,
			total_opex = EXCLUDED.total_opex,
			operating_income = EXCLUDED.operating_income,
			operating_margin_pct = EXCLUDED.operating_margin_pct,
			headcount = EXCLUDED.headcount,
			budget_revenue = EXCLUDED.budget_revenue,
			budget_operating_income = EXCLUDED.budget_operating_income,
			revenue_variance = EXCLUDED.revenue_variance,
			operating_income_variance = EXCLUDED.operating_income_variance,
			refreshed_at = CURRENT_TIMESTAMP
	`)

	return execInsert(ctx, tx, query, datastore.TableMonthlyPnL)
}

func (e *postgresExporter) exportMetrics(ctx context.Context, tx *sql.Tx, rows []domain.OperationalMetric) error {
	if len(rows) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("operational_metrics").
		Columns(
			"unit_id", "unit_name", "month_date", "customers", "arr", "mrr",
			"churn_rate_pct", "nrr_pct", "pipeline", "win_rate_pct",
			"avg_deal_size", "dso_days", "cac", "ltv", "ltv_cac_ratio",
			"employee_satisfaction",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, m := range rows {
		query = query.Values(
			m.UnitID, m.UnitName, m.Period.Date(), m.Customers, m.ARR, m.MRR,
			m.ChurnRatePct, m.NRRPct, m.Pipeline, m.WinRatePct,
			m.AvgDealSize, m.DSODays, m.CAC, m.LTV, m.LTVCACRatio,
			m.EmployeeSatisfaction,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (unit_id, month_date) DO UPDATE SET
			unit_name = EXCLUDED.unit_name,
			customers = EXCLUDED.customers,
			arr = EXCLUDED.arr,
			mrr = EXCLUDED.mrr,
			churn_rate_pct = EXCLUDED.churn_rate_pct,
			nrr_pct = EXCLUDED.nrr_pct,
			pipeline = EXCLUDED.pipeline,
			win_rate_pct = EXCLUDED.win_rate_pct,
			avg_deal_size = EXCLUDED.avg_deal_size,
			dso_days = EXCLUDED.dso_days,
			cac = EXCLUDED.cac,
			ltv = EXCLUDED.ltv,
			ltv_cac_ratio = EXCLUDED.ltv_cac_ratio,
			employee_satisfaction = EXCLUDED.employee_satisfaction,
			refreshed_at = CURRENT_TIMESTAMP
	`)

	return execInsert(ctx, tx, query, datastore.TableOperationalMetrics)
}

func (e *postgresExporter) exportAllocations(ctx context.Context, tx *sql.Tx, rows []domain.ResourceAllocation) error {
	if len(rows) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("resource_allocation").
		Columns(
			"unit_id", "unit_name", "annual_budget", "q1_spend", "q2_spend",
			"q3_spend", "q4_projected", "total_headcount",
			"engineering_headcount", "sales_headcount", "marketing_headcount",
			"ops_headcount", "contractor_fte", "avg_salary", "open_positions",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, a := range rows {
		query = query.Values(
			a.UnitID, a.UnitName, a.AnnualBudget, a.Q1Spend, a.Q2Spend,
			a.Q3Spend, a.Q4Projected, a.TotalHeadcount,
			a.EngineeringHeadcount, a.SalesHeadcount, a.MarketingHeadcount,
			a.OpsHeadcount, a.ContractorFTE, a.AvgSalary, a.OpenPositions,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (unit_id) DO UPDATE SET
			unit_name = EXCLUDED.unit_name,
			annual_budget = EXCLUDED.annual_budget,
			q1_spend = EXCLUDED.q1_spend,
			q2_spend = EXCLUDED.q2_spend,
			q3_spend = EXCLUDED.q3_spend,
			q4_projected = EXCLUDED.q4_projected,
			total_headcount = EXCLUDED.total_headcount,
			engineering_headcount = EXCLUDED.engineering_headcount,
			sales_headcount = EXCLUDED.sales_headcount,
			marketing_headcount = EXCLUDED.marketing_headcount,
			ops_headcount = EXCLUDED.ops_headcount,
			contractor_fte = EXCLUDED.contractor_fte,
			avg_salary = EXCLUDED.avg_salary,
			open_positions = EXCLUDED.open_positions,
			refreshed_at = CURRENT_TIMESTAMP
	`)

	return execInsert(ctx, tx, query, datastore.TableResourceAllocation)
}

func (e *postgresExporter) exportCuratedAlerts(ctx context.Context, tx *sql.Tx, rows []domain.CuratedAlert) error {
	if len(rows) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("executive_alerts").
		Columns(
			"alert_id", "unit_id", "unit_name", "severity", "category",
			"title", "description", "financial_impact", "recommended_action",
			"owner", "date_raised", "status",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, a := range rows {
		query = query.Values(
			a.AlertID, a.UnitID, a.UnitName, string(a.Severity), a.Category,
			a.Title, a.Description, a.FinancialImpact, a.RecommendedAction,
			a.Owner, a.DateRaised, a.Status,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (alert_id) DO UPDATE SET
			unit_id = EXCLUDED.unit_id,
			unit_name = EXCLUDED.unit_name,
			severity = EXCLUDED.severity,
			category = EXCLUDED.category,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			financial_impact = EXCLUDED.financial_impact,
			recommended_action = EXCLUDED.recommended_action,
			owner = EXCLUDED.owner,
			date_raised = EXCLUDED.date_raised,
			status = EXCLUDED.status,
			refreshed_at = CURRENT_TIMESTAMP
	`)

	return execInsert(ctx, tx, query, datastore.TableExecutiveAlerts)
}

func execInsert(ctx context.Context, tx *sql.Tx, query squirrel.InsertBuilder, table string) error {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return errors.Wrapf(err, "erro ao construir a query de inserção da tabela %s", table)
	}

	if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		return errors.Wrapf(err, "erro ao espelhar a tabela %s", table)
	}

	return nil
}
