// Package generator produz o dataset sintético do painel executivo a partir
// de um cenário declarativo. A mesma semente sempre produz o mesmo dataset.
package generator

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/domain"
	"github.com/vfg2006/executive-ops-api/pkg/utils"
)

const (
	monthsPerYear = 12

	// Q4 concentra fechamento de contratos
	seasonalityFactor = 1.15

	// Orçamento definido no início do ano: receita base com 15% de
	// crescimento e meta de 20% de margem operacional
	budgetGrowthFactor = 1.15
	budgetMarginTarget = 0.20
)

// Faixas operacionais fixas, fora do cenário por serem características do
// negócio e não do roteiro
var (
	headcountNormal     = Range{Min: 15, Max: 80}
	headcountStruggling = Range{Min: 8, Max: 25}
	personnelRate       = Range{Min: 8_000, Max: 12_000}
	contractorBaseline  = Range{Min: 0.10, Max: 0.20}
	marketingShare      = Range{Min: 0.15, Max: 0.25}
	otherOpexShare      = Range{Min: 0.08, Max: 0.12}
	revenueNoise        = Range{Min: 0.95, Max: 1.05}

	customersHigh     = Range{Min: 150, Max: 500}
	customersRegular  = Range{Min: 50, Max: 200}
	customersOther    = Range{Min: 50, Max: 150}
	arrPerCustomer    = Range{Min: 50_000, Max: 150_000}
	churnHigh         = Range{Min: 0.01, Max: 0.03}
	churnRegular      = Range{Min: 0.04, Max: 0.08}
	nrrHigh           = Range{Min: 110, Max: 125}
	nrrRegular        = Range{Min: 95, Max: 105}
	pipelineRange     = Range{Min: 20_000_000, Max: 40_000_000}
	winRateRange      = Range{Min: 0.25, Max: 0.35}
	dealSizeRange     = Range{Min: 75_000, Max: 150_000}
	dsoNormal         = Range{Min: 35, Max: 55}
	dsoStruggling     = Range{Min: 60, Max: 85}
	cacRange          = Range{Min: 5_000, Max: 15_000}
	ltvMultiple       = Range{Min: 3, Max: 8}
	satisfactionHigh  = Range{Min: 7.5, Max: 9.0}
	satisfactionOther = Range{Min: 6.0, Max: 7.5}

	allocationHeadcount           = Range{Min: 40, Max: 90}
	allocationHeadcountStruggling = Range{Min: 15, Max: 35}
	quarterSpendEarly             = Range{Min: 0.23, Max: 0.25}
	quarterSpendMid               = Range{Min: 0.24, Max: 0.26}
	quarterSpendLate              = Range{Min: 0.25, Max: 0.27}
	contractorFTEShare            = Range{Min: 0.10, Max: 0.20}
	salaryRange                   = Range{Min: 95_000, Max: 125_000}
	openPositions                 = Range{Min: 2, Max: 12}
)

// functionSplit distribui o headcount planejado entre funções
type functionSplit struct {
	engineering float64
	sales       float64
	marketing   float64
	ops         float64
}

var functionSplits = map[string]functionSplit{
	"Software": {engineering: 0.50, sales: 0.20, marketing: 0.15, ops: 0.15},
	"Sales":    {engineering: 0.10, sales: 0.55, marketing: 0.25, ops: 0.10},
	"Services": {engineering: 0.15, sales: 0.30, marketing: 0.10, ops: 0.45},
}

var defaultFunctionSplit = functionSplit{engineering: 0.40, sales: 0.25, marketing: 0.20, ops: 0.15}

var hundred = decimal.NewFromInt(100)

// Table é uma tabela pronta para serialização em CSV
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Dataset agrupa as cinco tabelas geradas
type Dataset struct {
	BusinessUnits      Table
	MonthlyPnL         Table
	OperationalMetrics Table
	ResourceAllocation Table
	ExecutiveAlerts    Table
}

// Tables devolve as tabelas na ordem de gravação
func (d *Dataset) Tables() []Table {
	return []Table{
		d.BusinessUnits,
		d.MonthlyPnL,
		d.OperationalMetrics,
		d.ResourceAllocation,
		d.ExecutiveAlerts,
	}
}

type Generator struct {
	scenario *Scenario
	rng      *rand.Rand
}

// New cria um gerador determinístico para o cenário
func New(scenario *Scenario) *Generator {
	return &Generator{
		scenario: scenario,
		rng:      rand.New(rand.NewSource(scenario.Seed)),
	}
}

// Generate materializa o cenário nas cinco tabelas do dataset. A ordem dos
// sorteios é fixa: unidades na ordem do cenário, meses de janeiro a
// dezembro, campos na ordem das colunas.
func (g *Generator) Generate() (*Dataset, error) {
	if err := g.scenario.Validate(); err != nil {
		return nil, err
	}

	return &Dataset{
		BusinessUnits:      g.buildBusinessUnits(),
		MonthlyPnL:         g.buildMonthlyPnL(),
		OperationalMetrics: g.buildOperationalMetrics(),
		ResourceAllocation: g.buildResourceAllocation(),
		ExecutiveAlerts:    g.buildExecutiveAlerts(),
	}, nil
}

func (g *Generator) buildBusinessUnits() Table {
	rows := make([][]string, 0, len(g.scenario.Units))
	for _, unit := range g.scenario.Units {
		rows = append(rows, []string{
			strconv.Itoa(unit.UnitID),
			unit.Name,
			unit.Vertical,
			unit.Region,
			unit.Performance,
		})
	}

	return Table{
		Name:   datastore.TableBusinessUnits,
		Header: []string{"unit_id", "name", "vertical", "region", "performance"},
		Rows:   rows,
	}
}

// buildMonthlyPnL deriva as colunas financeiras a partir dos componentes já
// arredondados em centavos, de forma que as identidades contábeis
// (lucro bruto, opex total, resultado operacional e variações) fechem
// exatamente nos valores emitidos.
func (g *Generator) buildMonthlyPnL() Table {
	rows := make([][]string, 0, len(g.scenario.Units)*monthsPerYear)

	for _, unit := range g.scenario.Units {
		profile := g.scenario.profileFor(unit)

		baseRevenue := g.uniform(profile.BaseRevenue)
		growthRate := g.uniform(profile.MonthlyGrowth)
		grossMargin := g.uniform(profile.GrossMargin)

		for month := 1; month <= monthsPerYear; month++ {
			period := domain.Period{Year: g.scenario.Year, Month: month}

			seasonality := 1.0
			if month >= 11 {
				seasonality = seasonalityFactor
			}

			rawRevenue := baseRevenue * math.Pow(1+growthRate, float64(month)) * seasonality
			rawRevenue *= g.uniform(revenueNoise)

			revenue := cents(rawRevenue)
			cogs := cents(rawRevenue * (1 - grossMargin))
			grossProfit := revenue.Sub(cogs)

			headcountRange := headcountNormal
			if unit.Performance == PerformanceStruggling {
				headcountRange = headcountStruggling
			}
			headcount := g.intIn(headcountRange)

			rawPersonnel := float64(headcount) * g.uniform(personnelRate)

			contractorRatio := contractorBaseline
			if g.scenario.spikeApplies(unit.UnitID, month) {
				contractorRatio = g.scenario.ContractorSpike.Ratio
			}

			personnel := cents(rawPersonnel)
			contractor := cents(rawPersonnel * g.uniform(contractorRatio))
			marketing := cents(rawRevenue * g.uniform(marketingShare))
			otherOpex := cents(rawRevenue * g.uniform(otherOpexShare))

			totalOpex := personnel.Add(contractor).Add(marketing).Add(otherOpex)
			operatingIncome := grossProfit.Sub(totalOpex)

			budgetRevenue := cents(baseRevenue * budgetGrowthFactor * seasonality)
			budgetOperatingIncome := budgetRevenue.Mul(decimal.NewFromFloat(budgetMarginTarget)).Round(2)

			rows = append(rows, []string{
				strconv.Itoa(unit.UnitID),
				unit.Name,
				unit.Vertical,
				unit.Region,
				utils.FormatDate(period.Date()),
				strconv.Itoa(month),
				period.Quarter(),
				revenue.String(),
				cogs.String(),
				grossProfit.String(),
				pctOfDecimal(grossProfit, revenue),
				personnel.String(),
				contractor.String(),
				marketing.String(),
				otherOpex.String(),
				totalOpex.String(),
				operatingIncome.String(),
				pctOfDecimal(operatingIncome, revenue),
				strconv.Itoa(headcount),
				budgetRevenue.String(),
				budgetOperatingIncome.String(),
				revenue.Sub(budgetRevenue).String(),
				operatingIncome.Sub(budgetOperatingIncome).String(),
			})
		}
	}

	return Table{
		Name: datastore.TableMonthlyPnL,
		Header: []string{
			"unit_id", "unit_name", "vertical", "region", "date", "month", "quarter",
			"revenue", "cogs", "gross_profit", "gross_margin_pct",
			"personnel_cost", "contractor_cost", "marketing", "other_opex",
			"total_opex", "operating_income", "operating_margin_pct",
			"headcount", "budget_revenue", "budget_operating_income",
			"revenue_variance", "operating_income_variance",
		},
		Rows: rows,
	}
}

func (g *Generator) buildOperationalMetrics() Table {
	rows := make([][]string, 0, len(g.scenario.Units)*monthsPerYear)

	for _, unit := range g.scenario.Units {
		recurring := unit.Vertical == "Software" || unit.Vertical == "Infrastructure"
		sales := unit.Vertical == "Sales"
		high := unit.Performance == PerformanceHigh

		for month := 1; month <= monthsPerYear; month++ {
			period := domain.Period{Year: g.scenario.Year, Month: month}

			var customers int
			var arr, mrr, churn, nrr string
			if recurring {
				if high {
					customers = g.intIn(customersHigh)
				} else {
					customers = g.intIn(customersRegular)
				}

				rawARR := float64(customers) * g.uniform(arrPerCustomer)
				arr = rawFloat(rawARR)
				mrr = rawFloat(rawARR / 12)

				if high {
					churn = rounded(g.uniform(churnHigh)*100, 2)
					nrr = rounded(g.uniform(nrrHigh), 1)
				} else {
					churn = rounded(g.uniform(churnRegular)*100, 2)
					nrr = rounded(g.uniform(nrrRegular), 1)
				}
			} else {
				customers = g.intIn(customersOther)
			}

			var pipeline, winRate, dealSize string
			if sales {
				pipeline = rawFloat(g.uniform(pipelineRange))
				winRate = rounded(g.uniform(winRateRange)*100, 1)
				dealSize = rawFloat(g.uniform(dealSizeRange))
			}

			dsoRange := dsoNormal
			if unit.Performance == PerformanceStruggling {
				dsoRange = dsoStruggling
			}
			dso := g.uniform(dsoRange)

			cac := g.uniform(cacRange)
			ltv := cac * g.uniform(ltvMultiple)

			satisfactionRange := satisfactionOther
			if high {
				satisfactionRange = satisfactionHigh
			}
			satisfaction := g.uniform(satisfactionRange)

			rows = append(rows, []string{
				strconv.Itoa(unit.UnitID),
				unit.Name,
				utils.FormatDate(period.Date()),
				strconv.Itoa(customers),
				arr,
				mrr,
				churn,
				nrr,
				pipeline,
				winRate,
				dealSize,
				rounded(dso, 1),
				rounded(cac, 2),
				rounded(ltv, 2),
				rounded(ltv/cac, 2),
				rounded(satisfaction, 1),
			})
		}
	}

	return Table{
		Name: datastore.TableOperationalMetrics,
		Header: []string{
			"unit_id", "unit_name", "date", "customers", "arr", "mrr",
			"churn_rate_pct", "nrr_pct", "pipeline", "win_rate_pct",
			"avg_deal_size", "dso_days", "cac", "ltv", "ltv_cac_ratio",
			"employee_satisfaction",
		},
		Rows: rows,
	}
}

func (g *Generator) buildResourceAllocation() Table {
	rows := make([][]string, 0, len(g.scenario.Units))

	for _, unit := range g.scenario.Units {
		profile := g.scenario.profileFor(unit)
		budget := g.uniform(profile.AnnualBudget)

		split, ok := functionSplits[unit.Vertical]
		if !ok {
			split = defaultFunctionSplit
		}

		headcountRange := allocationHeadcount
		if unit.Performance == PerformanceStruggling {
			headcountRange = allocationHeadcountStruggling
		}
		totalHeadcount := g.intIn(headcountRange)

		rows = append(rows, []string{
			strconv.Itoa(unit.UnitID),
			unit.Name,
			cents(budget).String(),
			cents(budget * g.uniform(quarterSpendEarly)).String(),
			cents(budget * g.uniform(quarterSpendMid)).String(),
			cents(budget * g.uniform(quarterSpendMid)).String(),
			cents(budget * g.uniform(quarterSpendLate)).String(),
			strconv.Itoa(totalHeadcount),
			strconv.Itoa(int(float64(totalHeadcount) * split.engineering)),
			strconv.Itoa(int(float64(totalHeadcount) * split.sales)),
			strconv.Itoa(int(float64(totalHeadcount) * split.marketing)),
			strconv.Itoa(int(float64(totalHeadcount) * split.ops)),
			rounded(float64(totalHeadcount)*g.uniform(contractorFTEShare), 1),
			rawFloat(g.uniform(salaryRange)),
			strconv.Itoa(g.intIn(openPositions)),
		})
	}

	return Table{
		Name: datastore.TableResourceAllocation,
		Header: []string{
			"unit_id", "unit_name", "annual_budget", "q1_spend", "q2_spend",
			"q3_spend", "q4_projected", "total_headcount",
			"engineering_headcount", "sales_headcount", "marketing_headcount",
			"ops_headcount", "contractor_fte", "avg_salary", "open_positions",
		},
		Rows: rows,
	}
}

func (g *Generator) buildExecutiveAlerts() Table {
	rows := make([][]string, 0, len(g.scenario.Alerts))
	for _, alert := range g.scenario.Alerts {
		rows = append(rows, []string{
			strconv.Itoa(alert.AlertID),
			strconv.Itoa(alert.UnitID),
			alert.UnitName,
			alert.Severity,
			alert.Category,
			alert.Title,
			alert.Description,
			rawFloat(alert.FinancialImpact),
			alert.RecommendedAction,
			alert.Owner,
			alert.DateRaised,
			alert.Status,
		})
	}

	return Table{
		Name: datastore.TableExecutiveAlerts,
		Header: []string{
			"alert_id", "unit_id", "unit_name", "severity", "category",
			"title", "description", "financial_impact", "recommended_action",
			"owner", "date_raised", "status",
		},
		Rows: rows,
	}
}

func (g *Generator) uniform(r Range) float64 {
	return r.Min + g.rng.Float64()*(r.Max-r.Min)
}

func (g *Generator) intIn(r Range) int {
	min := int(r.Min)
	max := int(r.Max)
	return min + g.rng.Intn(max-min+1)
}

// cents arredonda um valor monetário em centavos
func cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// pctOfDecimal calcula 100*part/total com duas casas; total nunca é zero
// nas séries geradas
func pctOfDecimal(part, total decimal.Decimal) string {
	return part.Div(total).Mul(hundred).Round(2).String()
}

func rounded(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

func rawFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
