package generator

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/executive-ops-api/internal/datastore"
)

func defaultDataset(t *testing.T) *Dataset {
	t.Helper()

	scenario, err := DefaultScenario()
	require.NoError(t, err)

	dataset, err := New(scenario).Generate()
	require.NoError(t, err)

	return dataset
}

func colIdx(t *testing.T, table Table, name string) int {
	t.Helper()

	for i, col := range table.Header {
		if col == name {
			return i
		}
	}

	t.Fatalf("coluna %s não encontrada na tabela %s", name, table.Name)
	return -1
}

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()

	value, err := decimal.NewFromString(raw)
	require.NoError(t, err, "valor não numérico %q", raw)

	return value
}

// unitRows filtra as linhas de uma tabela pela coluna unit_id
func unitRows(t *testing.T, table Table, unitID int) [][]string {
	t.Helper()

	idx := colIdx(t, table, "unit_id")
	want := strconv.Itoa(unitID)

	rows := make([][]string, 0, monthsPerYear)
	for _, row := range table.Rows {
		if row[idx] == want {
			rows = append(rows, row)
		}
	}

	return rows
}

func TestGenerateIsDeterministic(t *testing.T) {
	scenario, err := DefaultScenario()
	require.NoError(t, err)

	first, err := New(scenario).Generate()
	require.NoError(t, err)

	second, err := New(scenario).Generate()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateRejectsInvalidScenario(t *testing.T) {
	scenario := validScenario()
	scenario.Units = nil

	_, err := New(scenario).Generate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nenhuma unidade de negócio definida")
}

func TestGenerateTableShapes(t *testing.T) {
	dataset := defaultDataset(t)

	t.Run("Deve produzir as cinco tabelas na ordem de gravação", func(t *testing.T) {
		tables := dataset.Tables()
		require.Len(t, tables, 5)

		names := make([]string, 0, len(tables))
		for _, table := range tables {
			names = append(names, table.Name)
		}

		assert.Equal(t, []string{
			datastore.TableBusinessUnits,
			datastore.TableMonthlyPnL,
			datastore.TableOperationalMetrics,
			datastore.TableResourceAllocation,
			datastore.TableExecutiveAlerts,
		}, names)
	})

	t.Run("Deve respeitar as contagens do cenário padrão", func(t *testing.T) {
		assert.Len(t, dataset.BusinessUnits.Rows, 12)
		assert.Len(t, dataset.MonthlyPnL.Rows, 144)
		assert.Len(t, dataset.OperationalMetrics.Rows, 144)
		assert.Len(t, dataset.ResourceAllocation.Rows, 12)
		assert.Len(t, dataset.ExecutiveAlerts.Rows, 5)
	})

	t.Run("Toda linha deve ter a largura do cabeçalho", func(t *testing.T) {
		for _, table := range dataset.Tables() {
			for i, row := range table.Rows {
				require.Len(t, row, len(table.Header), "tabela %s, linha %d", table.Name, i)
			}
		}
	})

	t.Run("Cabeçalho do P&L mensal deve expor as colunas derivadas", func(t *testing.T) {
		assert.Equal(t, []string{
			"unit_id", "unit_name", "vertical", "region", "date", "month", "quarter",
			"revenue", "cogs", "gross_profit", "gross_margin_pct",
			"personnel_cost", "contractor_cost", "marketing", "other_opex",
			"total_opex", "operating_income", "operating_margin_pct",
			"headcount", "budget_revenue", "budget_operating_income",
			"revenue_variance", "operating_income_variance",
		}, dataset.MonthlyPnL.Header)
	})
}

// As identidades contábeis precisam fechar exatamente nos valores emitidos,
// senão o validador do dataset e as agregações do relatório divergem por
// resíduos de ponto flutuante.
func TestGenerateMonthlyPnLIdentities(t *testing.T) {
	dataset := defaultDataset(t)
	pnl := dataset.MonthlyPnL

	revenue := colIdx(t, pnl, "revenue")
	cogs := colIdx(t, pnl, "cogs")
	grossProfit := colIdx(t, pnl, "gross_profit")
	grossMarginPct := colIdx(t, pnl, "gross_margin_pct")
	personnel := colIdx(t, pnl, "personnel_cost")
	contractor := colIdx(t, pnl, "contractor_cost")
	marketing := colIdx(t, pnl, "marketing")
	otherOpex := colIdx(t, pnl, "other_opex")
	totalOpex := colIdx(t, pnl, "total_opex")
	operatingIncome := colIdx(t, pnl, "operating_income")
	operatingMarginPct := colIdx(t, pnl, "operating_margin_pct")
	budgetRevenue := colIdx(t, pnl, "budget_revenue")
	budgetOI := colIdx(t, pnl, "budget_operating_income")
	revenueVariance := colIdx(t, pnl, "revenue_variance")
	oiVariance := colIdx(t, pnl, "operating_income_variance")

	for i, row := range pnl.Rows {
		rev := dec(t, row[revenue])
		gp := dec(t, row[grossProfit])
		oi := dec(t, row[operatingIncome])
		opex := dec(t, row[totalOpex])

		require.True(t, rev.Sub(dec(t, row[cogs])).Equal(gp),
			"linha %d: gross_profit não fecha com revenue - cogs", i)

		sum := dec(t, row[personnel]).
			Add(dec(t, row[contractor])).
			Add(dec(t, row[marketing])).
			Add(dec(t, row[otherOpex]))
		require.True(t, sum.Equal(opex),
			"linha %d: total_opex não fecha com a soma dos componentes", i)

		require.True(t, gp.Sub(opex).Equal(oi),
			"linha %d: operating_income não fecha com gross_profit - total_opex", i)

		require.True(t, rev.Sub(dec(t, row[budgetRevenue])).Equal(dec(t, row[revenueVariance])),
			"linha %d: revenue_variance não fecha", i)

		require.True(t, oi.Sub(dec(t, row[budgetOI])).Equal(dec(t, row[oiVariance])),
			"linha %d: operating_income_variance não fecha", i)

		require.Equal(t, pctOfDecimal(gp, rev), row[grossMarginPct],
			"linha %d: gross_margin_pct não fecha", i)
		require.Equal(t, pctOfDecimal(oi, rev), row[operatingMarginPct],
			"linha %d: operating_margin_pct não fecha", i)
	}
}

func TestGenerateBudgetSeasonality(t *testing.T) {
	dataset := defaultDataset(t)
	pnl := dataset.MonthlyPnL

	monthIdx := colIdx(t, pnl, "month")
	budgetIdx := colIdx(t, pnl, "budget_revenue")
	budgetOIIdx := colIdx(t, pnl, "budget_operating_income")

	rows := unitRows(t, pnl, 1)
	require.Len(t, rows, monthsPerYear)

	budgetByMonth := make(map[int]string, monthsPerYear)
	for _, row := range rows {
		month, err := strconv.Atoi(row[monthIdx])
		require.NoError(t, err)
		budgetByMonth[month] = row[budgetIdx]
	}

	t.Run("Orçamento de receita deve ser constante de janeiro a outubro", func(t *testing.T) {
		for month := 2; month <= 10; month++ {
			assert.Equal(t, budgetByMonth[1], budgetByMonth[month], "mês %d", month)
		}
	})

	t.Run("Novembro e dezembro devem carregar o fator de sazonalidade", func(t *testing.T) {
		assert.Equal(t, budgetByMonth[11], budgetByMonth[12])

		base := dec(t, budgetByMonth[1])
		q4 := dec(t, budgetByMonth[11])
		assert.True(t, q4.GreaterThan(base))
		assert.InDelta(t, seasonalityFactor, q4.Div(base).InexactFloat64(), 1e-6)
	})

	t.Run("Meta de resultado operacional deve ser 20% da receita orçada", func(t *testing.T) {
		target := decimal.NewFromFloat(budgetMarginTarget)
		for i, row := range rows {
			want := dec(t, row[budgetIdx]).Mul(target).Round(2)
			require.True(t, want.Equal(dec(t, row[budgetOIIdx])), "linha %d", i)
		}
	})
}

func TestGenerateContractorSpike(t *testing.T) {
	dataset := defaultDataset(t)
	pnl := dataset.MonthlyPnL

	monthIdx := colIdx(t, pnl, "month")
	personnelIdx := colIdx(t, pnl, "personnel_cost")
	contractorIdx := colIdx(t, pnl, "contractor_cost")

	rows := unitRows(t, pnl, 4)
	require.Len(t, rows, monthsPerYear)

	for _, row := range rows {
		month, err := strconv.Atoi(row[monthIdx])
		require.NoError(t, err)

		personnel := dec(t, row[personnelIdx]).InexactFloat64()
		contractor := dec(t, row[contractorIdx]).InexactFloat64()
		require.Greater(t, personnel, 0.0)
		ratio := contractor / personnel

		if month >= 7 {
			assert.GreaterOrEqual(t, ratio, 0.60-1e-3, "mês %d", month)
			assert.LessOrEqual(t, ratio, 0.70+1e-3, "mês %d", month)
		} else {
			assert.GreaterOrEqual(t, ratio, 0.10-1e-3, "mês %d", month)
			assert.LessOrEqual(t, ratio, 0.20+1e-3, "mês %d", month)
		}
	}
}

func TestGenerateOperationalMetrics(t *testing.T) {
	dataset := defaultDataset(t)
	metrics := dataset.OperationalMetrics

	arrIdx := colIdx(t, metrics, "arr")
	mrrIdx := colIdx(t, metrics, "mrr")
	churnIdx := colIdx(t, metrics, "churn_rate_pct")
	nrrIdx := colIdx(t, metrics, "nrr_pct")
	pipelineIdx := colIdx(t, metrics, "pipeline")
	winRateIdx := colIdx(t, metrics, "win_rate_pct")
	dealSizeIdx := colIdx(t, metrics, "avg_deal_size")
	dsoIdx := colIdx(t, metrics, "dso_days")
	customersIdx := colIdx(t, metrics, "customers")

	t.Run("Verticais de receita recorrente devem preencher ARR, MRR, churn e NRR", func(t *testing.T) {
		for _, row := range unitRows(t, metrics, 1) {
			assert.NotEmpty(t, row[arrIdx])
			assert.NotEmpty(t, row[mrrIdx])
			assert.NotEmpty(t, row[churnIdx])
			assert.NotEmpty(t, row[nrrIdx])
			assert.Empty(t, row[pipelineIdx])
			assert.Empty(t, row[winRateIdx])
			assert.Empty(t, row[dealSizeIdx])
		}
	})

	t.Run("Vertical de vendas deve preencher pipeline, win rate e ticket médio", func(t *testing.T) {
		for _, row := range unitRows(t, metrics, 2) {
			assert.Empty(t, row[arrIdx])
			assert.Empty(t, row[mrrIdx])
			assert.NotEmpty(t, row[pipelineIdx])
			assert.NotEmpty(t, row[winRateIdx])
			assert.NotEmpty(t, row[dealSizeIdx])
		}
	})

	t.Run("Demais verticais devem deixar as métricas específicas em branco", func(t *testing.T) {
		for _, row := range unitRows(t, metrics, 5) {
			assert.Empty(t, row[arrIdx])
			assert.Empty(t, row[pipelineIdx])
			assert.NotEmpty(t, row[customersIdx])
		}
	})

	t.Run("Unidades em dificuldade devem carregar DSO alto o ano inteiro", func(t *testing.T) {
		for _, unitID := range []int{4, 10} {
			for _, row := range unitRows(t, metrics, unitID) {
				dso := dec(t, row[dsoIdx]).InexactFloat64()
				assert.GreaterOrEqual(t, dso, 60.0-0.05, "unidade %d", unitID)
				assert.LessOrEqual(t, dso, 85.0+0.05, "unidade %d", unitID)
			}
		}
	})

	t.Run("Unidades saudáveis devem manter o DSO na faixa normal", func(t *testing.T) {
		for _, row := range unitRows(t, metrics, 1) {
			dso := dec(t, row[dsoIdx]).InexactFloat64()
			assert.GreaterOrEqual(t, dso, 35.0-0.05)
			assert.LessOrEqual(t, dso, 55.0+0.05)
		}
	})
}

func TestGenerateExecutiveAlerts(t *testing.T) {
	dataset := defaultDataset(t)
	alerts := dataset.ExecutiveAlerts

	require.Len(t, alerts.Rows, 5)

	assert.Equal(t, []string{
		"1",
		"4",
		"Mobile Products",
		"HIGH",
		"Cost Overrun",
		"Contractor Spend Exceeding Plan",
		"Unit 4 contractor costs up 67% in Q3. Now 60% of personnel budget vs 15% target.",
		"-180000",
		"Convert 3 key contractors to FTE. Net annual savings: $180K",
		"Unit 4 GM",
		"2024-09-15",
		"Open",
	}, alerts.Rows[0])

	severityIdx := colIdx(t, alerts, "severity")
	severities := make([]string, 0, len(alerts.Rows))
	for _, row := range alerts.Rows {
		severities = append(severities, row[severityIdx])
	}
	assert.Equal(t, []string{"HIGH", "HIGH", "MEDIUM", "MEDIUM", "LOW"}, severities)
}
