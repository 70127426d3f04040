package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/domain"
)

// generateDir grava o dataset do cenário padrão em um diretório temporário
func generateDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	dataset := defaultDataset(t)
	require.NoError(t, dataset.WriteDir(dir))

	return dir
}

func TestWriteDir(t *testing.T) {
	dir := generateDir(t)

	for _, name := range []string{
		datastore.TableBusinessUnits,
		datastore.TableMonthlyPnL,
		datastore.TableOperationalMetrics,
		datastore.TableResourceAllocation,
		datastore.TableExecutiveAlerts,
	} {
		info, err := os.Stat(filepath.Join(dir, name+".csv"))
		require.NoError(t, err, "tabela %s não gravada", name)
		assert.Greater(t, info.Size(), int64(0), "tabela %s vazia", name)
	}
}

// O dataset gerado precisa atravessar o mesmo carregador usado pela API e
// fechar nos indicadores do cenário padrão.
func TestValidateDirRoundTrip(t *testing.T) {
	dir := generateDir(t)

	report, err := ValidateDir(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		datastore.TableBusinessUnits:      12,
		datastore.TableMonthlyPnL:         144,
		datastore.TableOperationalMetrics: 144,
		datastore.TableResourceAllocation: 12,
		datastore.TableExecutiveAlerts:    5,
	}, report.RowCounts)

	assert.Equal(t, domain.Period{Year: 2024, Month: 12}, report.LatestPeriod)

	assert.Greater(t, report.TotalRevenue, 0.0)
	assert.NotZero(t, report.TotalOperatingIncome)
	assert.Greater(t, report.TotalHeadcount, 0)
	assert.NotEmpty(t, report.TopUnitName)

	assert.Equal(t, 5, report.CuratedAlerts)
	assert.Equal(t, 2, report.HighSeverity)
	assert.InDelta(t, -2_030_000.0, report.TotalAlertImpact, 1e-6)

	assert.Greater(t, report.TotalAnnualBudget, 0.0)
	assert.Greater(t, report.TotalPlannedHeadcount, 0)
}

func TestValidateDirBrokenReference(t *testing.T) {
	dir := generateDir(t)

	content := "alert_id,unit_id,unit_name,severity,category,title,description,financial_impact,recommended_action,owner,date_raised,status\n" +
		"1,99,Ghost Unit,HIGH,Cost Overrun,Titulo,Descricao,-1000,Acao,Owner,2024-09-15,Open\n"
	path := filepath.Join(dir, datastore.TableExecutiveAlerts+".csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := ValidateDir(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unidade desconhecida 99 na tabela executive_alerts")
}

func TestValidateDirMissingTable(t *testing.T) {
	dir := generateDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, datastore.TableMonthlyPnL+".csv")))

	_, err := ValidateDir(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tabela monthly_pnl: erro ao abrir")
}
