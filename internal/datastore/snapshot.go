// Package datastore carrega os arquivos CSV do dataset e mantém o snapshot
// imutável consumido pelos cálculos e pela API.
package datastore

import (
	"sort"
	"time"

	"github.com/vfg2006/executive-ops-api/internal/domain"
)

// Nomes das tabelas do dataset, usados em erros, métricas e status.
const (
	TableBusinessUnits      = "business_units"
	TableMonthlyPnL         = "monthly_pnl"
	TableOperationalMetrics = "operational_metrics"
	TableResourceAllocation = "resource_allocation"
	TableExecutiveAlerts    = "executive_alerts"
)

type unitPeriodKey struct {
	UnitID int
	Period domain.Period
}

// Snapshot é uma visão imutável das cinco tabelas do dataset com os índices
// de consulta pré-computados. Os cálculos apenas leem o snapshot; uma recarga
// produz um snapshot novo e troca o ponteiro no Store.
type Snapshot struct {
	Units         []domain.BusinessUnit
	PnL           []domain.MonthlyRecord
	Metrics       []domain.OperationalMetric
	Allocations   []domain.ResourceAllocation
	CuratedAlerts []domain.CuratedAlert

	LoadedAt time.Time

	unitByID         map[int]domain.BusinessUnit
	pnlByUnit        map[int][]domain.MonthlyRecord
	recordByKey      map[unitPeriodKey]domain.MonthlyRecord
	metricByKey      map[unitPeriodKey]domain.OperationalMetric
	allocationByUnit map[int]domain.ResourceAllocation
	latestPeriod     domain.Period
}

// NewSnapshot monta um snapshot a partir das tabelas já interpretadas,
// construindo os índices de consulta. As séries mensais por unidade ficam
// ordenadas do período mais antigo para o mais recente.
func NewSnapshot(
	units []domain.BusinessUnit,
	pnl []domain.MonthlyRecord,
	metrics []domain.OperationalMetric,
	allocations []domain.ResourceAllocation,
	curated []domain.CuratedAlert,
	loadedAt time.Time,
) *Snapshot {
	s := &Snapshot{
		Units:         units,
		PnL:           pnl,
		Metrics:       metrics,
		Allocations:   allocations,
		CuratedAlerts: curated,
		LoadedAt:      loadedAt,

		unitByID:         make(map[int]domain.BusinessUnit, len(units)),
		pnlByUnit:        make(map[int][]domain.MonthlyRecord),
		recordByKey:      make(map[unitPeriodKey]domain.MonthlyRecord, len(pnl)),
		metricByKey:      make(map[unitPeriodKey]domain.OperationalMetric, len(metrics)),
		allocationByUnit: make(map[int]domain.ResourceAllocation, len(allocations)),
	}

	for _, u := range units {
		s.unitByID[u.UnitID] = u
	}

	for _, r := range pnl {
		s.pnlByUnit[r.UnitID] = append(s.pnlByUnit[r.UnitID], r)
		s.recordByKey[unitPeriodKey{r.UnitID, r.Period}] = r
		if r.Period.After(s.latestPeriod) {
			s.latestPeriod = r.Period
		}
	}
	for unitID := range s.pnlByUnit {
		series := s.pnlByUnit[unitID]
		sort.Slice(series, func(i, j int) bool {
			return series[i].Period.Before(series[j].Period)
		})
	}

	for _, m := range metrics {
		s.metricByKey[unitPeriodKey{m.UnitID, m.Period}] = m
	}

	for _, a := range allocations {
		s.allocationByUnit[a.UnitID] = a
	}

	return s
}

// Unit retorna a unidade de negócio pelo identificador.
func (s *Snapshot) Unit(unitID int) (domain.BusinessUnit, bool) {
	u, ok := s.unitByID[unitID]
	return u, ok
}

// PnLSeries retorna a série mensal de P&L de uma unidade, do período mais
// antigo para o mais recente. A fatia retornada é compartilhada: somente
// leitura.
func (s *Snapshot) PnLSeries(unitID int) []domain.MonthlyRecord {
	return s.pnlByUnit[unitID]
}

// RecordAt busca o registro de P&L de uma unidade em um período pela chave
// de calendário.
func (s *Snapshot) RecordAt(unitID int, period domain.Period) (domain.MonthlyRecord, bool) {
	r, ok := s.recordByKey[unitPeriodKey{unitID, period}]
	return r, ok
}

// MetricAt busca a linha de métricas operacionais de uma unidade em um
// período. Junção opcional: ausência não é erro.
func (s *Snapshot) MetricAt(unitID int, period domain.Period) (domain.OperationalMetric, bool) {
	m, ok := s.metricByKey[unitPeriodKey{unitID, period}]
	return m, ok
}

// MetricSeries retorna as métricas operacionais de uma unidade ordenadas por
// período.
func (s *Snapshot) MetricSeries(unitID int) []domain.OperationalMetric {
	var series []domain.OperationalMetric
	for _, m := range s.Metrics {
		if m.UnitID == unitID {
			series = append(series, m)
		}
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Period.Before(series[j].Period)
	})
	return series
}

// AllocationFor busca a alocação de recursos de uma unidade. Junção
// opcional: ausência não é erro.
func (s *Snapshot) AllocationFor(unitID int) (domain.ResourceAllocation, bool) {
	a, ok := s.allocationByUnit[unitID]
	return a, ok
}

// LatestPeriod retorna o período mais recente presente na tabela de P&L.
func (s *Snapshot) LatestPeriod() domain.Period {
	return s.latestPeriod
}

// LatestRecords retorna o registro mais recente de cada unidade, ordenado
// por unit_id crescente. É a entrada do motor de alertas; a ordenação define
// a ordem estável dentro de cada faixa de severidade.
func (s *Snapshot) LatestRecords() []domain.MonthlyRecord {
	latest := make([]domain.MonthlyRecord, 0, len(s.pnlByUnit))
	for _, series := range s.pnlByUnit {
		if len(series) > 0 {
			latest = append(latest, series[len(series)-1])
		}
	}
	sort.Slice(latest, func(i, j int) bool {
		return latest[i].UnitID < latest[j].UnitID
	})
	return latest
}

// RowCounts retorna o número de linhas carregadas por tabela.
func (s *Snapshot) RowCounts() map[string]int {
	return map[string]int{
		TableBusinessUnits:      len(s.Units),
		TableMonthlyPnL:         len(s.PnL),
		TableOperationalMetrics: len(s.Metrics),
		TableResourceAllocation: len(s.Allocations),
		TableExecutiveAlerts:    len(s.CuratedAlerts),
	}
}
