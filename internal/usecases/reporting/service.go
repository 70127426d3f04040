package reporting

import (
	"sort"

	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/domain"
	"github.com/vfg2006/executive-ops-api/pkg/utils"
)

// Janela padrão da análise de mix de contractors, em meses.
const DefaultContractorWindow = 6

// Premissa fixa de negócio: conversão de contractor para FTE reduz o custo
// em 20%. O potencial de economia é sempre avg_contractor * 0.20 / 12.
const contractorConversionSavingsRate = 0.20

// Service implementa CombinedReporter sobre o snapshot corrente do dataset.
// Todos os cálculos são funções puras da visão recebida: nada é persistido e
// duas chamadas sobre o mesmo snapshot produzem o mesmo resultado.
type Service struct {
	dataset datastore.SnapshotProvider
}

// NewService cria o serviço de relatórios
func NewService(dataset datastore.SnapshotProvider) CombinedReporter {
	return &Service{dataset: dataset}
}

// CorporateSummary consolida o P&L de todas as unidades mês a mês, do mais
// recente para o mais antigo, considerando apenas períodos até asOf.
func (s *Service) CorporateSummary(asOf *domain.Period) (*domain.CorporateSummaryReport, error) {
	snapshot, err := s.dataset.Snapshot()
	if err != nil {
		return nil, err
	}
	if len(snapshot.PnL) == 0 {
		return nil, ErrNoData
	}

	reference := snapshot.LatestPeriod()
	if asOf != nil {
		reference = *asOf
	}

	type accumulator struct {
		revenue         float64
		grossProfit     float64
		operatingIncome float64
		headcount       int
		units           int
	}

	byPeriod := make(map[domain.Period]*accumulator)
	for _, r := range snapshot.PnL {
		if r.Period.After(reference) {
			continue
		}
		acc, ok := byPeriod[r.Period]
		if !ok {
			acc = &accumulator{}
			byPeriod[r.Period] = acc
		}
		acc.revenue += r.Revenue
		acc.grossProfit += r.GrossProfit
		acc.operatingIncome += r.OperatingIncome
		acc.headcount += r.Headcount
		acc.units++
	}

	summaries := make([]domain.CorporateSummary, 0, len(byPeriod))
	for period, acc := range byPeriod {
		summary := domain.CorporateSummary{
			Period:               period,
			TotalRevenue:         utils.RoundWithTwoDecimalPlace(acc.revenue),
			TotalGrossProfit:     utils.RoundWithTwoDecimalPlace(acc.grossProfit),
			TotalOperatingIncome: utils.RoundWithTwoDecimalPlace(acc.operatingIncome),
			TotalHeadcount:       acc.headcount,
			GrossMarginPct:       utils.RoundWithTwoDecimalPlace(utils.PctOf(acc.grossProfit, acc.revenue)),
			OperatingMarginPct:   utils.RoundWithTwoDecimalPlace(utils.PctOf(acc.operatingIncome, acc.revenue)),
			Units:                acc.units,
		}

		// revenue_per_employee fica ausente quando não há headcount
		if acc.headcount > 0 {
			perEmployee := utils.RoundWithTwoDecimalPlace(acc.revenue / float64(acc.headcount))
			summary.RevenuePerEmployee = &perEmployee
		}

		summaries = append(summaries, summary)
	}

	// Mês mais recente primeiro
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[j].Period.Before(summaries[i].Period)
	})

	return &domain.CorporateSummaryReport{
		AsOf:      reference,
		Summaries: summaries,
	}, nil
}

// MarginTrend compara a margem operacional corrente de uma unidade com as
// margens de 3 e 6 meses atrás. A busca é por chave de calendário
// (unidade, ano, mês): um buraco na série resulta em "margem anterior
// indisponível" para aquele deslocamento, nunca em um registro deslocado.
func (s *Service) MarginTrend(unitID int) (*domain.MarginTrend, error) {
	snapshot, err := s.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	if _, ok := snapshot.Unit(unitID); !ok {
		return nil, ErrUnitNotFound
	}

	series := snapshot.PnLSeries(unitID)
	if len(series) == 0 {
		return nil, ErrNoPnLRecords
	}

	latest := series[len(series)-1]
	trend := &domain.MarginTrend{
		UnitID:           unitID,
		UnitName:         latest.UnitName,
		AsOf:             latest.Period,
		CurrentMarginPct: latest.OperatingMarginPct,
	}

	if prior, ok := snapshot.RecordAt(unitID, latest.Period.AddMonths(-3)); ok {
		margin := prior.OperatingMarginPct
		change := utils.RoundWithTwoDecimalPlace(latest.OperatingMarginPct - margin)
		trend.MarginPct3MoAgo = &margin
		trend.Change3Mo = &change
	}

	// Sem referência de 6 meses a tendência é reportada como estável
	trend.Classification = domain.TrendStable
	if prior, ok := snapshot.RecordAt(unitID, latest.Period.AddMonths(-6)); ok {
		margin := prior.OperatingMarginPct
		rawChange := latest.OperatingMarginPct - margin
		change := utils.RoundWithTwoDecimalPlace(rawChange)
		trend.MarginPct6MoAgo = &margin
		trend.Change6Mo = &change
		// Classificação sobre a variação sem arredondamento
		trend.Classification = domain.MarginTrendFor(rawChange)
	}

	return trend, nil
}

// ContractorMix calcula o peso médio de contractors sobre a folha da unidade
// na janela móvel dos últimos windowMonths registros.
func (s *Service) ContractorMix(unitID int, windowMonths int) (*domain.ContractorMix, error) {
	snapshot, err := s.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	if _, ok := snapshot.Unit(unitID); !ok {
		return nil, ErrUnitNotFound
	}

	series := snapshot.PnLSeries(unitID)
	if len(series) == 0 {
		return nil, ErrNoPnLRecords
	}

	if windowMonths <= 0 {
		windowMonths = DefaultContractorWindow
	}
	window := series
	if len(window) > windowMonths {
		window = window[len(window)-windowMonths:]
	}

	var contractorTotal, personnelTotal float64
	for _, r := range window {
		contractorTotal += r.ContractorCost
		personnelTotal += r.PersonnelCost
	}
	avgContractor := contractorTotal / float64(len(window))
	avgPersonnel := personnelTotal / float64(len(window))

	pct := utils.PctOf(avgContractor, avgContractor+avgPersonnel)

	latest := series[len(series)-1]
	return &domain.ContractorMix{
		UnitID:                 unitID,
		UnitName:               latest.UnitName,
		WindowMonths:           len(window),
		AsOf:                   latest.Period,
		AvgContractorCost:      utils.RoundWithTwoDecimalPlace(avgContractor),
		AvgPersonnelCost:       utils.RoundWithTwoDecimalPlace(avgPersonnel),
		ContractorPctOfLabor:   utils.RoundWithTwoDecimalPlace(pct),
		Label:                  domain.ContractorMixLabelFor(pct),
		PotentialAnnualSavings: utils.RoundWithTwoDecimalPlace(avgContractor * contractorConversionSavingsRate / 12),
	}, nil
}

// UnitDetail agrega a visão completa de uma unidade. Métricas operacionais e
// alocação são junções opcionais: ausência só omite a seção correspondente.
func (s *Service) UnitDetail(unitID int) (*domain.UnitDetail, error) {
	snapshot, err := s.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	unit, ok := snapshot.Unit(unitID)
	if !ok {
		return nil, ErrUnitNotFound
	}

	detail := &domain.UnitDetail{
		Unit:    unit,
		PnL:     snapshot.PnLSeries(unitID),
		Metrics: snapshot.MetricSeries(unitID),
	}

	if allocation, ok := snapshot.AllocationFor(unitID); ok {
		detail.Allocation = &allocation
	}

	return detail, nil
}

// ListUnits retorna as unidades ordenadas por unit_id.
func (s *Service) ListUnits() ([]domain.BusinessUnit, error) {
	snapshot, err := s.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	units := make([]domain.BusinessUnit, len(snapshot.Units))
	copy(units, snapshot.Units)
	sort.Slice(units, func(i, j int) bool {
		return units[i].UnitID < units[j].UnitID
	})
	return units, nil
}

// CuratedAlerts retorna a tabela executive_alerts do dataset.
func (s *Service) CuratedAlerts() ([]domain.CuratedAlert, error) {
	snapshot, err := s.dataset.Snapshot()
	if err != nil {
		return nil, err
	}
	return snapshot.CuratedAlerts, nil
}

// AllocationOverview retorna as alocações com os derivados de utilização.
func (s *Service) AllocationOverview() ([]domain.AllocationOverview, error) {
	snapshot, err := s.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	overview := make([]domain.AllocationOverview, 0, len(snapshot.Allocations))
	for _, a := range snapshot.Allocations {
		overview = append(overview, domain.NewAllocationOverview(a))
	}
	sort.Slice(overview, func(i, j int) bool {
		return overview[i].UnitID < overview[j].UnitID
	})
	return overview, nil
}
