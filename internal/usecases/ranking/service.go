package ranking

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/domain"
	"github.com/vfg2006/executive-ops-api/pkg/utils"
)

// ErrNoRecordsInQuarter indica trimestre sem nenhum registro de P&L.
var ErrNoRecordsInQuarter = errors.New("no P&L records in quarter")

// RankingService classifica as unidades de negócio dentro de um trimestre
type RankingService interface {
	// RankUnits ranqueia as unidades pelo desempenho no trimestre. Ano ou
	// trimestre zerados usam o trimestre do período mais recente do dataset.
	RankUnits(year int, quarter string) (*domain.UnitRankingReport, error)
}

type UnitRankingService struct {
	dataset datastore.SnapshotProvider
}

// NewUnitRankingService cria o serviço de ranking de unidades
func NewUnitRankingService(dataset datastore.SnapshotProvider) RankingService {
	return &UnitRankingService{dataset: dataset}
}

// RankUnits agrega o P&L de cada unidade no trimestre: receita e resultado
// acumulados, margem operacional média, variância de receita média e o
// headcount do mês mais recente do trimestre. O tier de performance vem dos
// cortes fixos de margem média. Ordenação por margem média decrescente com
// desempate por unit_id crescente, determinística.
func (s *UnitRankingService) RankUnits(year int, quarter string) (*domain.UnitRankingReport, error) {
	snapshot, err := s.dataset.Snapshot()
	if err != nil {
		return nil, err
	}

	if year == 0 || quarter == "" {
		latest := snapshot.LatestPeriod()
		if latest.IsZero() {
			return nil, ErrNoRecordsInQuarter
		}
		year = latest.Year
		quarter = latest.Quarter()
	}

	type accumulator struct {
		record          domain.MonthlyRecord // registro mais recente do trimestre
		revenue         float64
		operatingIncome float64
		marginSum       float64
		varianceSum     float64
		months          int
	}

	byUnit := make(map[int]*accumulator)
	for _, r := range snapshot.PnL {
		if r.Period.Year != year || r.Quarter != quarter {
			continue
		}
		acc, ok := byUnit[r.UnitID]
		if !ok {
			acc = &accumulator{record: r}
			byUnit[r.UnitID] = acc
		}
		acc.revenue += r.Revenue
		acc.operatingIncome += r.OperatingIncome
		acc.marginSum += r.OperatingMarginPct
		acc.varianceSum += r.RevenueVariance
		acc.months++
		if r.Period.After(acc.record.Period) {
			acc.record = r
		}
	}

	if len(byUnit) == 0 {
		return nil, fmt.Errorf("%w: %d %s", ErrNoRecordsInQuarter, year, quarter)
	}

	entries := make([]domain.UnitPerformance, 0, len(byUnit))
	for unitID, acc := range byUnit {
		avgMargin := acc.marginSum / float64(acc.months)

		entries = append(entries, domain.UnitPerformance{
			UnitID:             unitID,
			UnitName:           acc.record.UnitName,
			Vertical:           acc.record.Vertical,
			Region:             acc.record.Region,
			QTDRevenue:         utils.RoundWithTwoDecimalPlace(acc.revenue),
			QTDOperatingIncome: utils.RoundWithTwoDecimalPlace(acc.operatingIncome),
			AvgOperatingMargin: utils.RoundWithTwoDecimalPlace(avgMargin),
			AvgRevenueVariance: utils.RoundWithTwoDecimalPlace(acc.varianceSum / float64(acc.months)),
			CurrentHeadcount:   acc.record.Headcount,
			PerformanceTier:    domain.PerformanceTierFor(avgMargin),
			Months:             acc.months,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AvgOperatingMargin != entries[j].AvgOperatingMargin {
			return entries[i].AvgOperatingMargin > entries[j].AvgOperatingMargin
		}
		return entries[i].UnitID < entries[j].UnitID
	})

	return &domain.UnitRankingReport{
		Quarter: quarter,
		Year:    year,
		Ranking: entries,
	}, nil
}
