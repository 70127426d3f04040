package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/datastore/mocks"
	"github.com/vfg2006/executive-ops-api/internal/domain"
)

func quarterRecord(unitID int, name string, month int, revenue, operatingIncome, marginPct, variance float64, headcount int) domain.MonthlyRecord {
	period := domain.Period{Year: 2024, Month: month}
	return domain.MonthlyRecord{
		UnitID:             unitID,
		UnitName:           name,
		Vertical:           "Software",
		Region:             "North America",
		Period:             period,
		Quarter:            period.Quarter(),
		Revenue:            revenue,
		OperatingIncome:    operatingIncome,
		OperatingMarginPct: marginPct,
		RevenueVariance:    variance,
		Headcount:          headcount,
	}
}

func rankingSnapshot(pnl []domain.MonthlyRecord) *datastore.Snapshot {
	return datastore.NewSnapshot(nil, pnl, nil, nil, nil, time.Now().UTC())
}

func TestRankUnits(t *testing.T) {
	// Q3 2024: unidade 1 com três meses, unidade 2 com dois. CSV fora de
	// ordem para garantir que o headcount vem do mês mais recente do trimestre
	quarterPnL := []domain.MonthlyRecord{
		quarterRecord(1, "Enterprise SaaS", 9, 5000000, 1300000, 26, 200000, 180),
		quarterRecord(1, "Enterprise SaaS", 7, 4800000, 1150000, 24, 100000, 176),
		quarterRecord(1, "Enterprise SaaS", 8, 4900000, 1225000, 25, 150000, 178),
		quarterRecord(2, "Cloud Infrastructure", 7, 3000000, 480000, 16, -50000, 120),
		quarterRecord(2, "Cloud Infrastructure", 8, 3100000, 434000, 14, -80000, 122),
		// Fora do trimestre: não pode entrar na agregação
		quarterRecord(1, "Enterprise SaaS", 6, 9900000, 9900000, 99, 999999, 999),
	}

	tests := []struct {
		name     string
		snapshot *datastore.Snapshot
		year     int
		quarter  string
		wantErr  error
		validate func(t *testing.T, report *domain.UnitRankingReport)
	}{
		{
			name:     "Deve agregar o trimestre por unidade e ordenar por margem média decrescente",
			snapshot: rankingSnapshot(quarterPnL),
			year:     2024,
			quarter:  "Q3",
			validate: func(t *testing.T, report *domain.UnitRankingReport) {
				assert.Equal(t, "Q3", report.Quarter)
				assert.Equal(t, 2024, report.Year)
				require.Len(t, report.Ranking, 2)

				first := report.Ranking[0]
				assert.Equal(t, 1, first.UnitID)
				assert.InDelta(t, 14700000, first.QTDRevenue, 1e-9)
				assert.InDelta(t, 3675000, first.QTDOperatingIncome, 1e-9)
				assert.InDelta(t, 25.0, first.AvgOperatingMargin, 1e-9)
				assert.InDelta(t, 150000, first.AvgRevenueVariance, 1e-9)
				assert.Equal(t, 180, first.CurrentHeadcount)
				assert.Equal(t, domain.TierStarPerformer, first.PerformanceTier)
				assert.Equal(t, 3, first.Months)

				second := report.Ranking[1]
				assert.Equal(t, 2, second.UnitID)
				assert.InDelta(t, 15.0, second.AvgOperatingMargin, 1e-9)
				assert.Equal(t, domain.TierSolidPerformer, second.PerformanceTier)
				assert.Equal(t, 2, second.Months)
				assert.Equal(t, 122, second.CurrentHeadcount)
			},
		},
		{
			name: "Margens médias iguais devem desempatar por unit_id crescente",
			snapshot: rankingSnapshot([]domain.MonthlyRecord{
				quarterRecord(5, "Digital Services", 9, 2000000, 400000, 20, 0, 80),
				quarterRecord(3, "Data & Analytics", 9, 1000000, 200000, 20, 0, 40),
			}),
			year:    2024,
			quarter: "Q3",
			validate: func(t *testing.T, report *domain.UnitRankingReport) {
				require.Len(t, report.Ranking, 2)
				assert.Equal(t, 3, report.Ranking[0].UnitID)
				assert.Equal(t, 5, report.Ranking[1].UnitID)
			},
		},
		{
			name:     "Ano e trimestre zerados devem usar o trimestre do período mais recente",
			snapshot: rankingSnapshot(quarterPnL),
			year:     0,
			quarter:  "",
			validate: func(t *testing.T, report *domain.UnitRankingReport) {
				assert.Equal(t, "Q3", report.Quarter)
				assert.Equal(t, 2024, report.Year)
				require.Len(t, report.Ranking, 2)
			},
		},
		{
			name: "Tier avaliado sobre a média sem arredondamento",
			snapshot: rankingSnapshot([]domain.MonthlyRecord{
				quarterRecord(1, "Enterprise SaaS", 7, 1000000, 249900, 24.99, 0, 50),
				quarterRecord(1, "Enterprise SaaS", 8, 1000000, 250000, 25.00, 0, 50),
				quarterRecord(1, "Enterprise SaaS", 9, 1000000, 250000, 25.00, 0, 50),
			}),
			year:    2024,
			quarter: "Q3",
			validate: func(t *testing.T, report *domain.UnitRankingReport) {
				require.Len(t, report.Ranking, 1)
				// Média real 24.9966... arredonda para 25.0 na exibição, mas
				// o corte de Star Performer não é atingido
				assert.InDelta(t, 25.0, report.Ranking[0].AvgOperatingMargin, 1e-9)
				assert.Equal(t, domain.TierSolidPerformer, report.Ranking[0].PerformanceTier)
			},
		},
		{
			name:     "Trimestre sem registros deve retornar ErrNoRecordsInQuarter",
			snapshot: rankingSnapshot(quarterPnL),
			year:     2024,
			quarter:  "Q1",
			wantErr:  ErrNoRecordsInQuarter,
		},
		{
			name:     "Dataset vazio com parâmetros padrão deve retornar ErrNoRecordsInQuarter",
			snapshot: rankingSnapshot(nil),
			year:     0,
			quarter:  "",
			wantErr:  ErrNoRecordsInQuarter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			provider := mocks.NewMockSnapshotProvider(ctrl)
			provider.EXPECT().Snapshot().Return(tt.snapshot, nil)

			service := NewUnitRankingService(provider)
			report, err := service.RankUnits(tt.year, tt.quarter)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, report)
				return
			}
			require.NoError(t, err)
			tt.validate(t, report)
		})
	}
}

func TestRankUnitsQuarterInError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockSnapshotProvider(ctrl)
	provider.EXPECT().Snapshot().Return(rankingSnapshot([]domain.MonthlyRecord{
		quarterRecord(1, "Enterprise SaaS", 9, 5000000, 1300000, 26, 0, 180),
	}), nil)

	service := NewUnitRankingService(provider)
	_, err := service.RankUnits(2023, "Q1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRecordsInQuarter)
	assert.Contains(t, err.Error(), "2023 Q1")
}

func TestRankUnitsDatasetNotLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mocks.NewMockSnapshotProvider(ctrl)
	provider.EXPECT().Snapshot().Return(nil, datastore.ErrNotLoaded)

	service := NewUnitRankingService(provider)
	report, err := service.RankUnits(2024, "Q3")

	assert.Nil(t, report)
	assert.ErrorIs(t, err, datastore.ErrNotLoaded)
}
