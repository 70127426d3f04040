package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/executive-ops-api/internal/config"
	"github.com/vfg2006/executive-ops-api/internal/scheduler/mocks"
)

func datasetRefreshConfig(enabled bool) *config.Config {
	return &config.Config{
		DatasetRefresh: config.DatasetRefresh{
			CronSchedule: "0 * * * *",
			Enabled:      enabled,
		},
	}
}

func TestRefreshDataset(t *testing.T) {
	tests := []struct {
		name  string
		setup func(store *mocks.MockDatasetReloader)
	}{
		{
			name: "Deve recarregar o dataset e registrar a conclusão",
			setup: func(store *mocks.MockDatasetReloader) {
				store.EXPECT().Reload(gomock.Any()).Return(nil)
			},
		},
		{
			name: "Erro na recarga não pode derrubar o agendador",
			setup: func(store *mocks.MockDatasetReloader) {
				store.EXPECT().Reload(gomock.Any()).Return(assert.AnError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mocks.NewMockDatasetReloader(ctrl)
			tt.setup(store)

			service := NewDatasetRefreshService(store, datasetRefreshConfig(true))
			service.refreshDataset()

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.NotZero(t, status["last_sync_started_at"])
			assert.NotZero(t, status["last_sync_completed_at"])
		})
	}
}

func TestRefreshDatasetSkipsWhenAlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa no mock: com a recarga marcada como em andamento a
	// chamada não pode chegar ao store
	store := mocks.NewMockDatasetReloader(ctrl)

	service := NewDatasetRefreshService(store, datasetRefreshConfig(true))
	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	service.refreshDataset()

	status := service.GetStatus()
	assert.Equal(t, true, status["sync_running"])
}

func TestDatasetRefreshGetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockDatasetReloader(ctrl)
	service := NewDatasetRefreshService(store, datasetRefreshConfig(false))

	status := service.GetStatus()

	assert.Equal(t, false, status["sync_enabled"])
	assert.Equal(t, "0 * * * *", status["sync_cron"])
	assert.Equal(t, false, status["sync_running"])
}
