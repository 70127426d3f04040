package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	notifiermocks "github.com/vfg2006/executive-ops-api/infrastructure/notifier/mocks"
	"github.com/vfg2006/executive-ops-api/internal/config"
	"github.com/vfg2006/executive-ops-api/internal/domain"
	alertingmocks "github.com/vfg2006/executive-ops-api/internal/usecases/alerting/mocks"
)

func alertDigestConfig() *config.Config {
	return &config.Config{
		Notifier: config.Notifier{
			CronSchedule: "0 7 * * 1-5",
			Enabled:      true,
		},
	}
}

func digestReport(high, medium, low int) *domain.AlertReport {
	return &domain.AlertReport{
		AsOf:   domain.Period{Year: 2024, Month: 9},
		Counts: domain.AlertCounts{High: high, Medium: medium, Low: low},
	}
}

func TestSendDigest(t *testing.T) {
	tests := []struct {
		name  string
		setup func(alerts *alertingmocks.MockAlertGenerator, webhook *notifiermocks.MockAlertNotifier)
	}{
		{
			name: "Deve enviar o digest quando há alertas HIGH ou MEDIUM",
			setup: func(alerts *alertingmocks.MockAlertGenerator, webhook *notifiermocks.MockAlertNotifier) {
				report := digestReport(2, 1, 3)
				alerts.EXPECT().GenerateAlerts().Return(report, nil)
				webhook.EXPECT().SendDigest(gomock.Any(), report).Return(nil)
			},
		},
		{
			name: "Só alertas LOW não geram envio",
			setup: func(alerts *alertingmocks.MockAlertGenerator, webhook *notifiermocks.MockAlertNotifier) {
				alerts.EXPECT().GenerateAlerts().Return(digestReport(0, 0, 4), nil)
			},
		},
		{
			name: "Relatório vazio não gera envio",
			setup: func(alerts *alertingmocks.MockAlertGenerator, webhook *notifiermocks.MockAlertNotifier) {
				alerts.EXPECT().GenerateAlerts().Return(digestReport(0, 0, 0), nil)
			},
		},
		{
			name: "Erro no cálculo dos alertas não pode chegar ao webhook",
			setup: func(alerts *alertingmocks.MockAlertGenerator, webhook *notifiermocks.MockAlertNotifier) {
				alerts.EXPECT().GenerateAlerts().Return(nil, assert.AnError)
			},
		},
		{
			name: "Erro no envio não pode derrubar o agendador",
			setup: func(alerts *alertingmocks.MockAlertGenerator, webhook *notifiermocks.MockAlertNotifier) {
				report := digestReport(1, 0, 0)
				alerts.EXPECT().GenerateAlerts().Return(report, nil)
				webhook.EXPECT().SendDigest(gomock.Any(), report).Return(assert.AnError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			alerts := alertingmocks.NewMockAlertGenerator(ctrl)
			webhook := notifiermocks.NewMockAlertNotifier(ctrl)
			tt.setup(alerts, webhook)

			service := NewAlertDigestService(alerts, webhook, alertDigestConfig())
			service.sendDigest()

			status := service.GetStatus()
			assert.Equal(t, false, status["sync_running"])
			assert.NotZero(t, status["last_sync_completed_at"])
		})
	}
}

func TestSendDigestSkipsWhenAlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerts := alertingmocks.NewMockAlertGenerator(ctrl)
	webhook := notifiermocks.NewMockAlertNotifier(ctrl)

	service := NewAlertDigestService(alerts, webhook, alertDigestConfig())
	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	service.sendDigest()

	status := service.GetStatus()
	assert.Equal(t, true, status["sync_running"])
}
