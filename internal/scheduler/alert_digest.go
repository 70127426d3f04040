package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/executive-ops-api/infrastructure/notifier"
	"github.com/vfg2006/executive-ops-api/internal/config"
	"github.com/vfg2006/executive-ops-api/internal/usecases/alerting"
	"github.com/vfg2006/executive-ops-api/pkg/utils"
)

// AlertDigestConfig representa a configuração do agendador do digest de
// alertas
type AlertDigestConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// AlertDigestService recalcula os alertas executivos e envia um resumo das
// faixas HIGH e MEDIUM para o webhook configurado
type AlertDigestService struct {
	scheduler           *gocron.Scheduler
	alerts              alerting.AlertGenerator
	notifier            notifier.AlertNotifier
	config              AlertDigestConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewAlertDigestService cria o serviço do digest de alertas
func NewAlertDigestService(
	alerts alerting.AlertGenerator,
	alertNotifier notifier.AlertNotifier,
	cfg *config.Config,
) *AlertDigestService {
	digestConfig := AlertDigestConfig{
		CronSchedule: cfg.Notifier.CronSchedule,
		SyncEnabled:  cfg.Notifier.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": digestConfig.CronSchedule,
		"sync_enabled":  digestConfig.SyncEnabled,
	}).Info("Configuração do agendador do digest de alertas carregada")

	return &AlertDigestService{
		scheduler: scheduler,
		alerts:    alerts,
		notifier:  alertNotifier,
		config:    digestConfig,
	}
}

// Start inicia o agendador
func (s *AlertDigestService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Digest de alertas desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do digest de alertas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.sendDigest()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar digest de alertas: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do digest de alertas")
		s.scheduler.Stop()
	}()

	return nil
}

// sendDigest recomputa os alertas e envia o resumo ao webhook. Sem alertas
// HIGH ou MEDIUM não há envio.
func (s *AlertDigestService) sendDigest() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Envio do digest de alertas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	runID := utils.GenerateRunID()
	logger := logrus.WithField("run_id", runID)

	logger.Info("Calculando alertas para o digest")

	report, err := s.alerts.GenerateAlerts()
	if err != nil {
		logger.WithError(err).Error("Erro ao calcular alertas para o digest")
		return
	}

	if report.Counts.High+report.Counts.Medium == 0 {
		logger.Info("Nenhum alerta HIGH ou MEDIUM, digest não enviado")
		return
	}

	if err := s.notifier.SendDigest(context.Background(), report); err != nil {
		logger.WithError(err).Error("Erro ao enviar o digest de alertas")
		return
	}

	logger.WithFields(logrus.Fields{
		"high":   report.Counts.High,
		"medium": report.Counts.Medium,
	}).Info("Digest de alertas enviado")
}

// TriggerManualSync dispara manualmente o envio do digest
func (s *AlertDigestService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Envio do digest de alertas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando envio manual do digest de alertas")
	go s.sendDigest()
}

// GetStatus retorna o status atual do agendador
func (s *AlertDigestService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
