package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/executive-ops-api/infrastructure/warehouse"
	"github.com/vfg2006/executive-ops-api/internal/config"
	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/pkg/metrics"
	"github.com/vfg2006/executive-ops-api/pkg/utils"
)

// WarehouseSyncConfig representa a configuração do agendador de espelhamento
// no warehouse
type WarehouseSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// WarehouseSyncService espelha periodicamente o snapshot corrente no
// Postgres que serve a superfície de consultas SQL
type WarehouseSyncService struct {
	scheduler           *gocron.Scheduler
	dataset             datastore.SnapshotProvider
	exporter            warehouse.Exporter
	config              WarehouseSyncConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewWarehouseSyncService cria o serviço de espelhamento no warehouse
func NewWarehouseSyncService(
	dataset datastore.SnapshotProvider,
	exporter warehouse.Exporter,
	cfg *config.Config,
) *WarehouseSyncService {
	syncConfig := WarehouseSyncConfig{
		CronSchedule: cfg.Warehouse.CronSchedule,
		SyncEnabled:  cfg.Warehouse.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de espelhamento no warehouse carregada")

	return &WarehouseSyncService{
		scheduler: scheduler,
		dataset:   dataset,
		exporter:  exporter,
		config:    syncConfig,
	}
}

// Start inicia o agendador
func (s *WarehouseSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Espelhamento no warehouse desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de espelhamento no warehouse")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncWarehouse()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar espelhamento no warehouse: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de espelhamento no warehouse")
		s.scheduler.Stop()
	}()

	return nil
}

// syncWarehouse exporta o snapshot corrente em uma transação
func (s *WarehouseSyncService) syncWarehouse() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Espelhamento no warehouse já em andamento, ignorando")
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

	logger.Info("Iniciando espelhamento no warehouse")

	snapshot, err := s.dataset.Snapshot()
	if err != nil {
		metrics.WarehouseSyncsTotal.WithLabelValues("error").Inc()
		logger.WithError(err).Error("Erro ao obter o snapshot para espelhamento")
		return
	}

	stats, err := s.exporter.Export(context.Background(), snapshot)
	if err != nil {
		metrics.WarehouseSyncsTotal.WithLabelValues("error").Inc()
		logger.WithError(err).Error("Erro no espelhamento do snapshot no warehouse")
		return
	}

	metrics.WarehouseSyncsTotal.WithLabelValues("success").Inc()

	totalRows := 0
	for _, rows := range stats.RowsByTable {
		totalRows += rows
	}

	logger.WithFields(logrus.Fields{
		"rows":        totalRows,
		"duration_ms": stats.Duration.Milliseconds(),
	}).Info("Espelhamento no warehouse concluído")
}

// TriggerManualSync inicia manualmente um espelhamento no warehouse
func (s *WarehouseSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Espelhamento no warehouse já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando espelhamento manual no warehouse")
	go s.syncWarehouse()
}

// GetStatus retorna o status atual do agendador
func (s *WarehouseSyncService) GetStatus() map[string]any {
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
