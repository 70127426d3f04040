package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/executive-ops-api/infrastructure/database/postgres"
	"github.com/vfg2006/executive-ops-api/infrastructure/notifier"
	"github.com/vfg2006/executive-ops-api/infrastructure/warehouse"
	"github.com/vfg2006/executive-ops-api/internal/api"
	"github.com/vfg2006/executive-ops-api/internal/config"
	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/scheduler"
	"github.com/vfg2006/executive-ops-api/internal/usecases/alerting"
	"github.com/vfg2006/executive-ops-api/internal/usecases/ranking"
	"github.com/vfg2006/executive-ops-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Carrega o dataset antes de aceitar requisições. Falha na primeira
	// carga não derruba o processo: a API responde 503 até uma recarga
	// bem-sucedida.
	store := datastore.NewStore(cfg.Dataset.Dir)
	if err := store.Reload(ctx); err != nil {
		logrus.WithError(err).WithField("dir", cfg.Dataset.Dir).
			Error("Erro ao carregar o dataset inicial")
	}

	reportingService := reporting.NewService(store)
	rankingService := ranking.NewUnitRankingService(store)
	alertingService := alerting.NewService(store)

	// Inicializa os agendadores de sincronização separados
	datasetRefreshService := scheduler.NewDatasetRefreshService(store, cfg)

	var warehouseSyncService *scheduler.WarehouseSyncService
	if cfg.Warehouse.Enabled {
		pgConn := pgconn(ctx, cfg.Warehouse)
		defer pgConn.Close()

		exporter := warehouse.NewExporter(pgConn)
		warehouseSyncService = scheduler.NewWarehouseSyncService(store, exporter, cfg)
	} else {
		logrus.Info("Espelhamento no warehouse desabilitado")
	}

	alertNotifier := notifier.NewNotifier(cfg.Notifier)
	alertDigestService := scheduler.NewAlertDigestService(alertingService, alertNotifier, cfg)

	// Inicia os agendadores em background
	if err := datasetRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga do dataset")
	} else {
		logrus.Info("Agendador de recarga do dataset iniciado com sucesso")
	}

	if warehouseSyncService != nil {
		if err := warehouseSyncService.Start(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao iniciar o agendador de espelhamento no warehouse")
		} else {
			logrus.Info("Agendador de espelhamento no warehouse iniciado com sucesso")
		}
	}

	if err := alertDigestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de digest de alertas")
	} else {
		logrus.Info("Agendador de digest de alertas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportingService,
		rankingService,
		alertingService,
		store,
		datasetRefreshService,
		warehouseSyncService,
		alertDigestService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, warehouseConfig config.Warehouse) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, warehouseConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
