package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/executive-ops-api/internal/scheduler"
	"github.com/vfg2006/executive-ops-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeDataset   = "dataset"
	CronJobTypeWarehouse = "warehouse"
	CronJobTypeDigest    = "digest"
	CronJobTypeAll       = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	DatasetRefreshService *scheduler.DatasetRefreshService
	WarehouseSyncService  *scheduler.WarehouseSyncService
	AlertDigestService    *scheduler.AlertDigestService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch cronType {
		case CronJobTypeDataset:
			// Executar recarga do dataset
			if services.DatasetRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de recarga do dataset não disponível", nil)
				return
			}
			services.DatasetRefreshService.TriggerManualSync()

		case CronJobTypeWarehouse:
			// Executar espelhamento no warehouse
			if services.WarehouseSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de espelhamento no warehouse não disponível", nil)
				return
			}
			services.WarehouseSyncService.TriggerManualSync()

		case CronJobTypeDigest:
			// Executar envio do digest de alertas
			if services.AlertDigestService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de digest de alertas não disponível", nil)
				return
			}
			services.AlertDigestService.TriggerManualSync()

		case CronJobTypeAll:
			// Executar todas as sincronizações disponíveis
			if services.DatasetRefreshService != nil {
				services.DatasetRefreshService.TriggerManualSync()
			}
			if services.WarehouseSyncService != nil {
				services.WarehouseSyncService.TriggerManualSync()
			}
			if services.AlertDigestService != nil {
				services.AlertDigestService.TriggerManualSync()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: dataset, warehouse, digest, all", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.DatasetRefreshService != nil {
			status[CronJobTypeDataset] = services.DatasetRefreshService.GetStatus()
		}
		if services.WarehouseSyncService != nil {
			status[CronJobTypeWarehouse] = services.WarehouseSyncService.GetStatus()
		} else {
			status[CronJobTypeWarehouse] = map[string]any{"sync_enabled": false}
		}
		if services.AlertDigestService != nil {
			status[CronJobTypeDigest] = services.AlertDigestService.GetStatus()
		}

		json.NewEncoder(w).Encode(status)
	}
}
