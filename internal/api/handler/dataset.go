package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/pkg/log"
)

// DatasetStatusProvider expõe o estado corrente do dataset em memória
type DatasetStatusProvider interface {
	Status() datastore.Status
}

// DatasetReloadTrigger dispara uma recarga assíncrona do dataset
type DatasetReloadTrigger interface {
	TriggerManualSync()
}

// GetDatasetStatus retorna o estado do dataset em memória: carregado ou
// não, horário da última carga, contagem de linhas e período mais recente
func GetDatasetStatus(store DatasetStatusProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(store.Status()); err != nil {
			logger.WithError(err).Error("dataset: failed to encode response")
		}
	})
}

// ReloadDataset dispara a recarga do dataset em background e responde 202.
// O resultado da recarga aparece no endpoint de status.
func ReloadDataset(refresher DatasetReloadTrigger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("dataset: manual reload requested")

		refresher.TriggerManualSync()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		err := json.NewEncoder(w).Encode(map[string]string{
			"message": "Recarga do dataset iniciada",
		})
		if err != nil {
			logger.WithError(err).Error("dataset: failed to encode response")
		}
	})
}
