package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/executive-ops-api/internal/usecases/alerting"
	"github.com/vfg2006/executive-ops-api/internal/usecases/reporting"
	"github.com/vfg2006/executive-ops-api/pkg/log"
)

// GetDerivedAlerts recalcula os alertas executivos a partir do último mês
// do dataset e os retorna ordenados por severidade
func GetDerivedAlerts(service alerting.AlertGenerator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		report, err := service.GenerateAlerts()
		if err != nil {
			logger.WithError(err).Error("alerts: failed to generate executive alerts")
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("alerts: failed to encode response")
		}
	})
}

// GetCuratedAlerts retorna a tabela de alertas curados carregada com o
// dataset, sem recálculo
func GetCuratedAlerts(service reporting.CombinedReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		alerts, err := service.CuratedAlerts()
		if err != nil {
			logger.WithError(err).Error("alerts: failed to list curated alerts")
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(alerts); err != nil {
			logger.WithError(err).Error("alerts: failed to encode response")
		}
	})
}
