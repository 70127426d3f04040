package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/executive-ops-api/internal/domain"
	"github.com/vfg2006/executive-ops-api/internal/usecases/reporting"
	"github.com/vfg2006/executive-ops-api/pkg/apiErrors"
	"github.com/vfg2006/executive-ops-api/pkg/log"
)

// GetCorporateSummary retorna a visão consolidada do P&L corporativo mês a
// mês. O parâmetro opcional as_of (yyyy-mm) limita a consolidação até o
// período informado.
func GetCorporateSummary(service reporting.CorporateReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var asOf *domain.Period
		if raw := r.URL.Query().Get("as_of"); raw != "" {
			period, err := domain.ParsePeriod(raw)
			if err != nil {
				logger.WithField("as_of", raw).Warn("summary: invalid as_of parameter")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro as_of inválido, use o formato yyyy-mm", nil)
				return
			}
			asOf = &period
		}

		report, err := service.CorporateSummary(asOf)
		if err != nil {
			logger.WithError(err).Error("summary: failed to build corporate summary")
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("summary: failed to encode response")
		}
	})
}
