package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/executive-ops-api/internal/usecases/reporting"
	"github.com/vfg2006/executive-ops-api/pkg/log"
)

// GetAllocations retorna a alocação de recursos de todas as unidades com os
// derivados de utilização de orçamento
func GetAllocations(service reporting.CombinedReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		allocations, err := service.AllocationOverview()
		if err != nil {
			logger.WithError(err).Error("allocations: failed to build allocation overview")
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(allocations); err != nil {
			logger.WithError(err).Error("allocations: failed to encode response")
		}
	})
}
