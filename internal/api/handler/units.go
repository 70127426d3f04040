package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/executive-ops-api/internal/usecases/reporting"
	"github.com/vfg2006/executive-ops-api/pkg/apiErrors"
	"github.com/vfg2006/executive-ops-api/pkg/log"
)

// ListUnits retorna o catálogo de unidades de negócio ordenado por unit_id
func ListUnits(service reporting.CombinedReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		units, err := service.ListUnits()
		if err != nil {
			logger.WithError(err).Error("units: failed to list business units")
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(units); err != nil {
			logger.WithError(err).Error("units: failed to encode response")
		}
	})
}

// GetUnitDetail retorna a unidade com sua série de P&L, métricas
// operacionais e alocação de recursos
func GetUnitDetail(service reporting.UnitAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		unitID, ok := unitIDFromRequest(w, r)
		if !ok {
			return
		}

		detail, err := service.UnitDetail(unitID)
		if err != nil {
			logger.WithField("unit_id", unitID).WithError(err).Error("units: failed to build unit detail")
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(detail); err != nil {
			logger.WithError(err).Error("units: failed to encode response")
		}
	})
}

// GetMarginTrend compara a margem operacional corrente da unidade com a de
// 3 e 6 meses atrás
func GetMarginTrend(service reporting.UnitAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		unitID, ok := unitIDFromRequest(w, r)
		if !ok {
			return
		}

		trend, err := service.MarginTrend(unitID)
		if err != nil {
			logger.WithField("unit_id", unitID).WithError(err).Error("units: failed to build margin trend")
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(trend); err != nil {
			logger.WithError(err).Error("units: failed to encode response")
		}
	})
}

// GetContractorMix analisa o peso dos contractors na folha da unidade sobre
// uma janela móvel. O parâmetro opcional window define a janela em meses.
func GetContractorMix(service reporting.UnitAnalyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		unitID, ok := unitIDFromRequest(w, r)
		if !ok {
			return
		}

		window := 0
		if raw := r.URL.Query().Get("window"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				logger.WithField("window", raw).Warn("units: invalid window parameter")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro window inválido, use um inteiro positivo", nil)
				return
			}
			window = parsed
		}

		mix, err := service.ContractorMix(unitID, window)
		if err != nil {
			logger.WithField("unit_id", unitID).WithError(err).Error("units: failed to build contractor mix")
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(mix); err != nil {
			logger.WithError(err).Error("units: failed to encode response")
		}
	})
}

// unitIDFromRequest extrai e valida o unitID do path. Em caso de valor
// inválido responde o erro e retorna ok falso.
func unitIDFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("unitID")

	unitID, err := strconv.Atoi(raw)
	if err != nil || unitID < 1 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Identificador de unidade inválido", nil)
		return 0, false
	}

	return unitID, true
}
