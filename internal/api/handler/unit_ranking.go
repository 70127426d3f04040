package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vfg2006/executive-ops-api/internal/usecases/ranking"
	"github.com/vfg2006/executive-ops-api/pkg/apiErrors"
	"github.com/vfg2006/executive-ops-api/pkg/log"
)

var validQuarters = map[string]bool{"Q1": true, "Q2": true, "Q3": true, "Q4": true}

// GetUnitRanking retorna o ranking das unidades de negócio por desempenho
// no trimestre. Sem quarter e year na query usa o trimestre do período mais
// recente do dataset.
func GetUnitRanking(service ranking.RankingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		quarter := r.URL.Query().Get("quarter")
		if quarter != "" && !validQuarters[quarter] {
			logger.WithField("quarter", quarter).Warn("ranking: invalid quarter parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro quarter inválido, use Q1 a Q4", nil)
			return
		}

		year := 0
		if raw := r.URL.Query().Get("year"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				logger.WithField("year", raw).Warn("ranking: invalid year parameter")
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro year inválido", nil)
				return
			}
			year = parsed
		}

		report, err := service.RankUnits(year, quarter)
		if err != nil {
			logger.WithError(err).Error("ranking: failed to rank business units")
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("ranking: failed to encode response")
		}
	})
}
