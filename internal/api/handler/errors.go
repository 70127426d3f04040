package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/executive-ops-api/internal/datastore"
	"github.com/vfg2006/executive-ops-api/internal/usecases/ranking"
	"github.com/vfg2006/executive-ops-api/internal/usecases/reporting"
	"github.com/vfg2006/executive-ops-api/pkg/apiErrors"
)

// writeServiceError traduz os erros conhecidos dos serviços para o
// envelope de erro da API
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, datastore.ErrNotLoaded):
		apiErrors.WriteError(w, apiErrors.ErrDatasetNotLoaded, "Dataset ainda não carregado", nil)
	case errors.Is(err, reporting.ErrUnitNotFound):
		apiErrors.WriteError(w, apiErrors.ErrUnitNotFound, "Unidade de negócio não encontrada", nil)
	case errors.Is(err, reporting.ErrNoPnLRecords):
		apiErrors.WriteError(w, apiErrors.ErrPeriodNotFound, "Unidade sem registros de P&L", nil)
	case errors.Is(err, reporting.ErrNoData):
		apiErrors.WriteError(w, apiErrors.ErrPeriodNotFound, "Nenhum registro de P&L no dataset", nil)
	case errors.Is(err, ranking.ErrNoRecordsInQuarter):
		apiErrors.WriteError(w, apiErrors.ErrPeriodNotFound, "Nenhum registro de P&L no trimestre solicitado", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar a requisição", nil)
	}
}
