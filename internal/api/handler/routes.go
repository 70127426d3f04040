package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/executive-ops-api/internal/api/handler/router"
	"github.com/vfg2006/executive-ops-api/internal/usecases/alerting"
	"github.com/vfg2006/executive-ops-api/internal/usecases/ranking"
	"github.com/vfg2006/executive-ops-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Corporate(service reporting.CorporateReporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/corporate/summary",
			Method:  http.MethodGet,
			Handler: GetCorporateSummary(service),
		},
	}
}

func Units(service reporting.CombinedReporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/units",
			Method:  http.MethodGet,
			Handler: ListUnits(service),
		},
		{
			Path:    "/v1/units/:unitID",
			Method:  http.MethodGet,
			Handler: GetUnitDetail(service),
		},
		{
			Path:    "/v1/units/:unitID/margin-trend",
			Method:  http.MethodGet,
			Handler: GetMarginTrend(service),
		},
		{
			Path:    "/v1/units/:unitID/contractor-mix",
			Method:  http.MethodGet,
			Handler: GetContractorMix(service),
		},
	}
}

func UnitRanking(service ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ranking/units",
			Method:  http.MethodGet,
			Handler: GetUnitRanking(service),
		},
	}
}

func Alerts(alertService alerting.AlertGenerator, reportService reporting.CombinedReporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/alerts",
			Method:  http.MethodGet,
			Handler: GetDerivedAlerts(alertService),
		},
		{
			Path:    "/v1/alerts/curated",
			Method:  http.MethodGet,
			Handler: GetCuratedAlerts(reportService),
		},
	}
}

func Allocations(service reporting.CombinedReporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/allocations",
			Method:  http.MethodGet,
			Handler: GetAllocations(service),
		},
	}
}

// Dataset retorna as rotas de status e recarga manual do dataset
func Dataset(store DatasetStatusProvider, refresher DatasetReloadTrigger) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dataset/status",
			Method:  http.MethodGet,
			Handler: GetDatasetStatus(store),
		},
		{
			Path:    "/v1/dataset/reload",
			Method:  http.MethodPost,
			Handler: ReloadDataset(refresher),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/run/:type",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
