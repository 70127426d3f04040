// Package metrics expõe os indicadores Prometheus do serviço.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatasetReloadsTotal conta recargas do dataset por resultado
	DatasetReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "executive_ops",
			Subsystem: "dataset",
			Name:      "reloads_total",
			Help:      "Total de recargas do dataset por resultado",
		},
		[]string{"status"},
	)

	// DatasetReloadDuration mede a duração das recargas do dataset
	DatasetReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "executive_ops",
			Subsystem: "dataset",
			Name:      "reload_duration_seconds",
			Help:      "Duração das recargas do dataset em segundos",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// DatasetRows registra o tamanho corrente de cada tabela do snapshot
	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "executive_ops",
			Subsystem: "dataset",
			Name:      "rows",
			Help:      "Linhas carregadas por tabela do snapshot corrente",
		},
		[]string{"table"},
	)

	// AlertsComputedTotal conta alertas produzidos pelo motor por severidade
	AlertsComputedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "executive_ops",
			Subsystem: "alerts",
			Name:      "computed_total",
			Help:      "Total de alertas produzidos pelo motor por severidade",
		},
		[]string{"severity"},
	)

	// WarehouseSyncsTotal conta exportações para o warehouse por resultado
	WarehouseSyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "executive_ops",
			Subsystem: "warehouse",
			Name:      "syncs_total",
			Help:      "Total de exportações para o warehouse por resultado",
		},
		[]string{"status"},
	)

	// WarehouseRowsExported conta linhas exportadas por tabela
	WarehouseRowsExported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "executive_ops",
			Subsystem: "warehouse",
			Name:      "rows_exported_total",
			Help:      "Total de linhas exportadas para o warehouse por tabela",
		},
		[]string{"table"},
	)

	// HTTPRequestsTotal conta requisições HTTP atendidas
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "executive_ops",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total de requisições HTTP atendidas",
		},
		[]string{"method", "status_code"},
	)

	// HTTPRequestDuration mede a duração das requisições HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "executive_ops",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duração das requisições HTTP em segundos",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method"},
	)
)
