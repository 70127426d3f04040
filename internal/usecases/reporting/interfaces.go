package reporting

import (
	"github.com/vfg2006/executive-ops-api/internal/domain"
)

// CorporateReporter consolida o P&L corporativo mês a mês
type CorporateReporter interface {
	// CorporateSummary consolida todas as unidades até o mês de referência.
	// asOf nulo usa o período mais recente do dataset.
	CorporateSummary(asOf *domain.Period) (*domain.CorporateSummaryReport, error)
}

// UnitAnalyzer produz as visões analíticas de uma unidade de negócio
type UnitAnalyzer interface {
	// MarginTrend compara a margem corrente com 3 e 6 meses atrás por chave
	// de calendário
	MarginTrend(unitID int) (*domain.MarginTrend, error)

	// ContractorMix analisa o peso de contractors na folha sobre uma janela
	// móvel; windowMonths <= 0 usa a janela padrão de 6 meses
	ContractorMix(unitID int, windowMonths int) (*domain.ContractorMix, error)

	// UnitDetail agrega referência, série de P&L, métricas operacionais e
	// alocação de recursos de uma unidade
	UnitDetail(unitID int) (*domain.UnitDetail, error)
}

// CombinedReporter é a interface completa do serviço de relatórios
type CombinedReporter interface {
	CorporateReporter
	UnitAnalyzer

	// ListUnits retorna as unidades de negócio ordenadas por unit_id
	ListUnits() ([]domain.BusinessUnit, error)

	// CuratedAlerts retorna a tabela de alertas curados do dataset
	CuratedAlerts() ([]domain.CuratedAlert, error)

	// AllocationOverview retorna as alocações de recursos com os derivados
	// de utilização de orçamento
	AllocationOverview() ([]domain.AllocationOverview, error)
}
