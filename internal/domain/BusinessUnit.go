// Package domain contém as estruturas de dados do domínio da aplicação
package domain

// BusinessUnit representa uma unidade de negócio da companhia. Dados de
// referência imutáveis, criados uma única vez pelo gerador de dataset.
type BusinessUnit struct {
	UnitID   int    `json:"unit_id"`
	Name     string `json:"name"`
	Vertical string `json:"vertical"` // Software, Sales, Infrastructure, Hardware, Services
	Region   string `json:"region"`
	// Perfil de performance usado pelos cenários do gerador
	// (high, medium, growing, struggling)
	Performance string `json:"performance,omitempty"`
}
