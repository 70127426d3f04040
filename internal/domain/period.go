package domain

import (
	"fmt"
	"time"
)

// Period representa um período mensal (ano + mês) usado como chave natural
// das tabelas de P&L e métricas operacionais.
type Period struct {
	Year  int
	Month int
}

// PeriodFromDate deriva o período a partir de uma data (primeiro dia do mês).
func PeriodFromDate(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// ParsePeriod interpreta um período no formato yyyy-mm (ex: 2024-03).
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("período inválido %q: esperado formato yyyy-mm", s)
	}
	return PeriodFromDate(t), nil
}

// String formata o período como yyyy-mm.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Quarter retorna o trimestre do período no formato Q1..Q4.
func (p Period) Quarter() string {
	return fmt.Sprintf("Q%d", (p.Month-1)/3+1)
}

// Date retorna o primeiro dia do mês do período em UTC.
func (p Period) Date() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Index retorna um índice linear de meses, usado para ordenação e aritmética.
func (p Period) Index() int {
	return p.Year*12 + (p.Month - 1)
}

// AddMonths retorna o período deslocado em n meses (n pode ser negativo).
func (p Period) AddMonths(n int) Period {
	return PeriodFromDate(p.Date().AddDate(0, n, 0))
}

// Before indica se p antecede other.
func (p Period) Before(other Period) bool {
	return p.Index() < other.Index()
}

// After indica se p sucede other.
func (p Period) After(other Period) bool {
	return p.Index() > other.Index()
}

// IsZero indica período não preenchido.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// MarshalJSON serializa o período como string yyyy-mm.
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", p.String())), nil
}

// UnmarshalJSON aceita o período como string yyyy-mm.
func (p *Period) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("período inválido: %s", string(data))
	}
	parsed, err := ParsePeriod(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
