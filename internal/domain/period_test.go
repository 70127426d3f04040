package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Period
		hasError bool
	}{
		{
			name:     "Formato yyyy-mm válido deve ser aceito",
			input:    "2024-03",
			expected: Period{Year: 2024, Month: 3},
		},
		{
			name:     "Dezembro deve ser aceito",
			input:    "2023-12",
			expected: Period{Year: 2023, Month: 12},
		},
		{
			name:     "Mês 13 deve ser rejeitado",
			input:    "2024-13",
			hasError: true,
		},
		{
			name:     "Data completa deve ser rejeitada",
			input:    "2024-03-01",
			hasError: true,
		},
		{
			name:     "Texto arbitrário deve ser rejeitado",
			input:    "marco de 2024",
			hasError: true,
		},
		{
			name:     "String vazia deve ser rejeitada",
			input:    "",
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := ParsePeriod(tt.input)

			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, period)
		})
	}
}

func TestPeriodAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		period   Period
		months   int
		expected Period
	}{
		{
			name:     "Deslocamento positivo dentro do ano",
			period:   Period{Year: 2024, Month: 3},
			months:   2,
			expected: Period{Year: 2024, Month: 5},
		},
		{
			name:     "Deslocamento negativo cruzando a virada do ano",
			period:   Period{Year: 2024, Month: 3},
			months:   -3,
			expected: Period{Year: 2023, Month: 12},
		},
		{
			name:     "Seis meses atrás a partir de janeiro",
			period:   Period{Year: 2024, Month: 1},
			months:   -6,
			expected: Period{Year: 2023, Month: 7},
		},
		{
			name:     "Deslocamento zero mantém o período",
			period:   Period{Year: 2024, Month: 6},
			months:   0,
			expected: Period{Year: 2024, Month: 6},
		},
		{
			name:     "Doze meses à frente muda só o ano",
			period:   Period{Year: 2024, Month: 7},
			months:   12,
			expected: Period{Year: 2025, Month: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.period.AddMonths(tt.months))
		})
	}
}

func TestPeriodQuarter(t *testing.T) {
	tests := []struct {
		month    int
		expected string
	}{
		{month: 1, expected: "Q1"},
		{month: 3, expected: "Q1"},
		{month: 4, expected: "Q2"},
		{month: 6, expected: "Q2"},
		{month: 7, expected: "Q3"},
		{month: 9, expected: "Q3"},
		{month: 10, expected: "Q4"},
		{month: 12, expected: "Q4"},
	}

	for _, tt := range tests {
		t.Run(Period{Year: 2024, Month: tt.month}.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Period{Year: 2024, Month: tt.month}.Quarter())
		})
	}
}

func TestPeriodOrdering(t *testing.T) {
	older := Period{Year: 2023, Month: 12}
	newer := Period{Year: 2024, Month: 1}

	assert.True(t, older.Before(newer))
	assert.False(t, newer.Before(older))
	assert.True(t, newer.After(older))
	assert.False(t, older.After(newer))
	assert.False(t, older.Before(older))
}

func TestPeriodDate(t *testing.T) {
	period := Period{Year: 2024, Month: 9}
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), period.Date())
}

func TestPeriodJSON(t *testing.T) {
	period := Period{Year: 2024, Month: 3}

	data, err := period.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-03"`, string(data))

	var parsed Period
	require.NoError(t, parsed.UnmarshalJSON([]byte(`"2023-11"`)))
	assert.Equal(t, Period{Year: 2023, Month: 11}, parsed)

	assert.Error(t, parsed.UnmarshalJSON([]byte(`2023-11`)))
	assert.Error(t, parsed.UnmarshalJSON([]byte(`"2023/11"`)))
}
