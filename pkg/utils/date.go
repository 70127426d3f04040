package utils

import "time"

const dateLayout = "2006-01-02"

// ParseDate interpreta uma data no formato yyyy-mm-dd. String vazia retorna
// data zero sem erro, para colunas opcionais.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// FormatDate formata uma data como yyyy-mm-dd, o formato das colunas de data
// dos arquivos do dataset.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
