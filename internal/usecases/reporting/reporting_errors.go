package reporting

import "errors"

// Erros específicos do contexto de relatórios
var (
	ErrUnitNotFound = errors.New("business unit not found")
	ErrNoPnLRecords = errors.New("no P&L records for business unit")
	ErrNoData       = errors.New("no P&L records in dataset")
)
