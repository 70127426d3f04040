package generator

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteDir grava as cinco tabelas como <tabela>.csv dentro do diretório,
// criando-o se necessário. Arquivos existentes são sobrescritos.
func (d *Dataset) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar o diretório do dataset %s", dir)
	}

	for _, table := range d.Tables() {
		if err := writeTable(dir, table); err != nil {
			return err
		}
	}

	return nil
}

func writeTable(dir string, table Table) error {
	path := filepath.Join(dir, table.Name+".csv")

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "erro ao criar o arquivo da tabela %s", table.Name)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Header); err != nil {
		return errors.Wrapf(err, "erro ao gravar o cabeçalho da tabela %s", table.Name)
	}

	if err := writer.WriteAll(table.Rows); err != nil {
		return errors.Wrapf(err, "erro ao gravar a tabela %s", table.Name)
	}

	return nil
}
