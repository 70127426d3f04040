package utils

import (
	"bytes"
	"encoding/json"
)

// PrettyJson serializa um valor como JSON indentado, para saída de CLI e
// logs de depuração. Erros de serialização degradam para string vazia.
func PrettyJson(in any) string {
	buffer, ok := in.([]byte)
	if !ok {
		var err error
		buffer, err = json.Marshal(in)
		if err != nil {
			return ""
		}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buffer, "", "  "); err != nil {
		return ""
	}

	return out.String()
}
