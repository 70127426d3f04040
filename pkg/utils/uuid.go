package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRunID gera um identificador curto para rastrear execuções de
// sincronização nos logs. Falha na geração cai em um valor fixo: o
// identificador é só correlação de log.
func GenerateRunID() string {
	id, err := gonanoid.Generate(characters, 8)
	if err != nil {
		return "unknown"
	}
	return id
}
