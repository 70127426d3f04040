package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

func RoundWithOneDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*10) / 10
}

// PctOf calcula 100 * parte / total, retornando 0 quando o total é 0.
// Concentra a regra de nunca dividir por zero dos percentuais derivados.
func PctOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}

	return 100 * part / total
}
