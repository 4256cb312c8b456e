package fiscal

import (
	"fmt"
	"unicode"
)

// pesos para os dois dígitos verificadores do CNPJ (módulo 11, RFB).
// Aplicam-se da esquerda para a direita sobre os 12 e 13 primeiros dígitos.
var (
	cnpjWeightsFirst  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeightsSecond = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidateCNPJ valida que o CNPJ (com ou sem pontuação) tenha 14 dígitos e
// dígitos verificadores corretos segundo o algoritmo módulo 11 da RFB.
// taxID pode ser "12.345.678/0001-95" ou "12345678000195".
func ValidateCNPJ(taxID string) error {
	digits := OnlyDigits(taxID)
	if len(digits) != 14 {
		return fmt.Errorf("fiscal: CNPJ deve ter 14 dígitos, foram encontrados %d", len(digits))
	}
	if allSameDigit(digits) {
		return fmt.Errorf("fiscal: CNPJ com todos os dígitos iguais é inválido")
	}

	d13 := cnpjCheckDigit(digits[:12], cnpjWeightsFirst[:])
	if digits[12] != d13 {
		return fmt.Errorf("fiscal: primeiro dígito verificador do CNPJ inválido: esperado %c, recebido %c", d13, digits[12])
	}
	d14 := cnpjCheckDigit(digits[:13], cnpjWeightsSecond[:])
	if digits[13] != d14 {
		return fmt.Errorf("fiscal: segundo dígito verificador do CNPJ inválido: esperado %c, recebido %c", d14, digits[13])
	}
	return nil
}

func cnpjCheckDigit(base string, weights []int) byte {
	var sum int
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// OnlyDigits deixa apenas dígitos 0-9 (para CNPJ, chave de acesso e IE).
func OnlyDigits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}
