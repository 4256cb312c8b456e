package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fiscal-pro/pkg/fiscal"
)

func TestValidateCNPJ_ValidoComPontuacao(t *testing.T) {
	// 11.222.333/0001-81 é o vetor clássico com DVs 8 e 1 pelo módulo 11.
	err := fiscal.ValidateCNPJ("11.222.333/0001-81")
	assert.NoError(t, err, "CNPJ com pontuação e DVs corretos deve ser aceito")
}

func TestValidateCNPJ_ValidoSomenteDigitos(t *testing.T) {
	err := fiscal.ValidateCNPJ("11222333000181")
	assert.NoError(t, err)
}

func TestValidateCNPJ_PrimeiroDVErrado(t *testing.T) {
	err := fiscal.ValidateCNPJ("11.222.333/0001-91")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primeiro dígito verificador")
}

func TestValidateCNPJ_SegundoDVErrado(t *testing.T) {
	err := fiscal.ValidateCNPJ("11.222.333/0001-82")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segundo dígito verificador")
}

func TestValidateCNPJ_TamanhoErrado(t *testing.T) {
	assert.Error(t, fiscal.ValidateCNPJ("123"), "CNPJ curto deve ser rejeitado")
	assert.Error(t, fiscal.ValidateCNPJ(""), "CNPJ vazio deve ser rejeitado")
}

func TestValidateCNPJ_DigitosIguais(t *testing.T) {
	// Sequências repetidas passam no módulo 11 mas não são CNPJs reais.
	assert.Error(t, fiscal.ValidateCNPJ("00000000000000"))
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "12345678000195", fiscal.OnlyDigits("12.345.678/0001-95"))
	assert.Equal(t, "", fiscal.OnlyDigits("abc"))
}
