package receita_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fiscal-pro/internal/infrastructure/receita"
)

func TestSimulatedTransmitter_ProtocoloDeterministico(t *testing.T) {
	tr, err := receita.NewSimulatedTransmitter(receita.EnvDev, "")
	require.NoError(t, err)

	content := []byte("|0000|009|0|")
	a, err := tr.Transmit(context.Background(), "SPED_EFD_11222333000181_05-2024.txt", content)
	require.NoError(t, err)
	b, err := tr.Transmit(context.Background(), "SPED_EFD_11222333000181_05-2024.txt", content)
	require.NoError(t, err)

	assert.True(t, a.Accepted)
	assert.Equal(t, a.Protocol, b.Protocol, "mesma entrega, mesmo protocolo")
	assert.Contains(t, a.Protocol, "RFB-DEV-")
}

func TestSimulatedTransmitter_ArquivoVazio(t *testing.T) {
	tr, err := receita.NewSimulatedTransmitter(receita.EnvDev, "")
	require.NoError(t, err)

	r, err := tr.Transmit(context.Background(), "x.txt", nil)
	require.NoError(t, err)

	assert.False(t, r.Accepted)
	assert.Empty(t, r.Protocol)
}

func TestSimulatedTransmitter_ArquivaEntrega(t *testing.T) {
	dir := t.TempDir()
	tr, err := receita.NewSimulatedTransmitter(receita.EnvDev, dir)
	require.NoError(t, err)

	content := []byte("|0000|009|0|")
	_, err = tr.Transmit(context.Background(), "SPED_EFD_11222333000181_05-2024.txt", content)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "SPED_EFD_11222333000181_05-2024.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestSimulatedTransmitter_RecusaAmbienteReal(t *testing.T) {
	_, err := receita.NewSimulatedTransmitter(receita.EnvProd, "")

	assert.Error(t, err, "prod exige o transmissor real")
}
