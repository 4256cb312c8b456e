// Package receita implementa a entrega de arquivos SPED à Receita Federal.
// Em ambiente dev nada sai da máquina: a transmissão é simulada e devolve um
// protocolo determinístico, o suficiente para exercitar a esteira completa.
// test/prod ficam atrás do mesmo porto para um transmissor real (ReceitaNET).
package receita

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Identificadores de ambiente de transmissão.
const (
	EnvDev  = "dev"
	EnvTest = "test"
	EnvProd = "prod"
)

// Receipt é o comprovante da entrega de uma obrigação.
type Receipt struct {
	Protocol string `json:"protocol"`
	Accepted bool   `json:"accepted"`
	Message  string `json:"message,omitempty"`
}

// Transmitter define o porto de saída para a entrega de arquivos SPED.
type Transmitter interface {
	// Transmit entrega o conteúdo do arquivo da obrigação e devolve o
	// comprovante. fileName segue a convenção SPED_EFD_<cnpj>_<MM-YYYY>.txt.
	Transmit(ctx context.Context, fileName string, content []byte) (*Receipt, error)
}

// SimulatedTransmitter implementa Transmitter sem rede. O protocolo deriva do
// conteúdo: a mesma entrega produz sempre o mesmo comprovante. Com archiveDir
// definido, cada arquivo entregue fica arquivado em disco.
type SimulatedTransmitter struct {
	env        string
	archiveDir string
}

// NewSimulatedTransmitter constrói o transmissor simulado para o ambiente.
// Só dev é aceito; test/prod exigem o transmissor real. archiveDir vazio
// desliga o arquivamento.
func NewSimulatedTransmitter(env, archiveDir string) (*SimulatedTransmitter, error) {
	if env != EnvDev {
		return nil, fmt.Errorf("transmissor simulado só opera em dev, ambiente: %q", env)
	}
	return &SimulatedTransmitter{env: env, archiveDir: archiveDir}, nil
}

// Transmit simula a entrega e devolve um protocolo derivado do conteúdo.
func (t *SimulatedTransmitter) Transmit(ctx context.Context, fileName string, content []byte) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return &Receipt{
			Accepted: false,
			Message:  "arquivo vazio recusado",
		}, nil
	}

	if t.archiveDir != "" {
		if err := os.MkdirAll(t.archiveDir, 0o755); err != nil {
			return nil, fmt.Errorf("criar diretório de arquivamento: %w", err)
		}
		path := filepath.Join(t.archiveDir, fileName)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return nil, fmt.Errorf("arquivar entrega: %w", err)
		}
	}

	sum := sha256.Sum256(content)
	return &Receipt{
		Protocol: "RFB-DEV-" + hex.EncodeToString(sum[:8]),
		Accepted: true,
		Message:  "recebido em ambiente de homologação local: " + fileName,
	}, nil
}
