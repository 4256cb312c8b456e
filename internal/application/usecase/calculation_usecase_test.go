package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fiscal-pro/internal/application/dto"
	"github.com/tu-usuario/fiscal-pro/internal/application/usecase"
	"github.com/tu-usuario/fiscal-pro/internal/domain"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/tax"
	"github.com/tu-usuario/fiscal-pro/pkg/logger"
)

type memClosings struct {
	byID map[string]*entity.MonthlyClosing
}

func (m *memClosings) Create(c *entity.MonthlyClosing) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memClosings) GetByCompetence(companyID, competence string) (*entity.MonthlyClosing, error) {
	for _, c := range m.byID {
		if c.CompanyID == companyID && c.Competence == competence {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memClosings) ListByCompany(companyID string) ([]*entity.MonthlyClosing, error) {
	var out []*entity.MonthlyClosing
	for _, c := range m.byID {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

type calcFixture struct {
	uc       *usecase.CalculationUseCase
	closings *memClosings
}

func newCalcFixture(t *testing.T, docs ...entity.FiscalDocument) *calcFixture {
	t.Helper()

	companies := &memCompanies{byID: map[string]*entity.Company{
		"company-1": {
			ID:   "company-1",
			Name: "EMPRESA TESTE LTDA",
			CNPJ: "11.222.333/0001-81",
			UF:   "SP",
		},
	}}
	documents := &memDocuments{docs: docs}
	closings := &memClosings{byID: map[string]*entity.MonthlyClosing{}}
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	return &calcFixture{
		uc:       usecase.NewCalculationUseCase(tax.NewEngine(), companies, documents, closings, log),
		closings: closings,
	}
}

func calcRequest() dto.CalculateTaxRequest {
	return dto.CalculateTaxRequest{
		CompanyID:         "company-1",
		Competence:        "05/2024",
		GrossRevenue:      decimal.NewFromInt(100000),
		OperatingExpenses: decimal.NewFromInt(40000),
	}
}

func TestCalculate_ConsideraDocumentosDaCompetencia(t *testing.T) {
	outro := validDoc()
	outro.ID = "doc-2"
	outro.AccessKey = ""
	outro.Date = outro.Date.AddDate(0, 1, 0) // junho: fora da competência

	f := newCalcFixture(t, validDoc(), outro)

	resp, err := f.uc.Calculate(calcRequest())
	require.NoError(t, err)

	assert.Equal(t, "05/2024", resp.Competence)
	assert.Equal(t, 1, resp.DocumentCount, "somente o documento de maio entra na apuração")
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.TotalTax.IsPositive())
	assert.Empty(t, resp.ClosingID, "sem Close não há fechamento")
}

// O prejuízo fiscal acumulado informado na requisição tem que chegar ao
// LALUR: trava de 30% sobre o lucro real de 70.000.
func TestCalculate_PrejuizoAcumuladoEntraNoLALUR(t *testing.T) {
	f := newCalcFixture(t)

	req := calcRequest()
	req.GrossRevenue = decimal.NewFromInt(300000)
	req.OperatingExpenses = decimal.NewFromInt(230000)
	req.AccumulatedTaxLosses = decimal.NewFromInt(100000)

	resp, err := f.uc.Calculate(req)
	require.NoError(t, err)

	assert.True(t, resp.Result.Profit.Offset.Equal(decimal.NewFromInt(21000)),
		"compensação limitada a 30 por cento do lucro real")
	assert.True(t, resp.Result.Profit.TaxableBase.Equal(decimal.NewFromInt(49000)))
}

func TestCalculate_FechamentoPersisteResultado(t *testing.T) {
	f := newCalcFixture(t, validDoc())

	req := calcRequest()
	req.Close = true
	req.ClosedBy = "contador@empresa.com"

	resp, err := f.uc.Calculate(req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.ClosingID)

	closing := f.closings.byID[resp.ClosingID]
	require.NotNil(t, closing)
	assert.Equal(t, entity.ClosingCompleted, closing.Status)
	assert.Equal(t, "contador@empresa.com", closing.ClosedBy)
	assert.True(t, closing.TotalTax.Equal(resp.Result.TotalTax))
	assert.NotEmpty(t, closing.Result, "resultado completo serializado")
}

func TestCalculate_CompetenciaJaFechada(t *testing.T) {
	f := newCalcFixture(t, validDoc())

	req := calcRequest()
	req.Close = true

	_, err := f.uc.Calculate(req)
	require.NoError(t, err)

	_, err = f.uc.Calculate(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Documentos com erro bloqueante não impedem o fechamento, mas o marcam.
func TestCalculate_FechamentoComErros(t *testing.T) {
	doc := validDoc()
	doc.AccessKey = doc.AccessKey[:40]

	f := newCalcFixture(t, doc)

	req := calcRequest()
	req.Close = true

	resp, err := f.uc.Calculate(req)
	require.NoError(t, err)

	closing := f.closings.byID[resp.ClosingID]
	require.NotNil(t, closing)
	assert.Equal(t, entity.ClosingWithErrors, closing.Status)
}

func TestCalculate_EntradasInvalidas(t *testing.T) {
	f := newCalcFixture(t)

	req := calcRequest()
	req.Competence = "maio/2024"
	_, err := f.uc.Calculate(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = calcRequest()
	req.CompanyID = "ghost"
	_, err = f.uc.Calculate(req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
