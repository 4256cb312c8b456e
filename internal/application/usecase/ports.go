package usecase

import (
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/pkg/fiscal"
)

// FileEncoder porto de saída para a geração do arquivo SPED de uma obrigação.
// A implementação concreta é o EFDWriter; nos tests entra um fake.
type FileEncoder interface {
	FileName(company *entity.Company, competence fiscal.Competence) string
	Encode(obligation *entity.Obligation, documents []entity.FiscalDocument, company *entity.Company) (string, error)
}
