package fiscal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Competence representa uma competência de apuração (mês/ano), formato "MM/YYYY".
type Competence struct {
	Month int
	Year  int
}

// ParseCompetence interpreta "MM/YYYY" (ex: "05/2024").
func ParseCompetence(s string) (Competence, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return Competence{}, fmt.Errorf("fiscal: competência deve ter formato MM/YYYY, recebido %q", s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return Competence{}, fmt.Errorf("fiscal: mês de competência inválido em %q", s)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1990 {
		return Competence{}, fmt.Errorf("fiscal: ano de competência inválido em %q", s)
	}
	return Competence{Month: month, Year: year}, nil
}

// YearMonth devolve a competência no formato "YYYY-MM", o mesmo prefixo das
// datas de emissão dos documentos normalizados.
func (c Competence) YearMonth() string {
	return fmt.Sprintf("%04d-%02d", c.Year, c.Month)
}

// FileSuffix devolve a competência no formato "MM-YYYY" usado no nome do
// arquivo SPED (SPED_EFD_<cnpj>_<MM-YYYY>.txt).
func (c Competence) FileSuffix() string {
	return fmt.Sprintf("%02d-%04d", c.Month, c.Year)
}

// PeriodBounds devolve o primeiro e o último dia da competência.
func (c Competence) PeriodBounds() (start, end time.Time) {
	start = time.Date(c.Year, time.Month(c.Month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// SpedDate formata uma data no layout DDMMYYYY do SPED (sem separadores).
func SpedDate(t time.Time) string {
	return t.Format("02012006")
}
