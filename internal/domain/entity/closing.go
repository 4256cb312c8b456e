package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados do fechamento mensal.
const (
	ClosingCompleted  = "completed"
	ClosingWithErrors = "with_errors"
)

// MonthlyClosing é o retrato persistido de uma apuração por competência.
// O resultado completo do cálculo fica serializado em Result; os campos
// TotalRevenue/TotalTax são desnormalizados para listagem.
type MonthlyClosing struct {
	ID           string
	CompanyID    string
	Competence   string // "MM/YYYY"
	Status       string // completed | with_errors
	ClosedAt     time.Time
	ClosedBy     string
	TotalRevenue decimal.Decimal
	TotalTax     decimal.Decimal
	Result       json.RawMessage
}
