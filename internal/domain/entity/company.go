package entity

import "time"

// Regimes de apuração suportados.
const (
	RegimeLucroReal      = "Lucro Real"
	RegimeLucroPresumido = "Lucro Presumido"
)

// TaxProfile configuração tributária da empresa.
// IsMonofasico zera as alíquotas de saída de PIS/COFINS na apuração;
// IndustryType é ponto de extensão para presunções diferenciadas por CNAE.
type TaxProfile struct {
	IsMonofasico bool   `json:"is_monofasico"`
	ICMSSTRegime string `json:"icms_st_regime,omitempty"` // substituto | substituido
	IndustryType string `json:"industry_type,omitempty"`  // comercio, industria, servicos_gerais, ...
}

// Company representa a empresa contribuinte.
type Company struct {
	ID            string
	Name          string
	CNPJ          string
	Regime        string // Lucro Real | Lucro Presumido
	Status        string // active | pending | warning
	CNAEPrincipal string
	UF            string // unidade federativa (ex: "SP")
	IE            string // inscrição estadual
	TaxProfile    *TaxProfile
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
