// Package sped monta o arquivo texto da EFD (layout pipe-delimitado em blocos
// hierárquicos) a partir dos documentos fiscais de uma competência.
//
// O encoder é determinístico: mesma obrigação + mesmos documentos produzem o
// mesmo arquivo, byte a byte. Ele NÃO revalida os documentos; o chamador é
// responsável por gerar o arquivo apenas depois de uma auditoria sem erros.
package sped

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/pkg/fiscal"
)

const (
	defaultUF = "UF"
	defaultIE = "123456789"
)

// participant é um emitente deduplicado para o registro 0150.
type participant struct {
	code string
	name string
	cnpj string
}

// product é um item deduplicado para o registro 0200.
type product struct {
	code string
	name string
	ncm  string
}

// EFDWriter serializa obrigações no layout EFD.
type EFDWriter struct{}

// NewEFDWriter cria o encoder de arquivos EFD.
func NewEFDWriter() *EFDWriter {
	return &EFDWriter{}
}

// FileName devolve o nome de arquivo convencionado para a competência:
// SPED_EFD_<cnpj só dígitos>_<MM-YYYY>.txt.
func (w *EFDWriter) FileName(company *entity.Company, competence fiscal.Competence) string {
	return fmt.Sprintf("SPED_EFD_%s_%s.txt", fiscal.OnlyDigits(company.CNPJ), competence.FileSuffix())
}

// Encode monta o conteúdo do arquivo EFD da obrigação. Apenas documentos da
// competência da obrigação entram no arquivo; o restante é ignorado.
func (w *EFDWriter) Encode(obligation *entity.Obligation, documents []entity.FiscalDocument, company *entity.Company) (string, error) {
	competence, err := fiscal.ParseCompetence(obligation.Competence)
	if err != nil {
		return "", fmt.Errorf("competência da obrigação: %w", err)
	}

	docs := filterByCompetence(documents, competence)
	participants, partByCNPJ := collectParticipants(docs)
	products, prodByKey := collectProducts(docs)

	start, end := competence.PeriodBounds()
	startStr := fiscal.SpedDate(start)
	endStr := fiscal.SpedDate(end)

	b := newFileBuilder()

	// Bloco 0: abertura, participantes, unidades e produtos.
	uf := company.UF
	if uf == "" {
		uf = defaultUF
	}
	ie := company.IE
	if ie == "" {
		ie = defaultIE
	}
	b.add("0000", fmt.Sprintf("009|0|%s|%s|%s|%s|||%s|%s|||A|1|",
		startStr, endStr, cleanText(company.Name), company.CNPJ, uf, ie))
	b.add("0001", "0")
	for _, p := range participants {
		b.add("0150", fmt.Sprintf("%s|%s|1058|%s|||SP|", p.code, cleanText(p.name), p.cnpj))
	}
	b.add("0190", "UN|UNIDADE|")
	for _, p := range products {
		b.add("0200", fmt.Sprintf("%s|%s|||UN|00|%s|||||", p.code, cleanText(p.name), p.ncm))
	}
	b.add("0990", fmt.Sprintf("%d", b.distinctCodes()+1))

	// Bloco C: documentos e itens, intercalados.
	b.add("C001", "0")
	icmsDebits := decimal.Zero
	icmsCredits := decimal.Zero
	for i := range docs {
		doc := &docs[i]
		indOper := "1"
		if !doc.IsExit() {
			indOper = "0"
		}
		partCode := ""
		if p, ok := partByCNPJ[doc.IssuerCNPJ]; ok {
			partCode = p
		}
		b.add("C100", fmt.Sprintf("%s|0|%s|55|00|1|%s|%s|%s|%s|%s|0|0|%s|9|0|0|%s|%s|%s|0|0|",
			indOper, partCode, keyFragment(doc.AccessKey), doc.AccessKey,
			fiscal.SpedDate(doc.Date), fiscal.SpedDate(doc.Date),
			money(doc.Amount), money(doc.Amount), money(doc.Amount),
			money(doc.TotalPIS), money(doc.TotalCOFINS)))
		for j := range doc.Items {
			item := &doc.Items[j]
			b.add("C170", fmt.Sprintf("1|%s|%s|1|UN|%s|0|0|%s|%s|%s|0|%s|0|0|0|%s|%s|0|%s|%s|0|",
				prodByKey[productKey(item)], cleanText(item.Name), money(item.Amount),
				item.CSTICMS, item.CFOP, item.NCM, money(item.VICMS),
				item.CSTPIS, money(item.VPIS), item.CSTCOFINS, money(item.VCOFINS)))
			if doc.IsExit() {
				icmsDebits = icmsDebits.Add(item.VICMS)
			} else {
				icmsCredits = icmsCredits.Add(item.VICMS)
			}
		}
	}
	b.add("C990", fmt.Sprintf("%d", b.distinctCodesWithPrefix("C")+1))

	// Bloco E: apuração do ICMS do período.
	balance := icmsDebits.Sub(icmsCredits)
	payable := decimal.Zero
	creditCarry := decimal.Zero
	if balance.IsPositive() {
		payable = balance
	} else {
		creditCarry = balance.Abs()
	}
	b.add("E001", "0")
	b.add("E100", startStr+"|"+endStr+"|")
	b.add("E110", fmt.Sprintf("%s|0|%s|0|%s|0|%s|%s|",
		money(icmsDebits), money(icmsCredits), money(balance), money(payable), money(creditCarry)))
	b.add("E990", "4")

	// Bloco 9: totalizadores. Um registro 9900 por código emitido até aqui,
	// em ordem ascendente, seguido dos três meta-registros e dos totais.
	// Invariante fechado do arquivo: a soma das contagens de todos os 9900
	// é igual ao valor do 9999, que por sua vez é o total de linhas.
	b.add("9001", "0")
	codes := b.sortedCodes()
	for _, code := range codes {
		b.add("9900", fmt.Sprintf("%s|%d|", code, b.count(code)))
	}
	b.add("9900", fmt.Sprintf("9900|%d|", len(codes)+3))
	b.add("9900", "9990|1|")
	b.add("9900", "9999|1|")
	b.add("9990", fmt.Sprintf("%d", len(codes)+6))
	b.add("9999", fmt.Sprintf("%d", b.totalLines()+1))

	return b.String(), nil
}

// WriteFile persiste o arquivo no diretório dado, codificado em ISO-8859-1
// como exige o validador da RFB. Devolve o caminho completo gravado.
func (w *EFDWriter) WriteFile(dir string, obligation *entity.Obligation, documents []entity.FiscalDocument, company *entity.Company) (string, error) {
	content, err := w.Encode(obligation, documents, company)
	if err != nil {
		return "", err
	}

	competence, err := fiscal.ParseCompetence(obligation.Competence)
	if err != nil {
		return "", err
	}

	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	if err != nil {
		return "", fmt.Errorf("codificação ISO-8859-1: %w", err)
	}

	path := filepath.Join(dir, w.FileName(company, competence))
	if err := os.WriteFile(path, []byte(encoded), 0o644); err != nil {
		return "", fmt.Errorf("gravação do arquivo EFD: %w", err)
	}
	return path, nil
}

// ── montagem de linhas ────────────────────────────────────────────────────────

// fileBuilder acumula as linhas do arquivo e a contagem de ocorrências por
// código de registro. Toda linha conta, inclusive as de fechamento.
type fileBuilder struct {
	lines  []string
	counts map[string]int
}

func newFileBuilder() *fileBuilder {
	return &fileBuilder{counts: make(map[string]int)}
}

func (b *fileBuilder) add(code, content string) {
	b.counts[code]++
	b.lines = append(b.lines, "|"+code+"|"+content+"|")
}

func (b *fileBuilder) count(code string) int { return b.counts[code] }

func (b *fileBuilder) totalLines() int { return len(b.lines) }

func (b *fileBuilder) distinctCodes() int { return len(b.counts) }

func (b *fileBuilder) String() string { return strings.Join(b.lines, "\n") }

func (b *fileBuilder) distinctCodesWithPrefix(prefix string) int {
	n := 0
	for code := range b.counts {
		if strings.HasPrefix(code, prefix) {
			n++
		}
	}
	return n
}

func (b *fileBuilder) sortedCodes() []string {
	codes := make([]string, 0, len(b.counts))
	for code := range b.counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ── coleta e formatação ───────────────────────────────────────────────────────

func filterByCompetence(documents []entity.FiscalDocument, competence fiscal.Competence) []entity.FiscalDocument {
	ym := competence.YearMonth()
	out := make([]entity.FiscalDocument, 0, len(documents))
	for i := range documents {
		if documents[i].YearMonth() == ym {
			out = append(out, documents[i])
		}
	}
	return out
}

// collectParticipants deduplica emitentes por CNPJ, na ordem da primeira
// ocorrência. O código do participante deriva da raiz do CNPJ.
func collectParticipants(docs []entity.FiscalDocument) ([]participant, map[string]string) {
	var list []participant
	byCNPJ := make(map[string]string)
	for i := range docs {
		doc := &docs[i]
		if doc.IssuerCNPJ == "" {
			continue
		}
		if _, ok := byCNPJ[doc.IssuerCNPJ]; ok {
			continue
		}
		name := doc.IssuerName
		if name == "" {
			name = "PARTICIPANTE"
		}
		code := "P" + truncate(doc.IssuerCNPJ, 8)
		byCNPJ[doc.IssuerCNPJ] = code
		list = append(list, participant{code: code, name: name, cnpj: doc.IssuerCNPJ})
	}
	return list, byCNPJ
}

// collectProducts deduplica itens por código derivado (NCM + nome truncado),
// na ordem da primeira ocorrência.
func collectProducts(docs []entity.FiscalDocument) ([]product, map[string]string) {
	var list []product
	byKey := make(map[string]string)
	for i := range docs {
		for j := range docs[i].Items {
			item := &docs[i].Items[j]
			key := productKey(item)
			if _, ok := byKey[key]; ok {
				continue
			}
			ncm := item.NCM
			if ncm == "" {
				ncm = "00000000"
			}
			byKey[key] = key
			list = append(list, product{code: key, name: item.Name, ncm: ncm})
		}
	}
	return list, byKey
}

// productKey deriva o código do produto: I<ncm>-<nome truncado sem espaços>.
func productKey(item *entity.FiscalLineItem) string {
	ncm := item.NCM
	if ncm == "" {
		ncm = "0"
	}
	name := item.Name
	if name == "" {
		name = "item"
	}
	return "I" + ncm + "-" + strings.ReplaceAll(truncate(name, 10), " ", "")
}

// keyFragment extrai o número do documento da chave de acesso (posições
// 22-30). Chave ausente ou curta vira "1".
func keyFragment(key string) string {
	if len(key) < 31 {
		return "1"
	}
	return key[22:31]
}

// money formata valores no padrão do arquivo: duas casas, vírgula decimal.
func money(v decimal.Decimal) string {
	return strings.Replace(v.StringFixed(2), ".", ",", 1)
}

// cleanText remove tudo fora de [A-Za-z0-9 ] e trunca em 60 caracteres.
func cleanText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			sb.WriteRune(r)
		}
	}
	return truncate(sb.String(), 60)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
