package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andrefarias/budgetmaster/internal/budget"
	"github.com/andrefarias/budgetmaster/internal/catalog"
	enc "github.com/andrefarias/budgetmaster/internal/encoding"
)

// Parser reads catalogue CSV exports and produces product params. It
// locates the header row by matching known column names, so leading title
// or metadata rows are tolerated.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]catalog.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffComma(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	var products []catalog.CreateParams

	headerFound := false

	idxName := -1
	idxType := -1
	idxPrice := -1

	for _, row := range rows {
		if !headerFound {
			matches := 0

			for i, col := range row {
				switch normalizeHeader(col) {
				case "name", "product", "description":
					idxName = i
					matches++
				case "type", "item type":
					idxType = i
					matches++
				case "price", "base price", "unit price":
					idxPrice = i
					matches++
				}
			}

			// Name plus at least one other column marks the header row.
			if idxName != -1 && matches >= 2 {
				headerFound = true
			}

			continue
		}

		if len(row) <= idxName {
			continue
		}

		name := strings.TrimSpace(row[idxName])
		if name == "" {
			continue
		}

		params := catalog.CreateParams{Name: name}

		if idxType != -1 && idxType < len(row) {
			params.ItemType = parseItemType(row[idxType])
		}

		if idxPrice != -1 && idxPrice < len(row) {
			priceStr := strings.TrimSpace(row[idxPrice])
			if priceStr != "" {
				price, err := parsePrice(priceStr)
				if err != nil {
					// Rows with a name but an unparsable price are skipped
					// rather than aborting the whole file.
					continue
				}

				params.BasePrice = &price
			}
		}

		products = append(products, params)
	}

	if !headerFound {
		return nil, fmt.Errorf("no recognizable header row found")
	}

	return products, nil
}

// sniffComma picks the separator by counting candidates in the buffered
// first line. Spreadsheet exports in European locales use semicolons.
func sniffComma(br *bufio.Reader) rune {
	line, err := br.Peek(1024)
	if err != nil && err != io.EOF {
		return ';'
	}

	if i := strings.IndexByte(string(line), '\n'); i >= 0 {
		line = line[:i]
	}

	if strings.Count(string(line), ";") >= strings.Count(string(line), ",") {
		return ';'
	}

	return ','
}

func normalizeHeader(col string) string {
	col = strings.ToLower(strings.TrimSpace(col))
	return strings.ReplaceAll(col, "_", " ")
}

func parseItemType(s string) budget.ItemType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "service", "serviço", "servico":
		return budget.ItemTypeService
	default:
		return budget.ItemTypeProduct
	}
}

// parsePrice accepts both "1.234,56" (European) and "1234.56" styles.
func parsePrice(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	return decimal.NewFromString(clean)
}
