// Package pricelist reads supplier price lists into ingredient library rows.
// A row is "name;unit;cost[;ingredient_no;category;supplier]". Lists arrive as
// CSV files or as PDFs whose text lines follow the same layout.
package pricelist

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"

	"kitchenos/internal/log"
	"kitchenos/models"
)

const minFields = 3

var (
	// ErrEmpty is returned when a price list holds no importable rows.
	ErrEmpty = errors.New("pricelist: no rows found")
	// ErrUnsupported is returned for uploads that are neither CSV nor PDF.
	ErrUnsupported = errors.New("pricelist: unsupported file type")

	currencyNoise   = regexp.MustCompile(`(?i)\s|tl|₺|try`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

// Entry is one parsed price list row.
type Entry struct {
	Line         int
	Name         string
	Unit         string
	Cost         decimal.Decimal
	IngredientNo string
	Category     string
	Supplier     string
}

// Ingredient maps the entry onto a library ingredient.
func (e Entry) Ingredient() models.Ingredient {
	return models.Ingredient{
		Name:         e.Name,
		BaseUnit:     e.Unit,
		CostPerUnit:  e.Cost,
		IngredientNo: e.IngredientNo,
		Category:     e.Category,
		Supplier:     e.Supplier,
	}
}

// RowError reports a row that could not be parsed or imported.
type RowError struct {
	Line int    `json:"line"`
	Err  string `json:"error"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

// Result is the outcome of parsing a price list.
type Result struct {
	Entries []Entry
	Skipped []RowError
}

// Parse reads a price list, choosing the format from the content or file name.
func Parse(name string, data []byte) (Result, error) {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")), strings.EqualFold(filepath.Ext(name), ".pdf"):
		return ParsePDF(data)
	case isText(data):
		return ParseCSV(bytes.NewReader(data))
	default:
		return Result{}, ErrUnsupported
	}
}

func isText(data []byte) bool {
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	return !bytes.ContainsRune(sample, 0)
}

// ParseCSV reads a semicolon separated list. A first row whose cost column is
// not a number is treated as a header.
func ParseCSV(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var rows []record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, record{line: line, fields: fields})
	}
	return parseRows(rows, true)
}

// ParsePDF extracts the text lines of every page and parses those that carry
// at least name, unit and cost. Other lines (titles, page numbers) are ignored.
func ParsePDF(data []byte) (Result, error) {
	text, err := extractText(data)
	if err != nil {
		return Result{}, fmt.Errorf("read pdf: %w", err)
	}
	var rows []record
	for i, line := range strings.Split(text, "\n") {
		rows = append(rows, record{line: i + 1, fields: strings.Split(line, ";")})
	}
	return parseRows(rows, false)
}

func extractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

type record struct {
	line   int
	fields []string
}

// parseRows turns raw rows into entries. strict reports short rows as
// skipped; otherwise they are dropped silently.
func parseRows(rows []record, strict bool) (Result, error) {
	var result Result
	for _, row := range rows {
		lineNo := row.line
		fields := trimFields(row.fields)
		if len(fields) == 0 || (len(fields) == 1 && fields[0] == "") {
			continue
		}
		if len(fields) < minFields {
			if strict {
				result.Skipped = append(result.Skipped, RowError{Line: lineNo, Err: "expected name;unit;cost"})
			}
			continue
		}

		cost, err := ParseCost(fields[2])
		if err != nil {
			if len(result.Entries) == 0 && len(result.Skipped) == 0 && looksLikeHeader(fields) {
				continue
			}
			result.Skipped = append(result.Skipped, RowError{Line: lineNo, Err: err.Error()})
			continue
		}

		entry := Entry{Line: lineNo, Name: fields[0], Unit: fields[1], Cost: cost}
		if entry.Name == "" || entry.Unit == "" {
			result.Skipped = append(result.Skipped, RowError{Line: lineNo, Err: "name and unit are required"})
			continue
		}
		if len(fields) > 3 {
			entry.IngredientNo = fields[3]
		}
		if len(fields) > 4 {
			entry.Category = fields[4]
		}
		if len(fields) > 5 {
			entry.Supplier = fields[5]
		}
		result.Entries = append(result.Entries, entry)
	}

	if len(result.Entries) == 0 {
		return result, ErrEmpty
	}
	return result, nil
}

func trimFields(row []string) []string {
	fields := make([]string, len(row))
	for i, value := range row {
		fields[i] = strings.TrimSpace(cleanWhitespace.ReplaceAllString(value, " "))
	}
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func looksLikeHeader(fields []string) bool {
	for _, value := range fields[:minFields] {
		if value == "" {
			return false
		}
	}
	return true
}

// ParseCost reads a price written as "12.5", "12,50", "1.234,50" or
// "1,234.50", with an optional currency marker. Negative prices are rejected.
func ParseCost(value string) (decimal.Decimal, error) {
	clean := currencyNoise.ReplaceAllString(value, "")
	if clean == "" {
		return decimal.Zero, errors.New("missing cost")
	}

	comma := strings.LastIndex(clean, ",")
	dot := strings.LastIndex(clean, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case comma >= 0:
		clean = strings.Replace(clean, ",", ".", 1)
	}

	cost, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid cost %q", value)
	}
	if cost.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative cost %q", value)
	}
	return cost, nil
}

// Upserter stores one ingredient, matching existing rows by ingredient number
// and then by name. It reports whether a new row was created.
type Upserter interface {
	UpsertIngredient(ctx context.Context, ingredient *models.Ingredient) (bool, error)
}

// Summary counts what an import changed.
type Summary struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Failed  []RowError `json:"failed"`
}

// Import upserts every entry. Each row is written on its own, so a failing
// row is recorded and the rest of the list still imports. Only a cancelled
// context stops the import early.
func Import(ctx context.Context, store Upserter, entries []Entry) (Summary, error) {
	summary := Summary{Failed: []RowError{}}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		ingredient := entry.Ingredient()
		created, err := store.UpsertIngredient(ctx, &ingredient)
		if err != nil {
			log.Warn(ctx, "import price list row", "line", entry.Line, "name", entry.Name, "error", err)
			summary.Failed = append(summary.Failed, RowError{Line: entry.Line, Err: err.Error()})
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}
	log.Info(ctx, "price list imported", "created", summary.Created, "updated", summary.Updated, "failed", len(summary.Failed))
	return summary, nil
}
