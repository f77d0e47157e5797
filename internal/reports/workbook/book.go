package workbook

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/xuri/excelize/v2"

	"kitchenos/internal/export"
)

type rowKind int

const (
	rowPlain rowKind = iota
	rowTitle
	rowHeading
	rowHeader
)

type row struct {
	kind  rowKind
	cells []any
}

// sheet collects rows in memory before they are written to the workbook.
type sheet struct {
	name   string
	widths []float64
	rows   []row
}

func newSheet(name string, widths ...float64) *sheet {
	return &sheet{name: name, widths: widths}
}

func (s *sheet) add(kind rowKind, cells ...any) {
	s.rows = append(s.rows, row{kind: kind, cells: cells})
}

func (s *sheet) row(cells ...any) { s.add(rowPlain, cells...) }
func (s *sheet) title(text string) { s.add(rowTitle, text) }
func (s *sheet) heading(text string) { s.add(rowHeading, text) }
func (s *sheet) header(cells ...any) { s.add(rowHeader, cells...) }
func (s *sheet) blank() { s.add(rowPlain) }
func (s *sheet) pair(label string, value any) { s.row(label, value) }

// book wraps an excelize file and keeps sheet names unique.
type book struct {
	file   *excelize.File
	used   []string
	styles map[rowKind]int
}

func newBook() (*book, error) {
	b := &book{file: excelize.NewFile(), styles: make(map[rowKind]int)}
	specs := map[rowKind]*excelize.Style{
		rowTitle:   {Font: &excelize.Font{Bold: true, Size: 14, Color: "2563EB"}},
		rowHeading: {Font: &excelize.Font{Bold: true}},
		rowHeader: {
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F5F5F5"}},
		},
	}
	for kind, spec := range specs {
		id, err := b.file.NewStyle(spec)
		if err != nil {
			_ = b.file.Close()
			return nil, fmt.Errorf("create style: %w", err)
		}
		b.styles[kind] = id
	}
	return b, nil
}

// write appends s as a new worksheet. The first sheet replaces the default one.
func (b *book) write(s *sheet) error {
	name := b.uniqueName(s.name)
	if len(b.used) == 0 {
		if err := b.file.SetSheetName(b.file.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename sheet %q: %w", name, err)
		}
	} else if _, err := b.file.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	b.used = append(b.used, name)

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := b.file.SetColWidth(name, col, col, width); err != nil {
			return fmt.Errorf("set width of %s!%s: %w", name, col, err)
		}
	}

	for i, r := range s.rows {
		if len(r.cells) == 0 {
			continue
		}
		start, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		cells := r.cells
		if err := b.file.SetSheetRow(name, start, &cells); err != nil {
			return fmt.Errorf("write %s!%s: %w", name, start, err)
		}
		style, ok := b.styles[r.kind]
		if !ok {
			continue
		}
		end, err := excelize.CoordinatesToCellName(len(r.cells), i+1)
		if err != nil {
			return err
		}
		if err := b.file.SetCellStyle(name, start, end, style); err != nil {
			return fmt.Errorf("style %s!%s: %w", name, start, err)
		}
	}
	return nil
}

// uniqueName sanitizes base into a sheet name and appends " (n)" when a sheet
// with the same name (compared case-insensitively) already exists.
func (b *book) uniqueName(base string) string {
	base = export.SheetName(base)
	candidate := fitUTF16(base, export.MaxSheetNameLength)
	for n := 2; b.taken(candidate); n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = fitUTF16(base, export.MaxSheetNameLength-len(suffix)) + suffix
	}
	return candidate
}

func (b *book) taken(name string) bool {
	for _, used := range b.used {
		if strings.EqualFold(used, name) {
			return true
		}
	}
	return false
}

// fitUTF16 trims value to at most limit UTF-16 code units, the unit sheet
// name lengths are measured in.
func fitUTF16(value string, limit int) string {
	total := 0
	for i, r := range value {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if total+n > limit {
			return strings.TrimRight(value[:i], " '")
		}
		total += n
	}
	return value
}

// bytes serializes the workbook and releases it.
func (b *book) bytes() ([]byte, error) {
	defer b.file.Close()
	buf, err := b.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *book) close() {
	_ = b.file.Close()
}
