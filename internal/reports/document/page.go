package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"kitchenos/internal/export"
	"kitchenos/internal/reports"
)

type rgb struct{ r, g, b int }

var (
	primary   = rgb{37, 99, 235}
	secondary = rgb{100, 100, 100}
	warning   = rgb{217, 119, 6}
	danger    = rgb{220, 38, 38}
	light     = rgb{245, 245, 245}
	dark      = rgb{30, 30, 30}
	white     = rgb{255, 255, 255}
)

const (
	fontFamily   = "Helvetica"
	pageMargin   = 14.0
	headerHeight = 35.0
	contentTop   = 45.0
	// topAfterBreak is where content resumes on a continuation page.
	topAfterBreak = 20.0
	// bottomLimit keeps tables and paragraphs clear of the footer.
	bottomLimit = 20.0
	// lineBreakSpace is the room a single text line needs above bottomLimit.
	lineBreakSpace = bottomLimit + 6
	ptToMM      = 0.3528
)

// page is an A4 portrait document with the shared header, section bars and
// footer. Every string drawn goes through text so core fonts can show it.
type page struct {
	pdf           *fpdf.Fpdf
	meta          reports.Meta
	translate     func(string) string
	width, height float64
}

func newPage(meta reports.Meta, title string) *page {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, topAfterBreak, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(meta.GeneratedAt)
	pdf.SetModificationDate(meta.GeneratedAt)
	pdf.SetTitle(export.PDFText(title), true)
	pdf.SetCreator(meta.ProductName, true)
	pdf.AliasNbPages("")

	p := &page{pdf: pdf, meta: meta, translate: pdf.UnicodeTranslatorFromDescriptor("cp1252")}
	p.width, p.height = pdf.GetPageSize()
	pdf.SetFooterFunc(p.footer)
	pdf.AddPage()
	return p
}

func (p *page) text(value string) string {
	return p.translate(export.PDFText(value))
}

func (p *page) font(style string, size float64, color rgb) {
	p.pdf.SetFont(fontFamily, style, size)
	p.pdf.SetTextColor(color.r, color.g, color.b)
}

func (p *page) fillRect(x, y, w, h float64, color rgb) {
	p.pdf.SetFillColor(color.r, color.g, color.b)
	p.pdf.Rect(x, y, w, h, "F")
}

func (p *page) write(x, y float64, value string) {
	p.pdf.Text(x, y, p.text(value))
}

func (p *page) writeRight(x, y float64, value string) {
	t := p.text(value)
	p.pdf.Text(x-p.pdf.GetStringWidth(t), y, t)
}

func (p *page) writeCenter(x, y float64, value string) {
	t := p.text(value)
	p.pdf.Text(x-p.pdf.GetStringWidth(t)/2, y, t)
}

// header draws the title band of the first page and returns the content start.
func (p *page) header(title, subtitle string) float64 {
	p.fillRect(0, 0, p.width, headerHeight, light)

	p.font("", 20, primary)
	p.write(pageMargin, 18, title)
	if subtitle != "" {
		p.font("", 10, secondary)
		p.write(pageMargin, 26, subtitle)
	}

	p.font("", 8, secondary)
	p.writeRight(p.width-pageMargin, 14, "Rapor: "+p.meta.ReportID)
	p.writeRight(p.width-pageMargin, 22, export.DateTime(p.meta.GeneratedAt))

	p.pdf.SetDrawColor(primary.r, primary.g, primary.b)
	p.pdf.SetLineWidth(0.5)
	p.pdf.Line(pageMargin, headerHeight, p.width-pageMargin, headerHeight)
	p.pdf.SetLineWidth(0.2)
	return contentTop
}

func (p *page) section(title string, y float64) float64 {
	p.fillRect(pageMargin, y-4, p.width-2*pageMargin, 10, primary)
	p.font("", 11, white)
	p.write(18, y+3, title)
	return y + 14
}

func (p *page) subsection(title string, y float64) float64 {
	p.fillRect(pageMargin, y-3, p.width-2*pageMargin, 8, light)
	p.font("", 10, dark)
	p.write(18, y+2, title)
	return y + 12
}

// checkPageBreak starts a new page when less than minSpace remains below y.
func (p *page) checkPageBreak(y, minSpace float64) float64 {
	if y > p.height-minSpace {
		p.pdf.AddPage()
		return topAfterBreak
	}
	return y
}

// wrap splits value into lines no wider than width using the current font.
// The returned lines are already translated to the font encoding.
func (p *page) wrap(value string, width float64) []string {
	raw := p.pdf.SplitLines([]byte(p.text(value)), width)
	if len(raw) == 0 {
		return []string{""}
	}
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = string(line)
	}
	return lines
}

// paragraph draws wrapped text starting at y and returns the y below it.
// Long paragraphs continue on a new page.
func (p *page) paragraph(value string, y, width, lineHeight float64) float64 {
	for _, line := range p.wrap(value, width) {
		if y > p.height-bottomLimit {
			p.pdf.AddPage()
			y = topAfterBreak
		}
		p.pdf.Text(pageMargin, y, line)
		y += lineHeight
	}
	return y
}

func (p *page) footer() {
	y := p.height - 10
	p.font("", 8, secondary)
	p.writeCenter(p.width/2, y, fmt.Sprintf("Sayfa %d / {nb}", p.pdf.PageNo()))
	p.write(pageMargin, y, p.meta.ProductName)
	p.writeRight(p.width-pageMargin, y, export.Date(p.meta.GeneratedAt))
}

// bytes closes the document and returns the encoded file.
func (p *page) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
