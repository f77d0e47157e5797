package document

type column struct {
	title string
	// width in mm; zero columns share what the fixed columns leave.
	width float64
	// align is "L", "C" or "R".
	align string
	bold  bool
}

type table struct {
	columns  []column
	rows     [][]string
	fontSize float64
	padding  float64
	// head fills the header row. Plain tables have no header and no stripes.
	head  rgb
	plain bool
}

// keyValues is a plain two-column table with a bold label column.
func keyValues(labelWidth float64, rows ...[]string) table {
	return table{
		columns:  []column{{width: labelWidth, bold: true}, {}},
		rows:     rows,
		fontSize: 9,
		padding:  2,
		plain:    true,
	}
}

func (t table) widths(total float64) []float64 {
	widths := make([]float64, len(t.columns))
	fixed, auto := 0.0, 0
	for i, c := range t.columns {
		widths[i] = c.width
		if c.width > 0 {
			fixed += c.width
		} else {
			auto++
		}
	}
	if auto == 0 {
		return widths
	}
	share := (total - fixed) / float64(auto)
	for i := range widths {
		if widths[i] == 0 {
			widths[i] = share
		}
	}
	return widths
}

func (t table) lineHeight() float64 {
	return t.fontSize * ptToMM * 1.2
}

// table draws t with its top edge at y and returns the y below the last row.
// Rows never split; a row that does not fit moves to a new page, where the
// header is drawn again.
func (p *page) table(y float64, t table) float64 {
	widths := t.widths(p.width - 2*pageMargin)

	drawHeader := func() {
		if t.plain {
			return
		}
		titles := make([]string, len(t.columns))
		for i, c := range t.columns {
			titles[i] = c.title
		}
		p.font("B", t.fontSize, white)
		cells, h := p.layoutRow(t, widths, titles, true)
		p.drawRow(t, widths, cells, y, h, &t.head, true)
		y += h
	}
	drawHeader()

	for i, row := range t.rows {
		cells, h := p.layoutRow(t, widths, row, false)
		if y+h > p.height-bottomLimit {
			p.pdf.AddPage()
			y = topAfterBreak
			drawHeader()
		}
		var fill *rgb
		if !t.plain && i%2 == 1 {
			fill = &light
		}
		p.font("", t.fontSize, dark)
		p.drawRow(t, widths, cells, y, h, fill, false)
		y += h
	}
	return y
}

func (p *page) cellFont(t table, col int, header bool) {
	style := ""
	if header || t.columns[col].bold {
		style = "B"
	}
	p.pdf.SetFont(fontFamily, style, t.fontSize)
}

// layoutRow wraps every cell of a row and returns the lines with the row height.
func (p *page) layoutRow(t table, widths []float64, row []string, header bool) ([][]string, float64) {
	cells := make([][]string, len(t.columns))
	most := 1
	for i := range t.columns {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		p.cellFont(t, i, header)
		cells[i] = p.wrap(value, widths[i]-2*t.padding)
		if len(cells[i]) > most {
			most = len(cells[i])
		}
	}
	return cells, float64(most)*t.lineHeight() + 2*t.padding
}

func (p *page) drawRow(t table, widths []float64, cells [][]string, y, h float64, fill *rgb, header bool) {
	x := pageMargin
	lh := t.lineHeight()
	for i, lines := range cells {
		if fill != nil {
			p.fillRect(x, y, widths[i], h, *fill)
		}
		p.cellFont(t, i, header)
		align := t.columns[i].align
		if align == "" {
			align = "L"
		}
		for j, line := range lines {
			p.pdf.SetXY(x+t.padding, y+t.padding+float64(j)*lh)
			p.pdf.CellFormat(widths[i]-2*t.padding, lh, line, "", 0, align+"M", false, 0, "")
		}
		x += widths[i]
	}
}
