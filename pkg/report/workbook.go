package report

const (
	AlignLeft   = "left"
	AlignCenter = "center"
)

// Style is a presentation hint for one cell. The zero value is an unstyled cell.
type Style struct {
	// Fill and FontColor are RGB hex colors like "366092".
	Fill      string
	FontColor string
	Bold      bool
	Size      float64
	Border    bool
	Align     string
	Wrap      bool
}

type Cell struct {
	// Value is a string, an int or a float64. Nil is an empty cell.
	Value interface{}
	Style Style
}

// Merge spans the columns FromCol to ToCol of one row. Rows and columns start at 1.
type Merge struct {
	Row     int
	FromCol int
	ToCol   int
}

type Sheet struct {
	Name   string
	Rows   [][]Cell
	Merges []Merge
	// Widths holds the width of column i+1, zero keeps the default.
	Widths []float64
}

func NewSheet(name string) *Sheet {
	return &Sheet{Name: name}
}

// Set writes a cell. Rows and columns start at 1, the grid grows as needed.
func (sheet *Sheet) Set(row, col int, value interface{}, style Style) {
	for len(sheet.Rows) < row {
		sheet.Rows = append(sheet.Rows, nil)
	}
	cells := sheet.Rows[row-1]
	for len(cells) < col {
		cells = append(cells, Cell{})
	}
	cells[col-1] = Cell{Value: value, Style: style}
	sheet.Rows[row-1] = cells
}

// SetRow writes values into consecutive columns starting at column 1.
func (sheet *Sheet) SetRow(row int, style Style, values ...interface{}) {
	for i, value := range values {
		sheet.Set(row, i+1, value, style)
	}
}

// Cell returns the cell at row and col or an empty cell outside the grid.
func (sheet *Sheet) Cell(row, col int) Cell {
	if row < 1 || row > len(sheet.Rows) {
		return Cell{}
	}
	cells := sheet.Rows[row-1]
	if col < 1 || col > len(cells) {
		return Cell{}
	}
	return cells[col-1]
}

// Values returns the values of a row up to its last written column.
func (sheet *Sheet) Values(row int) []interface{} {
	if row < 1 || row > len(sheet.Rows) {
		return nil
	}
	values := make([]interface{}, len(sheet.Rows[row-1]))
	for i, cell := range sheet.Rows[row-1] {
		values[i] = cell.Value
	}
	return values
}

func (sheet *Sheet) Merge(row, fromCol, toCol int) {
	sheet.Merges = append(sheet.Merges, Merge{Row: row, FromCol: fromCol, ToCol: toCol})
}

func (sheet *Sheet) Width(col int, width float64) {
	for len(sheet.Widths) < col {
		sheet.Widths = append(sheet.Widths, 0)
	}
	sheet.Widths[col-1] = width
}

// Workbook is an ordered list of sheets.
type Workbook struct {
	Sheets []*Sheet
}

func (workbook *Workbook) Add(sheet *Sheet) {
	workbook.Sheets = append(workbook.Sheets, sheet)
}

// Insert puts the sheet at position index.
func (workbook *Workbook) Insert(index int, sheet *Sheet) {
	workbook.Sheets = append(workbook.Sheets, nil)
	copy(workbook.Sheets[index+1:], workbook.Sheets[index:])
	workbook.Sheets[index] = sheet
}

func (workbook *Workbook) Sheet(name string) *Sheet {
	for _, sheet := range workbook.Sheets {
		if sheet.Name == name {
			return sheet
		}
	}
	return nil
}

func (workbook *Workbook) Names() []string {
	names := make([]string, len(workbook.Sheets))
	for i, sheet := range workbook.Sheets {
		names[i] = sheet.Name
	}
	return names
}
