package dataset

// Column names required after normalization.
const (
	ColState     = "state_of_residence"
	ColMonth     = "month"
	ColMonthCode = "month_code"
	ColYearCode  = "year_code"
	ColGender    = "sex_of_infant"
	ColBirths    = "births"
)

// RequiredColumns lists the columns a usable natality extract must carry.
var RequiredColumns = []string{ColState, ColMonth, ColMonthCode, ColYearCode, ColGender, ColBirths}

// Table is an immutable, column-indexed set of rows. Cells stay as strings;
// the births measure is additionally parsed into a numeric column during
// normalization. Filtering never mutates a Table — it produces Views.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
	births  []float64
}

// New builds a raw table from a header and rows. The births column is not
// parsed yet; Normalize does that.
func New(columns []string, rows [][]string) *Table {
	t := &Table{
		columns: columns,
		index:   make(map[string]int, len(columns)),
		rows:    rows,
	}
	for i, c := range columns {
		t.index[c] = i
	}
	return t
}

// Columns returns the header in column order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// All returns a view over every row.
func (t *Table) All() View {
	idx := make([]int, len(t.rows))
	for i := range idx {
		idx[i] = i
	}
	return View{table: t, idx: idx}
}

func (t *Table) cell(row int, col string) string {
	ci, ok := t.index[col]
	if !ok {
		return ""
	}
	r := t.rows[row]
	if ci >= len(r) {
		return ""
	}
	return r[ci]
}

// View is a derived subset of a table's rows: an index list into the parent,
// no data copy. The zero View is empty.
type View struct {
	table *Table
	idx   []int
}

// Len returns the number of rows in the view.
func (v View) Len() int {
	return len(v.idx)
}

// Cell returns the string value at row i of the view for the named column.
func (v View) Cell(i int, col string) string {
	return v.table.cell(v.idx[i], col)
}

// Births returns the parsed measure value at row i of the view.
func (v View) Births(i int) float64 {
	return v.table.births[v.idx[i]]
}

// Narrow returns a sub-view keeping only the given view-relative indices.
func (v View) Narrow(keep []int) View {
	idx := make([]int, len(keep))
	for i, k := range keep {
		idx[i] = v.idx[k]
	}
	return View{table: v.table, idx: idx}
}

// Columns returns the parent table's header.
func (v View) Columns() []string {
	return v.table.Columns()
}

// Rows materializes the view's rows, in order, for rendering.
func (v View) Rows() [][]string {
	out := make([][]string, len(v.idx))
	for i, ri := range v.idx {
		row := make([]string, len(v.table.rows[ri]))
		copy(row, v.table.rows[ri])
		out[i] = row
	}
	return out
}
