package types

// ConversionResult describes an output file that has been written and
// confirmed on disk.
type ConversionResult struct {
	InputFile     string
	OutputFile    string
	Headers       []string
	RowsProcessed int
	BytesWritten  int64
}

// Table is the in-memory form every conversion passes through: one header
// row of column names followed by data rows of string cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.Headers)
}

// Records returns the header followed by the data rows.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Headers)
	return append(records, t.Rows...)
}
