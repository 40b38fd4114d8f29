package tabular

// Row is one data row keyed by header
type Row map[string]string

// Data is a parsed file: trimmed headers in file order plus data rows
type Data struct {
	Headers []string
	Rows    []Row
}
