package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"titanic/internal"

	"github.com/saintfish/chardet"
	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html/charset"
)

// ErrEmpty is returned when a file has no header row.
var ErrEmpty = errors.New("file is empty")

// Reader reads CSV and XLSX files into raw string rows
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewReader picks the format from the file extension; anything that is
// not .xlsx is read as CSV.
func NewReader(filePath string, logger *internal.Logger) *Reader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	fileType := "csv"
	if strings.EqualFold(filepath.Ext(filePath), ".xlsx") {
		fileType = "xlsx"
	}
	return &Reader{filePath: filePath, fileType: fileType, logger: logger.Named("DataReader")}
}

// FileType reports "csv" or "xlsx".
func (r *Reader) FileType() string {
	return r.fileType
}

// Read loads the whole file. Missing files surface as os.ErrNotExist.
func (r *Reader) Read(ctx context.Context) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); err != nil {
		return nil, fmt.Errorf("%s file %s: %w", strings.ToUpper(r.fileType), r.filePath, err)
	}

	var (
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readCSVRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("%s file read in %.2fms (%d rows)", strings.ToUpper(r.fileType),
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	return r.processRows(rows), nil
}

// readExcelRows reads the first sheet of the workbook
func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func (r *Reader) readCSVRows() ([][]string, error) {
	raw, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}

	// Short rows are padded with empty cells later; rows wider than the
	// header are rejected.
	reader := csv.NewReader(r.utf8Reader(raw))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV file: %w", err)
		}
		if len(rows) > 0 && len(record) > len(rows[0]) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("failed to parse CSV file: record on line %d: %d fields, header has %d",
				line, len(record), len(rows[0]))
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// utf8Reader transcodes legacy spreadsheet exports (Latin-1, Windows-1252)
// to UTF-8. Valid UTF-8 is passed through untouched.
func (r *Reader) utf8Reader(raw []byte) io.Reader {
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}

	label := DetectCharset(raw)
	decoded, err := charset.NewReader(bytes.NewReader(raw), label)
	if err != nil {
		r.logger.Warn("unsupported charset %q in %s, reading bytes as-is: %v", label, r.filePath, err)
		return bytes.NewReader(raw)
	}
	r.logger.Debug("transcoding %s from %s", r.filePath, label)
	return decoded
}

// minCharsetConfidence is the chardet score below which a guess is ignored.
const minCharsetConfidence = 50

// DetectCharset guesses the encoding of non-UTF-8 text. Weak guesses fall
// back to windows-1252, the usual encoding of spreadsheet CSV exports.
func DetectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil || result.Charset == "" || result.Confidence < minCharsetConfidence {
		return "windows-1252"
	}
	return strings.ToLower(result.Charset)
}

// processRows converts raw string rows into Data, dropping spreadsheet
// index columns ("Unnamed: 0" and friends).
func (r *Reader) processRows(rows [][]string) *Data {
	headerRow := rows[0]
	if len(headerRow) > 0 {
		headerRow[0] = strings.TrimPrefix(headerRow[0], "\ufeff")
	}

	var (
		headers []string
		keep    []int
	)
	for i, header := range headerRow {
		header = strings.TrimSpace(header)
		if strings.Contains(header, "Unnamed") {
			r.logger.Debug("dropping index column %q", header)
			continue
		}
		headers = append(headers, header)
		keep = append(keep, i)
	}

	dataRows := make([]Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		if isBlank(raw) {
			continue
		}
		row := make(Row, len(keep))
		for j, idx := range keep {
			if idx < len(raw) {
				row[headers[j]] = strings.TrimSpace(raw[idx])
			} else {
				row[headers[j]] = ""
			}
		}
		dataRows = append(dataRows, row)
	}

	r.logger.Debug("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &Data{Headers: headers, Rows: dataRows}
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
