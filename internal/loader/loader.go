// Package loader turns a passenger file into a passenger.Table. Every
// failure is reported as a DATA_LOAD_ERROR; a run cannot continue without
// data, so nothing is retried.
package loader

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"titanic/adapters/tabular"
	"titanic/domain/passenger"
	"titanic/internal"
	"titanic/internal/errors"
)

// Loader reads and validates passenger files
type Loader struct {
	logger *internal.Logger
}

// New creates a loader. A nil logger uses internal.DefaultLogger.
func New(logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{logger: logger}
}

// Load reads path (CSV or XLSX) and decodes it against the passenger schema.
func (l *Loader) Load(ctx context.Context, path string) (*passenger.Table, error) {
	log := l.logger.Named("Loader")

	reader := tabular.NewReader(path, l.logger)
	data, err := reader.Read(ctx)
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		switch {
		case stderrors.Is(err, os.ErrNotExist):
			return nil, errors.Wrap(errors.DataLoadErrorf("input file not found: %s", path), "load passengers")
		case stderrors.Is(err, tabular.ErrEmpty):
			return nil, errors.Wrap(errors.DataLoadErrorf("input file is empty: %s", path), "load passengers")
		}
		return nil, errors.WithCode(errors.CodeDataLoad, fmt.Errorf("read %s: %w", path, err))
	}

	columns, missing := resolveColumns(data.Headers)
	if len(missing) > 0 {
		return nil, errors.DataLoadErrorf("schema mismatch in %s: missing columns %s (found %s)",
			path, strings.Join(missing, ", "), strings.Join(data.Headers, ", "))
	}

	records := make([]passenger.Record, 0, len(data.Rows))
	for i, row := range data.Rows {
		if i%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := decodeRow(row, columns)
		if err != nil {
			return nil, errors.DataLoadErrorf("%s: data row %d: %v", path, i+1, err)
		}
		records = append(records, record)
	}

	log.Info("loaded %d passengers from %s (%s)", len(records), path, reader.FileType())
	return passenger.NewTable(records), nil
}

// Load is a convenience wrapper around New(nil).Load.
func Load(ctx context.Context, path string) (*passenger.Table, error) {
	return New(nil).Load(ctx, path)
}

func decodeRow(row tabular.Row, columns map[Field]string) (passenger.Record, error) {
	var (
		rec passenger.Record
		err error
	)
	cell := func(f Field) string { return row[columns[f]] }
	fail := func(f Field, err error) error { return fmt.Errorf("column %s: %w", columns[f], err) }

	if isNull(cell(FieldSurvived)) {
		return rec, fail(FieldSurvived, fmt.Errorf("value is required"))
	}
	if rec.Survived, err = parseBool(cell(FieldSurvived)); err != nil {
		return rec, fail(FieldSurvived, err)
	}

	if rec.Class, err = passenger.ParseClass(cell(FieldClass)); err != nil {
		return rec, fail(FieldClass, err)
	}

	if rec.Sex, err = passenger.ParseSex(cell(FieldSex)); err != nil {
		return rec, fail(FieldSex, err)
	}

	if !isNull(cell(FieldAge)) {
		age, err := parseNumber(cell(FieldAge))
		if err != nil {
			return rec, fail(FieldAge, err)
		}
		rec.Age = passenger.Float(age)
	}

	if isNull(cell(FieldSibSp)) {
		return rec, fail(FieldSibSp, fmt.Errorf("value is required"))
	}
	if rec.SibSp, err = parseCount(cell(FieldSibSp)); err != nil {
		return rec, fail(FieldSibSp, err)
	}

	if !isNull(cell(FieldFare)) {
		fare, err := parseNumber(cell(FieldFare))
		if err != nil {
			return rec, fail(FieldFare, err)
		}
		rec.Fare = passenger.Float(fare)
	}

	if !isNull(cell(FieldEmbarked)) {
		if rec.Embarked, err = passenger.ParsePort(cell(FieldEmbarked)); err != nil {
			return rec, fail(FieldEmbarked, err)
		}
	}

	// Tickets are free text; only an empty cell is missing.
	rec.Ticket = strings.TrimSpace(cell(FieldTicket))

	return rec, nil
}
