package passenger

import (
	"fmt"
	"strconv"
	"strings"
)

// Class is the passenger ticket class
type Class int

const (
	ClassFirst  Class = 1
	ClassSecond Class = 2
	ClassThird  Class = 3
)

// ParseClass accepts 1/2/3 and the ordinal spellings 1st/2nd/3rd.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1st", "first":
		return ClassFirst, nil
	case "2", "2nd", "second":
		return ClassSecond, nil
	case "3", "3rd", "third":
		return ClassThird, nil
	}
	return 0, fmt.Errorf("invalid passenger class %q", s)
}

func (c Class) String() string {
	return strconv.Itoa(int(c))
}

// Ordinal returns "1st", "2nd" or "3rd".
func (c Class) Ordinal() string {
	switch c {
	case ClassFirst:
		return "1st"
	case ClassSecond:
		return "2nd"
	case ClassThird:
		return "3rd"
	}
	return c.String()
}

// Sex is the passenger's recorded sex
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// ParseSex accepts male/female and m/f, case-insensitive.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female", "f":
		return SexFemale, nil
	case "male", "m":
		return SexMale, nil
	}
	return "", fmt.Errorf("invalid sex %q", s)
}

// Port is the embarkation port code. The zero value means unknown.
type Port string

const (
	PortUnknown     Port = ""
	PortCherbourg   Port = "C"
	PortQueenstown  Port = "Q"
	PortSouthampton Port = "S"
)

// ParsePort accepts C/Q/S or the full port names. An empty string is
// PortUnknown.
func ParsePort(s string) (Port, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PortUnknown, nil
	case "c", "cherbourg":
		return PortCherbourg, nil
	case "q", "queenstown":
		return PortQueenstown, nil
	case "s", "southampton":
		return PortSouthampton, nil
	}
	return PortUnknown, fmt.Errorf("invalid embarkation port %q", s)
}

// Name returns the full port name.
func (p Port) Name() string {
	switch p {
	case PortCherbourg:
		return "Cherbourg"
	case PortQueenstown:
		return "Queenstown"
	case PortSouthampton:
		return "Southampton"
	}
	return "Unknown"
}

// NullFloat is a float that may be missing
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a present NullFloat.
func Float(v float64) NullFloat {
	return NullFloat{Value: v, Valid: true}
}

// Record is one passenger row
type Record struct {
	Survived bool
	Class    Class
	Sex      Sex
	Age      NullFloat
	SibSp    int
	Fare     NullFloat
	Embarked Port
	Ticket   string
}

// Table is the loaded passenger dataset. It is never modified after
// construction; accessors hand out copies.
type Table struct {
	records []Record
}

// NewTable copies records into a new table.
func NewTable(records []Record) *Table {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Table{records: cp}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of all rows in load order.
func (t *Table) Records() []Record {
	cp := make([]Record, len(t.records))
	copy(cp, t.records)
	return cp
}

// Ages returns the non-missing ages in load order.
func (t *Table) Ages() []float64 {
	ages := make([]float64, 0, len(t.records))
	for _, r := range t.records {
		if r.Age.Valid {
			ages = append(ages, r.Age.Value)
		}
	}
	return ages
}

// FaresByClass groups the non-missing fares by class. Classes that appear
// only with missing fares map to an empty slice.
func (t *Table) FaresByClass() map[Class][]float64 {
	fares := make(map[Class][]float64)
	for _, r := range t.records {
		if _, ok := fares[r.Class]; !ok {
			fares[r.Class] = []float64{}
		}
		if r.Fare.Valid {
			fares[r.Class] = append(fares[r.Class], r.Fare.Value)
		}
	}
	return fares
}
