package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"titanic/domain/passenger"
	"titanic/internal"
	"titanic/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../../testdata/passengers.csv"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "passengers.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFixture(t *testing.T) {
	table, err := New(internal.Discard).Load(context.Background(), fixture)
	require.NoError(t, err)
	require.Equal(t, 22, table.Len())

	records := table.Records()
	first := records[0]
	assert.False(t, first.Survived)
	assert.Equal(t, passenger.ClassThird, first.Class)
	assert.Equal(t, passenger.SexMale, first.Sex)
	assert.Equal(t, passenger.Float(22), first.Age)
	assert.Equal(t, 1, first.SibSp)
	assert.Equal(t, passenger.Float(7.25), first.Fare)
	assert.Equal(t, passenger.PortSouthampton, first.Embarked)
	assert.Equal(t, "A/5 21171", first.Ticket)

	// Moran has no recorded age.
	assert.False(t, records[5].Age.Valid)
	// Icard has no embarkation port.
	assert.Equal(t, passenger.PortUnknown, records[20].Embarked)

	assert.Len(t, table.Ages(), 19)
}

func TestLoadHeaderAliasesAndNulls(t *testing.T) {
	path := writeCSV(t, "Unnamed: 0,survived,Class,Gender,Age,Siblings/Spouses Aboard,Fare,Port,Ticket Number\n"+
		"0,yes,1st,F,NA,0,$100.00,C,A1\n"+
		"1,0,3,m,30.5,2,,,\n")

	table, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	records := table.Records()
	assert.True(t, records[0].Survived)
	assert.Equal(t, passenger.ClassFirst, records[0].Class)
	assert.Equal(t, passenger.SexFemale, records[0].Sex)
	assert.False(t, records[0].Age.Valid)
	assert.Equal(t, passenger.Float(100), records[0].Fare)

	assert.Equal(t, passenger.Float(30.5), records[1].Age)
	assert.Equal(t, 2, records[1].SibSp)
	assert.False(t, records[1].Fare.Valid)
	assert.Equal(t, passenger.PortUnknown, records[1].Embarked)
	assert.Equal(t, "", records[1].Ticket)
}

func TestLoadShortRow(t *testing.T) {
	path := writeCSV(t, "PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked\n"+
		"1,0,3,\"Braund, Mr. Owen Harris\",male,22,1,0,A/5 21171,7.25,,S\n"+
		"4,1,1,\"Futrelle, Mrs. Jacques Heath (Lily May Peel)\",female,35,1,0,113803,53.1\n")

	table, err := New(internal.Discard).Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	short := table.Records()[1]
	assert.Equal(t, passenger.Float(53.1), short.Fare)
	assert.Equal(t, "113803", short.Ticket)
	assert.Equal(t, passenger.PortUnknown, short.Embarked)
}

func TestLoadShortRowMissingRequiredCell(t *testing.T) {
	path := writeCSV(t, "Survived,Pclass,Sex,Age,Fare,Embarked,Ticket,SibSp\n1,1,female,30,10,S,A1\n")

	_, err := New(internal.Discard).Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsDataLoadError(err))
	assert.Contains(t, err.Error(), "data row 1: column SibSp")
}

func TestLoadKeepsLiteralTickets(t *testing.T) {
	path := writeCSV(t, "Survived,Pclass,Sex,Age,SibSp,Fare,Embarked,Ticket\n"+
		"1,1,female,30,0,10,S,NONE\n"+
		"0,3,male,40,0,8,S,-\n"+
		"0,3,male,41,0,8,S,NA\n"+
		"0,3,male,42,0,8,S,\n")

	table, err := New(internal.Discard).Load(context.Background(), path)
	require.NoError(t, err)

	var tickets []string
	for _, r := range table.Records() {
		tickets = append(tickets, r.Ticket)
	}
	assert.Equal(t, []string{"NONE", "-", "NA", ""}, tickets)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(internal.Discard).Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsDataLoadError(err))
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := New(internal.Discard).Load(context.Background(), writeCSV(t, ""))
	require.Error(t, err)
	assert.True(t, errors.IsDataLoadError(err))
}

func TestLoadSchemaMismatch(t *testing.T) {
	path := writeCSV(t, "Survived,Pclass,Sex,Age,SibSp,Ticket\n1,1,female,20,0,A1\n")

	_, err := New(internal.Discard).Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsDataLoadError(err))
	assert.Contains(t, err.Error(), "missing columns embarked, fare")
}

func TestLoadMalformedCSV(t *testing.T) {
	path := writeCSV(t, "Survived,Pclass\n1,1,1\n")

	_, err := New(internal.Discard).Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsDataLoadError(err))
}

func TestLoadBadCells(t *testing.T) {
	header := "Survived,Pclass,Sex,Age,SibSp,Fare,Embarked,Ticket\n"
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"survived not boolean", "maybe,1,female,20,0,10,S,A1", "Survived"},
		{"survived missing", ",1,female,20,0,10,S,A1", "Survived"},
		{"class out of range", "1,4,female,20,0,10,S,A1", "Pclass"},
		{"unknown sex", "1,1,x,20,0,10,S,A1", "Sex"},
		{"negative age", "1,1,female,-3,0,10,S,A1", "Age"},
		{"fractional sibsp", "1,1,female,20,1.5,10,S,A1", "SibSp"},
		{"negative fare", "1,1,female,20,0,-10,S,A1", "Fare"},
		{"unknown port", "1,1,female,20,0,10,X,A1", "Embarked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, header+"1,1,male,40,0,5,S,B2\n"+tt.row+"\n")

			_, err := New(internal.Discard).Load(context.Background(), path)
			require.Error(t, err)
			assert.True(t, errors.IsDataLoadError(err))
			assert.Contains(t, err.Error(), "data row 2")
			assert.Contains(t, err.Error(), "column "+tt.column)
		})
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(internal.Discard).Load(ctx, fixture)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.IsDataLoadError(err))
}

func TestParseHelpers(t *testing.T) {
	b, err := parseBool("1.0")
	require.NoError(t, err)
	assert.True(t, b)

	n, err := parseNumber("1,234.50")
	require.NoError(t, err)
	assert.InDelta(t, 1234.5, n, 1e-9)

	c, err := parseCount("3.0")
	require.NoError(t, err)
	assert.Equal(t, 3, c)

	assert.True(t, isNull(" NaN "))
	assert.False(t, isNull("0"))
}
