package tabular

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"titanic/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "passengers.csv", "\ufeffUnnamed: 0, Survived ,Pclass,Ticket\n0,1,1, A1 \n1,0,3,\n")

	data, err := NewReader(path, internal.Discard).Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Survived", "Pclass", "Ticket"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, Row{"Survived": "1", "Pclass": "1", "Ticket": "A1"}, data.Rows[0])
	assert.Equal(t, "", data.Rows[1]["Ticket"])
	assert.Equal(t, "3", data.Rows[1]["Pclass"])
}

func TestReadCSVSkipsBlankLines(t *testing.T) {
	path := writeFile(t, "passengers.csv", "Survived,Pclass\n1,1\n\n0,3\n")

	data, err := NewReader(path, internal.Discard).Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Rows, 2)
}

func TestReadLatin1CSV(t *testing.T) {
	// é and ü encoded as single ISO-8859-1 bytes
	content := "Name,Ticket\n" +
		"\"Aubart, Mme. L\xe9ontine Pauline\",PC 17477\n" +
		"\"M\xfcller, Mr. J\xfcrgen Ren\xe9\",S.C./PARIS 2079\n" +
		"\"Sagesser, Mlle. Emma\",PC 17477\n"
	path := writeFile(t, "latin1.csv", content)

	data, err := NewReader(path, internal.Discard).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, "Aubart, Mme. Léontine Pauline", data.Rows[0]["Name"])
	assert.Equal(t, "Müller, Mr. Jürgen René", data.Rows[1]["Name"])
	assert.Equal(t, "PC 17477", data.Rows[2]["Ticket"])
}

func TestReadCSVPadsShortRows(t *testing.T) {
	path := writeFile(t, "passengers.csv", "Survived,Pclass,Ticket,Embarked\n1,1,A1,S\n0,3,B2\n1,2\n")

	data, err := NewReader(path, internal.Discard).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, Row{"Survived": "0", "Pclass": "3", "Ticket": "B2", "Embarked": ""}, data.Rows[1])
	assert.Equal(t, Row{"Survived": "1", "Pclass": "2", "Ticket": "", "Embarked": ""}, data.Rows[2])
}

func TestReadCSVRejectsWideRows(t *testing.T) {
	path := writeFile(t, "passengers.csv", "Survived,Pclass\n1,1\n0,3,extra\n")

	_, err := NewReader(path, internal.Discard).Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record on line 3: 3 fields, header has 2")
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv"), internal.Discard).Read(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	_, err := NewReader(path, internal.Discard).Read(context.Background())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestReadMalformedCSV(t *testing.T) {
	path := writeFile(t, "bad.csv", "Survived,Pclass\n1,1,extra\n")

	_, err := NewReader(path, internal.Discard).Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse CSV file")
}

func TestReadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader("ignored.csv", internal.Discard).Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passengers.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Survived", "Pclass", "Sex"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{1, 1, "female"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{0, 3, "male"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	reader := NewReader(path, internal.Discard)
	assert.Equal(t, "xlsx", reader.FileType())

	data, err := reader.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Survived", "Pclass", "Sex"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, Row{"Survived": "0", "Pclass": "3", "Sex": "male"}, data.Rows[1])
}
