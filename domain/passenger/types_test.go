package passenger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClass(t *testing.T) {
	tests := []struct {
		input    string
		expected Class
		hasError bool
	}{
		{"1", ClassFirst, false},
		{" 2 ", ClassSecond, false},
		{"3rd", ClassThird, false},
		{"First", ClassFirst, false},
		{"4", 0, true},
		{"", 0, true},
	}

	for _, test := range tests {
		result, err := ParseClass(test.input)
		if test.hasError {
			assert.Error(t, err, "input %q", test.input)
			continue
		}
		require.NoError(t, err, "input %q", test.input)
		assert.Equal(t, test.expected, result)
	}
}

func TestParseSex(t *testing.T) {
	sex, err := ParseSex("Female")
	require.NoError(t, err)
	assert.Equal(t, SexFemale, sex)

	sex, err = ParseSex("m")
	require.NoError(t, err)
	assert.Equal(t, SexMale, sex)

	_, err = ParseSex("unknown")
	assert.Error(t, err)
}

func TestParsePort(t *testing.T) {
	port, err := ParsePort("")
	require.NoError(t, err)
	assert.Equal(t, PortUnknown, port)

	port, err = ParsePort("s")
	require.NoError(t, err)
	assert.Equal(t, PortSouthampton, port)
	assert.Equal(t, "Southampton", port.Name())

	port, err = ParsePort("Cherbourg")
	require.NoError(t, err)
	assert.Equal(t, PortCherbourg, port)

	_, err = ParsePort("X")
	assert.Error(t, err)
}

func TestClassOrdinal(t *testing.T) {
	assert.Equal(t, "1st", ClassFirst.Ordinal())
	assert.Equal(t, "2nd", ClassSecond.Ordinal())
	assert.Equal(t, "3rd", ClassThird.Ordinal())
	assert.Equal(t, "3", ClassThird.String())
}

func TestTableIsImmutable(t *testing.T) {
	records := []Record{
		{Survived: true, Class: ClassFirst, Sex: SexFemale, Age: Float(29), Fare: Float(100)},
		{Class: ClassThird, Sex: SexMale, Fare: Float(8)},
	}
	table := NewTable(records)

	records[0].Survived = false
	got := table.Records()
	got[1].Class = ClassSecond

	fresh := table.Records()
	assert.True(t, fresh[0].Survived)
	assert.Equal(t, ClassThird, fresh[1].Class)
	assert.Equal(t, 2, table.Len())
}

func TestTableColumns(t *testing.T) {
	table := NewTable([]Record{
		{Class: ClassThird, Age: Float(22), Fare: Float(7.25)},
		{Class: ClassFirst, Age: Float(38), Fare: Float(71.28)},
		{Class: ClassThird},
		{Class: ClassFirst, Age: Float(35), Fare: Float(53.1)},
	})

	assert.Equal(t, []float64{22, 38, 35}, table.Ages())

	fares := table.FaresByClass()
	assert.Equal(t, []float64{7.25}, fares[ClassThird])
	assert.Equal(t, []float64{71.28, 53.1}, fares[ClassFirst])
	_, hasSecond := fares[ClassSecond]
	assert.False(t, hasSecond)
}
