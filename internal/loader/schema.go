package loader

import (
	"sort"
	"strings"
)

// Field names a column of the passenger schema
type Field string

const (
	FieldSurvived Field = "survived"
	FieldClass    Field = "pclass"
	FieldSex      Field = "sex"
	FieldAge      Field = "age"
	FieldSibSp    Field = "sibsp"
	FieldFare     Field = "fare"
	FieldEmbarked Field = "embarked"
	FieldTicket   Field = "ticket"
)

// schema lists every required field with the header spellings it accepts,
// compared after lower-casing and removing spaces and underscores.
var schema = []struct {
	field   Field
	aliases []string
}{
	{FieldSurvived, []string{"survived"}},
	{FieldClass, []string{"pclass", "class", "passengerclass"}},
	{FieldSex, []string{"sex", "gender"}},
	{FieldAge, []string{"age"}},
	{FieldSibSp, []string{"sibsp", "siblingsspouses", "siblingsspousesaboard"}},
	{FieldFare, []string{"fare"}},
	{FieldEmbarked, []string{"embarked", "port", "embarkationport"}},
	{FieldTicket, []string{"ticket", "ticketnumber"}},
}

func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	h = strings.ReplaceAll(h, "/", "")
	return h
}

// resolveColumns maps each schema field to the file header that carries it
// and returns the fields that have no matching header, sorted.
func resolveColumns(headers []string) (map[Field]string, []string) {
	byNormalized := make(map[string]string, len(headers))
	for _, h := range headers {
		n := normalizeHeader(h)
		if _, dup := byNormalized[n]; !dup {
			byNormalized[n] = h
		}
	}

	columns := make(map[Field]string, len(schema))
	var missing []string
	for _, col := range schema {
		found := false
		for _, alias := range col.aliases {
			if header, ok := byNormalized[alias]; ok {
				columns[col.field] = header
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, string(col.field))
		}
	}
	sort.Strings(missing)
	return columns, missing
}
