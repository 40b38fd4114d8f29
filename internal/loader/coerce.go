package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// nullTokens are cell values read as missing, matching common CSV exports.
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
	"-":    true,
}

func isNull(cell string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(cell))]
}

// parseBool accepts 1/0, true/false and yes/no. Numeric forms such as
// "1.0" are accepted when they are exactly 0 or 1.
func parseBool(cell string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "1", "true", "yes", "y", "t":
		return true, nil
	case "0", "false", "no", "n", "f":
		return false, nil
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil {
		switch v {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
	}
	return false, fmt.Errorf("invalid boolean %q", cell)
}

// parseNumber parses a non-negative amount, tolerating currency symbols and
// thousands separators.
func parseNumber(cell string) (float64, error) {
	clean := strings.TrimSpace(cell)
	for _, symbol := range []string{"$", "£", "€"} {
		clean = strings.ReplaceAll(clean, symbol, "")
	}
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid number %q", cell)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %q", cell)
	}
	return v, nil
}

// parseCount parses a non-negative integer; "1.0" is accepted.
func parseCount(cell string) (int, error) {
	clean := strings.TrimSpace(cell)
	if n, err := strconv.Atoi(clean); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative count %q", cell)
		}
		return n, nil
	}
	v, err := parseNumber(clean)
	if err != nil || v != math.Trunc(v) {
		return 0, fmt.Errorf("invalid count %q", cell)
	}
	return int(v), nil
}
