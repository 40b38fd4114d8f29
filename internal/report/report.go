package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"titanic/internal/analysis"
	"titanic/internal/errors"
)

// Section is one labeled statistic of the report
type Section struct {
	Label string
	Value string
}

// Sections returns the report content in its fixed order.
func Sections(s analysis.Summary) []Section {
	best := "none"
	if s.HasBestClass {
		best = s.BestClass.String()
	}

	return []Section{
		{"Survival rate", formatRatio(s.SurvivalRate)},
		{"Gender proportion", formatSexValues(s.GenderProportion)},
		{"Survival rate by class", formatClassValues(s.SurvivalByClass)},
		{"Best class", best},
		{"Passengers with siblings/spouses aboard", fmt.Sprintf("%d", s.WithSiblingsOrSpouses)},
		{"Average fare by class", formatClassValues(s.AverageFareByClass)},
		{"Passengers by port", formatPortCounts(s.PassengersByPort)},
		{"Survival rate by gender", formatSexValues(s.SurvivalByGender)},
		{"Unique tickets", fmt.Sprintf("%d", s.UniqueTickets)},
	}
}

// Format renders each section as "Label: value".
func Format(s analysis.Summary) []string {
	sections := Sections(s)
	lines := make([]string, len(sections))
	for i, sec := range sections {
		lines[i] = sec.Label + ": " + sec.Value
	}
	return lines
}

// Render returns the text artifact: one line per section, newline-terminated.
func Render(s analysis.Summary) []byte {
	var buf bytes.Buffer
	for _, line := range Format(s) {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// WriteText overwrites path with the rendered report.
func WriteText(path string, s analysis.Summary) error {
	return writeFile(path, Render(s))
}

// writeFile replaces path atomically so a failed run never leaves a
// half-written artifact behind.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.OutputError(path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.OutputError(path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.OutputError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.OutputError(path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.OutputError(path, err)
	}
	return nil
}

func formatRatio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatClassValues(values []analysis.ClassValue) string {
	parts := make([]string, len(values))
	for i, cv := range values {
		parts[i] = cv.Class.String() + ": " + formatRatio(cv.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatSexValues(values []analysis.SexValue) string {
	parts := make([]string, len(values))
	for i, sv := range values {
		parts[i] = string(sv.Sex) + ": " + formatRatio(sv.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatPortCounts(counts []analysis.PortCount) string {
	parts := make([]string, len(counts))
	for i, pc := range counts {
		parts[i] = fmt.Sprintf("%s: %d", pc.Port, pc.Count)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
