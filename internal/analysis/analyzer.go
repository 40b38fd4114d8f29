// Package analysis computes the descriptive statistics of a passenger
// table. Every function is pure; missing values are excluded from the
// aggregate they would feed and empty denominators produce NaN.
package analysis

import (
	"math"
	"sort"

	"titanic/domain/passenger"

	"github.com/montanaflynn/stats"
)

// ClassValue is a per-class statistic
type ClassValue struct {
	Class passenger.Class `json:"class"`
	Value float64         `json:"value"`
}

// SexValue is a per-sex statistic
type SexValue struct {
	Sex   passenger.Sex `json:"sex"`
	Value float64       `json:"value"`
}

// PortCount is the number of passengers embarked at a port
type PortCount struct {
	Port  passenger.Port `json:"port"`
	Count int            `json:"count"`
}

// Summary holds every statistic for one table, with groups in ascending
// label order.
type Summary struct {
	Rows                  int
	SurvivalRate          float64
	GenderProportion      []SexValue
	SurvivalByClass       []ClassValue
	BestClass             passenger.Class
	HasBestClass          bool
	WithSiblingsOrSpouses int
	AverageFareByClass    []ClassValue
	PassengersByPort      []PortCount
	SurvivalByGender      []SexValue
	UniqueTickets         int
}

// Analyze runs every statistic over t.
func Analyze(t *passenger.Table) Summary {
	byClass := SurvivalByClass(t)
	best, ok := BestClass(byClass)
	return Summary{
		Rows:                  t.Len(),
		SurvivalRate:          SurvivalRate(t),
		GenderProportion:      GenderProportion(t),
		SurvivalByClass:       byClass,
		BestClass:             best,
		HasBestClass:          ok,
		WithSiblingsOrSpouses: WithSiblingsOrSpouses(t),
		AverageFareByClass:    AverageFareByClass(t),
		PassengersByPort:      PassengersByPort(t),
		SurvivalByGender:      SurvivalByGender(t),
		UniqueTickets:         UniqueTickets(t),
	}
}

func ratio(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}

// SurvivalRate is survivors over all rows.
func SurvivalRate(t *passenger.Table) float64 {
	survived := 0
	for _, r := range t.Records() {
		if r.Survived {
			survived++
		}
	}
	return ratio(survived, t.Len())
}

// GenderProportion is each sex's share of all rows.
func GenderProportion(t *passenger.Table) []SexValue {
	counts := make(map[passenger.Sex]int)
	for _, r := range t.Records() {
		counts[r.Sex]++
	}
	out := make([]SexValue, 0, len(counts))
	for _, sex := range sortedSexes(counts) {
		out = append(out, SexValue{Sex: sex, Value: ratio(counts[sex], t.Len())})
	}
	return out
}

// SurvivalByClass is survivors over passengers within each class present.
func SurvivalByClass(t *passenger.Table) []ClassValue {
	total := make(map[passenger.Class]int)
	survived := make(map[passenger.Class]int)
	for _, r := range t.Records() {
		total[r.Class]++
		if r.Survived {
			survived[r.Class]++
		}
	}
	out := make([]ClassValue, 0, len(total))
	for _, class := range sortedClasses(total) {
		out = append(out, ClassValue{Class: class, Value: ratio(survived[class], total[class])})
	}
	return out
}

// BestClass returns the class with the highest rate, ignoring NaN. Ties go
// to the smallest class label. ok is false when no class has a rate.
func BestClass(rates []ClassValue) (best passenger.Class, ok bool) {
	bestRate := math.Inf(-1)
	for _, cv := range rates {
		if math.IsNaN(cv.Value) {
			continue
		}
		if !ok || cv.Value > bestRate || (cv.Value == bestRate && cv.Class < best) {
			best, bestRate, ok = cv.Class, cv.Value, true
		}
	}
	return best, ok
}

// WithSiblingsOrSpouses counts passengers with SibSp > 0.
func WithSiblingsOrSpouses(t *passenger.Table) int {
	n := 0
	for _, r := range t.Records() {
		if r.SibSp > 0 {
			n++
		}
	}
	return n
}

// AverageFareByClass is the mean non-missing fare per class present. A
// class whose fares are all missing maps to NaN.
func AverageFareByClass(t *passenger.Table) []ClassValue {
	fares := t.FaresByClass()
	classes := make([]passenger.Class, 0, len(fares))
	for class := range fares {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	out := make([]ClassValue, 0, len(classes))
	for _, class := range classes {
		mean, err := stats.Mean(fares[class])
		if err != nil {
			mean = math.NaN()
		}
		out = append(out, ClassValue{Class: class, Value: mean})
	}
	return out
}

// PassengersByPort counts passengers per known port; unknown ports are not
// counted anywhere.
func PassengersByPort(t *passenger.Table) []PortCount {
	counts := make(map[passenger.Port]int)
	for _, r := range t.Records() {
		if r.Embarked != passenger.PortUnknown {
			counts[r.Embarked]++
		}
	}
	ports := make([]passenger.Port, 0, len(counts))
	for port := range counts {
		ports = append(ports, port)
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })

	out := make([]PortCount, 0, len(ports))
	for _, port := range ports {
		out = append(out, PortCount{Port: port, Count: counts[port]})
	}
	return out
}

// SurvivalByGender is survivors over passengers within each sex present.
func SurvivalByGender(t *passenger.Table) []SexValue {
	total := make(map[passenger.Sex]int)
	survived := make(map[passenger.Sex]int)
	for _, r := range t.Records() {
		total[r.Sex]++
		if r.Survived {
			survived[r.Sex]++
		}
	}
	out := make([]SexValue, 0, len(total))
	for _, sex := range sortedSexes(total) {
		out = append(out, SexValue{Sex: sex, Value: ratio(survived[sex], total[sex])})
	}
	return out
}

// UniqueTickets counts distinct non-empty ticket identifiers.
func UniqueTickets(t *passenger.Table) int {
	seen := make(map[string]struct{})
	for _, r := range t.Records() {
		if r.Ticket != "" {
			seen[r.Ticket] = struct{}{}
		}
	}
	return len(seen)
}

func sortedClasses(m map[passenger.Class]int) []passenger.Class {
	keys := make([]passenger.Class, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedSexes(m map[passenger.Sex]int) []passenger.Sex {
	keys := make([]passenger.Sex, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
