package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Period is the canonical billing month+year. Payments arrive with the
// period encoded either as a compact "M/YYYY" string or as two separate
// integers; both forms resolve to this one value at the ingestion boundary
// so nothing downstream has to deal with two shapes.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// ParsePeriod parses the compact "M/YYYY" wire form.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("bad period %q: want M/YYYY", s)
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Period{}, fmt.Errorf("bad period month %q: %w", parts[0], err)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Period{}, fmt.Errorf("bad period year %q: %w", parts[1], err)
	}

	p := Period{Month: month, Year: year}
	if !p.Valid() {
		return Period{}, fmt.Errorf("bad period %q: month out of range", s)
	}
	return p, nil
}

// ResolvePeriod reconciles the two wire encodings. When both are present
// and disagree, the string form wins; the backend writes the string last
// and treats it as authoritative.
func ResolvePeriod(compact string, month, year int) (Period, error) {
	if strings.TrimSpace(compact) != "" {
		return ParsePeriod(compact)
	}

	p := Period{Month: month, Year: year}
	if !p.Valid() {
		return Period{}, fmt.Errorf("bad period %d/%d", month, year)
	}
	return p, nil
}

func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year > 0
}

func (p Period) IsZero() bool {
	return p.Month == 0 && p.Year == 0
}

// String renders the compact wire form, without zero padding, matching
// what the club backend has always stored ("5/2025", not "05/2025").
func (p Period) String() string {
	return fmt.Sprintf("%d/%d", p.Month, p.Year)
}

func (p Period) Equal(other Period) bool {
	return p.Month == other.Month && p.Year == other.Year
}
