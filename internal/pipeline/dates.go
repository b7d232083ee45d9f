package pipeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateStrategy turns a publish date string into a year. Parse must be pure.
type DateStrategy struct {
	Name  string
	Parse func(string) (int, bool)
}

// DateChain tries its strategies in order; the first that succeeds wins.
type DateChain []DateStrategy

// DefaultDateChain covers the two conventions found in the source dataset:
// "3/14/05" and "March 14th 2005".
var DefaultDateChain = DateChain{
	{Name: "numeric-mdy", Parse: parseNumericMDY},
	{Name: "month-name", Parse: parseMonthName},
}

// Resolve returns the publication year of raw, or ErrUnresolvedDate.
func (c DateChain) Resolve(raw string) (int, error) {
	year, _, err := c.resolve(raw)
	return year, err
}

func (c DateChain) resolve(raw string) (int, string, error) {
	for _, s := range c {
		if year, ok := s.Parse(raw); ok {
			return year, s.Name, nil
		}
	}
	return 0, "", fmt.Errorf("%w: %q", ErrUnresolvedDate, raw)
}

// parseNumericMDY reads M/D/YY. time.Parse maps two-digit years 69-99 to
// 19xx and 00-68 to 20xx.
func parseNumericMDY(s string) (int, bool) {
	t, err := time.Parse("1/2/06", s)
	if err != nil {
		return 0, false
	}
	return t.Year(), true
}

var ordinalSuffix = regexp.MustCompile(`(?i)(\d)(st|nd|rd|th)\b`)

var monthNameLayouts = []string{
	"January 2 2006",
	"January 2, 2006",
}

// parseMonthName reads "March 14th 2005" and "March 14, 2005" style dates.
// Only suffixes that follow a digit are stripped, so "August" survives.
func parseMonthName(s string) (int, bool) {
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return 0, false
	}

	for _, layout := range monthNameLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < 1 {
			return 0, false
		}
		return t.Year(), true
	}
	return 0, false
}
