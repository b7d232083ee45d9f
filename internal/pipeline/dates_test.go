package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDateChain_Resolve(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"numeric short year", "3/14/05", 2005},
		{"numeric zero padded", "03/04/05", 2005},
		{"numeric pivot upper", "12/31/99", 1999},
		{"numeric pivot 69", "1/1/69", 1969},
		{"numeric pivot 68", "1/1/68", 2068},
		{"month name ordinal st", "March 1st 2005", 2005},
		{"month name ordinal th", "March 14th 2005", 2005},
		{"month name ordinal nd", "June 2nd 1987", 1987},
		{"month name ordinal rd", "October 3rd 2011", 2011},
		{"month name with comma", "March 14th, 2005", 2005},
		{"month name without ordinal", "July 4 1976", 1976},
		{"august keeps its st", "August 21st 2003", 2003},
		{"lower case month", "september 9th 1999", 1999},
		{"extra whitespace", "  May   5th   2001 ", 2001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultDateChain.Resolve(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultDateChain_Unresolved(t *testing.T) {
	inputs := []string{
		"Not A Date",
		"",
		"2005",
		"3/14/2005",
		"13/01/05",
		"February 30th 2001",
		"Mar 14th 2005",
		"14 March 2005",
		"March 14th 05",
		"3/14/05 extra",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := DefaultDateChain.Resolve(in)
			assert.ErrorIs(t, err, ErrUnresolvedDate)
		})
	}
}

func TestDateChain_FirstMatchWins(t *testing.T) {
	var calls []string
	strategy := func(name string, year int, ok bool) DateStrategy {
		return DateStrategy{Name: name, Parse: func(string) (int, bool) {
			calls = append(calls, name)
			return year, ok
		}}
	}

	chain := DateChain{
		strategy("first", 0, false),
		strategy("second", 1999, true),
		strategy("third", 2001, true),
	}

	year, name, err := chain.resolve("anything")
	require.NoError(t, err)
	assert.Equal(t, 1999, year)
	assert.Equal(t, "second", name)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDateChain_Appendable(t *testing.T) {
	isoYear := DateStrategy{Name: "iso-year", Parse: func(s string) (int, bool) {
		if s == "2010" {
			return 2010, true
		}
		return 0, false
	}}
	chain := append(DateChain{}, DefaultDateChain...)
	chain = append(chain, isoYear)

	year, err := chain.Resolve("2010")
	require.NoError(t, err)
	assert.Equal(t, 2010, year)

	year, err = chain.Resolve("3/14/05")
	require.NoError(t, err)
	assert.Equal(t, 2005, year)
}
