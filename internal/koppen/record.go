// Package koppen assigns Köppen–Geiger climate codes to locations from
// twelve months of precipitation and temperature observations.
//
// The classifier is a pure, deterministic decision tree: monthly arrays are
// reduced to annual and seasonal statistics, an aridity threshold is derived
// from them, and an ordered rule table maps the pair to a short code such as
// "Cfb" or "BWh". Group order (B, A, C, D, E) is a domain rule of the Köppen
// system, not an implementation convenience: the conditions overlap and
// aridity always takes precedence.
package koppen

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a monthly series does not contain exactly
// twelve values. Classification on malformed input is meaningless, so this is
// always surfaced to the caller.
var ErrInvalidInput = errors.New("koppen: invalid input")

// MonthsPerYear is the fixed length of every input series, indexed 0=January
// through 11=December.
const MonthsPerYear = 12

// MonthLabels are the abbreviated month names in input order.
var MonthLabels = [MonthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthlyRecord is one location's year of observations: precipitation in mm,
// temperature in °C, and the hemisphere the location sits in. Records are
// immutable once constructed; a new year of data means a new record.
type MonthlyRecord struct {
	Precip   []float64
	Temp     []float64
	Southern bool
}

// NewMonthlyRecord validates the series shapes and builds a record. Only the
// twelve-element invariant is checked; callers are trusted to supply
// physically sane values.
func NewMonthlyRecord(precip, temp []float64, southern bool) (MonthlyRecord, error) {
	if len(precip) != MonthsPerYear {
		return MonthlyRecord{}, fmt.Errorf("%w: precipitation series has %d values, want %d", ErrInvalidInput, len(precip), MonthsPerYear)
	}
	if len(temp) != MonthsPerYear {
		return MonthlyRecord{}, fmt.Errorf("%w: temperature series has %d values, want %d", ErrInvalidInput, len(temp), MonthsPerYear)
	}
	return MonthlyRecord{Precip: precip, Temp: temp, Southern: southern}, nil
}

// Half-year month index sets. In the northern hemisphere April–September is
// summer and October–March is winter; the southern hemisphere swaps them.
var (
	aprToSep = []int{3, 4, 5, 6, 7, 8}
	octToMar = []int{9, 10, 11, 0, 1, 2}
)

// SeasonAssignment maps the summer and winter halves of the year to month
// indices for one hemisphere.
type SeasonAssignment struct {
	Summer []int
	Winter []int
}

// Seasons returns the hemisphere's season assignment. Pure lookup, no state.
func Seasons(southern bool) SeasonAssignment {
	if southern {
		return SeasonAssignment{Summer: octToMar, Winter: aprToSep}
	}
	return SeasonAssignment{Summer: aprToSep, Winter: octToMar}
}
