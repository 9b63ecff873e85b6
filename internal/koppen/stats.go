package koppen

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds the annual and seasonal summary statistics a classification is
// computed from. Derived once per record and never mutated.
type Stats struct {
	TempMean float64 `json:"temp_mean"` // mean annual temperature, °C
	TempMin  float64 `json:"temp_min"`  // coldest month, °C
	TempMax  float64 `json:"temp_max"`  // warmest month, °C

	PrecipSum float64 `json:"precip_sum"` // annual accumulated precipitation, mm
	PrecipMin float64 `json:"precip_min"` // driest month, mm

	MonthsAbove10C int `json:"months_above_10c"` // months with temperature strictly above 10°C

	// Seasonal precipitation sub-series, selected by hemisphere.
	PrecipSummer []float64 `json:"precip_summer"`
	PrecipWinter []float64 `json:"precip_winter"`

	PrecipSummerMin float64 `json:"precip_summer_min"`
	PrecipSummerMax float64 `json:"precip_summer_max"`
	PrecipWinterMin float64 `json:"precip_winter_min"`
	PrecipWinterMax float64 `json:"precip_winter_max"`
}

// PrecipSummerSum returns total summer precipitation in mm.
func (s Stats) PrecipSummerSum() float64 { return floats.Sum(s.PrecipSummer) }

// PrecipWinterSum returns total winter precipitation in mm.
func (s Stats) PrecipWinterSum() float64 { return floats.Sum(s.PrecipWinter) }

// DeriveStats reduces a record's monthly series to classification statistics.
// Pure function: no side effects, no I/O.
func DeriveStats(rec MonthlyRecord) (Stats, error) {
	if _, err := NewMonthlyRecord(rec.Precip, rec.Temp, rec.Southern); err != nil {
		return Stats{}, err
	}

	seasons := Seasons(rec.Southern)
	summer := selectMonths(rec.Precip, seasons.Summer)
	winter := selectMonths(rec.Precip, seasons.Winter)

	above10 := 0
	for _, t := range rec.Temp {
		if t > 10 {
			above10++
		}
	}

	return Stats{
		TempMean:        stat.Mean(rec.Temp, nil),
		TempMin:         floats.Min(rec.Temp),
		TempMax:         floats.Max(rec.Temp),
		PrecipSum:       floats.Sum(rec.Precip),
		PrecipMin:       floats.Min(rec.Precip),
		MonthsAbove10C:  above10,
		PrecipSummer:    summer,
		PrecipWinter:    winter,
		PrecipSummerMin: floats.Min(summer),
		PrecipSummerMax: floats.Max(summer),
		PrecipWinterMin: floats.Min(winter),
		PrecipWinterMax: floats.Max(winter),
	}, nil
}

func selectMonths(series []float64, indices []int) []float64 {
	out := make([]float64, 0, len(indices))
	for _, i := range indices {
		out = append(out, series[i])
	}
	return out
}
