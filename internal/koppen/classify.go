package koppen

// CodeUnknown marks a statistics combination no group rule claimed. It is a
// valid result, not an error: under correct derivation it should be
// unreachable for physically realizable inputs, so callers treat it as a
// diagnostic signal worth logging.
const CodeUnknown = "Unknown"

// Climate group letters.
const (
	GroupTropical    = "A"
	GroupArid        = "B"
	GroupTemperate   = "C"
	GroupContinental = "D"
	GroupPolar       = "E"
)

// groupRule pairs a group's membership condition with its sub-code builder.
type groupRule struct {
	group   string
	matches func(s Stats, threshold float64) bool
	code    func(s Stats, threshold float64) string
}

// groupRules is the decision tree as an ordered first-match-wins table.
// The B, A, C, D, E order is the Köppen tie-break policy: the conditions
// overlap (an arid tropical location satisfies both B and A), and aridity
// precedes tropical temperature, which precedes the mid-latitude and polar
// bands. Reordering this slice changes classifications.
var groupRules = []groupRule{
	{
		group:   GroupArid,
		matches: func(s Stats, threshold float64) bool { return s.PrecipSum < threshold },
		code:    aridCode,
	},
	{
		group:   GroupTropical,
		matches: func(s Stats, _ float64) bool { return s.TempMin >= 18 },
		code:    func(s Stats, _ float64) string { return tropicalCode(s) },
	},
	{
		group:   GroupTemperate,
		matches: func(s Stats, _ float64) bool { return s.TempMax > 10 && s.TempMin > 0 && s.TempMin < 18 },
		code:    func(s Stats, _ float64) string { return temperateCode(s) },
	},
	{
		group:   GroupContinental,
		matches: func(s Stats, _ float64) bool { return s.TempMax > 10 && s.TempMin <= 0 },
		code:    func(s Stats, _ float64) string { return continentalCode(s) },
	},
	{
		group:   GroupPolar,
		matches: func(s Stats, _ float64) bool { return s.TempMax <= 10 },
		code:    func(s Stats, _ float64) string { return polarCode(s) },
	},
}

// ClassifyStats walks the ordered rule table and returns the Köppen code for
// the derived statistics, or CodeUnknown if no group condition holds.
func ClassifyStats(s Stats, threshold float64) string {
	for _, rule := range groupRules {
		if rule.matches(s, threshold) {
			return rule.code(s, threshold)
		}
	}
	return CodeUnknown
}

// aridCode builds the Group B code: desert (W) below half the threshold,
// steppe (S) otherwise, then hot (h) or cold (k) by mean temperature.
func aridCode(s Stats, threshold float64) string {
	code := GroupArid
	if s.PrecipSum < threshold/2 {
		code += "W"
	} else {
		code += "S"
	}
	if s.TempMean >= 18 {
		code += "h"
	} else {
		code += "k"
	}
	return code
}

// tropicalCode builds the Group A code: rainforest (f) when every month is
// wet, else monsoon (m) or savanna (w) by the driest month against the
// annual total.
func tropicalCode(s Stats) string {
	switch {
	case s.PrecipMin >= 60:
		return GroupTropical + "f"
	case s.PrecipMin >= 100-s.PrecipSum/25:
		return GroupTropical + "m"
	default:
		return GroupTropical + "w"
	}
}

func temperateCode(s Stats) string {
	code := GroupTemperate + drySeasonLetter(s)
	switch {
	case s.TempMax >= 22:
		code += "a"
	case s.MonthsAbove10C >= 4:
		code += "b"
	default:
		code += "c"
	}
	return code
}

// continentalCode shares the dry-season rule with Group C but adds the "d"
// severity letter for winters below -38°C, checked after a and b.
func continentalCode(s Stats) string {
	code := GroupContinental + drySeasonLetter(s)
	switch {
	case s.TempMax >= 22:
		code += "a"
	case s.MonthsAbove10C >= 4:
		code += "b"
	case s.TempMin < -38:
		code += "d"
	default:
		code += "c"
	}
	return code
}

func polarCode(s Stats) string {
	if s.TempMax > 0 {
		return GroupPolar + "T" // tundra
	}
	return GroupPolar + "F" // ice cap
}

// drySeasonLetter distinguishes dry-summer (s), dry-winter (w), and fully
// humid (f) regimes for Groups C and D. Order matters: the dry-summer test
// runs first.
func drySeasonLetter(s Stats) string {
	switch {
	case s.PrecipSummerMin < 40 && s.PrecipSummerMin < s.PrecipWinterMax/3:
		return "s"
	case s.PrecipWinterMin < s.PrecipSummerMax/10:
		return "w"
	default:
		return "f"
	}
}
