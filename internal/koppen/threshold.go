package koppen

// Seasonal concentration above this share of annual precipitation counts as
// winter-wet or summer-wet for the aridity threshold.
const seasonalShare = 0.7

// PrecipThreshold computes the aridity precipitation threshold in mm.
//
// A climate whose annual precipitation falls below this value is arid
// (Group B). Summer-concentrated rainfall needs more total rain to escape
// aridity than winter-concentrated rainfall, because evaporative demand is
// highest when the rain arrives in the warm season. First match wins:
//
//	winter > 70% of annual  →  20·TempMean
//	summer > 70% of annual  →  20·TempMean + 280
//	mixed                   →  20·TempMean + 140
func PrecipThreshold(s Stats) float64 {
	switch {
	case s.PrecipWinterSum() > seasonalShare*s.PrecipSum:
		return 20 * s.TempMean
	case s.PrecipSummerSum() > seasonalShare*s.PrecipSum:
		return 20*s.TempMean + 280
	default:
		return 20*s.TempMean + 140
	}
}
