package carbon

// ratingBand maps a minimum savings percentage to a letter grade. Bands are
// evaluated top-down; the first matching band wins, so boundary values map to
// the higher grade.
type ratingBand struct {
	minSavingsPct float64
	grade         string
}

var ratingBands = []ratingBand{
	{70, "A+"},
	{50, "A"},
	{30, "B+"},
	{15, "B"},
	{0, "C"},
	{-20, "D"},
}

// RatingFor classifies a savings percentage into a letter grade, A+ through
// F. The function is deterministic and monotonic in the percentage.
func RatingFor(savingsPct float64) string {
	for _, band := range ratingBands {
		if savingsPct >= band.minSavingsPct {
			return band.grade
		}
	}
	return "F"
}

// Derive recomputes every derived field of the record from its five emission
// components and the conventional baseline:
//
//	total      = sum of the five components
//	savings    = conventional - total   (0 when the baseline is <= 0)
//	savingsPct = savings / conventional × 100  (0 when the baseline is <= 0)
//	ecoRating  = letter grade from the savings percentage bands
//	equivalents = fixed linear multiples of total
//
// Derive must be applied after any change to a component and before the
// record is persisted; stored records are never recomputed on save.
func Derive(rec *FootprintRecord) {
	rec.TotalFootprint = rec.MaterialEmissions +
		rec.ManufacturingEmissions +
		rec.TransportationEmissions +
		rec.PackagingEmissions +
		rec.EndOfLifeEmissions

	if rec.ConventionalFootprint > 0 {
		rec.CarbonSavings = rec.ConventionalFootprint - rec.TotalFootprint
		rec.SavingsPercentage = rec.CarbonSavings / rec.ConventionalFootprint * 100
	} else {
		// No baseline means no savings data; report zero rather than
		// dividing by zero.
		rec.CarbonSavings = 0
		rec.SavingsPercentage = 0
	}

	rec.EcoRating = RatingFor(rec.SavingsPercentage)

	rec.TreesEquivalent = rec.TotalFootprint * TreesPerKgCO2
	rec.CarKmEquivalent = rec.TotalFootprint * CarKmPerKgCO2
	rec.ElectricityKWhEquivalent = rec.TotalFootprint * KWhPerKgCO2
	rec.PlasticBottlesEquivalent = rec.TotalFootprint * BottlesPerKgCO2
}

// RatingDescription returns the user-facing explanation for a letter grade.
func RatingDescription(rating string) string {
	switch rating {
	case "A+":
		return "Excellent! This product saves 70%+ carbon compared to conventional alternatives."
	case "A":
		return "Great! This product saves 50-70% carbon compared to conventional alternatives."
	case "B+":
		return "Good! This product saves 30-50% carbon compared to conventional alternatives."
	case "B":
		return "Fair! This product saves 15-30% carbon compared to conventional alternatives."
	case "C":
		return "Average. This product has similar carbon impact to conventional alternatives."
	case "D":
		return "Below Average. This product has 0-20% higher carbon emissions."
	case "F":
		return "Poor. This product has 20%+ higher carbon emissions than alternatives."
	default:
		return "Rating not available."
	}
}
