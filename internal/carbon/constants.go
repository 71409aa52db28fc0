// Package carbon computes life-cycle carbon footprints for marketplace
// products. The life cycle is modeled as five emission components (material,
// manufacturing, transportation, packaging, end-of-life) plus a conventional
// baseline used for savings comparison and eco-rating classification.
package carbon

const (
	// PackagingWeightRatio approximates packaging mass as a share of product
	// weight. Packaging is typically 10-15% of product weight.
	PackagingWeightRatio = 0.12

	// RecycledEndOfLifeFactor is applied to end-of-life emissions when the
	// product is recycled or the material is mostly biodegradable (a 70%
	// reduction over the landfill scenario).
	RecycledEndOfLifeFactor = 0.3

	// BiodegradableRateThreshold is the biodegradation rate (percent) above
	// which a material qualifies for the end-of-life reduction.
	BiodegradableRateThreshold = 50.0

	// TreesPerKgCO2 converts kg CO2e into tree-years: one tree absorbs
	// roughly 20 kg CO2 per year.
	TreesPerKgCO2 = 0.05

	// CarKmPerKgCO2 converts kg CO2e into car kilometers: an average car
	// emits roughly 0.22 kg CO2 per km.
	CarKmPerKgCO2 = 4.6

	// KWhPerKgCO2 converts kg CO2e into grid electricity: the grid average
	// is roughly 0.53 kg CO2 per kWh.
	KWhPerKgCO2 = 1.9

	// BottlesPerKgCO2 converts kg CO2e into single-use plastic bottles:
	// one bottle accounts for roughly 0.02 kg CO2.
	BottlesPerKgCO2 = 50.0
)

// Fallbacks applied when no emission factor is found for a lookup. Missing
// reference data is resolved through these documented defaults, never
// surfaced as an error.
const (
	// DefaultMaterialFactor is the per-kg material emission fallback.
	DefaultMaterialFactor = 5.0

	// DefaultEcoManufacturing and DefaultConventionalManufacturing are the
	// per-unit manufacturing fallbacks keyed off the manufacturing type.
	DefaultEcoManufacturing          = 1.5
	DefaultConventionalManufacturing = 3.5

	// DefaultTransportFactor is the per-km-per-kg freight fallback for
	// unrecognized transportation modes.
	DefaultTransportFactor = 0.00006

	// DefaultPackagingFactor is the per-kg fallback for unrecognized
	// packaging types.
	DefaultPackagingFactor = 1.5

	// DefaultEndOfLifeFactor and DefaultRecycledEndOfLifeFactor are the
	// per-kg disposal fallbacks (landfill vs recycled scenario).
	DefaultEndOfLifeFactor         = 0.5
	DefaultRecycledEndOfLifeFactor = 0.1

	// DefaultConventionalMultiplier is the per-kg baseline fallback for
	// product categories without a specific multiplier.
	DefaultConventionalMultiplier = 10.0
)

// EcoManufacturingKey is the manufacturing type treated as eco-friendly when
// no stored factor matches. Compared case-insensitively.
const EcoManufacturingKey = "eco_friendly"
