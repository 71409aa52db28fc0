package carbon

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ecobazaarx/carbon-engine/internal/factors"
)

// FactorSource supplies emission-factor reference data to the calculator.
// Lookups that find nothing return (nil, nil): missing reference data is
// resolved through the calculator's default tables, never as an error. A
// non-nil error means the underlying store failed and the calculation must
// be aborted.
type FactorSource interface {
	// FindFactor returns the factor for the exact natural key, or nil.
	FindFactor(ctx context.Context, category, subcategory, materialKey string) (*factors.Factor, error)

	// FindMaterialFactor returns the MATERIAL factor with the given key,
	// searching across material subcategories, or nil.
	FindMaterialFactor(ctx context.Context, materialKey string) (*factors.Factor, error)

	// ListFactors returns all factors under (category, subcategory).
	ListFactors(ctx context.Context, category, subcategory string) ([]factors.Factor, error)
}

// Calculator computes the five emission components and the conventional
// baseline for a footprint request. It is stateless and safe for concurrent
// use; all methods are free of side effects.
type Calculator struct {
	source FactorSource
	tables Tables
	logger zerolog.Logger
}

// NewCalculator creates a Calculator backed by the given factor source and
// coefficient tables.
func NewCalculator(source FactorSource, tables Tables, logger zerolog.Logger) *Calculator {
	return &Calculator{
		source: source,
		tables: tables,
		logger: logger,
	}
}

// Compute calculates all components for the request and assembles an
// underived FootprintRecord carrying the request's descriptive fields.
// Callers must apply Derive before the record is considered valid.
func (c *Calculator) Compute(ctx context.Context, req FootprintRequest) (FootprintRecord, error) {
	rec := FootprintRecord{
		UserID:                 req.UserID,
		OrderID:                req.OrderID,
		ProductID:              req.ProductID,
		ProductName:            req.ProductName,
		Category:               req.Category,
		MaterialType:           req.Material,
		ManufacturingType:      req.ManufacturingType,
		TransportationType:     req.TransportationType,
		TransportationDistance: req.TransportationDistance,
		PackagingType:          req.PackagingType,
		ProductWeight:          req.Weight,
		IsRecycled:             req.IsRecycled,
		IsOrganic:              req.IsOrganic,
		ProductLifespan:        req.ProductLifespan,
		SourceCountry:          req.SourceCountry,
		Notes:                  req.Notes,
	}

	var err error
	if rec.MaterialEmissions, err = c.MaterialEmissions(ctx, req.Material, req.Weight, req.IsRecycled); err != nil {
		return FootprintRecord{}, err
	}
	if rec.ManufacturingEmissions, err = c.ManufacturingEmissions(ctx, req.Category, req.ManufacturingType, req.Weight); err != nil {
		return FootprintRecord{}, err
	}
	if rec.TransportationEmissions, err = c.TransportationEmissions(ctx, req.TransportationType, req.TransportationDistance, req.Weight); err != nil {
		return FootprintRecord{}, err
	}
	if rec.PackagingEmissions, err = c.PackagingEmissions(ctx, req.PackagingType, req.Weight); err != nil {
		return FootprintRecord{}, err
	}
	if rec.EndOfLifeEmissions, err = c.EndOfLifeEmissions(ctx, req.Material, req.Weight, req.IsRecycled); err != nil {
		return FootprintRecord{}, err
	}
	rec.ConventionalFootprint = c.ConventionalFootprint(req.Category, req.Weight)

	return rec, nil
}

// MaterialEmissions computes the material component in kg CO2e:
// weight × factor, minus the recycling benefit when the product is recycled,
// plus carbon sequestration (negative for absorbing materials). The result
// is clamped to >= 0. Falls back to weight × DefaultMaterialFactor when the
// material is unknown.
func (c *Calculator) MaterialEmissions(ctx context.Context, materialKey string, weight float64, isRecycled bool) (float64, error) {
	if weight <= 0 {
		return 0, nil
	}

	factor, err := c.source.FindMaterialFactor(ctx, materialKey)
	if err != nil {
		return 0, err
	}
	if factor == nil {
		c.logger.Warn().
			Str("material", materialKey).
			Msg("material emission factor not found, using default")
		return weight * DefaultMaterialFactor, nil
	}

	emissions := weight * factor.Value
	if isRecycled {
		emissions -= weight * factor.RecyclingBenefit
	}
	emissions += weight * factor.CarbonSequestration

	if emissions < 0 {
		return 0, nil
	}
	return emissions, nil
}

// ManufacturingEmissions computes the per-unit manufacturing component. The
// factor is matched by manufacturing type within the category's manufacturing
// subcategory; unmatched types fall back to the eco/conventional defaults.
func (c *Calculator) ManufacturingEmissions(ctx context.Context, category, manufacturingType string, weight float64) (float64, error) {
	if weight <= 0 {
		return 0, nil
	}

	subcategory := "general"
	if category != "" {
		subcategory = strings.ToLower(category)
	}

	matched, err := c.source.ListFactors(ctx, factors.CategoryManufacturing, subcategory)
	if err != nil {
		return 0, err
	}
	for _, factor := range matched {
		if strings.EqualFold(factor.MaterialKey, manufacturingType) {
			return factor.Value, nil
		}
	}

	if strings.EqualFold(manufacturingType, EcoManufacturingKey) {
		return DefaultEcoManufacturing, nil
	}
	return DefaultConventionalManufacturing, nil
}

// TransportationEmissions computes distance × weight × factor, where the
// factor is kg CO2e per km per kg for the freight mode. Zero unless both
// distance and weight are positive.
func (c *Calculator) TransportationEmissions(ctx context.Context, mode string, distance, weight float64) (float64, error) {
	if distance <= 0 || weight <= 0 {
		return 0, nil
	}

	factor, err := c.source.FindFactor(ctx, factors.CategoryTransportation, factors.SubcategoryFreight, mode)
	if err != nil {
		return 0, err
	}
	if factor != nil {
		return distance * weight * factor.Value, nil
	}

	return distance * weight * c.tables.TransportFactor(mode), nil
}

// PackagingEmissions computes (weight × PackagingWeightRatio) × factor,
// approximating packaging mass as a fixed share of product weight.
func (c *Calculator) PackagingEmissions(ctx context.Context, packagingType string, weight float64) (float64, error) {
	if weight <= 0 {
		return 0, nil
	}

	factor, err := c.source.FindFactor(ctx, factors.CategoryPackaging, factors.SubcategoryGeneral, packagingType)
	if err != nil {
		return 0, err
	}
	if factor != nil {
		return weight * PackagingWeightRatio * factor.Value, nil
	}

	return weight * PackagingWeightRatio * c.tables.PackagingFactor(packagingType), nil
}

// EndOfLifeEmissions computes weight × disposal factor. Recycled products and
// materials biodegrading above BiodegradableRateThreshold get the 70%
// reduction. Falls back to the landfill or recycled scenario default when the
// material has no disposal factor.
func (c *Calculator) EndOfLifeEmissions(ctx context.Context, materialKey string, weight float64, isRecycled bool) (float64, error) {
	if weight <= 0 {
		return 0, nil
	}

	factor, err := c.source.FindFactor(ctx, factors.CategoryEndOfLife, factors.SubcategoryDisposal, materialKey)
	if err != nil {
		return 0, err
	}
	if factor != nil {
		emissions := weight * factor.Value
		if isRecycled || factor.BiodegradationRate > BiodegradableRateThreshold {
			emissions *= RecycledEndOfLifeFactor
		}
		return emissions, nil
	}

	if isRecycled {
		return weight * DefaultRecycledEndOfLifeFactor, nil
	}
	return weight * DefaultEndOfLifeFactor, nil
}

// ConventionalFootprint estimates the baseline footprint of an equivalent
// non-eco product: weight × category multiplier. Used only for comparison.
func (c *Calculator) ConventionalFootprint(category string, weight float64) float64 {
	if weight <= 0 {
		return 0
	}
	return weight * c.tables.ConventionalMultiplier(category)
}
