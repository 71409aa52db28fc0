package carbon

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobazaarx/carbon-engine/internal/factors"
)

// catalogSource serves the embedded default catalog from memory, standing in
// for a factor store.
type catalogSource struct {
	byKey map[string]factors.Factor
}

func newCatalogSource(t *testing.T) *catalogSource {
	t.Helper()
	catalog, err := factors.DefaultCatalog()
	require.NoError(t, err)

	s := &catalogSource{byKey: make(map[string]factors.Factor, len(catalog))}
	for _, f := range catalog {
		s.byKey[f.Key()] = f
	}
	return s
}

func (s *catalogSource) FindFactor(_ context.Context, category, subcategory, materialKey string) (*factors.Factor, error) {
	if f, ok := s.byKey[category+"/"+subcategory+"/"+materialKey]; ok {
		return &f, nil
	}
	return nil, nil
}

func (s *catalogSource) FindMaterialFactor(_ context.Context, materialKey string) (*factors.Factor, error) {
	for _, f := range s.byKey {
		if f.Category == factors.CategoryMaterial && f.MaterialKey == materialKey {
			match := f
			return &match, nil
		}
	}
	return nil, nil
}

func (s *catalogSource) ListFactors(_ context.Context, category, subcategory string) ([]factors.Factor, error) {
	var out []factors.Factor
	for _, f := range s.byKey {
		if f.Category == category && f.Subcategory == subcategory {
			out = append(out, f)
		}
	}
	return out, nil
}

// failingSource simulates a broken factor store.
type failingSource struct{}

var errStoreDown = errors.New("factor store unavailable")

func (failingSource) FindFactor(context.Context, string, string, string) (*factors.Factor, error) {
	return nil, errStoreDown
}

func (failingSource) FindMaterialFactor(context.Context, string) (*factors.Factor, error) {
	return nil, errStoreDown
}

func (failingSource) ListFactors(context.Context, string, string) ([]factors.Factor, error) {
	return nil, errStoreDown
}

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	return NewCalculator(newCatalogSource(t), DefaultTables(), zerolog.Nop())
}

func TestCalculator_MaterialEmissions(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		material   string
		weight     float64
		isRecycled bool
		want       float64
	}{
		{
			name:     "organic cotton 1kg",
			material: "organic_cotton",
			weight:   1,
			want:     3.8,
		},
		{
			name:     "bamboo sequesters carbon",
			material: "bamboo",
			weight:   2,
			// 2 × 1.2 + 2 × (-0.5)
			want: 1.4,
		},
		{
			name:       "recycling benefit never drives below zero",
			material:   "recycled_plastic",
			weight:     1,
			isRecycled: true,
			// 2.1 - 4.0 clamps to 0
			want: 0,
		},
		{
			name:     "unknown material falls back to default",
			material: "unobtainium",
			weight:   3,
			want:     3 * DefaultMaterialFactor,
		},
		{
			name:     "zero weight contributes zero",
			material: "organic_cotton",
			weight:   0,
			want:     0,
		},
		{
			name:     "negative weight contributes zero",
			material: "organic_cotton",
			weight:   -1,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.MaterialEmissions(ctx, tt.material, tt.weight, tt.isRecycled)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestCalculator_ManufacturingEmissions(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	tests := []struct {
		name              string
		category          string
		manufacturingType string
		weight            float64
		want              float64
	}{
		{
			name:              "clothing eco factor from catalog",
			category:          "Clothing",
			manufacturingType: "eco_friendly",
			weight:            1,
			want:              1.2,
		},
		{
			name:              "electronics conventional factor from catalog",
			category:          "Electronics",
			manufacturingType: "conventional",
			weight:            1,
			want:              8.5,
		},
		{
			name:              "type match is case-insensitive",
			category:          "Clothing",
			manufacturingType: "ECO_FRIENDLY",
			weight:            1,
			want:              1.2,
		},
		{
			name:              "unknown category eco default",
			category:          "Toys",
			manufacturingType: "eco_friendly",
			weight:            1,
			want:              DefaultEcoManufacturing,
		},
		{
			name:              "unknown category conventional default",
			category:          "Toys",
			manufacturingType: "conventional",
			weight:            1,
			want:              DefaultConventionalManufacturing,
		},
		{
			name:              "zero weight contributes zero",
			category:          "Clothing",
			manufacturingType: "eco_friendly",
			weight:            0,
			want:              0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.ManufacturingEmissions(ctx, tt.category, tt.manufacturingType, tt.weight)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculator_TransportationEmissions(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		mode     string
		distance float64
		weight   float64
		want     float64
	}{
		{
			name:     "local truck 100km 2kg",
			mode:     "truck_local",
			distance: 100,
			weight:   2,
			want:     0.0178,
		},
		{
			name:     "ship freight",
			mode:     "ship_freight",
			distance: 10000,
			weight:   1,
			want:     0.11,
		},
		{
			name:     "unknown mode uses default factor",
			mode:     "drone",
			distance: 100,
			weight:   1,
			want:     100 * DefaultTransportFactor,
		},
		{
			name:     "zero distance contributes zero",
			mode:     "truck_local",
			distance: 0,
			weight:   2,
			want:     0,
		},
		{
			name:     "zero weight contributes zero",
			mode:     "truck_local",
			distance: 100,
			weight:   0,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.TransportationEmissions(ctx, tt.mode, tt.distance, tt.weight)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculator_PackagingEmissions(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		packagingType string
		weight        float64
		want          float64
	}{
		{
			name:          "virgin plastic packaging",
			packagingType: "virgin_plastic",
			weight:        1,
			// (1 × 0.12) × 6.0
			want: 0.72,
		},
		{
			name:          "no packaging",
			packagingType: "no_packaging",
			weight:        5,
			want:          0,
		},
		{
			name:          "unknown type uses default factor",
			packagingType: "mystery_wrap",
			weight:        1,
			want:          PackagingWeightRatio * DefaultPackagingFactor,
		},
		{
			name:          "zero weight contributes zero",
			packagingType: "paper",
			weight:        0,
			want:          0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.PackagingEmissions(ctx, tt.packagingType, tt.weight)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculator_EndOfLifeEmissions(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		material   string
		weight     float64
		isRecycled bool
		want       float64
	}{
		{
			name:     "biodegradable material gets the reduction",
			material: "organic_cotton",
			weight:   1,
			// 95% biodegradation rate exceeds the threshold: 0.1 × 0.3
			want: 0.03,
		},
		{
			name:       "recycled gets the reduction regardless of rate",
			material:   "virgin_plastic",
			weight:     1,
			isRecycled: true,
			// biodegradation 10% but recycled: 0.8 × 0.3
			want: 0.24,
		},
		{
			name:     "low biodegradation landfill scenario",
			material: "virgin_plastic",
			weight:   2,
			want:     1.6,
		},
		{
			name:     "unknown material landfill fallback",
			material: "unobtainium",
			weight:   1,
			want:     DefaultEndOfLifeFactor,
		},
		{
			name:       "unknown material recycled fallback",
			material:   "unobtainium",
			weight:     1,
			isRecycled: true,
			want:       DefaultRecycledEndOfLifeFactor,
		},
		{
			name:     "zero weight contributes zero",
			material: "organic_cotton",
			weight:   0,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.EndOfLifeEmissions(ctx, tt.material, tt.weight, tt.isRecycled)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculator_ConventionalFootprint(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		category string
		weight   float64
		want     float64
	}{
		{"Electronics", 2, 40},
		{"Clothing", 1, 12},
		{"Books & Stationery", 2, 10},
		{"Mystery", 1, DefaultConventionalMultiplier},
		{"Electronics", 0, 0},
		{"Electronics", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.InDelta(t, tt.want, calc.ConventionalFootprint(tt.category, tt.weight), 1e-9)
		})
	}
}

func TestCalculator_Compute(t *testing.T) {
	calc := newTestCalculator(t)

	req := FootprintRequest{
		ProductID:              "prod-1",
		ProductName:            "Organic Cotton Tee",
		Category:               "Clothing",
		Weight:                 0.5,
		Material:               "organic_cotton",
		ManufacturingType:      "eco_friendly",
		TransportationType:     "truck_local",
		TransportationDistance: 200,
		PackagingType:          "recycled_cardboard",
		UserID:                 "user-1",
	}

	rec, err := calc.Compute(context.Background(), req)
	require.NoError(t, err)

	assert.InDelta(t, 1.9, rec.MaterialEmissions, 1e-9)
	assert.InDelta(t, 1.2, rec.ManufacturingEmissions, 1e-9)
	assert.InDelta(t, 200*0.5*0.000089, rec.TransportationEmissions, 1e-9)
	assert.InDelta(t, 0.5*PackagingWeightRatio*0.5, rec.PackagingEmissions, 1e-9)
	assert.InDelta(t, 0.5*0.1*RecycledEndOfLifeFactor, rec.EndOfLifeEmissions, 1e-9)
	assert.InDelta(t, 0.5*12.0, rec.ConventionalFootprint, 1e-9)

	// Descriptive fields are carried through for display.
	assert.Equal(t, req.ProductName, rec.ProductName)
	assert.Equal(t, req.UserID, rec.UserID)
	assert.Equal(t, req.Weight, rec.ProductWeight)

	// Derived fields are untouched until Derive runs.
	assert.Zero(t, rec.TotalFootprint)
	assert.Empty(t, rec.EcoRating)
}

func TestCalculator_StoreErrorPropagates(t *testing.T) {
	calc := NewCalculator(failingSource{}, DefaultTables(), zerolog.Nop())

	_, err := calc.Compute(context.Background(), FootprintRequest{
		ProductName: "anything",
		Weight:      1,
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unavailable"))
}
