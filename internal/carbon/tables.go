package carbon

// Tables holds the default per-mode, per-type and per-category coefficients
// used when the factor store has no matching record. They are passed into the
// Calculator as configuration so tests can substitute or audit them
// independently of the lookup-miss control flow.
type Tables struct {
	// Transport maps transportation mode to kg CO2e per km per kg.
	Transport map[string]float64

	// Packaging maps packaging type to kg CO2e per kg of packaging.
	Packaging map[string]float64

	// Conventional maps product category to the per-kg baseline multiplier
	// for an equivalent non-eco product.
	Conventional map[string]float64
}

// DefaultTables returns the standard coefficient tables.
//
// Transport values follow EPA/IMO/ICAO freight guidance, packaging values
// Ecoinvent v3.8, and the conventional multipliers published category
// averages for non-eco products.
func DefaultTables() Tables {
	return Tables{
		Transport: map[string]float64{
			"truck_local":         0.000089,
			"truck_long_distance": 0.000062,
			"ship_freight":        0.000011,
			"air_freight":         0.000602,
			"electric_vehicle":    0.000025,
			"rail_freight":        0.000022,
		},
		Packaging: map[string]float64{
			"biodegradable_packaging": 0.3,
			"recycled_cardboard":      0.5,
			"virgin_plastic":          6.0,
			"recycled_plastic":        2.0,
			"paper":                   1.2,
			"no_packaging":            0.0,
		},
		Conventional: map[string]float64{
			"Clothing":               12.0,
			"Electronics":            20.0,
			"Food":                   8.0,
			"Home & Garden":          10.0,
			"Beauty & Personal Care": 7.0,
			"Sports & Outdoors":      11.0,
			"Books & Stationery":     5.0,
		},
	}
}

// TransportFactor returns the per-km-per-kg factor for the given mode, or
// DefaultTransportFactor if the mode is not listed.
func (t Tables) TransportFactor(mode string) float64 {
	if f, ok := t.Transport[mode]; ok {
		return f
	}
	return DefaultTransportFactor
}

// PackagingFactor returns the per-kg factor for the given packaging type, or
// DefaultPackagingFactor if the type is not listed.
func (t Tables) PackagingFactor(packagingType string) float64 {
	if f, ok := t.Packaging[packagingType]; ok {
		return f
	}
	return DefaultPackagingFactor
}

// ConventionalMultiplier returns the per-kg baseline multiplier for the given
// product category, or DefaultConventionalMultiplier if the category is not
// listed.
func (t Tables) ConventionalMultiplier(category string) float64 {
	if m, ok := t.Conventional[category]; ok {
		return m
	}
	return DefaultConventionalMultiplier
}
