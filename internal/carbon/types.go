package carbon

import "time"

// FootprintRequest describes a product whose carbon footprint should be
// calculated. All numeric fields are optional: a missing or non-positive
// weight or distance makes the affected components contribute zero rather
// than failing the request.
type FootprintRequest struct {
	// Product identity.
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`

	// Weight is the product weight in kg.
	Weight float64 `json:"weight"`

	// Material describes the dominant material, e.g. "organic_cotton".
	Material   string `json:"material"`
	IsRecycled bool   `json:"isRecycled"`
	IsOrganic  bool   `json:"isOrganic"`

	// ManufacturingType is e.g. "eco_friendly" or "conventional".
	ManufacturingType string `json:"manufacturingType"`

	// Transportation: mode (e.g. "truck_local", "ship_freight") and
	// distance in km.
	TransportationType     string  `json:"transportationType"`
	TransportationDistance float64 `json:"transportationDistance"`
	SourceCountry          string  `json:"sourceCountry"`

	// PackagingType is e.g. "biodegradable_packaging", "recycled_cardboard".
	PackagingType string `json:"packagingType"`

	// ProductLifespan is the expected lifespan in years.
	ProductLifespan float64 `json:"productLifespan"`

	// Optional linkage to the requesting user and order.
	UserID  string `json:"userId"`
	OrderID string `json:"orderId"`

	Notes string `json:"notes"`
}

// FootprintRecord is the persisted result of a footprint calculation.
//
// TotalFootprint, CarbonSavings, SavingsPercentage, EcoRating and the four
// equivalency metrics are always functions of the five components and the
// conventional baseline. Derive recomputes them; no code path may set them
// independently. Records are immutable once persisted.
type FootprintRecord struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	OrderID   string `json:"orderId,omitempty"`
	ProductID string `json:"productId,omitempty"`

	ProductName string `json:"productName"`
	Category    string `json:"category"`

	// Component breakdown, kg CO2e. Each component is >= 0.
	MaterialType            string  `json:"materialType,omitempty"`
	MaterialEmissions       float64 `json:"materialEmissions"`
	ManufacturingType       string  `json:"manufacturingType,omitempty"`
	ManufacturingEmissions  float64 `json:"manufacturingEmissions"`
	TransportationType      string  `json:"transportationType,omitempty"`
	TransportationDistance  float64 `json:"transportationDistance,omitempty"`
	TransportationEmissions float64 `json:"transportationEmissions"`
	PackagingType           string  `json:"packagingType,omitempty"`
	PackagingEmissions      float64 `json:"packagingEmissions"`
	EndOfLifeEmissions      float64 `json:"endOfLifeEmissions"`

	// Derived fields (see Derive).
	TotalFootprint        float64 `json:"totalCarbonFootprint"`
	ConventionalFootprint float64 `json:"conventionalFootprint"`
	CarbonSavings         float64 `json:"carbonSavings"`
	SavingsPercentage     float64 `json:"savingsPercentage"`
	EcoRating             string  `json:"ecoRating"`

	// Equivalency metrics, each a fixed linear multiple of TotalFootprint.
	TreesEquivalent          float64 `json:"treesEquivalent"`
	CarKmEquivalent          float64 `json:"carKmEquivalent"`
	ElectricityKWhEquivalent float64 `json:"electricityKwhEquivalent"`
	PlasticBottlesEquivalent float64 `json:"plasticBottlesEquivalent"`

	// Descriptive fields copied from the request for display.
	ProductWeight   float64 `json:"productWeight"`
	IsRecycled      bool    `json:"isRecycled"`
	IsOrganic       bool    `json:"isOrganic"`
	ProductLifespan float64 `json:"productLifespan,omitempty"`
	SourceCountry   string  `json:"sourceCountry,omitempty"`
	Notes           string  `json:"notes,omitempty"`

	CalculatedAt time.Time `json:"calculatedAt"`
}
