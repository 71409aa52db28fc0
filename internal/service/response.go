package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/ecobazaarx/carbon-engine/internal/carbon"
)

// Methodology strings reported with every calculation response.
const (
	CalculationMethod = "ISO 14040/14044 LCA + IPCC Guidelines"
	DataSource        = "Ecoinvent v3.8, EPA, IPCC 2021"
)

// FootprintResponse is the API representation of a calculated footprint.
type FootprintResponse struct {
	RecordID    string `json:"recordId"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`

	MaterialEmissions       float64 `json:"materialEmissions"`
	ManufacturingEmissions  float64 `json:"manufacturingEmissions"`
	TransportationEmissions float64 `json:"transportationEmissions"`
	PackagingEmissions      float64 `json:"packagingEmissions"`
	EndOfLifeEmissions      float64 `json:"endOfLifeEmissions"`

	TotalCarbonFootprint  float64 `json:"totalCarbonFootprint"`
	ConventionalFootprint float64 `json:"conventionalFootprint"`
	CarbonSavings         float64 `json:"carbonSavings"`
	SavingsPercentage     float64 `json:"savingsPercentage"`
	EcoRating             string  `json:"ecoRating"`
	RatingDescription     string  `json:"ratingDescription"`

	EquivalentImpacts map[string]float64 `json:"equivalentImpacts"`

	ProductWeight          float64 `json:"productWeight"`
	MaterialType           string  `json:"materialType,omitempty"`
	ManufacturingType      string  `json:"manufacturingType,omitempty"`
	TransportationType     string  `json:"transportationType,omitempty"`
	TransportationDistance float64 `json:"transportationDistance,omitempty"`
	PackagingType          string  `json:"packagingType,omitempty"`
	IsRecycled             bool    `json:"isRecycled"`
	IsOrganic              bool    `json:"isOrganic"`
	ProductLifespan        float64 `json:"productLifespan,omitempty"`

	SustainabilityTips     string `json:"sustainabilityTips"`
	ImprovementSuggestions string `json:"improvementSuggestions"`

	CalculatedAt      time.Time `json:"calculatedAt"`
	CalculationMethod string    `json:"calculationMethod"`
	DataSource        string    `json:"dataSource"`
}

// BuildResponse converts a derived record into its API representation,
// attaching the rating description, equivalency map and advice strings.
func BuildResponse(rec carbon.FootprintRecord) FootprintResponse {
	return FootprintResponse{
		RecordID:    rec.ID,
		ProductName: rec.ProductName,
		Category:    rec.Category,

		MaterialEmissions:       rec.MaterialEmissions,
		ManufacturingEmissions:  rec.ManufacturingEmissions,
		TransportationEmissions: rec.TransportationEmissions,
		PackagingEmissions:      rec.PackagingEmissions,
		EndOfLifeEmissions:      rec.EndOfLifeEmissions,

		TotalCarbonFootprint:  rec.TotalFootprint,
		ConventionalFootprint: rec.ConventionalFootprint,
		CarbonSavings:         rec.CarbonSavings,
		SavingsPercentage:     rec.SavingsPercentage,
		EcoRating:             rec.EcoRating,
		RatingDescription:     carbon.RatingDescription(rec.EcoRating),

		EquivalentImpacts: map[string]float64{
			"trees_planted":           rec.TreesEquivalent,
			"car_km_avoided":          rec.CarKmEquivalent,
			"electricity_kwh_saved":   rec.ElectricityKWhEquivalent,
			"plastic_bottles_avoided": rec.PlasticBottlesEquivalent,
		},

		ProductWeight:          rec.ProductWeight,
		MaterialType:           rec.MaterialType,
		ManufacturingType:      rec.ManufacturingType,
		TransportationType:     rec.TransportationType,
		TransportationDistance: rec.TransportationDistance,
		PackagingType:          rec.PackagingType,
		IsRecycled:             rec.IsRecycled,
		IsOrganic:              rec.IsOrganic,
		ProductLifespan:        rec.ProductLifespan,

		SustainabilityTips:     sustainabilityTips(rec),
		ImprovementSuggestions: improvementSuggestions(rec),

		CalculatedAt:      rec.CalculatedAt,
		CalculationMethod: CalculationMethod,
		DataSource:        DataSource,
	}
}

func sustainabilityTips(rec carbon.FootprintRecord) string {
	var tips []string

	if rec.IsRecycled {
		tips = append(tips, "Great choice! Recycled materials save significant carbon emissions.")
	}
	if rec.TransportationEmissions > 5.0 {
		tips = append(tips, "Consider buying local products to reduce transportation emissions.")
	}
	if strings.EqualFold(rec.PackagingType, "biodegradable_packaging") {
		tips = append(tips, "Excellent! Biodegradable packaging reduces environmental impact.")
	}
	if rec.CarbonSavings > 0 {
		tips = append(tips, fmt.Sprintf("You saved %.2f kg CO2e compared to conventional alternatives!", rec.CarbonSavings))
	}

	if len(tips) == 0 {
		return "Keep making eco-friendly choices!"
	}
	return strings.Join(tips, " ")
}

func improvementSuggestions(rec carbon.FootprintRecord) string {
	var suggestions []string

	if !rec.IsRecycled {
		suggestions = append(suggestions, "Look for products made from recycled materials.")
	}
	if rec.TransportationEmissions > 3.0 {
		suggestions = append(suggestions, "Choose products with lower transportation distances.")
	}
	if !strings.EqualFold(rec.PackagingType, "biodegradable_packaging") {
		suggestions = append(suggestions, "Prefer products with biodegradable or minimal packaging.")
	}
	if rec.SavingsPercentage < 30 {
		suggestions = append(suggestions, "Try products with higher eco-ratings (A+ or A) for maximum impact.")
	}

	if len(suggestions) == 0 {
		return "You're doing great!"
	}
	return strings.Join(suggestions, " ")
}
