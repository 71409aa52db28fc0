// Package factors provides emission-factor reference data for life-cycle
// carbon footprint calculations. Factors convert physical quantities
// (kg, km·kg) into kg CO2e and carry provenance metadata.
package factors

// Life-cycle categories for emission factors. Each factor belongs to exactly
// one category; the (Category, Subcategory, MaterialKey) triple is the natural
// key for lookups and seeding.
const (
	CategoryMaterial       = "MATERIAL"
	CategoryTransportation = "TRANSPORTATION"
	CategoryManufacturing  = "MANUFACTURING"
	CategoryPackaging      = "PACKAGING"
	CategoryEndOfLife      = "END_OF_LIFE"
)

// Subcategories used by the default catalog.
const (
	SubcategoryFreight  = "freight"
	SubcategoryGeneral  = "general"
	SubcategoryDisposal = "disposal"
)

// Factor is a single emission-factor reference record.
//
// Value is unit-dependent: kg CO2e per kg for materials and packaging,
// kg CO2e per km per kg for freight, kg CO2e per unit for manufacturing.
// CarbonSequestration is negative for materials that absorb CO2 during
// growth (bamboo, hemp, cork). RecyclingBenefit is the emissions avoided
// per kg when the material is recycled. A zero value in any of the optional
// fields means "no effect", so callers never need a presence check.
type Factor struct {
	ID                  int64   `json:"id,omitempty"`
	Category            string  `json:"category"`
	Subcategory         string  `json:"subcategory"`
	MaterialKey         string  `json:"materialKey"`
	Name                string  `json:"name"`
	Unit                string  `json:"unit"`
	Value               float64 `json:"value"`
	CarbonSequestration float64 `json:"carbonSequestration,omitempty"`
	RecyclingBenefit    float64 `json:"recyclingBenefit,omitempty"`
	BiodegradationRate  float64 `json:"biodegradationRate,omitempty"`
	Confidence          string  `json:"confidence,omitempty"`
	DataSource          string  `json:"dataSource,omitempty"`
	Description         string  `json:"description,omitempty"`
}

// Key returns the natural key of the factor as a single string, usable as a
// map key in in-memory stores.
func (f Factor) Key() string {
	return f.Category + "/" + f.Subcategory + "/" + f.MaterialKey
}
