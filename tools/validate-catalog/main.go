// Package main provides a tool to validate the embedded emission factor
// catalog before it ships.
//
// The catalog at internal/factors/data/catalog.json is embedded at build
// time; a malformed entry would otherwise surface only when a calculation
// falls back to a default factor. The tool checks structural validity,
// natural-key uniqueness and value sanity.
//
// Usage:
//
//	go run ./tools/validate-catalog [--min-factors N]
//
// Flags:
//
//	--min-factors  Minimum number of factors expected in the catalog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ecobazaarx/carbon-engine/internal/factors"
)

// expectedCategories are the factor categories a complete catalog covers.
var expectedCategories = []string{
	factors.CategoryMaterial,
	factors.CategoryTransportation,
	factors.CategoryManufacturing,
	factors.CategoryPackaging,
	factors.CategoryEndOfLife,
}

func main() {
	minFactors := flag.Int("min-factors", 30, "Minimum number of factors expected in the catalog")
	flag.Parse()

	catalog, err := factors.DefaultCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Catalog version: %s\n", factors.CatalogVersion())
	fmt.Printf("Factors loaded:  %d\n", len(catalog))

	problems := validate(catalog, *minFactors)
	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "Error: %s\n", p)
		}
		os.Exit(1)
	}

	fmt.Println("Catalog is valid.")
}

func validate(catalog []factors.Factor, minFactors int) []string {
	var problems []string

	if len(catalog) < minFactors {
		problems = append(problems, fmt.Sprintf("expected at least %d factors, got %d", minFactors, len(catalog)))
	}

	seen := make(map[string]bool, len(catalog))
	byCategory := make(map[string]int)
	for _, f := range catalog {
		key := f.Key()
		if f.Category == "" || f.Subcategory == "" || f.MaterialKey == "" {
			problems = append(problems, fmt.Sprintf("factor %q has an incomplete natural key", key))
		}
		if seen[key] {
			problems = append(problems, fmt.Sprintf("duplicate natural key %q", key))
		}
		seen[key] = true
		byCategory[f.Category]++

		if f.Name == "" {
			problems = append(problems, fmt.Sprintf("factor %q has no display name", key))
		}
		if f.Unit == "" {
			problems = append(problems, fmt.Sprintf("factor %q has no unit", key))
		}
		if f.Value < 0 {
			problems = append(problems, fmt.Sprintf("factor %q has a negative emission value %g", key, f.Value))
		}
		// Sequestration is the only field allowed to go negative.
		if f.RecyclingBenefit < 0 {
			problems = append(problems, fmt.Sprintf("factor %q has a negative recycling benefit", key))
		}
		if f.BiodegradationRate < 0 || f.BiodegradationRate > 100 {
			problems = append(problems, fmt.Sprintf("factor %q has biodegradation rate outside 0..100", key))
		}
	}

	for _, category := range expectedCategories {
		if byCategory[category] == 0 {
			problems = append(problems, fmt.Sprintf("category %s has no factors", category))
		}
	}

	return problems
}
