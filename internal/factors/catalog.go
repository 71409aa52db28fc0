package factors

import (
	_ "embed"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"
)

// Default factor catalog distilled from published LCA reference data
// (IPCC 2021, Ecoinvent v3.8, EPA Guidelines, ISO 14040/14044).
//
//go:embed data/catalog.json
var rawCatalogJSON []byte

// catalogFile is the on-disk structure of the embedded catalog.
type catalogFile struct {
	Version string   `json:"version"`
	Factors []Factor `json:"factors"`
}

var (
	catalogOnce sync.Once
	catalog     catalogFile
	catalogErr  error
)

// DefaultCatalog returns the embedded emission-factor catalog. The catalog is
// parsed exactly once; subsequent calls return the cached slice. Callers must
// not mutate the returned factors.
func DefaultCatalog() ([]Factor, error) {
	catalogOnce.Do(func() {
		if err := json.Unmarshal(rawCatalogJSON, &catalog); err != nil {
			catalogErr = fmt.Errorf("failed to parse embedded factor catalog: %w", err)
			return
		}
		if len(catalog.Factors) == 0 {
			catalogErr = fmt.Errorf("embedded factor catalog is empty")
		}
	})
	if catalogErr != nil {
		return nil, catalogErr
	}
	return catalog.Factors, nil
}

// CatalogVersion returns the version label of the embedded catalog, or an
// empty string if the catalog cannot be parsed.
func CatalogVersion() string {
	if _, err := DefaultCatalog(); err != nil {
		return ""
	}
	return catalog.Version
}
