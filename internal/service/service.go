// Package service orchestrates footprint calculations: it runs the
// calculator, derives the summary fields, persists the record and shapes API
// responses.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecobazaarx/carbon-engine/internal/carbon"
	"github.com/ecobazaarx/carbon-engine/internal/factors"
	"github.com/ecobazaarx/carbon-engine/internal/metrics"
	"github.com/ecobazaarx/carbon-engine/internal/storage"
)

// ErrInvalidRequest is returned when a calculation request is missing the
// fields the engine cannot default.
var ErrInvalidRequest = errors.New("invalid calculation request")

// Service runs calculations end to end against a factor store and a record
// store. Safe for concurrent use.
type Service struct {
	calc    *carbon.Calculator
	records storage.RecordStore
	factors storage.FactorStore
	logger  zerolog.Logger
}

// New creates a Service. The calculator reads reference data from the same
// factor store that seeding writes to.
func New(records storage.RecordStore, factorStore storage.FactorStore, logger zerolog.Logger) *Service {
	return &Service{
		calc:    carbon.NewCalculator(factorStore, carbon.DefaultTables(), logger),
		records: records,
		factors: factorStore,
		logger:  logger,
	}
}

// Calculator exposes the service's calculator for callers that need raw
// component math without persistence.
func (s *Service) Calculator() *carbon.Calculator {
	return s.calc
}

// Calculate computes the footprint for the request, persists the derived
// record and returns the API response. The record becomes visible to readers
// only after every derived field is populated.
func (s *Service) Calculate(ctx context.Context, req carbon.FootprintRequest) (FootprintResponse, error) {
	if req.ProductName == "" {
		return FootprintResponse{}, ErrInvalidRequest
	}

	start := time.Now()

	rec, err := s.calc.Compute(ctx, req)
	if err != nil {
		return FootprintResponse{}, err
	}
	carbon.Derive(&rec)
	rec.CalculatedAt = time.Now().UTC()

	saved, err := s.records.CreateRecord(ctx, rec)
	if err != nil {
		return FootprintResponse{}, err
	}

	metrics.RecordCalculation(saved.EcoRating, time.Since(start))
	s.logger.Info().
		Str("record_id", saved.ID).
		Str("product", saved.ProductName).
		Str("eco_rating", saved.EcoRating).
		Float64("total_kg_co2e", saved.TotalFootprint).
		Msg("calculated carbon footprint")

	return BuildResponse(saved), nil
}

// UserHistory returns the user's calculations as responses, most recent
// first.
func (s *Service) UserHistory(ctx context.Context, userID string) ([]FootprintResponse, error) {
	records, err := s.records.ListRecordsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]FootprintResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, BuildResponse(rec))
	}
	return responses, nil
}

// GetRecord returns a single calculation by record ID.
func (s *Service) GetRecord(ctx context.Context, id string) (FootprintResponse, error) {
	rec, err := s.records.GetRecord(ctx, id)
	if err != nil {
		return FootprintResponse{}, err
	}
	return BuildResponse(rec), nil
}

// SeedDefaultFactors loads the embedded factor catalog into the factor store.
// Existing rows win; re-running is a no-op, so concurrent seeders cannot
// produce duplicates. Returns the number of factors offered.
func (s *Service) SeedDefaultFactors(ctx context.Context) (int, error) {
	catalog, err := factors.DefaultCatalog()
	if err != nil {
		return 0, err
	}

	for _, f := range catalog {
		if err := s.factors.UpsertFactor(ctx, f); err != nil {
			return 0, err
		}
	}

	metrics.RecordFactorsSeeded(len(catalog))
	s.logger.Info().
		Int("count", len(catalog)).
		Str("catalog_version", factors.CatalogVersion()).
		Msg("seeded emission factor catalog")
	return len(catalog), nil
}
