// Package storage defines the persistence interfaces for footprint records
// and emission-factor reference data, plus a thread-safe in-memory
// implementation. The production implementation lives in the postgres
// subpackage.
package storage

import (
	"context"
	"errors"

	"github.com/ecobazaarx/carbon-engine/internal/carbon"
	"github.com/ecobazaarx/carbon-engine/internal/factors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// RecordStore persists calculated footprint records. Records are written once
// fully derived and never updated; readers may run concurrently with writers.
type RecordStore interface {
	// CreateRecord persists a fully-derived record atomically and returns
	// it with its identity populated.
	CreateRecord(ctx context.Context, rec carbon.FootprintRecord) (carbon.FootprintRecord, error)

	// GetRecord returns the record with the given ID, or ErrNotFound.
	GetRecord(ctx context.Context, id string) (carbon.FootprintRecord, error)

	// ListRecordsByUser returns the user's records, most recent first.
	ListRecordsByUser(ctx context.Context, userID string) ([]carbon.FootprintRecord, error)

	// ListRecordsByOrder returns the records linked to an order.
	ListRecordsByOrder(ctx context.Context, orderID string) ([]carbon.FootprintRecord, error)

	// ListRecordsByProduct returns a product's records, most recent first.
	ListRecordsByProduct(ctx context.Context, productID string) ([]carbon.FootprintRecord, error)

	// ListRecordsByCategory returns all records in a product category.
	ListRecordsByCategory(ctx context.Context, category string) ([]carbon.FootprintRecord, error)

	// ListRecords returns every stored record.
	ListRecords(ctx context.Context) ([]carbon.FootprintRecord, error)
}

// FactorStore persists emission-factor reference data. The read methods match
// carbon.FactorSource, so any FactorStore can back a Calculator directly.
type FactorStore interface {
	carbon.FactorSource

	// UpsertFactor inserts the factor or leaves an existing row with the
	// same (category, subcategory, materialKey) untouched. Safe to call
	// concurrently; repeated seeding is a no-op.
	UpsertFactor(ctx context.Context, f factors.Factor) error

	// ListAllFactors returns every stored factor.
	ListAllFactors(ctx context.Context) ([]factors.Factor, error)
}
