package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ecobazaarx/carbon-engine/internal/carbon"
	"github.com/ecobazaarx/carbon-engine/internal/factors"
)

// Memory is a thread-safe in-memory implementation of RecordStore and
// FactorStore. It is intended for tests and single-node prototyping and
// deliberately keeps the implementation simple.
type Memory struct {
	mu           sync.RWMutex
	nextFactorID int64
	records      map[string]carbon.FootprintRecord
	factorsByKey map[string]factors.Factor
}

var (
	_ RecordStore = (*Memory)(nil)
	_ FactorStore = (*Memory)(nil)
)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextFactorID: 1,
		records:      make(map[string]carbon.FootprintRecord),
		factorsByKey: make(map[string]factors.Factor),
	}
}

// RecordStore implementation ------------------------------------------------

func (m *Memory) CreateRecord(_ context.Context, rec carbon.FootprintRecord) (carbon.FootprintRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CalculatedAt.IsZero() {
		rec.CalculatedAt = time.Now().UTC()
	}

	m.records[rec.ID] = rec
	return rec, nil
}

func (m *Memory) GetRecord(_ context.Context, id string) (carbon.FootprintRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return carbon.FootprintRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) ListRecordsByUser(_ context.Context, userID string) ([]carbon.FootprintRecord, error) {
	return m.filterRecords(func(r carbon.FootprintRecord) bool { return r.UserID == userID }), nil
}

func (m *Memory) ListRecordsByOrder(_ context.Context, orderID string) ([]carbon.FootprintRecord, error) {
	return m.filterRecords(func(r carbon.FootprintRecord) bool { return r.OrderID == orderID }), nil
}

func (m *Memory) ListRecordsByProduct(_ context.Context, productID string) ([]carbon.FootprintRecord, error) {
	return m.filterRecords(func(r carbon.FootprintRecord) bool { return r.ProductID == productID }), nil
}

func (m *Memory) ListRecordsByCategory(_ context.Context, category string) ([]carbon.FootprintRecord, error) {
	return m.filterRecords(func(r carbon.FootprintRecord) bool { return r.Category == category }), nil
}

func (m *Memory) ListRecords(_ context.Context) ([]carbon.FootprintRecord, error) {
	return m.filterRecords(func(carbon.FootprintRecord) bool { return true }), nil
}

// filterRecords returns matching records sorted most recent first.
func (m *Memory) filterRecords(match func(carbon.FootprintRecord) bool) []carbon.FootprintRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]carbon.FootprintRecord, 0)
	for _, rec := range m.records {
		if match(rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CalculatedAt.After(out[j].CalculatedAt)
	})
	return out
}

// FactorStore implementation -------------------------------------------------

func (m *Memory) UpsertFactor(_ context.Context, f factors.Factor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Reference data is immutable once seeded; keep the original row.
	key := f.Key()
	if _, ok := m.factorsByKey[key]; ok {
		return nil
	}

	f.ID = m.nextFactorID
	m.nextFactorID++
	m.factorsByKey[key] = f
	return nil
}

func (m *Memory) ListAllFactors(_ context.Context) ([]factors.Factor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]factors.Factor, 0, len(m.factorsByKey))
	for _, f := range m.factorsByKey {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) FindFactor(_ context.Context, category, subcategory, materialKey string) (*factors.Factor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if f, ok := m.factorsByKey[category+"/"+subcategory+"/"+materialKey]; ok {
		return &f, nil
	}
	return nil, nil
}

func (m *Memory) FindMaterialFactor(_ context.Context, materialKey string) (*factors.Factor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, f := range m.factorsByKey {
		if f.Category == factors.CategoryMaterial && f.MaterialKey == materialKey {
			match := f
			return &match, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListFactors(_ context.Context, category, subcategory string) ([]factors.Factor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []factors.Factor
	for _, f := range m.factorsByKey {
		if f.Category == category && f.Subcategory == subcategory {
			out = append(out, f)
		}
	}
	return out, nil
}
