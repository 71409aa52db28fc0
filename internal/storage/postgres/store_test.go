package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecobazaarx/carbon-engine/internal/carbon"
	"github.com/ecobazaarx/carbon-engine/internal/factors"
	"github.com/ecobazaarx/carbon-engine/internal/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "order_id", "product_id", "product_name", "category",
		"material_type", "material_emissions", "manufacturing_type", "manufacturing_emissions",
		"transportation_type", "transportation_distance", "transportation_emissions",
		"packaging_type", "packaging_emissions", "end_of_life_emissions",
		"total_carbon_footprint", "conventional_footprint", "carbon_savings", "savings_percentage",
		"eco_rating", "trees_equivalent", "car_km_equivalent", "electricity_kwh_equivalent",
		"plastic_bottles_equivalent", "product_weight", "is_recycled", "is_organic",
		"product_lifespan", "source_country", "notes", "calculated_at",
	})
}

func addRecordRow(rows *sqlmock.Rows, id, userID, productName string, total float64, at time.Time) {
	rows.AddRow(
		id, userID, "order-1", "prod-1", productName, "Clothing",
		"organic_cotton", 1.9, "eco_friendly", 1.2,
		"truck_local", 200.0, 0.0089,
		"recycled_cardboard", 0.03, 0.015,
		total, 6.0, 6.0-total, (6.0-total)/6.0*100,
		"A", total * 0.05, total * 4.6, total * 1.9,
		total * 50, 0.5, false, true,
		2.0, "IN", "", at,
	)
}

func TestStore_CreateRecord(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO carbon_footprint_records").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, err := store.CreateRecord(context.Background(), carbon.FootprintRecord{
		UserID:         "user-1",
		ProductName:    "Organic Cotton Tee",
		TotalFootprint: 3.14,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID, "store assigns an ID when none is set")
	assert.False(t, rec.CalculatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateRecord_PersistenceFailurePropagates(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO carbon_footprint_records").
		WillReturnError(assert.AnError)

	_, err := store.CreateRecord(context.Background(), carbon.FootprintRecord{
		UserID:      "user-1",
		ProductName: "Organic Cotton Tee",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStore_GetRecord(t *testing.T) {
	store, mock := newMockStore(t)

	at := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	rows := recordRows()
	addRecordRow(rows, "rec-1", "user-1", "Organic Cotton Tee", 3.2, at)

	mock.ExpectQuery("(?s)SELECT (.+) FROM carbon_footprint_records WHERE id").
		WithArgs("rec-1").
		WillReturnRows(rows)

	rec, err := store.GetRecord(context.Background(), "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", rec.ID)
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, "Organic Cotton Tee", rec.ProductName)
	assert.Equal(t, "A", rec.EcoRating)
	assert.InDelta(t, 3.2, rec.TotalFootprint, 1e-9)
	assert.Equal(t, at, rec.CalculatedAt)
}

func TestStore_GetRecord_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("(?s)SELECT (.+) FROM carbon_footprint_records WHERE id").
		WithArgs("missing").
		WillReturnRows(recordRows())

	_, err := store.GetRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_ListRecordsByUser(t *testing.T) {
	store, mock := newMockStore(t)

	rows := recordRows()
	addRecordRow(rows, "rec-2", "user-1", "newer", 2.0, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC))
	addRecordRow(rows, "rec-1", "user-1", "older", 3.0, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	mock.ExpectQuery("(?s)SELECT (.+) FROM carbon_footprint_records WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(rows)

	recs, err := store.ListRecordsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "newer", recs[0].ProductName)
	assert.Equal(t, "older", recs[1].ProductName)
}

func factorRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "category", "subcategory", "material_key", "name", "unit", "factor_value",
		"carbon_sequestration", "recycling_benefit", "biodegradation_rate",
		"confidence", "data_source", "description",
	})
}

func TestStore_UpsertFactor(t *testing.T) {
	store, mock := newMockStore(t)

	// First insert writes a row; the repeat hits ON CONFLICT DO NOTHING.
	mock.ExpectExec("INSERT INTO emission_factors").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO emission_factors").WillReturnResult(sqlmock.NewResult(0, 0))

	f := factors.Factor{
		Category:    factors.CategoryMaterial,
		Subcategory: "textiles",
		MaterialKey: "organic_cotton",
		Name:        "Organic Cotton",
		Unit:        "kg CO2e per kg",
		Value:       3.8,
	}
	require.NoError(t, store.UpsertFactor(context.Background(), f))
	require.NoError(t, store.UpsertFactor(context.Background(), f))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindFactor(t *testing.T) {
	store, mock := newMockStore(t)

	rows := factorRows().AddRow(
		int64(7), factors.CategoryTransportation, factors.SubcategoryFreight, "air_freight",
		"Air Freight", "kg CO2e per km per kg", 0.000602,
		0.0, 0.0, 0.0, "HIGH", "ICAO Guidelines", "",
	)

	mock.ExpectQuery("(?s)SELECT (.+) FROM emission_factors WHERE category").
		WithArgs(factors.CategoryTransportation, factors.SubcategoryFreight, "air_freight").
		WillReturnRows(rows)

	f, err := store.FindFactor(context.Background(), factors.CategoryTransportation, factors.SubcategoryFreight, "air_freight")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.InDelta(t, 0.000602, f.Value, 1e-12)
	assert.Equal(t, "ICAO Guidelines", f.DataSource)
}

func TestStore_FindFactor_MissIsNotAnError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("(?s)SELECT (.+) FROM emission_factors WHERE category").
		WithArgs(factors.CategoryMaterial, "textiles", "unobtainium").
		WillReturnRows(factorRows())

	f, err := store.FindFactor(context.Background(), factors.CategoryMaterial, "textiles", "unobtainium")
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestStore_ListFactors(t *testing.T) {
	store, mock := newMockStore(t)

	rows := factorRows().
		AddRow(int64(1), factors.CategoryManufacturing, "clothing", "eco_friendly",
			"Eco-Friendly Textile Manufacturing", "kg CO2e per unit", 1.2,
			0.0, 0.0, 0.0, "MEDIUM", "ISO 14040", "").
		AddRow(int64(2), factors.CategoryManufacturing, "clothing", "conventional",
			"Conventional Textile Manufacturing", "kg CO2e per unit", 2.5,
			0.0, 0.0, 0.0, "MEDIUM", "ISO 14040", "")

	mock.ExpectQuery("(?s)SELECT (.+) FROM emission_factors WHERE category").
		WithArgs(factors.CategoryManufacturing, "clothing").
		WillReturnRows(rows)

	got, err := store.ListFactors(context.Background(), factors.CategoryManufacturing, "clothing")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "eco_friendly", got[0].MaterialKey)
}
