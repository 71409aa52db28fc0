// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecobazaarx/carbon-engine/internal/carbon"
	"github.com/ecobazaarx/carbon-engine/internal/factors"
	"github.com/ecobazaarx/carbon-engine/internal/storage"
)

// Store implements storage.RecordStore and storage.FactorStore on top of a
// PostgreSQL database handle.
type Store struct {
	db *sql.DB
}

var (
	_ storage.RecordStore = (*Store)(nil)
	_ storage.FactorStore = (*Store)(nil)
)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// InitSchema creates the tables and indexes if they do not exist. The unique
// index on the factor natural key is what makes seeding idempotent under
// concurrent startup.
func (s *Store) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS carbon_footprint_records (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			order_id TEXT,
			product_id TEXT,
			product_name TEXT NOT NULL,
			category TEXT,
			material_type TEXT,
			material_emissions DOUBLE PRECISION NOT NULL DEFAULT 0,
			manufacturing_type TEXT,
			manufacturing_emissions DOUBLE PRECISION NOT NULL DEFAULT 0,
			transportation_type TEXT,
			transportation_distance DOUBLE PRECISION NOT NULL DEFAULT 0,
			transportation_emissions DOUBLE PRECISION NOT NULL DEFAULT 0,
			packaging_type TEXT,
			packaging_emissions DOUBLE PRECISION NOT NULL DEFAULT 0,
			end_of_life_emissions DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_carbon_footprint DOUBLE PRECISION NOT NULL,
			conventional_footprint DOUBLE PRECISION NOT NULL DEFAULT 0,
			carbon_savings DOUBLE PRECISION NOT NULL DEFAULT 0,
			savings_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
			eco_rating TEXT,
			trees_equivalent DOUBLE PRECISION NOT NULL DEFAULT 0,
			car_km_equivalent DOUBLE PRECISION NOT NULL DEFAULT 0,
			electricity_kwh_equivalent DOUBLE PRECISION NOT NULL DEFAULT 0,
			plastic_bottles_equivalent DOUBLE PRECISION NOT NULL DEFAULT 0,
			product_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_recycled BOOLEAN NOT NULL DEFAULT FALSE,
			is_organic BOOLEAN NOT NULL DEFAULT FALSE,
			product_lifespan DOUBLE PRECISION NOT NULL DEFAULT 0,
			source_country TEXT,
			notes TEXT,
			calculated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cfr_user_id ON carbon_footprint_records (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cfr_order_id ON carbon_footprint_records (order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cfr_product_id ON carbon_footprint_records (product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cfr_category ON carbon_footprint_records (category)`,
		`CREATE INDEX IF NOT EXISTS idx_cfr_calculated_at ON carbon_footprint_records (calculated_at)`,
		`CREATE TABLE IF NOT EXISTS emission_factors (
			id BIGSERIAL PRIMARY KEY,
			category TEXT NOT NULL,
			subcategory TEXT NOT NULL,
			material_key TEXT NOT NULL,
			name TEXT NOT NULL,
			unit TEXT NOT NULL,
			factor_value DOUBLE PRECISION NOT NULL,
			carbon_sequestration DOUBLE PRECISION NOT NULL DEFAULT 0,
			recycling_benefit DOUBLE PRECISION NOT NULL DEFAULT 0,
			biodegradation_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			confidence TEXT,
			data_source TEXT,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE (category, subcategory, material_key)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// recordColumns is the canonical column list for footprint record queries.
const recordColumns = `id, user_id, order_id, product_id, product_name, category,
	material_type, material_emissions, manufacturing_type, manufacturing_emissions,
	transportation_type, transportation_distance, transportation_emissions,
	packaging_type, packaging_emissions, end_of_life_emissions,
	total_carbon_footprint, conventional_footprint, carbon_savings, savings_percentage,
	eco_rating, trees_equivalent, car_km_equivalent, electricity_kwh_equivalent,
	plastic_bottles_equivalent, product_weight, is_recycled, is_organic,
	product_lifespan, source_country, notes, calculated_at`

// RecordStore implementation -------------------------------------------------

func (s *Store) CreateRecord(ctx context.Context, rec carbon.FootprintRecord) (carbon.FootprintRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CalculatedAt.IsZero() {
		rec.CalculatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO carbon_footprint_records (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)
	`,
		rec.ID, rec.UserID, rec.OrderID, rec.ProductID, rec.ProductName, rec.Category,
		rec.MaterialType, rec.MaterialEmissions, rec.ManufacturingType, rec.ManufacturingEmissions,
		rec.TransportationType, rec.TransportationDistance, rec.TransportationEmissions,
		rec.PackagingType, rec.PackagingEmissions, rec.EndOfLifeEmissions,
		rec.TotalFootprint, rec.ConventionalFootprint, rec.CarbonSavings, rec.SavingsPercentage,
		rec.EcoRating, rec.TreesEquivalent, rec.CarKmEquivalent, rec.ElectricityKWhEquivalent,
		rec.PlasticBottlesEquivalent, rec.ProductWeight, rec.IsRecycled, rec.IsOrganic,
		rec.ProductLifespan, rec.SourceCountry, rec.Notes, rec.CalculatedAt,
	)
	if err != nil {
		return carbon.FootprintRecord{}, fmt.Errorf("create footprint record: %w", err)
	}
	return rec, nil
}

func (s *Store) GetRecord(ctx context.Context, id string) (carbon.FootprintRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM carbon_footprint_records
		WHERE id = $1
	`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return carbon.FootprintRecord{}, storage.ErrNotFound
	}
	return rec, err
}

func (s *Store) ListRecordsByUser(ctx context.Context, userID string) ([]carbon.FootprintRecord, error) {
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+`
		FROM carbon_footprint_records
		WHERE user_id = $1
		ORDER BY calculated_at DESC
	`, userID)
}

func (s *Store) ListRecordsByOrder(ctx context.Context, orderID string) ([]carbon.FootprintRecord, error) {
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+`
		FROM carbon_footprint_records
		WHERE order_id = $1
		ORDER BY calculated_at DESC
	`, orderID)
}

func (s *Store) ListRecordsByProduct(ctx context.Context, productID string) ([]carbon.FootprintRecord, error) {
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+`
		FROM carbon_footprint_records
		WHERE product_id = $1
		ORDER BY calculated_at DESC
	`, productID)
}

func (s *Store) ListRecordsByCategory(ctx context.Context, category string) ([]carbon.FootprintRecord, error) {
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+`
		FROM carbon_footprint_records
		WHERE category = $1
		ORDER BY calculated_at DESC
	`, category)
}

func (s *Store) ListRecords(ctx context.Context) ([]carbon.FootprintRecord, error) {
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+`
		FROM carbon_footprint_records
		ORDER BY calculated_at DESC
	`)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]carbon.FootprintRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query footprint records: %w", err)
	}
	defer rows.Close()

	var out []carbon.FootprintRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (carbon.FootprintRecord, error) {
	var (
		rec                                                  carbon.FootprintRecord
		orderID, productID, category                         sql.NullString
		materialType, manufacturingType, transportationType  sql.NullString
		packagingType, ecoRating, sourceCountry, notes       sql.NullString
	)

	err := row.Scan(
		&rec.ID, &rec.UserID, &orderID, &productID, &rec.ProductName, &category,
		&materialType, &rec.MaterialEmissions, &manufacturingType, &rec.ManufacturingEmissions,
		&transportationType, &rec.TransportationDistance, &rec.TransportationEmissions,
		&packagingType, &rec.PackagingEmissions, &rec.EndOfLifeEmissions,
		&rec.TotalFootprint, &rec.ConventionalFootprint, &rec.CarbonSavings, &rec.SavingsPercentage,
		&ecoRating, &rec.TreesEquivalent, &rec.CarKmEquivalent, &rec.ElectricityKWhEquivalent,
		&rec.PlasticBottlesEquivalent, &rec.ProductWeight, &rec.IsRecycled, &rec.IsOrganic,
		&rec.ProductLifespan, &sourceCountry, &notes, &rec.CalculatedAt,
	)
	if err != nil {
		return carbon.FootprintRecord{}, err
	}

	rec.OrderID = orderID.String
	rec.ProductID = productID.String
	rec.Category = category.String
	rec.MaterialType = materialType.String
	rec.ManufacturingType = manufacturingType.String
	rec.TransportationType = transportationType.String
	rec.PackagingType = packagingType.String
	rec.EcoRating = ecoRating.String
	rec.SourceCountry = sourceCountry.String
	rec.Notes = notes.String
	return rec, nil
}

// FactorStore implementation -------------------------------------------------

const factorColumns = `id, category, subcategory, material_key, name, unit, factor_value,
	carbon_sequestration, recycling_benefit, biodegradation_rate, confidence, data_source, description`

// UpsertFactor inserts the factor, leaving any existing row with the same
// natural key untouched. ON CONFLICT DO NOTHING makes concurrent seeding
// safe without a count check.
func (s *Store) UpsertFactor(ctx context.Context, f factors.Factor) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO emission_factors (category, subcategory, material_key, name, unit,
			factor_value, carbon_sequestration, recycling_benefit, biodegradation_rate,
			confidence, data_source, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (category, subcategory, material_key) DO NOTHING
	`,
		f.Category, f.Subcategory, f.MaterialKey, f.Name, f.Unit,
		f.Value, f.CarbonSequestration, f.RecyclingBenefit, f.BiodegradationRate,
		f.Confidence, f.DataSource, f.Description, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert emission factor %s: %w", f.Key(), err)
	}
	return nil
}

func (s *Store) ListAllFactors(ctx context.Context) ([]factors.Factor, error) {
	return s.queryFactors(ctx, `
		SELECT `+factorColumns+`
		FROM emission_factors
		ORDER BY id
	`)
}

func (s *Store) FindFactor(ctx context.Context, category, subcategory, materialKey string) (*factors.Factor, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+factorColumns+`
		FROM emission_factors
		WHERE category = $1 AND subcategory = $2 AND material_key = $3
	`, category, subcategory, materialKey)

	return scanOptionalFactor(row)
}

func (s *Store) FindMaterialFactor(ctx context.Context, materialKey string) (*factors.Factor, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+factorColumns+`
		FROM emission_factors
		WHERE category = $1 AND material_key = $2
		ORDER BY id
		LIMIT 1
	`, factors.CategoryMaterial, materialKey)

	return scanOptionalFactor(row)
}

func (s *Store) ListFactors(ctx context.Context, category, subcategory string) ([]factors.Factor, error) {
	return s.queryFactors(ctx, `
		SELECT `+factorColumns+`
		FROM emission_factors
		WHERE category = $1 AND subcategory = $2
		ORDER BY id
	`, category, subcategory)
}

func (s *Store) queryFactors(ctx context.Context, query string, args ...any) ([]factors.Factor, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query emission factors: %w", err)
	}
	defer rows.Close()

	var out []factors.Factor
	for rows.Next() {
		f, err := scanFactor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanOptionalFactor(row *sql.Row) (*factors.Factor, error) {
	f, err := scanFactor(row)
	if errors.Is(err, sql.ErrNoRows) {
		// Missing reference data is resolved by the calculator's defaults.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func scanFactor(row scanner) (factors.Factor, error) {
	var (
		f                                   factors.Factor
		confidence, dataSource, description sql.NullString
	)

	err := row.Scan(
		&f.ID, &f.Category, &f.Subcategory, &f.MaterialKey, &f.Name, &f.Unit, &f.Value,
		&f.CarbonSequestration, &f.RecyclingBenefit, &f.BiodegradationRate,
		&confidence, &dataSource, &description,
	)
	if err != nil {
		return factors.Factor{}, err
	}

	f.Confidence = confidence.String
	f.DataSource = dataSource.String
	f.Description = description.String
	return f, nil
}
