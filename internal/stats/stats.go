// Package stats aggregates persisted footprint records into user, product and
// category level statistics. All aggregations are computed on demand from the
// record store; nothing is cached.
package stats

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecobazaarx/carbon-engine/internal/carbon"
	"github.com/ecobazaarx/carbon-engine/internal/storage"
)

// MonthlyRollup is a user's footprint aggregated over a calendar month.
type MonthlyRollup struct {
	// Month is formatted as "2006-01".
	Month          string  `json:"month"`
	TotalFootprint float64 `json:"totalFootprint"`
	Count          int     `json:"count"`
}

// UserStatistics summarizes a user's purchase history.
type UserStatistics struct {
	TotalCarbonFootprint        float64 `json:"totalCarbonFootprint"`
	TotalCarbonSavings          float64 `json:"totalCarbonSavings"`
	TotalPurchases              int     `json:"totalPurchases"`
	AverageFootprintPerPurchase float64 `json:"averageFootprintPerPurchase"`

	TreesEquivalent          float64 `json:"treesEquivalent"`
	CarKmEquivalent          float64 `json:"carKmEquivalent"`
	ElectricityKWhEquivalent float64 `json:"electricityKwhEquivalent"`
	PlasticBottlesEquivalent float64 `json:"plasticBottlesEquivalent"`

	EcoRatingDistribution map[string]int     `json:"ecoRatingDistribution"`
	CarbonByCategory      map[string]float64 `json:"carbonByCategory"`
	MonthlyFootprint      []MonthlyRollup    `json:"monthlyFootprint"`
}

// ComparedProduct is one product's entry in a comparison result.
type ComparedProduct struct {
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	TotalFootprint float64 `json:"totalFootprint"`
	EcoRating      string  `json:"ecoRating"`
	CarbonSavings  float64 `json:"carbonSavings"`
}

// ProductComparison ranks a set of products by their latest footprint.
type ProductComparison struct {
	Products        []ComparedProduct `json:"products"`
	BestProduct     string            `json:"bestProduct"`
	LowestFootprint float64           `json:"lowestFootprint"`
	ComparedAt      time.Time         `json:"comparedAt"`
}

// CategoryBenchmark summarizes all footprints recorded in one category.
type CategoryBenchmark struct {
	Category              string         `json:"category"`
	AverageFootprint      float64        `json:"averageFootprint"`
	LowestFootprint       float64        `json:"lowestFootprint"`
	HighestFootprint      float64        `json:"highestFootprint"`
	TotalProducts         int            `json:"totalProducts"`
	EcoRatingDistribution map[string]int `json:"ecoRatingDistribution,omitempty"`
	Message               string         `json:"message,omitempty"`
}

// LeaderboardEntry is one user's position on the low-footprint leaderboard.
type LeaderboardEntry struct {
	UserID               string  `json:"userId"`
	TotalCarbonFootprint float64 `json:"totalCarbonFootprint"`
	CalculationCount     int     `json:"calculationCount"`
	AveragePerProduct    float64 `json:"averagePerProduct"`
	Rank                 int     `json:"rank"`
}

// CategoryOverview summarizes one category for the categories listing.
type CategoryOverview struct {
	Category         string  `json:"category"`
	ProductCount     int     `json:"productCount"`
	AverageFootprint float64 `json:"averageFootprint"`
	LowestFootprint  float64 `json:"lowestFootprint"`
	HighestFootprint float64 `json:"highestFootprint"`
	TotalFootprint   float64 `json:"totalFootprint"`
}

// Aggregator computes statistics over a record store. It is stateless and
// safe for concurrent use.
type Aggregator struct {
	store  storage.RecordStore
	logger zerolog.Logger
}

// NewAggregator creates an Aggregator backed by the given record store.
func NewAggregator(store storage.RecordStore, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		store:  store,
		logger: logger,
	}
}

// UserStatistics aggregates every record belonging to the user. A user with
// no records gets zero totals and empty distributions, not an error.
func (a *Aggregator) UserStatistics(ctx context.Context, userID string) (UserStatistics, error) {
	records, err := a.store.ListRecordsByUser(ctx, userID)
	if err != nil {
		return UserStatistics{}, err
	}

	stats := UserStatistics{
		EcoRatingDistribution: make(map[string]int),
		CarbonByCategory:      make(map[string]float64),
		MonthlyFootprint:      []MonthlyRollup{},
	}

	monthly := make(map[string]*MonthlyRollup)
	for _, rec := range records {
		stats.TotalCarbonFootprint += rec.TotalFootprint
		stats.TotalCarbonSavings += rec.CarbonSavings
		stats.TreesEquivalent += rec.TreesEquivalent
		stats.CarKmEquivalent += rec.CarKmEquivalent
		stats.ElectricityKWhEquivalent += rec.ElectricityKWhEquivalent
		stats.PlasticBottlesEquivalent += rec.PlasticBottlesEquivalent

		if rec.EcoRating != "" {
			stats.EcoRatingDistribution[rec.EcoRating]++
		}
		if rec.Category != "" {
			stats.CarbonByCategory[rec.Category] += rec.TotalFootprint
		}

		month := rec.CalculatedAt.UTC().Format("2006-01")
		rollup, ok := monthly[month]
		if !ok {
			rollup = &MonthlyRollup{Month: month}
			monthly[month] = rollup
		}
		rollup.TotalFootprint += rec.TotalFootprint
		rollup.Count++
	}

	stats.TotalPurchases = len(records)
	if stats.TotalPurchases > 0 {
		stats.AverageFootprintPerPurchase = stats.TotalCarbonFootprint / float64(stats.TotalPurchases)
	}

	for _, rollup := range monthly {
		stats.MonthlyFootprint = append(stats.MonthlyFootprint, *rollup)
	}
	sort.Slice(stats.MonthlyFootprint, func(i, j int) bool {
		return stats.MonthlyFootprint[i].Month < stats.MonthlyFootprint[j].Month
	})

	return stats, nil
}

// CompareProducts compares the latest record of each requested product.
// Products without records are skipped; when nothing matches, BestProduct is
// empty and LowestFootprint is 0.
func (a *Aggregator) CompareProducts(ctx context.Context, productIDs []string) (ProductComparison, error) {
	cmp := ProductComparison{
		Products:   []ComparedProduct{},
		ComparedAt: time.Now().UTC(),
	}

	best := -1
	for _, productID := range productIDs {
		records, err := a.store.ListRecordsByProduct(ctx, productID)
		if err != nil {
			return ProductComparison{}, err
		}
		if len(records) == 0 {
			a.logger.Debug().Str("product_id", productID).Msg("no footprint records for product, skipping")
			continue
		}

		latest := records[0]
		cmp.Products = append(cmp.Products, ComparedProduct{
			ProductID:      latest.ProductID,
			ProductName:    latest.ProductName,
			TotalFootprint: latest.TotalFootprint,
			EcoRating:      latest.EcoRating,
			CarbonSavings:  latest.CarbonSavings,
		})

		if best < 0 || latest.TotalFootprint < cmp.Products[best].TotalFootprint {
			best = len(cmp.Products) - 1
		}
	}

	if best >= 0 {
		cmp.BestProduct = cmp.Products[best].ProductName
		cmp.LowestFootprint = cmp.Products[best].TotalFootprint
	}
	return cmp, nil
}

// CategoryBenchmark computes min/avg/max over every record in the category.
// An empty category yields zeroed values and an explanatory message.
func (a *Aggregator) CategoryBenchmark(ctx context.Context, category string) (CategoryBenchmark, error) {
	records, err := a.store.ListRecordsByCategory(ctx, category)
	if err != nil {
		return CategoryBenchmark{}, err
	}

	if len(records) == 0 {
		return CategoryBenchmark{
			Category: category,
			Message:  "No data available for this category",
		}, nil
	}

	bench := CategoryBenchmark{
		Category:              category,
		TotalProducts:         len(records),
		LowestFootprint:       records[0].TotalFootprint,
		HighestFootprint:      records[0].TotalFootprint,
		EcoRatingDistribution: make(map[string]int),
	}

	var sum float64
	for _, rec := range records {
		sum += rec.TotalFootprint
		if rec.TotalFootprint < bench.LowestFootprint {
			bench.LowestFootprint = rec.TotalFootprint
		}
		if rec.TotalFootprint > bench.HighestFootprint {
			bench.HighestFootprint = rec.TotalFootprint
		}
		bench.EcoRatingDistribution[rec.EcoRating]++
	}
	bench.AverageFootprint = sum / float64(len(records))

	return bench, nil
}

// Leaderboard ranks users by total footprint, lowest first, and returns at
// most limit entries. Ties are broken by user ID so the ordering is stable.
func (a *Aggregator) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	records, err := a.store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*LeaderboardEntry)
	for _, rec := range records {
		entry, ok := byUser[rec.UserID]
		if !ok {
			entry = &LeaderboardEntry{UserID: rec.UserID}
			byUser[rec.UserID] = entry
		}
		entry.TotalCarbonFootprint += rec.TotalFootprint
		entry.CalculationCount++
	}

	board := make([]LeaderboardEntry, 0, len(byUser))
	for _, entry := range byUser {
		entry.AveragePerProduct = entry.TotalCarbonFootprint / float64(entry.CalculationCount)
		board = append(board, *entry)
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].TotalCarbonFootprint != board[j].TotalCarbonFootprint {
			return board[i].TotalCarbonFootprint < board[j].TotalCarbonFootprint
		}
		return board[i].UserID < board[j].UserID
	})

	if limit > 0 && len(board) > limit {
		board = board[:limit]
	}
	for i := range board {
		board[i].Rank = i + 1
	}
	return board, nil
}

// CategoriesOverview summarizes every category with at least one record,
// sorted by record count descending. Ties are broken by category name.
func (a *Aggregator) CategoriesOverview(ctx context.Context) ([]CategoryOverview, error) {
	records, err := a.store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]carbon.FootprintRecord)
	for _, rec := range records {
		byCategory[rec.Category] = append(byCategory[rec.Category], rec)
	}

	overview := make([]CategoryOverview, 0, len(byCategory))
	for category, recs := range byCategory {
		entry := CategoryOverview{
			Category:         category,
			ProductCount:     len(recs),
			LowestFootprint:  recs[0].TotalFootprint,
			HighestFootprint: recs[0].TotalFootprint,
		}
		for _, rec := range recs {
			entry.TotalFootprint += rec.TotalFootprint
			if rec.TotalFootprint < entry.LowestFootprint {
				entry.LowestFootprint = rec.TotalFootprint
			}
			if rec.TotalFootprint > entry.HighestFootprint {
				entry.HighestFootprint = rec.TotalFootprint
			}
		}
		entry.AverageFootprint = entry.TotalFootprint / float64(entry.ProductCount)
		overview = append(overview, entry)
	}

	sort.Slice(overview, func(i, j int) bool {
		if overview[i].ProductCount != overview[j].ProductCount {
			return overview[i].ProductCount > overview[j].ProductCount
		}
		return overview[i].Category < overview[j].Category
	})
	return overview, nil
}
