package service

import (
	"math"
	"sort"
	"time"

	"easyhome/internal/model"
)

// Match reason constants, rendered to users alongside search results
const (
	ReasonTypeMatch     = "Tipo de propiedad coincide"
	ReasonLocationMatch = "Ubicación coincide"
	ReasonBedroomsMatch = "Habitaciones coinciden"
	ReasonPriceMatch    = "Precio dentro del presupuesto"
	ReasonNewlyListed   = "Publicada recientemente"
	ReasonGeneralMatch  = "Coincidencia general"
)

// Ranker scores general search results by price fit and recency
type Ranker struct {
	weightPrice   float64
	weightRecency float64
}

// NewRanker creates a new ranker with the specified weights
func NewRanker(weightPrice, weightRecency float64) *Ranker {
	return &Ranker{
		weightPrice:   weightPrice,
		weightRecency: weightRecency,
	}
}

// RankResults scores and orders listings, best match first
func (r *Ranker) RankResults(listings []model.Listing, filters *model.SearchFilters) []model.ListingResult {
	results := make([]model.ListingResult, 0, len(listings))

	for _, listing := range listings {
		priceScore := r.calculatePriceScore(listing.Price, filters)
		recencyScore := r.calculateRecencyScore(listing.ListedDate, listing.CreatedAt)

		result := model.ListingResult{
			Listing: listing,
			Score:   (r.weightPrice * priceScore) + (r.weightRecency * recencyScore),
		}
		result.MatchedReasons = r.generateMatchedReasons(listing, filters, priceScore)

		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// calculatePriceScore calculates how well the price matches the budget
func (r *Ranker) calculatePriceScore(price *float64, filters *model.SearchFilters) float64 {
	if price == nil {
		return 0.5 // Neutral score if no price
	}
	if filters == nil || (filters.PriceMin == nil && filters.PriceMax == nil) {
		return 1.0 // Full score if no price filter
	}

	actualPrice := *price

	if filters.PriceMin != nil && filters.PriceMax != nil {
		minPrice := *filters.PriceMin
		maxPrice := *filters.PriceMax

		if actualPrice < minPrice || actualPrice > maxPrice {
			return 0.0
		}

		priceRange := maxPrice - minPrice
		if priceRange == 0 {
			return 1.0
		}

		// Score by distance from the midpoint of the budget
		midpoint := (minPrice + maxPrice) / 2
		score := 1.0 - (math.Abs(actualPrice-midpoint) / (priceRange / 2))
		if score < 0 {
			score = 0
		}
		return score
	}

	if filters.PriceMin != nil {
		if actualPrice < *filters.PriceMin {
			return 0.0
		}
		return 1.0
	}

	if actualPrice > *filters.PriceMax {
		return 0.0
	}
	score := actualPrice / *filters.PriceMax
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// calculateRecencyScore decays exponentially with the listing's age
func (r *Ranker) calculateRecencyScore(listedDate *time.Time, createdAt time.Time) float64 {
	reference := createdAt
	if listedDate != nil {
		reference = *listedDate
	}

	daysSinceListed := time.Since(reference).Hours() / 24

	// After 30 days: ~0.74, after 60 days: ~0.55, after 90 days: ~0.41
	score := math.Exp(-0.01 * daysSinceListed)
	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score
}

func (r *Ranker) generateMatchedReasons(listing model.Listing, filters *model.SearchFilters, priceScore float64) []string {
	reasons := []string{}

	if filters != nil {
		if filters.PropertyType != nil && listing.PropertyType != nil && *listing.PropertyType == *filters.PropertyType {
			reasons = append(reasons, ReasonTypeMatch)
		}
		if filters.Location != nil && listing.Location != nil {
			reasons = append(reasons, ReasonLocationMatch)
		}
		if filters.Bedrooms != nil && listing.Bedrooms != nil && *listing.Bedrooms == *filters.Bedrooms {
			reasons = append(reasons, ReasonBedroomsMatch)
		}
		if (filters.PriceMin != nil || filters.PriceMax != nil) && priceScore > 0.8 {
			reasons = append(reasons, ReasonPriceMatch)
		}
	}

	reference := listing.CreatedAt
	if listing.ListedDate != nil {
		reference = *listing.ListedDate
	}
	if time.Since(reference).Hours()/24 < 7 {
		reasons = append(reasons, ReasonNewlyListed)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, ReasonGeneralMatch)
	}

	return reasons
}
