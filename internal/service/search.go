package service

import (
	"context"
	"log"
	"time"

	"easyhome/internal/model"

	"github.com/google/uuid"
)

// SearchStore is the slice of the store the general search path needs
type SearchStore interface {
	SearchWithFilters(ctx context.Context, filters *model.SearchFilters, limit, offset int) ([]model.Listing, int, error)
	LogSearch(ctx context.Context, searchID, query string, params *model.SearchParams, resultCount int, responseTimeMs int) error
	LogFeedback(ctx context.Context, searchID, listingID, action string) error
}

// SearchService handles the general (non-chat) search path. Unlike the chat
// grounding query, this path applies the full filter set, price bounds
// included.
type SearchService struct {
	store  SearchStore
	ranker *Ranker
}

// NewSearchService creates a new search service
func NewSearchService(store SearchStore, ranker *Ranker) *SearchService {
	return &SearchService{
		store:  store,
		ranker: ranker,
	}
}

// Search extracts params from the free-text query, merges them under any
// explicit filters, queries the store, and ranks the page of results.
func (s *SearchService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	startTime := time.Now()

	params := ExtractSearchParams(req.Query)
	filters := mergeFilters(req.Filters, params)

	options := req.Options
	if options == nil {
		options = &model.SearchOptions{TopK: 20, Offset: 0}
	}

	listings, total, err := s.store.SearchWithFilters(ctx, filters, options.TopK, options.Offset)
	if err != nil {
		return nil, newError(ErrorRetrieval, "search failed", err)
	}

	results := s.ranker.RankResults(listings, filters)

	took := time.Since(startTime).Milliseconds()
	searchID := uuid.NewString()

	// Log search (non-blocking)
	go func() {
		if err := s.store.LogSearch(context.Background(), searchID, req.Query, &params, total, int(took)); err != nil {
			log.Printf("Warning: failed to log search: %v", err)
		}
	}()

	return &model.SearchResponse{
		Results:  results,
		Total:    total,
		SearchID: searchID,
		Params:   &params,
		Took:     took,
	}, nil
}

// LogFeedback records a user action against a logged search
func (s *SearchService) LogFeedback(ctx context.Context, searchID, listingID, action string) error {
	return s.store.LogFeedback(ctx, searchID, listingID, action)
}

// mergeFilters merges explicit filters with extracted params; explicit
// values always win.
func mergeFilters(explicit *model.SearchFilters, params model.SearchParams) *model.SearchFilters {
	merged := &model.SearchFilters{}
	if explicit != nil {
		*merged = *explicit
	}

	if merged.PropertyType == nil && params.PropertyType != nil {
		merged.PropertyType = params.PropertyType
	}
	if merged.Location == nil && params.Location != nil {
		merged.Location = params.Location
	}
	if merged.Bedrooms == nil && params.Bedrooms != nil {
		merged.Bedrooms = params.Bedrooms
	}
	if params.PriceRange != nil {
		if merged.PriceMin == nil && params.PriceRange.Min != nil {
			merged.PriceMin = params.PriceRange.Min
		}
		if merged.PriceMax == nil && params.PriceRange.Max != nil {
			merged.PriceMax = params.PriceRange.Max
		}
	}

	return merged
}
