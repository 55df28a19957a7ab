package service

import (
	"context"

	"easyhome/internal/model"
)

// DefaultMaxResults bounds how many listings a chat turn may ground on
const DefaultMaxResults = 5

// ListingFinder is the slice of the store the retriever needs
type ListingFinder interface {
	FindRelevant(ctx context.Context, params model.SearchParams, maxResults int) ([]model.Listing, error)
}

// Retriever translates extracted search params into a bounded store query
type Retriever struct {
	store ListingFinder
}

// NewRetriever creates a new retriever over the given store
func NewRetriever(store ListingFinder) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns at most maxResults available listings matching params.
// The cap is enforced by the store's query limit, not by truncating an
// over-fetched result set. Store failures come back as a typed retrieval
// error; the caller decides whether to degrade.
func (r *Retriever) Retrieve(ctx context.Context, params model.SearchParams, maxResults int) ([]model.Listing, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	listings, err := r.store.FindRelevant(ctx, params, maxResults)
	if err != nil {
		return nil, newError(ErrorRetrieval, "listings lookup failed", err)
	}
	return listings, nil
}
