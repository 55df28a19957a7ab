package service

import (
	"context"

	"easyhome/internal/model"

	"github.com/google/uuid"
)

// ListingStore is the slice of the store the listing management path needs
type ListingStore interface {
	CreateListing(ctx context.Context, listing *model.Listing) error
	GetListingByID(ctx context.Context, listingID string) (*model.Listing, error)
	ListAll(ctx context.Context, ownerID *string) ([]model.Listing, error)
	UpdateListing(ctx context.Context, listingID string, req *model.UpdateListingRequest) error
	DeleteListing(ctx context.Context, listingID string) error
}

// ListingService handles landlord/admin listing management
type ListingService struct {
	store ListingStore
}

// NewListingService creates a new listing service
func NewListingService(store ListingStore) *ListingService {
	return &ListingService{store: store}
}

// Create publishes a new listing. New listings go live as 'disponible'
// immediately; there is no draft state.
func (s *ListingService) Create(ctx context.Context, req *model.CreateListingRequest) (*model.Listing, error) {
	listing := &model.Listing{
		ID:           uuid.NewString(),
		Title:        &req.Title,
		PropertyType: &req.PropertyType,
		Location:     &req.Location,
		Price:        &req.Price,
		AreaM2:       req.AreaM2,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Description:  req.Description,
		Features:     model.JSONArray(req.Features),
		Images:       model.JSONArray(req.Images),
		Status:       model.StatusDisponible,
		OwnerID:      &req.OwnerID,
	}

	if err := s.store.CreateListing(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Get retrieves a single listing; returns nil when not found
func (s *ListingService) Get(ctx context.Context, listingID string) (*model.Listing, error) {
	return s.store.GetListingByID(ctx, listingID)
}

// List returns listings newest first, optionally restricted to one owner
func (s *ListingService) List(ctx context.Context, ownerID *string) ([]model.Listing, error) {
	return s.store.ListAll(ctx, ownerID)
}

// Update applies a partial update to a listing
func (s *ListingService) Update(ctx context.Context, listingID string, req *model.UpdateListingRequest) error {
	return s.store.UpdateListing(ctx, listingID, req)
}

// Delete removes a listing
func (s *ListingService) Delete(ctx context.Context, listingID string) error {
	return s.store.DeleteListing(ctx, listingID)
}
