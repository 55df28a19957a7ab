package model

// SearchRequest represents a general search query request
type SearchRequest struct {
	Query   string         `json:"query"`
	Filters *SearchFilters `json:"filters,omitempty"`
	Options *SearchOptions `json:"options,omitempty"`
}

// SearchFilters represents structured search filters. Unlike the chat
// grounding path, the general search path applies every field here,
// including the price bounds.
type SearchFilters struct {
	PropertyType *string  `json:"property_type,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	PriceMin     *float64 `json:"price_min,omitempty"`
	PriceMax     *float64 `json:"price_max,omitempty"`
	AreaM2Min    *float64 `json:"area_min,omitempty"`
	AreaM2Max    *float64 `json:"area_max,omitempty"`
	OwnerID      *string  `json:"owner_id,omitempty"`
}

// SearchOptions represents search options
type SearchOptions struct {
	TopK   int `json:"top_k"`
	Offset int `json:"offset"`
}

// SearchResponse represents a search result response
type SearchResponse struct {
	Results  []ListingResult `json:"results"`
	Total    int             `json:"total"`
	SearchID string          `json:"search_id"`
	Params   *SearchParams   `json:"params,omitempty"`
	Took     int64           `json:"took_ms"`
}

// CreateListingRequest is the inbound body for creating a listing
type CreateListingRequest struct {
	Title        string   `json:"title" binding:"required"`
	PropertyType string   `json:"propertyType" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	Price        float64  `json:"price" binding:"required"`
	AreaM2       *float64 `json:"area,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Features     []string `json:"features,omitempty"`
	Images       []string `json:"images,omitempty"`
	OwnerID      string   `json:"ownerId" binding:"required"`
}

// UpdateListingRequest is the inbound body for a partial listing update
type UpdateListingRequest struct {
	Title        *string  `json:"title,omitempty"`
	PropertyType *string  `json:"propertyType,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	AreaM2       *float64 `json:"area,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *int     `json:"bathrooms,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Features     []string `json:"features,omitempty"`
	Images       []string `json:"images,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

// FeedbackRequest represents user feedback/action on a search result
type FeedbackRequest struct {
	SearchID  string `json:"search_id" binding:"required"`
	ListingID string `json:"listing_id" binding:"required"`
	Action    string `json:"action" binding:"required"` // click, contact, view_details
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
