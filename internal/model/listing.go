package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Property type values stored in the listings table.
const (
	TypeApartamento = "apartamento"
	TypeCasa        = "casa"
	TypeOficina     = "oficina"
	TypeLocal       = "local"
	TypeLote        = "lote"
)

// StatusDisponible marks a listing as publicly available. Only listings in
// this status are ever surfaced to searchers or the chat assistant.
const StatusDisponible = "disponible"

// Listing represents a property listing
type Listing struct {
	ID           string     `json:"id" db:"id"`
	Title        *string    `json:"title,omitempty" db:"title"`
	PropertyType *string    `json:"propertyType,omitempty" db:"property_type"`
	Location     *string    `json:"location,omitempty" db:"location"`
	Price        *float64   `json:"price,omitempty" db:"price"`
	AreaM2       *float64   `json:"area,omitempty" db:"area_m2"`
	Bedrooms     *int       `json:"bedrooms,omitempty" db:"bedrooms"`
	Bathrooms    *int       `json:"bathrooms,omitempty" db:"bathrooms"`
	Description  *string    `json:"description,omitempty" db:"description"`
	Features     JSONArray  `json:"features,omitempty" db:"features"`
	Images       JSONArray  `json:"images,omitempty" db:"images"`
	Status       string     `json:"status" db:"status"`
	OwnerID      *string    `json:"ownerId,omitempty" db:"owner_id"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	ListedDate   *time.Time `json:"listedDate,omitempty" db:"listed_date"`
}

// ListingResult represents a ranked search result
type ListingResult struct {
	Listing
	Score          float64  `json:"score"`
	MatchedReasons []string `json:"matched_reasons"`
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
