package model

import "time"

// Chat message roles. Anything that is not literally "assistant" is treated
// as a user turn when the prompt is assembled.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is a single turn of the conversation, supplied by the caller
// per request. Conversations are not persisted server-side.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ChatRequest is the inbound body of POST /api/v1/chat
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history,omitempty"`
}

// ChatResponse is the success body of POST /api/v1/chat.
// HasPropertyData reports whether live listing data was injected into the
// prompt for this turn.
type ChatResponse struct {
	Response        string `json:"response"`
	Success         bool   `json:"success"`
	HasPropertyData bool   `json:"hasPropertyData"`
}

// ChatErrorResponse is the failure body of POST /api/v1/chat
type ChatErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// SearchParams holds the optional search signals extracted from a free-text
// chat message. Produced fresh per message, never persisted.
type SearchParams struct {
	PropertyType *string    `json:"property_type,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Bedrooms     *int       `json:"bedrooms,omitempty"`
	PriceRange   *PriceRange `json:"price_range,omitempty"`
	BrowseAll    bool       `json:"browse_all,omitempty"`
}

// PriceRange is an optional price bound in COP
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// IsEmpty reports whether no signal was extracted from the message
func (p SearchParams) IsEmpty() bool {
	return p.PropertyType == nil && p.Location == nil && p.Bedrooms == nil &&
		p.PriceRange == nil && !p.BrowseAll
}
