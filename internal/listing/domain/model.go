package domain

import (
	"encoding/json"
	"time"
)

// Listing is one farmer's sellable item.
type Listing struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Quantity    string    `json:"quantity"`
	Description *string   `json:"description"`
	Image       string    `json:"image"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewListing is the validated input of a create. It deliberately has no owner
// field: the owner always comes from the authenticated caller.
type NewListing struct {
	Name        string
	Price       string
	Quantity    string
	Description *string
	Image       string
}

// RecommendationRequest is forwarded to the federated recommendation service.
type RecommendationRequest struct {
	Crop            string  `json:"crop"`
	CurrentPrice    float64 `json:"current_price"`
	CurrentLocation string  `json:"current_location"`
}

// Recommendation is the upstream `recommendation` value, kept verbatim.
type Recommendation = json.RawMessage

// SuggestedTerms are the structured selling terms proposed by the AI.
type SuggestedTerms struct {
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Place    string `json:"place"`
}

// PricingSuggestion is what generateSuggestion returns.
type PricingSuggestion struct {
	Suggestions SuggestedTerms `json:"suggestions"`
	Reasoning   string         `json:"reasoning"`
}

// SuggestionRequest carries the prompt inputs for the generative model.
type SuggestionRequest struct {
	CurrentPrice string
	Inventory    []*InventoryItem
}

// Caller is the identity resolved by the identity provider for one request.
type Caller struct {
	UserID string
	Email  string
}

// Authenticated reports whether an identity is present.
func (c Caller) Authenticated() bool { return c.UserID != "" }
