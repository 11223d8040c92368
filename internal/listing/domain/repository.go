package domain

import "context"

// ListingRepository is the relational store contract for listings.
// All list methods order by creation time ascending, ties by insertion order.
type ListingRepository interface {
	// Create persists l and returns the store-generated id.
	// ErrEmptyInsert is returned when the store yields no row.
	Create(ctx context.Context, userID string, l NewListing) (string, error)
	// DeleteOwned removes the listing only if it is owned by userID, in one
	// statement. It returns the number of rows removed.
	DeleteOwned(ctx context.Context, id, userID string) (int64, error)
	FindAll(ctx context.Context) ([]*Listing, error)
	FindByUserID(ctx context.Context, userID string) ([]*Listing, error)
}

// InventoryRepository stores farmer inventory items.
type InventoryRepository interface {
	Create(ctx context.Context, item *InventoryItem) (string, error)
	// FindRecentByUserID returns up to limit items, newest first.
	FindRecentByUserID(ctx context.Context, userID string, limit int) ([]*InventoryItem, error)
}

// SuggestionGenerator is the generative-text capability.
type SuggestionGenerator interface {
	GenerateSuggestion(ctx context.Context, req SuggestionRequest) (*PricingSuggestion, error)
}

// RecommendationGateway forwards a request to the federated service.
type RecommendationGateway interface {
	Recommend(ctx context.Context, req RecommendationRequest) (Recommendation, error)
}

// EventPublisher emits domain events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Notifier sends a confirmation to the listing owner.
type Notifier interface {
	SendListingCreatedEmail(ctx context.Context, toEmail, listingName string) error
}

// QuotaLimiter guards the external AI procedures per user.
type QuotaLimiter interface {
	// Allow reports whether userID may make another call in the current window.
	Allow(ctx context.Context, userID, bucket string) (bool, error)
}

// ImageStorage stores listing images and returns their URL.
type ImageStorage interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error)
}
