package rest

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
)

type ListingService interface {
	GetAllListings(ctx context.Context, caller domain.Caller) ([]*domain.Listing, error)
	GetListingsByUser(ctx context.Context, caller domain.Caller, userID string) ([]*domain.Listing, error)
	GetFarmerListings(ctx context.Context, caller domain.Caller) ([]*domain.Listing, error)
	AddListing(ctx context.Context, caller domain.Caller, in domain.NewListing) (string, error)
	DeleteListing(ctx context.Context, caller domain.Caller, id string) error
}

type SuggestionService interface {
	GenerateSuggestion(ctx context.Context, caller domain.Caller, price string) (*domain.PricingSuggestion, error)
}

type RecommendationService interface {
	Recommend(ctx context.Context, caller domain.Caller, req domain.RecommendationRequest) (domain.Recommendation, error)
}

type InventoryService interface {
	PushInventory(ctx context.Context, caller domain.Caller, item domain.InventoryItem) (string, error)
	PullInventory(ctx context.Context, caller domain.Caller, limit int) ([]*domain.InventoryItem, error)
}

type ImageService interface {
	UploadListingImage(ctx context.Context, caller domain.Caller, fileName, contentType string, data []byte) (string, error)
}
