package usecase

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/stretchr/testify/mock"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, userID string, l domain.NewListing) (string, error) {
	args := m.Called(ctx, userID, l)
	return args.String(0), args.Error(1)
}

func (m *MockListingRepository) DeleteOwned(ctx context.Context, id, userID string) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) FindAll(ctx context.Context) ([]*domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) (string, error) {
	args := m.Called(ctx, item)
	return args.String(0), args.Error(1)
}

func (m *MockInventoryRepository) FindRecentByUserID(ctx context.Context, userID string, limit int) ([]*domain.InventoryItem, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InventoryItem), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) SendListingCreatedEmail(ctx context.Context, toEmail, listingName string) error {
	args := m.Called(ctx, toEmail, listingName)
	return args.Error(0)
}

type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) GenerateSuggestion(ctx context.Context, req domain.SuggestionRequest) (*domain.PricingSuggestion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingSuggestion), args.Error(1)
}

type MockGateway struct{ mock.Mock }

func (m *MockGateway) Recommend(ctx context.Context, req domain.RecommendationRequest) (domain.Recommendation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Recommendation), args.Error(1)
}

type MockQuota struct{ mock.Mock }

func (m *MockQuota) Allow(ctx context.Context, userID, bucket string) (bool, error) {
	args := m.Called(ctx, userID, bucket)
	return args.Bool(0), args.Error(1)
}

type MockImageStorage struct{ mock.Mock }

func (m *MockImageStorage) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, contentType, data)
	return args.String(0), args.Error(1)
}
