package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fullSuggestion() *domain.PricingSuggestion {
	return &domain.PricingSuggestion{
		Suggestions: domain.SuggestedTerms{Price: "45", Quantity: "20kg", Place: "Almaty bazaar"},
		Reasoning:   "Demand is rising before the weekend.",
	}
}

func TestGenerateSuggestion_Success(t *testing.T) {
	gen := new(MockGenerator)
	inv := new(MockInventoryRepository)
	quota := new(MockQuota)
	uc := NewSuggestionUsecase(gen, inv, quota, metrics.NewMetricsManager("test"), logger.NewNop())

	items := []*domain.InventoryItem{{CropName: "wheat", Quantity: 3, Unit: domain.UnitTonne}}
	quota.On("Allow", mock.Anything, "u1", QuotaBucketSuggestion).Return(true, nil).Once()
	inv.On("FindRecentByUserID", mock.Anything, "u1", inventoryContextSize).Return(items, nil).Once()
	gen.On("GenerateSuggestion", mock.Anything, domain.SuggestionRequest{CurrentPrice: "40", Inventory: items}).
		Return(fullSuggestion(), nil).Once()

	got, err := uc.GenerateSuggestion(context.Background(), farmerU1, " 40 ")

	require.NoError(t, err)
	assert.Equal(t, fullSuggestion(), got)
	gen.AssertExpectations(t)
	inv.AssertExpectations(t)
	quota.AssertExpectations(t)
}

func TestGenerateSuggestion_PartialIsIntegrityError(t *testing.T) {
	gen := new(MockGenerator)
	uc := NewSuggestionUsecase(gen, nil, nil, nil, logger.NewNop())

	partial := fullSuggestion()
	partial.Suggestions.Place = ""
	gen.On("GenerateSuggestion", mock.Anything, mock.Anything).Return(partial, nil)

	got, err := uc.GenerateSuggestion(context.Background(), farmerU1, "40")

	assert.Nil(t, got)
	assert.Equal(t, domain.KindIntegrity, domain.KindOf(err))
	assert.Contains(t, err.Error(), "suggestions.place")
}

func TestGenerateSuggestion_ProviderFailure(t *testing.T) {
	gen := new(MockGenerator)
	uc := NewSuggestionUsecase(gen, nil, nil, nil, logger.NewNop())
	gen.On("GenerateSuggestion", mock.Anything, mock.Anything).Return(nil, errors.New("deadline exceeded"))

	got, err := uc.GenerateSuggestion(context.Background(), farmerU1, "40")

	assert.Nil(t, got)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindInternal, de.Kind)
	assert.Equal(t, domain.ErrSuggestionFailed.Error(), de.Message)
}

func TestGenerateSuggestion_Guards(t *testing.T) {
	gen := new(MockGenerator)
	quota := new(MockQuota)
	uc := NewSuggestionUsecase(gen, nil, quota, nil, logger.NewNop())

	_, err := uc.GenerateSuggestion(context.Background(), nobody, "40")
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))

	_, err = uc.GenerateSuggestion(context.Background(), farmerU1, "   ")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	quota.On("Allow", mock.Anything, "u1", QuotaBucketSuggestion).Return(false, nil).Once()
	_, err = uc.GenerateSuggestion(context.Background(), farmerU1, "40")
	assert.Equal(t, domain.KindRateLimited, domain.KindOf(err))

	quota.On("Allow", mock.Anything, "u1", QuotaBucketSuggestion).Return(false, errors.New("redis down")).Once()
	_, err = uc.GenerateSuggestion(context.Background(), farmerU1, "40")
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))

	gen.AssertNotCalled(t, "GenerateSuggestion", mock.Anything, mock.Anything)
}

func TestGenerateSuggestion_InventoryContextFailure(t *testing.T) {
	gen := new(MockGenerator)
	inv := new(MockInventoryRepository)
	uc := NewSuggestionUsecase(gen, inv, nil, nil, logger.NewNop())
	inv.On("FindRecentByUserID", mock.Anything, "u1", inventoryContextSize).Return(nil, errors.New("db down"))

	_, err := uc.GenerateSuggestion(context.Background(), farmerU1, "40")

	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	gen.AssertNotCalled(t, "GenerateSuggestion", mock.Anything, mock.Anything)
}
