package usecase

import (
	"context"
	"errors"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/metrics"
	"go.uber.org/zap"
)

// inventoryContextSize is how many recent inventory rows go into the prompt.
const inventoryContextSize = 5

// SuggestionUsecase produces AI pricing suggestions.
type SuggestionUsecase struct {
	generator domain.SuggestionGenerator
	inventory domain.InventoryRepository // optional prompt context
	quota     domain.QuotaLimiter
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewSuggestionUsecase(
	generator domain.SuggestionGenerator,
	inventory domain.InventoryRepository,
	quota domain.QuotaLimiter,
	mm *metrics.MetricsManager,
	log *logger.Logger,
) *SuggestionUsecase {
	return &SuggestionUsecase{
		generator: generator,
		inventory: inventory,
		quota:     quota,
		metrics:   mm,
		logger:    log.Named("SuggestionUsecase"),
	}
}

// GenerateSuggestion returns the model's structured suggestion unchanged, or
// an error. It never returns a partially populated suggestion.
func (uc *SuggestionUsecase) GenerateSuggestion(ctx context.Context, caller domain.Caller, price string) (_ *domain.PricingSuggestion, err error) {
	ctx, span := tracer.Start(ctx, "SuggestionUsecase.GenerateSuggestion")
	defer func() { endSpan(span, err) }()

	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	price, err = domain.ValidateSuggestionPrice(price)
	if err != nil {
		return nil, err
	}
	if err := checkQuota(ctx, uc.quota, uc.logger, caller.UserID, QuotaBucketSuggestion); err != nil {
		return nil, err
	}
	uc.logger.Info("Generating pricing suggestion", zap.String("caller_id", caller.UserID), zap.String("price", price))

	req := domain.SuggestionRequest{CurrentPrice: price}
	if uc.inventory != nil {
		items, err := uc.inventory.FindRecentByUserID(ctx, caller.UserID, inventoryContextSize)
		if err != nil {
			uc.logger.Error("Failed to load inventory context", zap.String("caller_id", caller.UserID), zap.Error(err))
			return nil, domain.NewInternalError(domain.ErrSuggestionFailed.Error(), err)
		}
		req.Inventory = items
	}

	suggestion, err := uc.generator.GenerateSuggestion(ctx, req)
	if err == nil {
		err = suggestion.Validate()
	}
	uc.metrics.ObserveAICall("genai", err)
	if err != nil {
		uc.logger.Error("Pricing suggestion failed", zap.String("caller_id", caller.UserID), zap.Error(err))
		var de *domain.Error
		if errors.As(err, &de) && de.Kind == domain.KindIntegrity {
			return nil, de
		}
		return nil, domain.NewInternalError(domain.ErrSuggestionFailed.Error(), err)
	}
	return suggestion, nil
}
