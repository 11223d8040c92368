package usecase

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"go.uber.org/zap"
)

type InventoryUsecase struct {
	repo   domain.InventoryRepository
	logger *logger.Logger
}

func NewInventoryUsecase(repo domain.InventoryRepository, log *logger.Logger) *InventoryUsecase {
	return &InventoryUsecase{repo: repo, logger: log.Named("InventoryUsecase")}
}

// PushInventory validates item and stores it for the caller.
func (uc *InventoryUsecase) PushInventory(ctx context.Context, caller domain.Caller, item domain.InventoryItem) (string, error) {
	if err := requireCaller(caller); err != nil {
		return "", err
	}
	item, err := item.Validate()
	if err != nil {
		return "", err
	}
	item.ID = ""
	item.UserID = caller.UserID

	uc.logger.Info("Pushing inventory item", zap.String("caller_id", caller.UserID), zap.String("crop_name", item.CropName))
	id, err := uc.repo.Create(ctx, &item)
	if err != nil {
		uc.logger.Error("Failed to store inventory item", zap.String("caller_id", caller.UserID), zap.Error(err))
		return "", domain.NewInternalError("failed to store inventory item", err)
	}
	return id, nil
}

// PullInventory returns the caller's most recent items.
func (uc *InventoryUsecase) PullInventory(ctx context.Context, caller domain.Caller, limit int) ([]*domain.InventoryItem, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	limit = domain.ClampInventoryLimit(limit)

	items, err := uc.repo.FindRecentByUserID(ctx, caller.UserID, limit)
	if err != nil {
		uc.logger.Error("Failed to pull inventory", zap.String("caller_id", caller.UserID), zap.Error(err))
		return nil, domain.NewInternalError("failed to fetch inventory", err)
	}
	return items, nil
}
