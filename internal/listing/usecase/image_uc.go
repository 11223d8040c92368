package usecase

import (
	"context"
	"strings"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"go.uber.org/zap"
)

// MaxImageBytes bounds a single listing image upload.
const MaxImageBytes = 5 << 20

type ImageUsecase struct {
	storage domain.ImageStorage
	logger  *logger.Logger
}

func NewImageUsecase(storage domain.ImageStorage, log *logger.Logger) *ImageUsecase {
	return &ImageUsecase{storage: storage, logger: log.Named("ImageUsecase")}
}

// UploadListingImage stores an image and returns the URL to use as a listing's image.
func (uc *ImageUsecase) UploadListingImage(ctx context.Context, caller domain.Caller, fileName, contentType string, data []byte) (string, error) {
	if err := requireCaller(caller); err != nil {
		return "", err
	}
	fields := map[string]string{}
	if len(data) == 0 {
		fields["image"] = "image is required"
	} else if len(data) > MaxImageBytes {
		fields["image"] = "image must not exceed 5 MiB"
	}
	if !strings.HasPrefix(contentType, "image/") {
		fields["content_type"] = "content type must be image/*"
	}
	if len(fields) > 0 {
		return "", domain.NewValidationError(fields)
	}

	url, err := uc.storage.Upload(ctx, fileName, contentType, data)
	if err != nil {
		uc.logger.Error("Failed to upload listing image", zap.String("caller_id", caller.UserID), zap.Error(err))
		return "", domain.NewInternalError("failed to upload image", err)
	}
	uc.logger.Info("Listing image uploaded", zap.String("caller_id", caller.UserID), zap.String("url", url))
	return url, nil
}
