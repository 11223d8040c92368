package usecase

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"go.uber.org/zap"
)

const (
	QuotaBucketSuggestion     = "suggestion"
	QuotaBucketRecommendation = "recommendation"
)

// checkQuota fails closed: a limiter error is reported as an internal error.
func checkQuota(ctx context.Context, limiter domain.QuotaLimiter, log *logger.Logger, userID, bucket string) error {
	if limiter == nil {
		return nil
	}
	ok, err := limiter.Allow(ctx, userID, bucket)
	if err != nil {
		log.Error("Quota check failed", zap.String("user_id", userID), zap.String("bucket", bucket), zap.Error(err))
		return domain.NewInternalError("internal error", err)
	}
	if !ok {
		log.Warn("AI quota exceeded", zap.String("user_id", userID), zap.String("bucket", bucket))
		return domain.NewRateLimitedError()
	}
	return nil
}
