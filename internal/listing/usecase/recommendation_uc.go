package usecase

import (
	"context"
	"errors"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/metrics"
	"go.uber.org/zap"
)

// RecommendationUsecase forwards recommendation requests to the federated service.
type RecommendationUsecase struct {
	gateway domain.RecommendationGateway
	quota   domain.QuotaLimiter
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

func NewRecommendationUsecase(
	gateway domain.RecommendationGateway,
	quota domain.QuotaLimiter,
	mm *metrics.MetricsManager,
	log *logger.Logger,
) *RecommendationUsecase {
	return &RecommendationUsecase{
		gateway: gateway,
		quota:   quota,
		metrics: mm,
		logger:  log.Named("RecommendationUsecase"),
	}
}

// Recommend checks identity before anything touches the network.
func (uc *RecommendationUsecase) Recommend(ctx context.Context, caller domain.Caller, req domain.RecommendationRequest) (_ domain.Recommendation, err error) {
	ctx, span := tracer.Start(ctx, "RecommendationUsecase.Recommend")
	defer func() { endSpan(span, err) }()

	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	req, err = req.Validate()
	if err != nil {
		return nil, err
	}
	if err := checkQuota(ctx, uc.quota, uc.logger, caller.UserID, QuotaBucketRecommendation); err != nil {
		return nil, err
	}
	uc.logger.Info("Requesting federated recommendation",
		zap.String("caller_id", caller.UserID),
		zap.String("crop", req.Crop),
		zap.String("location", req.CurrentLocation))

	rec, err := uc.gateway.Recommend(ctx, req)
	uc.metrics.ObserveAICall("federated", err)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, de
		}
		uc.logger.Error("Federated recommendation failed", zap.Error(err))
		return nil, domain.NewInternalError("internal error", err)
	}
	return rec, nil
}
