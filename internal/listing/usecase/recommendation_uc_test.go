package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rice() domain.RecommendationRequest {
	return domain.RecommendationRequest{Crop: "rice", CurrentPrice: 30, CurrentLocation: "Pune"}
}

func TestRecommend_ReturnsUpstreamValueVerbatim(t *testing.T) {
	gw := new(MockGateway)
	uc := NewRecommendationUsecase(gw, nil, metrics.NewMetricsManager("test"), logger.NewNop())

	raw := json.RawMessage(`{"best_market":"Nashik","price":34.5}`)
	gw.On("Recommend", mock.Anything, rice()).Return(raw, nil).Once()

	got, err := uc.Recommend(context.Background(), farmerU1, rice())

	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(got))
	gw.AssertExpectations(t)
}

func TestRecommend_UnauthenticatedMakesNoCall(t *testing.T) {
	gw := new(MockGateway)
	quota := new(MockQuota)
	uc := NewRecommendationUsecase(gw, quota, nil, logger.NewNop())

	_, err := uc.Recommend(context.Background(), nobody, rice())

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	gw.AssertNumberOfCalls(t, "Recommend", 0)
	quota.AssertNumberOfCalls(t, "Allow", 0)
}

func TestRecommend_InvalidInputMakesNoCall(t *testing.T) {
	gw := new(MockGateway)
	uc := NewRecommendationUsecase(gw, nil, nil, logger.NewNop())

	req := rice()
	req.Crop = ""
	req.CurrentPrice = -1
	_, err := uc.Recommend(context.Background(), farmerU1, req)

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Fields, "crop")
	assert.Contains(t, de.Fields, "current_price")
	gw.AssertNumberOfCalls(t, "Recommend", 0)
}

func TestRecommend_TypedGatewayErrorsPassThrough(t *testing.T) {
	gw := new(MockGateway)
	uc := NewRecommendationUsecase(gw, nil, nil, logger.NewNop())
	gw.On("Recommend", mock.Anything, mock.Anything).Return(nil, domain.NewUpstreamError(500, "boom")).Once()

	_, err := uc.Recommend(context.Background(), farmerU1, rice())

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindUpstream, de.Kind)
	assert.Equal(t, 500, de.UpstreamStatus)
	assert.Equal(t, "boom", de.UpstreamBody)
}

func TestRecommend_UntypedGatewayErrorIsInternal(t *testing.T) {
	gw := new(MockGateway)
	uc := NewRecommendationUsecase(gw, nil, nil, logger.NewNop())
	gw.On("Recommend", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: refused")).Once()

	_, err := uc.Recommend(context.Background(), farmerU1, rice())

	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestRecommend_QuotaExceeded(t *testing.T) {
	gw := new(MockGateway)
	quota := new(MockQuota)
	uc := NewRecommendationUsecase(gw, quota, nil, logger.NewNop())
	quota.On("Allow", mock.Anything, "u1", QuotaBucketRecommendation).Return(false, nil).Once()

	_, err := uc.Recommend(context.Background(), farmerU1, rice())

	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	gw.AssertNumberOfCalls(t, "Recommend", 0)
}
