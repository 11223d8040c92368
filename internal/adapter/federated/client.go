package federated

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// DefaultTimeout bounds one recommendation round trip.
const DefaultTimeout = 8000 * time.Millisecond

const maxBodyBytes = 1 << 20

var tracer = otel.Tracer("agromarket-service/federated")

// Client calls the federated recommendation service. One attempt per call.
type Client struct {
	url     string
	http    *http.Client
	timeout time.Duration
	logger  *logger.Logger
}

var _ domain.RecommendationGateway = (*Client)(nil)

func NewClient(url string, log *logger.Logger) *Client {
	return &Client{
		url:     url,
		http:    &http.Client{},
		timeout: DefaultTimeout,
		logger:  log.Named("FederatedClient"),
	}
}

// Recommend POSTs req and returns the upstream `recommendation` value unmodified.
// The timeout does not follow the caller's cancellation; when it elapses the
// request is aborted.
func (c *Client) Recommend(ctx context.Context, req domain.RecommendationRequest) (_ domain.Recommendation, err error) {
	ctx, span := tracer.Start(ctx, "Federated.Recommend")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(domain.KindOf(err)))
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		c.logger.Error("Failed to encode recommendation request", zap.Error(err))
		return nil, domain.NewInternalError("internal error", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("Failed to build recommendation request", zap.String("url", c.url), zap.Error(err))
		return nil, domain.NewInternalError("internal error", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Error("Federated request failed",
			zap.String("url", c.url), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, domain.NewInternalError("internal error", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Error("Failed to read federated response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, domain.NewInternalError("internal error", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Federated service returned non-success status",
			zap.Int("status", resp.StatusCode), zap.Int("body_bytes", len(body)))
		return nil, domain.NewUpstreamError(resp.StatusCode, string(body))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		c.logger.Error("Failed to decode federated response", zap.Error(err))
		return nil, domain.NewInternalError("internal error", err)
	}
	rec, ok := fields["recommendation"]
	if !ok || bytes.Equal(bytes.TrimSpace(rec), []byte("null")) {
		c.logger.Error("Federated response has no recommendation", zap.Int("body_bytes", len(body)))
		return nil, domain.NewIntegrityError("upstream response is missing recommendation",
			fmt.Errorf("recommendation field absent"))
	}

	c.logger.Info("Federated recommendation received", zap.Duration("elapsed", time.Since(start)))
	return rec, nil
}
