package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("agromarket-service/nats-publisher")

type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

type Publisher struct {
	conn   msgPublisher
	close  func()
	logger *logger.Logger
}

var _ domain.EventPublisher = (*Publisher)(nil)

func NewPublisher(url string, log *logger.Logger, appName string) (*Publisher, error) {
	log.Info("NATS Publisher: connecting...", zap.String("url", url))

	opts := []nats.Option{
		nats.Name(fmt.Sprintf("%s NATS Publisher", appName)),
		nats.Timeout(10 * time.Second),
		nats.MaxReconnects(-1),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			subject := ""
			if sub != nil {
				subject = sub.Subject
			}
			log.Error("NATS error", zap.String("subject", subject), zap.Error(err))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Info("NATS connection closed")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		log.Error("NATS Publisher: failed to connect", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	log.Info("NATS Publisher: connected", zap.String("url", conn.ConnectedUrl()))

	return &Publisher{conn: conn, close: conn.Close, logger: log.Named("NATSPublisher")}, nil
}

func newPublisherWithConn(conn msgPublisher, log *logger.Logger) *Publisher {
	return &Publisher{conn: conn, close: func() {}, logger: log.Named("NATSPublisher")}
}

// Publish sends data as JSON with the trace context in the message headers.
func (p *Publisher) Publish(ctx context.Context, subject string, data interface{}) error {
	ctx, span := tracer.Start(ctx, "NATS.Publish."+subject)
	defer span.End()

	payload, err := json.Marshal(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal")
		return fmt.Errorf("failed to marshal data for subject %s: %w", subject, err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = payload
	otel.GetTextMapPropagator().Inject(ctx, HeaderCarrier(msg.Header))

	if err := p.conn.PublishMsg(msg); err != nil {
		p.logger.Error("Failed to publish message", zap.String("subject", subject), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish")
		return fmt.Errorf("failed to publish message to subject %s: %w", subject, err)
	}
	p.logger.Debug("Message published", zap.String("subject", subject), zap.Int("bytes", len(payload)))
	return nil
}

func (p *Publisher) Close() {
	p.close()
}
