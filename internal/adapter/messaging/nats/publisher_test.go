package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/agromarket-service/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	msgs []*nats.Msg
	err  error
}

func (r *recordingConn) PublishMsg(m *nats.Msg) error {
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, m)
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	conn := &recordingConn{}
	p := newPublisherWithConn(conn, logger.NewNop())

	err := p.Publish(context.Background(), "listing.created", map[string]string{"id": "L1", "user_id": "u1"})

	require.NoError(t, err)
	require.Len(t, conn.msgs, 1)
	assert.Equal(t, "listing.created", conn.msgs[0].Subject)
	var body map[string]string
	require.NoError(t, json.Unmarshal(conn.msgs[0].Data, &body))
	assert.Equal(t, "L1", body["id"])
}

func TestPublisher_PublishErrors(t *testing.T) {
	conn := &recordingConn{err: errors.New("nats: connection closed")}
	p := newPublisherWithConn(conn, logger.NewNop())

	assert.Error(t, p.Publish(context.Background(), "listing.deleted", map[string]string{"id": "L1"}))
	assert.Error(t, p.Publish(context.Background(), "listing.deleted", make(chan int)))
}

func TestHeaderCarrier(t *testing.T) {
	h := nats.Header{}
	c := HeaderCarrier(h)
	c.Set("traceparent", "00-abc-def-01")

	assert.Equal(t, "00-abc-def-01", c.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())
}
