package eventqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindscreen-service/internal/app/models"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	published []amqp.Publishing
	queues    []string
	confirms  chan amqp.Confirmation
	ack       bool
	silent    bool
	err       error
}

func newFakeChannel(ack bool) *fakeChannel {
	return &fakeChannel{confirms: make(chan amqp.Confirmation, 1), ack: ack}
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	f.queues = append(f.queues, key)
	if !f.silent {
		f.confirms <- amqp.Confirmation{DeliveryTag: uint64(len(f.published)), Ack: f.ack}
	}
	return nil
}

func TestService_PublishResponseEvent(t *testing.T) {
	score := 12.0
	risk := "moderate"
	event := models.ResponseEvent{
		ID:               "evt-1",
		Type:             "response.scored",
		ResponseID:       "r-1",
		QuestionnaireID:  "q-1",
		State:            models.ResponseStateScored,
		Score:            &score,
		RiskLevel:        &risk,
		FlaggedForReview: true,
		OccurredAt:       time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
	}

	t.Run("confirmed publish", func(t *testing.T) {
		ch := newFakeChannel(true)
		svc := newService(ch, ch.confirms, zap.NewNop(), "events", "analysis")

		require.NoError(t, svc.PublishResponseEvent(context.Background(), event))
		require.Len(t, ch.published, 1)
		assert.Equal(t, "events", ch.queues[0])
		assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)
		assert.Equal(t, "response.scored", ch.published[0].Type)

		var decoded models.ResponseEvent
		require.NoError(t, json.Unmarshal(ch.published[0].Body, &decoded))
		assert.Equal(t, event.ResponseID, decoded.ResponseID)
		assert.Equal(t, score, *decoded.Score)
	})

	t.Run("nack from broker", func(t *testing.T) {
		ch := newFakeChannel(false)
		svc := newService(ch, ch.confirms, zap.NewNop(), "events", "analysis")

		assert.Error(t, svc.PublishResponseEvent(context.Background(), event))
	})

	t.Run("publish failure", func(t *testing.T) {
		ch := newFakeChannel(true)
		ch.err = errors.New("channel closed")
		svc := newService(ch, ch.confirms, zap.NewNop(), "events", "analysis")

		assert.Error(t, svc.PublishResponseEvent(context.Background(), event))
	})

	t.Run("context ends before confirm", func(t *testing.T) {
		ch := newFakeChannel(true)
		ch.silent = true
		svc := newService(ch, ch.confirms, zap.NewNop(), "events", "analysis")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.Error(t, svc.PublishResponseEvent(ctx, event))
	})
}

func TestService_PublishAnalysisRequest(t *testing.T) {
	ch := newFakeChannel(true)
	svc := newService(ch, ch.confirms, zap.NewNop(), "events", "analysis")

	err := svc.PublishAnalysisRequest(context.Background(), models.AnalysisRequest{
		ResponseID:      "r-1",
		QuestionnaireID: "q-1",
		Score:           9,
		RiskLevel:       "mild",
	})
	require.NoError(t, err)
	require.Len(t, ch.queues, 1)
	assert.Equal(t, "analysis", ch.queues[0])
	assert.NoError(t, svc.Close())
}
