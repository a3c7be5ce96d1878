package mailer

import (
	"context"
	"errors"
	"testing"

	"mindscreen-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingChannel struct {
	key     string
	message amqp091.Publishing
	err     error
}

func (c *recordingChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	c.key = key
	c.message = msg
	return c.err
}

func TestMailerService_SendEmail(t *testing.T) {
	payload := &requests.EmailPayload{
		To:       []string{"reviewer@example.com"},
		Subject:  "flagged",
		HTMLCode: "<p>response r-1 needs review</p>",
	}

	t.Run("publishes to the mail queue", func(t *testing.T) {
		channel := &recordingChannel{}
		svc := &mailerService{Channel: channel, Queue: "mail", Log: zap.NewNop()}

		require.NoError(t, svc.SendEmail(context.Background(), payload))
		assert.Equal(t, "mail", channel.key)
		assert.Equal(t, "DROP", channel.message.Headers["requeue_strategy"])

		var decoded requests.EmailPayload
		require.NoError(t, json.Unmarshal(channel.message.Body, &decoded))
		assert.Equal(t, payload.To, decoded.To)
	})

	t.Run("publish failure", func(t *testing.T) {
		channel := &recordingChannel{err: errors.New("closed")}
		svc := &mailerService{Channel: channel, Queue: "mail", Log: zap.NewNop()}

		assert.Error(t, svc.SendEmail(context.Background(), payload))
	})
}
