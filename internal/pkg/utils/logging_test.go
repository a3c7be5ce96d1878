package utils

import (
	"context"
	"testing"

	"mindscreen-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestGetRequestID(t *testing.T) {
	t.Run("request id stored by middleware", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "MNDSCR_SVC_abc")
		assert.Equal(t, "MNDSCR_SVC_abc", GetRequestID(ctx))
	})

	t.Run("outside a request", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
	})

	t.Run("value of another type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, 42)
		assert.Empty(t, GetRequestID(ctx))
	})
}
