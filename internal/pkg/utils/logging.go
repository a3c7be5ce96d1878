package utils

import (
	"context"
	"time"

	"mindscreen-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// LogBusinessEvent records a lifecycle event of a response next to its request.
func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	allFields := make([]zap.Field, 0, len(fields)+3)
	allFields = append(allFields,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event),
		zap.Time(constvars.LoggingOccurredAtKey, time.Now().UTC()),
	)
	allFields = append(allFields, fields...)

	logger.Info("Response event recorded", allFields...)
}

// GetRequestID returns the request id stored by the RequestID middleware or
// the rescoring worker, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}
