package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"go.uber.org/zap"
)

func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var err error
				switch x := rec.(type) {
				case string:
					err = errors.New(x)
				case error:
					err = x
				default:
					err = fmt.Errorf("unknown panic: %v", x)
				}

				requestID := utils.GetRequestID(r.Context())
				m.Log.Error("middlewares.ErrorHandler recovered from panic",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingEndpointKey, r.URL.Path),
					zap.Error(err),
					zap.Stack("stack"),
				)
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrPanicRecovered(err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
