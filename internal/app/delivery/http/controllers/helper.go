package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// decodeRequestBody reads the whole body before decoding so an oversized
// body surfaces as a 413 instead of a parse error. An empty body is only
// accepted when optional is set.
func decodeRequestBody(r *http.Request, dst interface{}, optional bool) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return exceptions.ErrRequestBodyTooLarge(err, maxErr.Limit)
		}
		return exceptions.ErrCannotParseJSON(err)
	}
	if len(body) == 0 && optional {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

func requestIDFrom(r *http.Request) string {
	return utils.GetRequestID(r.Context())
}

func buildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = exceptions.ErrServerDeadlineExceeded(err)
	}
	utils.BuildErrorResponse(log, w, err)
}
