package exceptions

import (
	"errors"
	"fmt"
	"runtime"

	"mindscreen-service/internal/pkg/constvars"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	Kind          ErrorKind  `json:"kind,omitempty"`
	Code          ErrorCode  `json:"code,omitempty"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.DevMessage, e.Err.Error())
	}
	return e.DevMessage
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// BuildNewCustomError wraps err with an HTTP status and the caller location.
// When err is itself a CustomError the locations are chained.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	customErr := &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Err:           err,
	}

	var previous *CustomError
	if errors.As(err, &previous) {
		customErr.Locations = append(customErr.Locations, previous.Locations...)
	}
	customErr.Locations = append(customErr.Locations, getLocation(3))
	return customErr
}

func buildDomainError(code ErrorCode, statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		Kind:          KindOf(code),
		Code:          code,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(3)},
	}
}

// HasCode reports whether err carries the given domain code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var customErr *CustomError
		if !errors.As(err, &customErr) {
			return false
		}
		if customErr.Code == code {
			return true
		}
		err = customErr.Err
	}
	return false
}

// CodeOf returns the first domain code found in the chain of err.
func CodeOf(err error) ErrorCode {
	for err != nil {
		var customErr *CustomError
		if !errors.As(err, &customErr) {
			return ""
		}
		if customErr.Code != "" {
			return customErr.Code
		}
		err = customErr.Err
	}
	return ""
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ErrFileLocationUnknown,
			FunctionName: constvars.ErrFunctionNameUnknown,
		}
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: runtime.FuncForPC(pc).Name(),
	}
}
