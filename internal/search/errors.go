package search

import "net/http"

// AppError is a user-facing error with an HTTP status already attached,
// so handlers never have to re-map codes.
type AppError struct {
	Status  int       `json:"-"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"error"`
}

func (e *AppError) Error() string {
	return e.Message
}

func badRequest(code ErrorCode, message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: code, Message: message}
}

func unavailable(code ErrorCode, message string) *AppError {
	return &AppError{Status: http.StatusServiceUnavailable, Code: code, Message: message}
}

func upstream(message string) *AppError {
	return &AppError{Status: http.StatusBadGateway, Code: ErrorCodeUpstream, Message: message}
}
