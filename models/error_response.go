package models

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindUpstream ErrorKind = iota
	KindNotFound
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "upstream"
	}
}

// StatusCode is the HTTP status and envelope errorCode of the kind.
func (k ErrorKind) StatusCode() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// APIError is the tagged error surfaced to HTTP clients.
type APIError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NotFoundError(message string, err error) *APIError {
	return &APIError{Kind: KindNotFound, Message: message, Err: err}
}

func ValidationError(message string, err error) *APIError {
	return &APIError{Kind: KindValidation, Message: message, Err: err}
}

func UpstreamError(message string, err error) *APIError {
	return &APIError{Kind: KindUpstream, Message: message, Err: err}
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Success      bool   `json:"success"`
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// NewErrorResponse builds the envelope. Errors that are not an *APIError are
// reported as upstream failures.
func NewErrorResponse(err error) ErrorResponse {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = UpstreamError(err.Error(), nil)
	}
	message := apiErr.Message
	if apiErr.Kind == KindValidation && apiErr.Err != nil {
		message = apiErr.Error()
	}
	return ErrorResponse{
		Success:      false,
		ErrorCode:    apiErr.Kind.StatusCode(),
		ErrorMessage: message,
	}
}
