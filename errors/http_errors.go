// errors/http_errors.go
package errors

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrorResponse is the JSON body the HR platform attaches to non-2xx
// responses. Both fields are optional and the body may be plain text.
type ErrorResponse struct {
	Errors  map[string][]string `json:"errors"`
	Message string              `json:"message"`
}

func NewAuthenticationError(endpoint string) *APIError {
	return &APIError{
		Kind:       KindAuthentication,
		Message:    "authentication failed",
		StatusCode: 401,
		Endpoint:   endpoint,
	}
}

func NewAuthorizationError(endpoint string) *APIError {
	return &APIError{
		Kind:       KindAuthorization,
		Message:    "access forbidden",
		StatusCode: 403,
		Endpoint:   endpoint,
	}
}

func NewNotFoundError(endpoint string) *APIError {
	return &APIError{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf("resource not found: %s", endpoint),
		StatusCode: 404,
		Endpoint:   endpoint,
	}
}

func NewValidationError(endpoint string, resp *ErrorResponse) *APIError {
	return &APIError{
		Kind:             KindValidation,
		Message:          FormatValidationErrors(resp),
		StatusCode:       400,
		Endpoint:         endpoint,
		ValidationErrors: validationErrorMap(resp),
	}
}

func NewConflictError(endpoint string, resp *ErrorResponse) *APIError {
	msg := "resource conflict"
	if resp != nil && resp.Message != "" {
		msg = resp.Message
	}
	return &APIError{
		Kind:       KindConflict,
		Message:    msg,
		StatusCode: 409,
		Endpoint:   endpoint,
	}
}

// NewUnprocessableEntityError extracts per-field messages from the raw
// response body. A malformed or missing "errors" key yields an empty map,
// never a failure.
func NewUnprocessableEntityError(endpoint string, body []byte) *APIError {
	fieldErrors := map[string][]string{}
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Errors != nil {
		fieldErrors = resp.Errors
	}
	return &APIError{
		Kind:             KindUnprocessableEntity,
		Message:          "unprocessable entity",
		StatusCode:       422,
		Endpoint:         endpoint,
		ValidationErrors: fieldErrors,
	}
}

func NewRateLimitError(endpoint string, retryAfter int) *APIError {
	return &APIError{
		Kind:       KindRateLimit,
		Message:    "rate limit exceeded",
		Retryable:  true,
		StatusCode: 429,
		Endpoint:   endpoint,
		RetryAfter: retryAfter,
	}
}

func NewServerError(endpoint string, statusCode int) *APIError {
	return &APIError{
		Kind:       KindServer,
		Message:    fmt.Sprintf("server error (%d)", statusCode),
		Retryable:  true,
		StatusCode: statusCode,
		Endpoint:   endpoint,
	}
}

func NewTimeoutError(endpoint string, timeout time.Duration) *APIError {
	return &APIError{
		Kind:      KindTimeout,
		Message:   fmt.Sprintf("request to %s timed out after %s", endpoint, timeout),
		Retryable: true,
		Endpoint:  endpoint,
		Timeout:   timeout,
	}
}

func NewNetworkError(endpoint string, cause error) *APIError {
	return &APIError{
		Kind:      KindNetwork,
		Message:   fmt.Sprintf("network failure on %s", endpoint),
		Retryable: true,
		Endpoint:  endpoint,
		Cause:     cause,
	}
}

func validationErrorMap(resp *ErrorResponse) map[string][]string {
	if resp == nil || resp.Errors == nil {
		return map[string][]string{}
	}
	return resp.Errors
}
