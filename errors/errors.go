// errors/errors.go
package errors

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies one failure mode in the closed taxonomy. Callers classify
// errors by Kind, never by matching message text.
type Kind string

const (
	KindAuthentication      Kind = "authentication"
	KindAuthorization       Kind = "authorization"
	KindNotFound            Kind = "not_found"
	KindValidation          Kind = "validation"
	KindConflict            Kind = "conflict"
	KindUnprocessableEntity Kind = "unprocessable_entity"
	KindRateLimit           Kind = "rate_limit"
	KindServer              Kind = "server"
	KindTimeout             Kind = "timeout"
	KindNetwork             Kind = "network"
	KindConfiguration       Kind = "configuration"
	KindSchemaValidation    Kind = "schema_validation"
	KindOperationCancelled  Kind = "operation_cancelled"
	KindConfirmationExpired Kind = "confirmation_expired"
)

// APIError is the single error type produced by the gateway. Each Kind has
// a fixed retryability bit; the pipeline is the only place that creates
// HTTP-flavored kinds.
type APIError struct {
	Kind             Kind
	Message          string
	Retryable        bool
	StatusCode       int
	Endpoint         string
	RetryAfter       int // seconds, set for rate-limit errors when the server sent a hint
	ValidationErrors map[string][]string
	Timeout          time.Duration
	Operation        string
	Context          map[string]any
	Cause            error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// userMessages holds the canonical human-readable message per kind.
var userMessages = map[Kind]string{
	KindAuthentication:      "Authentication failed. Please check the configured API key.",
	KindAuthorization:       "You do not have permission to perform this action.",
	KindNotFound:            "The requested resource was not found.",
	KindValidation:          "The request contains invalid data.",
	KindConflict:            "The request conflicts with the current state of the resource.",
	KindUnprocessableEntity: "The request could not be processed.",
	KindRateLimit:           "Too many requests. Please wait before retrying.",
	KindServer:              "The HR platform returned an unexpected error. Please try again later.",
	KindTimeout:             "The request timed out. Please try again.",
	KindNetwork:             "Could not reach the HR platform. Please check the connection.",
	KindConfiguration:       "The gateway is not configured correctly.",
	KindSchemaValidation:    "The HR platform returned an unexpected response shape.",
	KindOperationCancelled:  "The operation was cancelled.",
	KindConfirmationExpired: "The confirmation has expired or was already used. Please request a new one.",
}

const genericUserMessage = "An unexpected error occurred. Please try again."

// IsRetryableError reports the fixed retryability bit for taxonomy errors,
// true for generically-named aborted errors, and false for anything else.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Retryable
	}
	if strings.Contains(strings.ToLower(err.Error()), "aborted") {
		return true
	}
	return false
}

// GetUserMessage renders any error as a user-presentable string. It never
// fails: non-taxonomy errors fall back to their raw message, nil to a
// generic one.
func GetUserMessage(err error) string {
	if err == nil {
		return genericUserMessage
	}
	if apiErr, ok := err.(*APIError); ok {
		if msg, found := userMessages[apiErr.Kind]; found {
			return msg
		}
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericUserMessage
}
