// errors/operation_errors.go
package errors

import "fmt"

func NewConfigurationError(message string) *APIError {
	return &APIError{
		Kind:    KindConfiguration,
		Message: message,
	}
}

func NewSchemaValidationError(schemaName, endpoint string, cause error) *APIError {
	return &APIError{
		Kind:     KindSchemaValidation,
		Message:  fmt.Sprintf("response did not match expected %s shape", schemaName),
		Endpoint: endpoint,
		Context:  map[string]any{"schema": schemaName},
		Cause:    cause,
	}
}

func NewOperationCancelledError(operation string) *APIError {
	return &APIError{
		Kind:      KindOperationCancelled,
		Message:   fmt.Sprintf("operation %s was cancelled", operation),
		Operation: operation,
	}
}

func NewConfirmationExpiredError(token string) *APIError {
	return &APIError{
		Kind:    KindConfirmationExpired,
		Message: "confirmation token is missing, expired, or already used",
		Context: map[string]any{"token": token},
	}
}

// NewPayloadValidationError wraps a locally-detected payload problem with
// the same kind the pipeline uses for upstream 400s, so callers handle
// both identically.
func NewPayloadValidationError(message string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
	}
}
