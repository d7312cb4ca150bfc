// errors/errors_test.go
package errors

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"authentication", NewAuthenticationError("/employees"), false},
		{"authorization", NewAuthorizationError("/employees"), false},
		{"not found", NewNotFoundError("/employees/9"), false},
		{"validation", NewValidationError("/employees", nil), false},
		{"conflict", NewConflictError("/teams", nil), false},
		{"unprocessable", NewUnprocessableEntityError("/leaves", nil), false},
		{"rate limit", NewRateLimitError("/employees", 30), true},
		{"server", NewServerError("/employees", 503), true},
		{"timeout", NewTimeoutError("/employees", 5*time.Second), true},
		{"network", NewNetworkError("/employees", errors.New("connection refused")), true},
		{"configuration", NewConfigurationError("missing api key"), false},
		{"schema", NewSchemaValidationError("employee", "/employees/1", nil), false},
		{"cancelled", NewOperationCancelledError("delete_team"), false},
		{"confirmation expired", NewConfirmationExpiredError("tok"), false},
		{"generic aborted", errors.New("request aborted"), true},
		{"generic other", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryableError(tt.err))
		})
	}
}

func TestGetUserMessage(t *testing.T) {
	assert.Equal(t,
		"The requested resource was not found.",
		GetUserMessage(NewNotFoundError("/employees/3")))

	assert.Equal(t,
		"The confirmation has expired or was already used. Please request a new one.",
		GetUserMessage(NewConfirmationExpiredError("tok")))

	// Generic errors surface their own message.
	assert.Equal(t, "boom", GetUserMessage(errors.New("boom")))

	// Nil never panics and yields the fixed fallback.
	assert.Equal(t, "An unexpected error occurred. Please try again.", GetUserMessage(nil))
}

func TestFormatValidationErrors(t *testing.T) {
	t.Run("structured errors win over message", func(t *testing.T) {
		resp := &ErrorResponse{
			Errors: map[string][]string{
				"email":      {"is invalid", "is taken"},
				"first_name": {"can't be blank"},
			},
			Message: "should be ignored",
		}
		assert.Equal(t, "email: is invalid, is taken; first_name: can't be blank",
			FormatValidationErrors(resp))
	})

	t.Run("falls back to flat message", func(t *testing.T) {
		assert.Equal(t, "name already taken",
			FormatValidationErrors(&ErrorResponse{Message: "name already taken"}))
	})

	t.Run("nil and empty input", func(t *testing.T) {
		assert.Equal(t, "Validation failed", FormatValidationErrors(nil))
		assert.Equal(t, "Validation failed", FormatValidationErrors(&ErrorResponse{}))
	})
}

func TestUnprocessableEntityTolerantParsing(t *testing.T) {
	t.Run("extracts field errors", func(t *testing.T) {
		err := NewUnprocessableEntityError("/leaves", []byte(`{"errors":{"start_on":["must be in the future"]}}`))
		assert.Equal(t, map[string][]string{"start_on": {"must be in the future"}}, err.ValidationErrors)
	})

	t.Run("malformed body yields empty map", func(t *testing.T) {
		err := NewUnprocessableEntityError("/leaves", []byte(`not-json`))
		assert.NotNil(t, err.ValidationErrors)
		assert.Empty(t, err.ValidationErrors)
	})

	t.Run("missing errors key yields empty map", func(t *testing.T) {
		err := NewUnprocessableEntityError("/leaves", []byte(`{"message":"nope"}`))
		assert.NotNil(t, err.ValidationErrors)
		assert.Empty(t, err.ValidationErrors)
	})
}
