// errors/format.go
package errors

import (
	"sort"
	"strings"
)

const fallbackValidationMessage = "Validation failed"

// FormatValidationErrors renders an upstream error body as
// "field: msg1, msg2; field2: msg3". A structured errors map wins over a
// flat message when both are present; nil or empty input yields a fixed
// fallback string.
func FormatValidationErrors(resp *ErrorResponse) string {
	if resp == nil {
		return fallbackValidationMessage
	}
	if len(resp.Errors) > 0 {
		fields := make([]string, 0, len(resp.Errors))
		for field := range resp.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		parts := make([]string, 0, len(fields))
		for _, field := range fields {
			parts = append(parts, field+": "+strings.Join(resp.Errors[field], ", "))
		}
		return strings.Join(parts, "; ")
	}
	if resp.Message != "" {
		return resp.Message
	}
	return fallbackValidationMessage
}
