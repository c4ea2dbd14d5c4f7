package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// successEnvelope is the wire shape of every successful response.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorEnvelope is the wire shape of every failed response. Simple
// errors carry only the message; detailed ones add code and details.
type errorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned
// envelope the dashboard client expects. The version field is named
// exactly "v"; renaming it breaks clients silently.
func EnvelopeTransformer(_ huma.Context, _ string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return errorEnvelope{
			V:       1,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	return successEnvelope{
		V:       1,
		Success: true,
		Data:    v,
	}, nil
}
