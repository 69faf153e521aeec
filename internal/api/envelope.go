package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire-format version clients pin against.
const envelopeVersion = 1

// successEnvelope wraps successful responses.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// errorEnvelope wraps error responses. Error carries the human-readable
// summary; Code and Details come along when the failure is a typed one.
type errorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned
// {v, success, ...} envelope the clients expect. The version field must
// stay named "v"; renaming it breaks clients silently.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &errorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   apiErr.Message,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}
	if err, ok := v.(error); ok {
		return &errorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		return &errorEnvelope{
			V:       envelopeVersion,
			Success: false,
			Error:   "request failed",
		}, nil
	}

	return &successEnvelope{
		V:       envelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
