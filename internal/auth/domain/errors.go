package domain

import (
	"fmt"

	"github.com/maasoft/sg-gateway/internal/errors"
)

// Session errors.
var (
	// ErrEntityNotConfigured indicates no entity was given and SG_ID_ENTIDAD is empty.
	ErrEntityNotConfigured = errors.Wrap(errors.ErrConfiguration, "SG_ID_ENTIDAD not defined and no entidad_id given")

	// ErrInvalidNonce indicates the nonce is not valid standard base64.
	ErrInvalidNonce = errors.Wrap(errors.ErrInvalidInput, "nonce is not valid base64")
)

// maxErrorBodyLen bounds how much of an SG response body is echoed in error messages.
const maxErrorBodyLen = 512

// UpstreamAuthError reports a failed login against SG. StatusCode is zero when
// no response was received. Body holds the SG response text, never the request.
type UpstreamAuthError struct {
	StatusCode int
	Body       string
	Reason     string
	Err        error
}

// NewUpstreamAuthError builds an UpstreamAuthError with an optional cause.
func NewUpstreamAuthError(reason string, statusCode int, body string, cause error) *UpstreamAuthError {
	return &UpstreamAuthError{
		StatusCode: statusCode,
		Body:       body,
		Reason:     reason,
		Err:        cause,
	}
}

func (e *UpstreamAuthError) Error() string {
	msg := "SG login failed: " + e.Reason
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Body != "" {
		body := e.Body
		if len(body) > maxErrorBodyLen {
			body = body[:maxErrorBodyLen] + "..."
		}
		msg += ": " + body
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both ErrUpstreamAuth and the underlying cause to errors.Is.
func (e *UpstreamAuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{errors.ErrUpstreamAuth}
	}
	return []error{errors.ErrUpstreamAuth, e.Err}
}
