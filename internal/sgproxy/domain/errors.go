package domain

import (
	"fmt"
	"net/http"

	"github.com/maasoft/sg-gateway/internal/errors"
)

// Proxy errors.
var (
	// ErrInvalidCUIT indicates the CUIT is not made of digits once dashes and spaces are removed.
	ErrInvalidCUIT = errors.Wrap(errors.ErrInvalidInput, "invalid cuit")

	// ErrDocumentTypeNotConfigured indicates neither the request nor SG_ID_DOC_DNI sets the document type.
	ErrDocumentTypeNotConfigured = errors.Wrap(
		errors.ErrConfiguration,
		"idEntidadTipoDocumento missing in body and SG_ID_DOC_DNI not defined",
	)
)

// nonJSONDetail is the detail returned when SG answers a success status with a non JSON body.
const nonJSONDetail = "Respuesta no JSON desde SG"

// UpstreamProxyError carries an SG error response that is forwarded to the
// caller with its original status. Detail is the decoded JSON body, or its
// text when the body is not JSON.
type UpstreamProxyError struct {
	StatusCode int
	Detail     any
}

// NewUpstreamProxyError creates an UpstreamProxyError.
func NewUpstreamProxyError(statusCode int, detail any) *UpstreamProxyError {
	return &UpstreamProxyError{StatusCode: statusCode, Detail: detail}
}

// NewNonJSONResponseError reports a 2xx SG response whose body is not JSON.
func NewNonJSONResponseError() *UpstreamProxyError {
	return NewUpstreamProxyError(http.StatusBadGateway, nonJSONDetail)
}

func (e *UpstreamProxyError) Error() string {
	return fmt.Sprintf("SG responded with status %d", e.StatusCode)
}

// UpstreamStatus returns the status to answer with.
func (e *UpstreamProxyError) UpstreamStatus() int {
	return e.StatusCode
}

// UpstreamDetail returns the body to answer with.
func (e *UpstreamProxyError) UpstreamDetail() any {
	return e.Detail
}
