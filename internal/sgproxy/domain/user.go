// Package domain defines the SG operations proxied by this service.
package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// UserLookup is the normalized result of a search by CUIT.
type UserLookup struct {
	Exists bool
	// UserID is the first entry of the "usuario" list SG returns, or nil.
	UserID   any
	Accounts []any
	RawCount int
}

// RawResponse is an SG response echoed for diagnosis.
type RawResponse struct {
	StatusCode  int
	ContentType string
	Body        any
}

// CreateUserInput holds the fields of a new SG user. Empty optional ids are
// filled from configuration.
type CreateUserInput struct {
	FirstName           string
	LastName            string
	BusinessName        *string
	Sex                 string
	DocumentTypeID      string
	DocumentNumber      string
	BirthDate           string
	CUIT                string
	Email               string
	PhoneCountryCode    string
	PhoneAreaCode       string
	PhoneNumber         string
	PersonTypeID        string
	EntityAccountNumber string
	AccountTypeID       string
}

// CreateUserOutput is the result of creating, or finding, an SG user.
type CreateUserOutput struct {
	UserID         any
	CVU            any
	Alias          any
	AlreadyExisted bool
}

// SGUserPayload is the body of POST /Usuarios.
type SGUserPayload struct {
	Nombre                     string  `json:"nombre"`
	Apellido                   string  `json:"apellido"`
	RazonSocial                *string `json:"razonSocial"`
	Sexo                       string  `json:"sexo"`
	IDEntidadTipoDocumento     string  `json:"idEntidadTipoDocumento"`
	NumeroDocumento            string  `json:"numeroDocumento"`
	FechaNacimiento            string  `json:"fechaNacimiento"`
	CUIT                       int64   `json:"cuit"`
	Email                      string  `json:"email"`
	CaracteristicaPaisTelefono string  `json:"caracteristicaPaisTelefono"`
	CodigoAreaTelefono         string  `json:"codigoAreaTelefono"`
	NumeroTelefono             string  `json:"numeroTelefono"`
	IDTipoPersona              string  `json:"idTipoPersona"`
	NumeroCuentaEntidad        string  `json:"numeroCuentaEntidad"`
	IDTipoCuenta               string  `json:"idTipoCuenta"`
}

// NormalizeCUIT removes dashes and spaces and checks the rest is all digits.
func NormalizeCUIT(cuit string) (string, error) {
	normalized := strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(cuit))
	if normalized == "" {
		return "", ErrInvalidCUIT
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return "", ErrInvalidCUIT
		}
	}
	return normalized, nil
}

// CUITNumber converts a normalized CUIT to the number SG expects.
func CUITNumber(normalized string) (int64, error) {
	n, err := strconv.ParseInt(normalized, 10, 64)
	if err != nil {
		return 0, ErrInvalidCUIT
	}
	return n, nil
}

// ParseUserLookup normalizes the body of GET /Usuarios/{cuit}/UsuarioByCuit,
// which may be an object or a list of objects.
func ParseUserLookup(body any) *UserLookup {
	items, ok := body.([]any)
	if !ok {
		items = []any{body}
	}

	lookup := &UserLookup{Accounts: []any{}, RawCount: len(items)}
	for _, item := range items {
		first, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if users, ok := first["usuario"].([]any); ok && len(users) > 0 {
			lookup.UserID = users[0]
		}
		if accounts, ok := first["cuentas"].([]any); ok {
			lookup.Accounts = accounts
		}
		break
	}

	lookup.Exists = truthy(lookup.UserID) || len(lookup.Accounts) > 0
	return lookup
}

func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case bool:
		return value
	case json.Number:
		f, err := value.Float64()
		return err != nil || f != 0
	}
	return true
}
