package dto

import (
	sgproxyDomain "github.com/maasoft/sg-gateway/internal/sgproxy/domain"
)

// UserLookupResponse represents the result of a search by CUIT.
type UserLookupResponse struct {
	Exists   bool  `json:"existe"`
	UserID   any   `json:"idUsuario"`
	Accounts []any `json:"cuentas"`
	RawCount int   `json:"rawCount"`
}

// MapUserLookupToResponse converts a domain lookup to an API response.
func MapUserLookupToResponse(lookup *sgproxyDomain.UserLookup) UserLookupResponse {
	accounts := lookup.Accounts
	if accounts == nil {
		accounts = []any{}
	}
	return UserLookupResponse{
		Exists:   lookup.Exists,
		UserID:   lookup.UserID,
		Accounts: accounts,
		RawCount: lookup.RawCount,
	}
}

// RawResponse represents an SG response echoed for diagnosis.
type RawResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        any    `json:"body"`
}

// MapRawResponseToResponse converts a domain raw response to an API response.
func MapRawResponseToResponse(raw *sgproxyDomain.RawResponse) RawResponse {
	return RawResponse{
		StatusCode:  raw.StatusCode,
		ContentType: raw.ContentType,
		Body:        raw.Body,
	}
}

// CreateUserResponse represents the result of creating, or finding, an SG user.
type CreateUserResponse struct {
	UserID         any  `json:"idUsuario"`
	CVU            any  `json:"cvu"`
	Alias          any  `json:"alias"`
	AlreadyExisted bool `json:"yaExistia"`
}

// MapCreateUserOutputToResponse converts a domain create output to an API response.
func MapCreateUserOutputToResponse(output *sgproxyDomain.CreateUserOutput) CreateUserResponse {
	return CreateUserResponse{
		UserID:         output.UserID,
		CVU:            output.CVU,
		Alias:          output.Alias,
		AlreadyExisted: output.AlreadyExisted,
	}
}
