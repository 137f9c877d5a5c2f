package usecase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/maasoft/sg-gateway/internal/config"
	apperrors "github.com/maasoft/sg-gateway/internal/errors"
	sgproxyDomain "github.com/maasoft/sg-gateway/internal/sgproxy/domain"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	config   *config.Config
	client   SGClient
	sessions SessionProvider
}

func (u *userUseCase) LookupByCUIT(
	ctx context.Context,
	entityID, cuit string,
) (*sgproxyDomain.UserLookup, error) {
	normalized, err := sgproxyDomain.NormalizeCUIT(cuit)
	if err != nil {
		return nil, err
	}
	return u.lookup(ctx, entityID, normalized)
}

func (u *userUseCase) LookupRaw(
	ctx context.Context,
	entityID, cuit string,
) (*sgproxyDomain.RawResponse, error) {
	normalized, err := sgproxyDomain.NormalizeCUIT(cuit)
	if err != nil {
		return nil, err
	}

	headers, err := u.sessions.AuthHeaders(ctx, entityID)
	if err != nil {
		return nil, err
	}

	resp, err := u.client.Do(ctx, http.MethodGet, userByCUITPath(normalized), headers, nil)
	if err != nil {
		return nil, err
	}

	return &sgproxyDomain.RawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.ContentType,
		Body:        resp.Detail(),
	}, nil
}

// Create checks for an existing user first, so repeated requests do not
// register the same CUIT twice.
func (u *userUseCase) Create(
	ctx context.Context,
	entityID string,
	input *sgproxyDomain.CreateUserInput,
) (*sgproxyDomain.CreateUserOutput, error) {
	documentTypeID := firstNonEmpty(input.DocumentTypeID, u.config.SGIDDocDNI)
	if documentTypeID == "" {
		return nil, sgproxyDomain.ErrDocumentTypeNotConfigured
	}

	normalized, err := sgproxyDomain.NormalizeCUIT(input.CUIT)
	if err != nil {
		return nil, err
	}
	cuit, err := sgproxyDomain.CUITNumber(normalized)
	if err != nil {
		return nil, err
	}

	existing, err := u.lookup(ctx, entityID, normalized)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to look up user by cuit")
	}
	if existing.Exists && existing.UserID != nil {
		return &sgproxyDomain.CreateUserOutput{UserID: existing.UserID, AlreadyExisted: true}, nil
	}

	payload := &sgproxyDomain.SGUserPayload{
		Nombre:                     input.FirstName,
		Apellido:                   input.LastName,
		RazonSocial:                input.BusinessName,
		Sexo:                       input.Sex,
		IDEntidadTipoDocumento:     documentTypeID,
		NumeroDocumento:            input.DocumentNumber,
		FechaNacimiento:            input.BirthDate,
		CUIT:                       cuit,
		Email:                      input.Email,
		CaracteristicaPaisTelefono: firstNonEmpty(input.PhoneCountryCode, defaultPhoneCountryCode),
		CodigoAreaTelefono:         input.PhoneAreaCode,
		NumeroTelefono:             input.PhoneNumber,
		IDTipoPersona:              firstNonEmpty(input.PersonTypeID, u.config.SGIDTipoPersona),
		NumeroCuentaEntidad:        input.EntityAccountNumber,
		IDTipoCuenta:               firstNonEmpty(input.AccountTypeID, u.config.SGIDTipoCuenta),
	}

	headers, err := u.sessions.AuthHeaders(ctx, entityID)
	if err != nil {
		return nil, err
	}

	resp, err := u.client.Do(ctx, http.MethodPost, usersPath, headers, payload)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var created map[string]any
	if !resp.IsJSON() || resp.Decode(&created) != nil {
		return nil, sgproxyDomain.NewNonJSONResponseError()
	}

	return &sgproxyDomain.CreateUserOutput{
		UserID: created["idUsuario"],
		CVU:    created["cvu"],
		Alias:  created["alias"],
	}, nil
}

func (u *userUseCase) lookup(ctx context.Context, entityID, cuit string) (*sgproxyDomain.UserLookup, error) {
	headers, err := u.sessions.AuthHeaders(ctx, entityID)
	if err != nil {
		return nil, err
	}

	resp, err := u.client.Do(ctx, http.MethodGet, userByCUITPath(cuit), headers, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return &sgproxyDomain.UserLookup{Accounts: []any{}}, nil
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var body any
	if !resp.IsJSON() || resp.Decode(&body) != nil {
		return nil, sgproxyDomain.NewNonJSONResponseError()
	}
	return sgproxyDomain.ParseUserLookup(body), nil
}

const (
	usersPath               = "/Usuarios"
	defaultPhoneCountryCode = "54"
)

func userByCUITPath(cuit string) string {
	return usersPath + "/" + url.PathEscape(cuit) + "/UsuarioByCuit"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(cfg *config.Config, client SGClient, sessions SessionProvider) UserUseCase {
	return &userUseCase{
		config:   cfg,
		client:   client,
		sessions: sessions,
	}
}
