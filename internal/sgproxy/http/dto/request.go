// Package dto provides data transfer objects for the SG proxy endpoints.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"

	validation "github.com/jellydator/validation"

	sgproxyDomain "github.com/maasoft/sg-gateway/internal/sgproxy/domain"
	customValidation "github.com/maasoft/sg-gateway/internal/validation"
)

// CUIT accepts the tax id either as a JSON number or as a string such as "20-12345678-9".
type CUIT struct {
	Value   string
	Numeric bool
}

// UnmarshalJSON decodes a number or a string.
func (c *CUIT) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		c.Numeric = false
		return json.Unmarshal(data, &c.Value)
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("cuit must be a number or a string")
	}
	c.Value = n.String()
	c.Numeric = true
	return nil
}

// MarshalJSON encodes the value the way it was received.
func (c CUIT) MarshalJSON() ([]byte, error) {
	if c.Numeric {
		return []byte(c.Value), nil
	}
	return json.Marshal(c.Value)
}

// CreateUserRequest contains the fields of a new SG user.
type CreateUserRequest struct {
	Nombre                     string  `json:"nombre"`
	Apellido                   string  `json:"apellido"`
	RazonSocial                *string `json:"razonSocial"`
	Sexo                       string  `json:"sexo"`
	IDEntidadTipoDocumento     string  `json:"idEntidadTipoDocumento"`
	NumeroDocumento            string  `json:"numeroDocumento"`
	FechaNacimiento            string  `json:"fechaNacimiento"`
	CUIT                       CUIT    `json:"cuit"`
	Email                      string  `json:"email"`
	CaracteristicaPaisTelefono string  `json:"caracteristicaPaisTelefono"`
	CodigoAreaTelefono         string  `json:"codigoAreaTelefono"`
	NumeroTelefono             string  `json:"numeroTelefono"`
	IDTipoPersona              string  `json:"idTipoPersona"`
	NumeroCuentaEntidad        string  `json:"numeroCuentaEntidad"`
	IDTipoCuenta               string  `json:"idTipoCuenta"`
}

// Validate checks if the create user request is valid.
func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Nombre, validation.Required, customValidation.NotBlank, validation.RuneLength(1, 40)),
		validation.Field(&r.Apellido, validation.Required, customValidation.NotBlank, validation.RuneLength(1, 40)),
		validation.Field(&r.Sexo, validation.Required, validation.RuneLength(1, 1)),
		validation.Field(&r.NumeroDocumento, validation.Required, validation.RuneLength(1, 20)),
		validation.Field(&r.FechaNacimiento, validation.Required, validation.RuneLength(8, 30)),
		validation.Field(&r.CUIT, validation.By(validateCUIT)),
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.CaracteristicaPaisTelefono, validation.RuneLength(1, 3)),
		validation.Field(&r.CodigoAreaTelefono, validation.Required, validation.RuneLength(1, 6)),
		validation.Field(&r.NumeroTelefono, validation.Required, validation.RuneLength(1, 20)),
		validation.Field(&r.NumeroCuentaEntidad, validation.Required, validation.RuneLength(1, 50)),
	)
}

func validateCUIT(value any) error {
	cuit, ok := value.(CUIT)
	if !ok {
		return validation.NewError("validation_cuit_type", "must be a cuit")
	}
	if cuit.Value == "" {
		return validation.ErrRequired
	}
	if !cuit.Numeric {
		return validation.Validate(cuit.Value, validation.RuneLength(8, 20))
	}
	return nil
}

// ToInput converts the request into the use case input.
func (r *CreateUserRequest) ToInput() *sgproxyDomain.CreateUserInput {
	return &sgproxyDomain.CreateUserInput{
		FirstName:           r.Nombre,
		LastName:            r.Apellido,
		BusinessName:        r.RazonSocial,
		Sex:                 r.Sexo,
		DocumentTypeID:      r.IDEntidadTipoDocumento,
		DocumentNumber:      r.NumeroDocumento,
		BirthDate:           r.FechaNacimiento,
		CUIT:                r.CUIT.Value,
		Email:               r.Email,
		PhoneCountryCode:    r.CaracteristicaPaisTelefono,
		PhoneAreaCode:       r.CodigoAreaTelefono,
		PhoneNumber:         r.NumeroTelefono,
		PersonTypeID:        r.IDTipoPersona,
		EntityAccountNumber: r.NumeroCuentaEntidad,
		AccountTypeID:       r.IDTipoCuenta,
	}
}
