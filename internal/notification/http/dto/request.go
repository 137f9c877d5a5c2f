// Package dto provides data transfer objects for the notification webhook.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	notificationDomain "github.com/maasoft/sg-gateway/internal/notification/domain"
	"github.com/maasoft/sg-gateway/internal/timeutil"
	customValidation "github.com/maasoft/sg-gateway/internal/validation"
)

// TaxRequest is a tax line of a notified transaction.
type TaxRequest struct {
	IDTransaccion     string      `json:"idTransaccion"`
	Importe           json.Number `json:"importe"`
	IDTipoTransaccion int64       `json:"idTipoTransaccion"`
	TipoImporte       string      `json:"tipoImporte"`
	IDTipoImporte     string      `json:"idTipoImporte"`
}

// CounterpartRequest identifies the other side of a notified transaction.
type CounterpartRequest struct {
	CuentaContraparte  string      `json:"cuentaContraparte"`
	CUITContraparte    json.Number `json:"cuitContraparte"`
	TitularContraparte string      `json:"titularContraparte"`
}

// TransactionNotificationRequest is the body SG posts for every account movement.
type TransactionNotificationRequest struct {
	IDTransaccion                string              `json:"idTransaccion"`
	IDTransaccionAnulada         *string             `json:"idTransaccionAnulada"`
	IDTipoTransaccion            int64               `json:"idTipoTransaccion"`
	NumeroCuenta                 string              `json:"numeroCuenta"`
	Importe                      json.Number         `json:"importe"`
	IDMoneda                     int64               `json:"idMoneda"`
	FechaOperacion               string              `json:"fechaOperacion"`
	FechaContable                string              `json:"fechaContable"`
	Observaciones                *string             `json:"observaciones"`
	CVU                          string              `json:"CVU"`
	IDTransaccionOriginante      *string             `json:"idTransaccionOriginante"`
	IDTransaccionEntidad         string              `json:"idTransaccionEntidad"`
	IDEntidad                    string              `json:"idEntidad"`
	IDWebOperacion               string              `json:"idWebOperacion"`
	CuentaBloqueada              *bool               `json:"cuentaBloqueada"`
	Total                        json.Number         `json:"total"`
	IDCoelsa                     *string             `json:"idCoelsa"`
	TransaccionCuentaContraparte *CounterpartRequest `json:"transaccionCuentaContraparte"`
	Impuestos                    []TaxRequest        `json:"impuestos"`
}

// Validate checks the fields that are stored. The rest of the body is kept
// verbatim in the raw payload.
func (r *TransactionNotificationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IDTransaccion,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.IDTipoTransaccion, validation.Required),
		validation.Field(&r.NumeroCuenta, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Importe, validation.Required, customValidation.Decimal),
		validation.Field(&r.FechaOperacion, validation.Required),
		validation.Field(&r.CVU, validation.Required, customValidation.Digits, validation.Length(1, 50)),
		validation.Field(&r.Total, customValidation.Decimal),
	)
}

// ToDomain converts the request into a transaction holding rawPayload.
func (r *TransactionNotificationRequest) ToDomain(rawPayload []byte) (*notificationDomain.Transaction, error) {
	operationDate, err := timeutil.ParseFlexible(r.FechaOperacion)
	if err != nil {
		return nil, notificationDomain.ErrInvalidOperationDate
	}

	return &notificationDomain.Transaction{
		ID:            r.IDTransaccion,
		TypeID:        r.IDTipoTransaccion,
		AccountNumber: r.NumeroCuenta,
		Amount:        r.Importe.String(),
		OperationDate: operationDate,
		CVU:           r.CVU,
		Observations:  r.Observaciones,
		RawPayload:    rawPayload,
	}, nil
}
