// Package validation holds the jellydator rules shared by request DTOs and
// the configuration.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/maasoft/sg-gateway/internal/errors"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	decimalRegex = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
)

// WrapValidationError turns a validation failure into ErrInvalidInput so
// HandleErrorGin answers 422.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

var Email = validation.NewStringRuleWithError(
	emailRegex.MatchString,
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Digits accepts ASCII digits only (CVU, CUIT, account numbers).
var Digits = validation.NewStringRuleWithError(
	isDigits,
	validation.NewError("validation_digits", "must contain only digits"),
)

// Decimal accepts plain decimal text such as "1500" or "-12.50"; exponents
// and thousands separators are refused so amounts are stored as sent.
var Decimal = validation.NewStringRuleWithError(
	decimalRegex.MatchString,
	validation.NewError("validation_decimal", "must be a decimal number"),
)

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
