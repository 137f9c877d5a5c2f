package validation

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"
)

// Base64 accepts standard base64 text, the format of KMS ciphertexts and SG
// nonces. Empty values are left to Required.
var Base64 = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := base64.StdEncoding.DecodeString(s)
		return err == nil
	},
	validation.NewError("validation_base64", "must be valid base64-encoded data"),
)
