// file: internals/helpers/validate.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct menjalankan tag `validate` dan mengubah hasilnya ke bentuk
// map field → pesan, siap dipakai JsonValidationError.
func ValidateStruct(s any) map[string][]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out[field] = append(out[field], msg)
	}
	return out
}
