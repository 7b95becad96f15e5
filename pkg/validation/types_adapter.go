package validation

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"

	"github.com/eneca-dev/enecawork-backend/pkg/types"
)

// registerCustomTypes учит валидатор "смотреть внутрь" null.String и types.Date.
func registerCustomTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil // nil, чтобы сработал `omitempty`
	}, null.String{})

	// Нулевая дата считается отсутствующей, поэтому `required` на ней срабатывает.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(types.Date); ok && !val.IsZero() {
			return val.String()
		}
		return nil
	}, types.Date{})
}
