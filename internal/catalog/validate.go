package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// satu instance dipakai bersama, validator meng-cache metadata struct
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// check runs the validate tags of v and reports the first failing field
// wrapped in ErrInvalid.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) || len(fes) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	fe := fes[0]
	switch fe.Tag() {
	case "required", "notblank":
		return invalid("%s is required", fe.Field())
	case "gte":
		return invalid("%s must be >= %s", fe.Field(), fe.Param())
	case "gt":
		return invalid("%s must be > %s", fe.Field(), fe.Param())
	case "oneof":
		return invalid("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return invalid("%s is not a valid %s", fe.Field(), fe.Tag())
}
