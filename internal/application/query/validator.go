package query

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores se reportan con el nombre del parámetro, no el del campo Go.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Postgres rechaza texto con UTF-8 inválido o NUL; se corta antes con un 400.
	_ = v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
	})
	return v
}

// check valida s con las reglas de sus tags y vuelca los fallos en fields.
func check(s any, fields FieldErrors) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields.add("_", err.Error())
		return
	}
	for _, fe := range verrs {
		fields.add(fieldPath(fe), message(fe))
	}
}

// fieldPath quita el nombre del struct raíz: "ProductList.search" -> "search", "A.b.c" -> "b.c".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "uuid":
		return "Invalid uuid"
	case "utf8":
		return "Invalid string"
	case "min":
		if isString {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Number must be less than or equal to %s", fe.Param())
	default:
		return "Invalid value"
	}
}

// IsID indica si s es un UUID canónico (8-4-4-4-12).
func IsID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}
