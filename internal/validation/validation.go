// Package validation binds request input and turns validation failures into
// field-level API errors.
//
// Rules live in `validate` struct tags on the payload types; a shared
// validator reports field paths using the json/query/param names clients send.
package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// peselRegex matches the 11-digit Polish national identification number.
// Only the shape is enforced; the checksum is not.
var peselRegex = regexp.MustCompile(`^[0-9]{11}$`)

// Validator returns the process-wide validator with custom tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(inputName)

		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("pesel", func(fl validator.FieldLevel) bool {
			return peselRegex.MatchString(fl.Field().String())
		})
	})
	return validate
}

// inputName reports the name a client uses for a field.
func inputName(fld reflect.StructField) string {
	for _, key := range []string{"json", "query", "param"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

// Struct validates a tagged struct with the shared validator.
func Struct(v any) error {
	return Validator().Struct(v)
}
