package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// local-part "@" domain, where the domain holds at least one dot.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)+$`)

var messages = map[string]string{
	"nombre":   "Ingresá tu nombre completo",
	"email":    "Ingresá un email válido",
	"telefono": "Ingresá tu teléfono",
}

// New returns a validator that knows the order form rules and reports
// fields by their form names.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("emailshape", func(fl validatorv10.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	v.RegisterStructValidation(orderFormStructValidation, OrderForm{})

	return v
}

// orderFormStructValidation rejects identifying fields that are only whitespace.
func orderFormStructValidation(sl validatorv10.StructLevel) {
	form := sl.Current().Interface().(OrderForm)

	if form.Name != "" && strings.TrimSpace(form.Name) == "" {
		sl.ReportError(form.Name, "nombre", "Name", "required", "")
	}
	if form.Phone != "" && strings.TrimSpace(form.Phone) == "" {
		sl.ReportError(form.Phone, "telefono", "Phone", "required", "")
	}
}

// IsEmail applies the storefront's basic email shape check.
func IsEmail(s string) bool {
	return emailShape.MatchString(strings.TrimSpace(s))
}

// Validate checks the buyer fields of form. It returns nil when the form
// may be dispatched.
func Validate(v *validatorv10.Validate, form OrderForm) FieldErrors {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	return validationErrorsToMap(err)
}

// CoerceQuantity maps any raw quantity outside the 1..10 menu, or any
// non-numeric input, to 1.
func CoerceQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < MinQuantity || n > MaxQuantity {
		return MinQuantity
	}
	return n
}

// QuantityOptions lists the allowed quantity menu.
func QuantityOptions() []int {
	out := make([]int, 0, MaxQuantity-MinQuantity+1)
	for i := MinQuantity; i <= MaxQuantity; i++ {
		out = append(out, i)
	}
	return out
}

func validationErrorsToMap(err error) FieldErrors {
	out := FieldErrors{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			if _, seen := out[field]; seen {
				continue
			}
			if msg, ok := messages[field]; ok {
				out[field] = msg
			} else {
				out[field] = fe.Error()
			}
		}
		return out
	}
	out["form"] = "Revisá los datos del formulario"
	return out
}
