// Package validation collects field violations for forms and JSON payloads.
package validation

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violations maps a field name to a violation code (an i18n key).
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON name so clients can map errors back to inputs
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct runs the `validate` tags of s and records one violation per failing field.
func Struct(s any, v Violations) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		v["_"] = "invalid"
		return
	}
	for _, fe := range verrs {
		v[fe.Field()] = code(fe.Tag())
	}
}

func code(tag string) string {
	switch tag {
	case "required", "email", "url", "min", "max":
		return tag
	}
	return "invalid"
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// NonNegativeFloat rejects negatives as "min" and NaN or infinities as "invalid".
func NonNegativeFloat(field string, val float64, v Violations) {
	switch {
	case math.IsNaN(val) || math.IsInf(val, 0):
		v[field] = "invalid"
	case val < 0:
		v[field] = "min"
	}
}

// RangeFloat is written so that NaN falls outside every range.
func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if !(val >= minVal && val <= maxVal) {
		v[field] = "out_of_range"
	}
}
