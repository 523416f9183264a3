package validator

import (
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"

	apperrors "github.com/petgroom/admin-api/pkg/errors"
)

// Validator checks request structs against their validate tags and reports
// the first offending field.
type Validator interface {
	Validate(interface{}) error
}

type validator struct {
	v *playground.Validate
}

func New() Validator {
	v := playground.New()

	// Report json field names rather than Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 24-hour HH:MM times, e.g. "09:00".
	v.RegisterValidation("hhmm", func(fl playground.FieldLevel) bool {
		return validHHMM(fl.Field().String())
	})

	return &validator{v: v}
}

func (val *validator) Validate(obj interface{}) error {
	err := val.v.Struct(obj)
	if err == nil {
		return nil
	}

	verrs, ok := err.(playground.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperrors.NewBadRequest("invalid request", err)
	}

	fe := verrs[0]
	return apperrors.NewValidation(fe.Field(), reason(fe))
}

func reason(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + fe.Param()
	case "hhmm":
		return "must be a 24-hour HH:MM time"
	case "datetime":
		return "must be a date in " + fe.Param() + " format"
	case "uuid":
		return "must be a valid id"
	case "contains":
		return "must contain " + fe.Param()
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func validHHMM(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	min := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour < 24 && min < 60
}
