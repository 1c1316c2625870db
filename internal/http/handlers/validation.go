package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"service-driver/internal/apperr"
)

var requiredMessages = map[string]string{
	"name":          "Name is required",
	"email":         "Email is required",
	"licenseNumber": "License Number is required",
	"vehicleModel":  "Vehicle Model is required",
	"vehicleNumber": "Vehicle Number is required",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateDriver reports every blank business field at once.
func validateDriver(d driverDTO) apperr.FieldErrors {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.FieldErrors{"body": err.Error()}
	}

	out := make(apperr.FieldErrors, len(verrs))
	for _, fe := range verrs {
		msg, ok := requiredMessages[fe.Field()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out[fe.Field()] = msg
	}
	return out
}
