package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

var bloodGroups = map[string]struct{}{
	"A+": {}, "A-": {}, "B+": {}, "B-": {}, "AB+": {}, "AB-": {}, "O+": {}, "O-": {},
}

type CustomValidator struct {
	validator     *validator.Validate
	defaultRegion string
}

// NewValidator builds a validator whose "phone" tag parses numbers without a
// country prefix in defaultRegion (ISO 3166-1 alpha-2).
func NewValidator(defaultRegion string) *CustomValidator {
	if defaultRegion == "" {
		defaultRegion = "US"
	}
	cv := &CustomValidator{
		validator:     validator.New(validator.WithRequiredStructEnabled()),
		defaultRegion: strings.ToUpper(defaultRegion),
	}

	cv.validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	cv.validator.RegisterValidation("phone", cv.validatePhone)
	cv.validator.RegisterValidation("bloodgroup", validateBloodGroup)
	cv.validator.RegisterValidation("hhmm", validateClock)

	return cv
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) validatePhone(fl validator.FieldLevel) bool {
	num, err := phonenumbers.Parse(fl.Field().String(), cv.defaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

func validateBloodGroup(fl validator.FieldLevel) bool {
	_, ok := bloodGroups[strings.ToUpper(fl.Field().String())]
	return ok
}

// validateClock accepts zero-padded "HH:MM" only.
func validateClock(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != len("15:04") {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required", "required_if":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "eqfield":
				errors[field] = field + " must match " + e.Param()
			case "numeric":
				errors[field] = field + " must be a number"
			case "uuid":
				errors[field] = field + " must be a valid UUID"
			case "datetime":
				errors[field] = field + " must use the format " + e.Param()
			case "phone":
				errors[field] = field + " must be a valid phone number"
			case "bloodgroup":
				errors[field] = field + " must be a valid blood group"
			case "hhmm":
				errors[field] = field + " must be a time of day in HH:MM format"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
