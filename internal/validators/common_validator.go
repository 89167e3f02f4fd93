package validators

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("ride_category", validateRideCategory)
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct runs tag validation and flattens the result into
// field/message pairs.
func ValidateStruct(s interface{}) ValidationErrors {
	var errors ValidationErrors

	err := validate.Struct(s)
	if err == nil {
		return errors
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return append(errors, ValidationError{Field: "request", Message: err.Error()})
	}

	for _, fieldError := range validationErrors {
		errors = append(errors, ValidationError{
			Field:   strings.ToLower(fieldError.Field()),
			Message: messageForTag(fieldError),
		})
	}

	return errors
}

func messageForTag(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s", fieldError.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fieldError.Param())
	case "latitude", "gte":
		return "Value is below the allowed range"
	case "lte":
		return "Value is above the allowed range"
	case "ride_category":
		return "Must be one of: economy, premium, luxury"
	case "strong_password":
		return "Password must contain upper and lower case letters and a digit"
	case "phone_number":
		return "Must be a valid phone number"
	default:
		return fmt.Sprintf("Failed validation on '%s'", fieldError.Tag())
	}
}

func validateRideCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "economy", "premium", "luxury":
		return true
	}
	return false
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if len(phone) < 7 || len(phone) > 16 {
		return false
	}

	for i, r := range phone {
		if i == 0 && r == '+' {
			continue
		}
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
