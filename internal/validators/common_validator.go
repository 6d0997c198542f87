package validators

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("license_plate", validateLicensePlate)
	validate.RegisterValidation("vin_number", validateVIN)
	validate.RegisterValidation("fuel_level", validateFuelLevel)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "strong_password":
		return "Password must contain uppercase, lowercase, number, and special character"
	case "license_plate":
		return "Invalid license plate format"
	case "vin_number":
		return "Invalid VIN number"
	case "fuel_level":
		return "Fuel level must be between 0 and 100"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

// Custom validation functions
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 || len(password) > 128 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

func validateLicensePlate(fl validator.FieldLevel) bool {
	plate := fl.Field().String()
	if plate == "" {
		return true
	}

	plateRegex := regexp.MustCompile(`^[A-Z0-9\-\s]{2,10}$`)
	return plateRegex.MatchString(strings.ToUpper(plate))
}

func validateVIN(fl validator.FieldLevel) bool {
	vin := fl.Field().String()
	if vin == "" {
		return true
	}

	if len(vin) != 17 {
		return false
	}

	vinRegex := regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	return vinRegex.MatchString(strings.ToUpper(vin))
}

func validateFuelLevel(fl validator.FieldLevel) bool {
	level := fl.Field().Float()
	return level >= 0 && level <= 100
}

// Helper functions for common validations
func IsValidObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// ValidateTimeWindow checks a half-open [start, end) booking window.
func ValidateTimeWindow(start, end time.Time) ValidationErrors {
	var errs ValidationErrors

	if start.IsZero() {
		errs = append(errs, ValidationError{
			Field: "start_time", Tag: "required", Message: "start_time is required",
		})
	}
	if end.IsZero() {
		errs = append(errs, ValidationError{
			Field: "end_time", Tag: "required", Message: "end_time is required",
		})
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		errs = append(errs, ValidationError{
			Field: "end_time", Tag: "gtfield", Value: end.Format(time.RFC3339),
			Message: "end_time must be after start_time",
		})
	}

	return errs
}
