package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"aerovoyage/pkg/logger"
	"aerovoyage/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("passengers_map", validatePassengersMap); err != nil {
		log.Fatal("Failed to register 'passengers_map' validator", "error", err)
	}

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// validatePassengersMap checks the passenger name -> travel document map:
// between 1 and 9 entries, no blank names or documents.
func validatePassengersMap(fl validator.FieldLevel) bool {
	passengers, ok := fl.Field().Interface().(map[string]string)
	if !ok {
		return false
	}
	if len(passengers) == 0 || len(passengers) > 9 {
		return false
	}
	for name, document := range passengers {
		if strings.TrimSpace(name) == "" || strings.TrimSpace(document) == "" {
			return false
		}
	}
	return true
}

func (v *BookingValidator) Validate(b *model.Booking) error {
	if err := v.validate.Struct(b); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if len(b.Passengers) != b.Seats {
		return ValidationErrors{{
			Field:   "passengers",
			Message: fmt.Sprintf("expected %d passengers for %d seats, got %d", b.Seats, b.Seats, len(b.Passengers)),
		}}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		case "uuid4":
			message = fmt.Sprintf("%s must be a valid UUID", err.Field())
		case "passengers_map":
			message = "passengers must map 1-9 non-empty names to travel document numbers"
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
