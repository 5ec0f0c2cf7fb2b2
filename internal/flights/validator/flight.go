package validator

import (
	"errors"
	"fmt"
	"regexp"
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

var (
	reFlightNumber = regexp.MustCompile(`^[A-Z]{2,3}[0-9]{1,4}$`)
	reIATACode     = regexp.MustCompile(`^[A-Z]{3}$`)
)

type FlightValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewFlightValidator(log *logger.Logger) *FlightValidator {
	v := validator.New()

	if err := v.RegisterValidation("flight_number", validateFlightNumber); err != nil {
		log.Fatal("Failed to register 'flight_number' validator", "error", err)
	}
	if err := v.RegisterValidation("iata_code", validateIATACode); err != nil {
		log.Fatal("Failed to register 'iata_code' validator", "error", err)
	}

	log.Info("Flight validator initialized successfully")

	return &FlightValidator{
		validate: v,
		logger:   log,
	}
}

func validateFlightNumber(fl validator.FieldLevel) bool {
	return reFlightNumber.MatchString(fl.Field().String())
}

func validateIATACode(fl validator.FieldLevel) bool {
	return reIATACode.MatchString(fl.Field().String())
}

func (v *FlightValidator) Validate(f *model.Flight) error {
	if err := v.validate.Struct(f); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *FlightValidator) ValidateUpdate(u *model.FlightUpdate) error {
	if err := v.validate.Struct(u); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *FlightValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "flight_number":
			message = "flight_number must be an airline designator followed by 1-4 digits, e.g. BA123"
		case "iata_code":
			message = "must be a three-letter IATA airport code"
		case "nefield":
			message = "origin and destination must differ"
		case "gtfield":
			message = "arrival_time must be after departure_time"
		case "ltefield":
			message = fmt.Sprintf("%s must not exceed %s", err.Field(), err.Param())
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
