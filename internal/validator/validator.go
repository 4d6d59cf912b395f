package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a "field" -> "message" map so handlers can return
// field-scoped errors.
type ValidationError struct {
	Errors map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	sort.Strings(errMsgs)
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Messages flattens the error map into client-facing strings, sorted for a
// stable response shape.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Errors))
	for field, msg := range e.Errors {
		msgs = append(msgs, field+": "+msg)
	}
	sort.Strings(msgs)
	return msgs
}

// Validator wraps go-playground/validator with the platform's custom rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with all custom rules registered.
func New() *Validator {
	v := validator.New()

	// Report field names from json tags so clients see payload keys, not Go
	// struct field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{validate: v}
}

// Validate checks the struct and returns *ValidationError on rule failures.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string)
	for _, fe := range validationErrors {
		customErrors[fe.Field()] = v.getErrorMessage(fe)
	}

	return &ValidationError{Errors: customErrors}
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	case "in_mobile":
		return "Must be a valid 10-digit mobile number"
	case "gmail":
		return "Must be a valid Gmail address"
	case "aadhar":
		return "Must be a valid 12-digit Aadhar number"
	case "pan":
		return "Must be a valid PAN number"
	case "pincode":
		return "Must be a valid 6-digit pin code"
	case "strong_password":
		return "Must be 6+ characters with uppercase, lowercase, and special character"
	case "gender":
		return "Must be Male, Female or Transgender"
	case "blood_group":
		return "Must be a valid blood group"
	case "nominee_relation":
		return "Must be a valid nominee relation"
	case "home_phone":
		return "Must be a valid 10-digit phone number"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
