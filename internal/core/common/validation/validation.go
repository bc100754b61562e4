package validation

import (
	"fmt"
	"math"

	errors "github.com/frahmantamala/sewa-portal/internal"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

// Positive rejects zero, negative and non-finite numbers.
func (fv *FieldValidator) Positive(message string, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var f float64
		switch v := value.(type) {
		case float64:
			f = v
		case *float64:
			if v == nil {
				return nil
			}
			f = *v
		case int64:
			f = float64(v)
		default:
			return nil
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return errors.NewValidationFieldError(fv.FieldName, message, code)
		}
		return nil
	})
	return fv
}

// Max rejects numbers above limit. Non-numeric and NaN values are left to
// other rules.
func (fv *FieldValidator) Max(limit float64, message string, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var f float64
		switch v := value.(type) {
		case float64:
			f = v
		case int64:
			f = float64(v)
		default:
			return nil
		}
		if f > limit {
			return errors.NewValidationFieldError(fv.FieldName, message, code)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(string); ok {
			if len([]rune(v)) > max {
				message := fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max)
				return errors.NewValidationFieldError(fv.FieldName, message, errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed []string, code errors.ErrorCode) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		message := fmt.Sprintf("%s %q is not allowed", fv.FieldName, v)
		return errors.NewValidationFieldError(fv.FieldName, message, code)
	})
	return fv
}

// Validate runs every rule and returns the first failing rule's error, with
// all collected field errors attached as details. The first failure decides
// the status code so callers can return user-correctable errors as-is.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var first *errors.AppError
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}
			if first == nil {
				first = appErr
			}
			if details, ok := appErr.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
			} else {
				validationErrors = append(validationErrors, errors.ValidationError{
					Field:   field.FieldName,
					Message: appErr.Message,
					Code:    string(appErr.Code),
				})
			}
		}
	}

	if first == nil {
		return nil
	}

	return &errors.AppError{
		Type:       first.Type,
		Code:       first.Code,
		Message:    first.Message,
		StatusCode: first.StatusCode,
		Details:    errors.ValidationErrors{Errors: validationErrors},
	}
}
