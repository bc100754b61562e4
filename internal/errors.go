package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION_ERROR"
	ErrorTypeMalformed   ErrorType = "MALFORMED_INPUT"
	ErrorTypeUnsupported ErrorType = "UNSUPPORTED_MEDIA"
	ErrorTypeTooLarge    ErrorType = "PAYLOAD_TOO_LARGE"
	ErrorTypeInternal    ErrorType = "INTERNAL_ERROR"
	ErrorTypePersistence ErrorType = "PERSISTENCE_ERROR"
	ErrorTypeExternal    ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidLink      ErrorCode = "INVALID_LINK"

	ErrCodePersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"
	ErrCodeQREncodingFailed   ErrorCode = "QR_ENCODING_FAILED"

	ErrCodeMissingFile     ErrorCode = "MISSING_FILE"
	ErrCodeInvalidForm     ErrorCode = "INVALID_FORM"
	ErrCodeUnsupportedType ErrorCode = "UNSUPPORTED_FILE_TYPE"
	ErrCodeFileTooLarge    ErrorCode = "FILE_TOO_LARGE"
	ErrCodeInvalidKind     ErrorCode = "INVALID_KIND"
	ErrCodeUploadFailed    ErrorCode = "UPLOAD_FAILED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {

			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// NewValidationError reports a well-formed request whose values are not
// acceptable (422).
func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

// NewMalformedInputError reports a request that could not be parsed at all (400).
func NewMalformedInputError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformed,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewUnsupportedMediaError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupported,
		Code:       ErrCodeUnsupportedType,
		Message:    message,
		StatusCode: http.StatusUnsupportedMediaType,
	}
}

func NewTooLargeError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeTooLarge,
		Code:       ErrCodeFileTooLarge,
		Message:    message,
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewPersistenceError surfaces a store failure. The message is the
// underlying error text so callers see why the write was rejected.
func NewPersistenceError(cause error) *AppError {
	message := "persistence failure"
	if cause != nil {
		message = cause.Error()
	}
	return &AppError{
		Type:       ErrorTypePersistence,
		Code:       ErrCodePersistenceFailure,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewExternalError(message string, code ErrorCode, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidJSON    = NewMalformedInputError("Invalid JSON", ErrCodeInvalidJSON)
	ErrInvalidAmount  = NewValidationError("Amount must be positive", ErrCodeInvalidAmount)
	ErrMissingFile    = NewMalformedInputError("file is required", ErrCodeMissingFile)
	ErrInvalidForm    = NewMalformedInputError("invalid multipart form", ErrCodeInvalidForm)
	ErrInvalidUPILink = NewMalformedInputError("a upi://pay link is required", ErrCodeInvalidLink)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

// Response is the failure envelope shared by every API endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Success: false, Message: e.GetDetailedMessage()}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
