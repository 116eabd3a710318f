package errors

import (
	stderrors "errors"
	"fmt"
)

// Harness error types organized by category so outcomes can be classified

type ErrorType int

// Input errors - problems with the case list, schema names or arguments
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound

	// Check errors - a case ran and the observed response did not match
	ErrorTypeAssertion
	ErrorTypeSchemaViolation

	// Fault errors - the case could not be checked at all
	ErrorTypeExternalAPI
	ErrorTypeDecode
	ErrorTypeResource
	ErrorTypeDatabase

	// System/Configuration Errors
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeAssertion:
		return "ASSERTION_ERROR"
	case ErrorTypeSchemaViolation:
		return "SCHEMA_VIOLATION"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeDecode:
		return "DECODE_ERROR"
	case ErrorTypeResource:
		return "RESOURCE_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

// NewAssertionError reports an expected value mismatch.
func NewAssertionError(message string) *AppError {
	return New(ErrorTypeAssertion, message)
}

func NewSchemaViolationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeSchemaViolation, message, cause)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ErrorTypeExternalAPI, message, cause)
}

func NewDecodeError(message string, cause error) *AppError {
	return Wrap(ErrorTypeDecode, message, cause)
}

// NewResourceError reports a missing or unloadable local resource such as a schema file.
func NewResourceError(message string, cause error) *AppError {
	return Wrap(ErrorTypeResource, message, cause)
}

func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeDatabase, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// TypeOf returns the type of the first AppError in err's chain.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

func is(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

// IsAssertionFailure reports whether err is a check failure rather than a fault.
func IsAssertionFailure(err error) bool {
	return is(err, ErrorTypeAssertion) || is(err, ErrorTypeSchemaViolation)
}

func IsValidationError(err error) bool {
	return is(err, ErrorTypeValidation)
}

func IsNotFoundError(err error) bool {
	return is(err, ErrorTypeNotFound)
}

func IsResourceError(err error) bool {
	return is(err, ErrorTypeResource)
}

func IsDecodeError(err error) bool {
	return is(err, ErrorTypeDecode)
}

func IsExternalAPIError(err error) bool {
	return is(err, ErrorTypeExternalAPI)
}

func IsDatabaseError(err error) bool {
	return is(err, ErrorTypeDatabase)
}

func IsConfigurationError(err error) bool {
	return is(err, ErrorTypeConfiguration)
}
