package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidFormat      = errors.New("invalid token format")
	ErrUserNotFound       = errors.New("user not found")
)

// Student errors
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrDuplicateRegistration = errors.New("registration code already exists")
	ErrRegistrationExhausted = errors.New("registration code generation exhausted")
)

// Grade errors
var (
	ErrGradeNotFound = errors.New("grade not found")
)

// Institution errors
var (
	ErrInstitutionNotFound = errors.New("institution not found")
)

// Period / Teacher / Subject errors
var (
	ErrPeriodNotFound  = errors.New("period not found")
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrSubjectNotFound = errors.New("subject not found")
)

// Score errors
var (
	ErrScoreNotFound  = errors.New("score not found")
	ErrDuplicateScore = errors.New("score already recorded for this student, subject and period")
)

// Staff errors
var (
	ErrStaffNotFound     = errors.New("staff member not found")
	ErrDuplicateIDNumber = errors.New("staff ID number already exists")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
