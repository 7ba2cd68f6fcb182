package entity

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNoSubject           = errors.New("provider returned no subject identifier")
	ErrLookupFailed        = errors.New("lookup failed")
	ErrProviderUnavailable = errors.New("identity provider unavailable")

	ErrEmployeeNotFound = errors.New("employee not found")
	ErrRoleNotFound     = errors.New("role not found")
	ErrDuplicateSubject = errors.New("subject already has an employee record")
	ErrDuplicateEmail   = errors.New("email already exists")

	ErrInvalidName      = errors.New("invalid full name")
	ErrInvalidPhone     = errors.New("invalid phone format")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrMissingRequired  = errors.New("missing required field")
	ErrValidationFailed = errors.New("validation failed")

	ErrUnknownMessageType = errors.New("unknown message type")
)

const (
	ErrMsgInternal     = "Internal server error"
	ErrMsgBadRequest   = "Invalid request"
	ErrMsgValidation   = "Validation error"
	ErrMsgNotFound     = "Employee not found"
	ErrMsgEmailTaken   = "Email already in use"
	ErrMsgSubjectTaken = "Subject already has an employee record"

	ErrMsgNoAuthHeader           = "No authorization header found"
	ErrMsgNoToken                = "No token found in authorization header"
	ErrMsgVerifyFailed           = "Unable to verify token"
	ErrMsgResolveFailed          = "Unable to resolve user"
	ErrMsgInsufficientPermission = "Insufficient permission. Please contact your administrator"
)
