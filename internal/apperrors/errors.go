package apperrors

import (
	"errors"
	"net/http"
)

// Reason is a machine-readable code identifying which rule an operation broke.
type Reason string

const (
	ReasonSelfConnection      Reason = "SelfConnection"
	ReasonDuplicateConnection Reason = "DuplicateConnection"
	ReasonAlreadyFollowing    Reason = "AlreadyFollowing"
	ReasonParentNotFound      Reason = "ParentNotFound"
	ReasonDuplicateRequest    Reason = "DuplicateRequest"
	ReasonDuplicateMember     Reason = "DuplicateMember"
	ReasonDuplicateInvitation Reason = "DuplicateInvitation"
	ReasonLastAdminViolation  Reason = "LastAdminViolation"
	ReasonInsufficientRole    Reason = "InsufficientRole"
	ReasonCreatorProtected    Reason = "CreatorProtected"
)

// AppError carries an HTTP status, a human message and an optional reason code.
type AppError struct {
	StatusCode int    `json:"-"`
	Reason     Reason `json:"reason,omitempty"`
	Message    string `json:"error"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(statusCode int, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

func Unauthenticated() *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: "authentication required"}
}

func Forbidden(reason Reason, message string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Reason: reason, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func Conflict(reason Reason, message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Reason: reason, Message: message}
}

func Internal(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message}
}

// As unwraps err into an *AppError if possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// HasReason reports whether err is an AppError carrying the given reason code.
func HasReason(err error, reason Reason) bool {
	if appErr, ok := As(err); ok {
		return appErr.Reason == reason
	}
	return false
}
