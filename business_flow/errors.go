// Package businessflow contains the core business logic and use cases for the admin dashboard
package businessflow

import (
	"errors"
	"fmt"

	"github.com/alfurqan/academy-admin/app/services"
)

// Business flow error constants
var (
	// Record errors
	ErrTutorNotFound  = errors.New("tutor not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrUserNotFound   = errors.New("user not found")

	// Session and workspace errors
	ErrSessionNotFound     = errors.New("dashboard session not found")
	ErrInvalidEntityKind   = errors.New("unknown entity kind")
	ErrModalRecordRequired = errors.New("this overlay requires a record id")
	ErrModalRecordMissing  = errors.New("referenced record no longer exists")

	// Selection errors
	ErrSelectionEmpty = errors.New("no rows are selected")

	// List errors
	ErrInvalidSortKey       = errors.New("invalid sort key")
	ErrInvalidSortDirection = errors.New("sort direction must be asc or desc")
	ErrInvalidFilterValue   = errors.New("invalid filter value")
	ErrInvalidPage          = errors.New("page must be at least 1")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// upstreamBusinessError surfaces a backend failure with its human-readable
// message so the UI can show it inline.
func upstreamBusinessError(code string, err error) *BusinessError {
	var ue *services.UpstreamError
	if errors.As(err, &ue) {
		return NewBusinessError(code, ue.Message, err)
	}
	return NewBusinessError(code, "Unexpected backend failure", err)
}

// FailureMessage extracts the message a user should see for err.
func FailureMessage(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Message
	}
	var ue *services.UpstreamError
	if errors.As(err, &ue) {
		return ue.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
