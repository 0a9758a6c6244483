package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrStore           = errors.New("store error")
	ErrUpload          = errors.New("upload failed")
	ErrEmailSend       = errors.New("email send failed")
	ErrSessionRequired = errors.New("login required")
)

type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input, caught before any store call
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}

	// LimitExceededError is returned when a media batch would exceed the per-item cap.
	LimitExceededError struct {
		Max int
	}

	// InvalidURLError is returned for links no video id can be extracted from.
	InvalidURLError struct {
		URL string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }
func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("Maximum %d files allowed", e.Max)
}
func (e *InvalidURLError) Error() string { return "Please enter a valid YouTube URL" }

func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int    { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int  { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int     { return http.StatusForbidden }
func (e *LimitExceededError) StatusCode() int { return http.StatusBadRequest }
func (e *InvalidURLError) StatusCode() int    { return http.StatusBadRequest }

func (e *NotFoundError) Is(target error) bool      { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool    { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool  { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool     { return target == ErrForbidden }
func (e *LimitExceededError) Is(target error) bool { return target == ErrValidation }
func (e *InvalidURLError) Is(target error) bool    { return target == ErrValidation }

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (section, sub_item, category)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string        { return e.Message }
func (e *ConflictError) StatusCode() int      { return http.StatusConflict }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// StoreError wraps a failure reported by the content store.
// Its message is shown to the admin as-is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}
func (e *StoreError) Unwrap() error        { return e.Err }
func (e *StoreError) StatusCode() int      { return http.StatusInternalServerError }
func (e *StoreError) Is(target error) bool { return target == ErrStore }

// Upload failure reasons.
const (
	UploadInvalidType = "invalid_type"
	UploadTooLarge    = "too_large"
	UploadStorage     = "storage"
)

// UploadError reports a file that could not be stored.
type UploadError struct {
	File   string
	Reason string // one of the Upload* constants
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("Failed to upload %s: %v", e.File, e.Err)
}
func (e *UploadError) Unwrap() error        { return e.Err }
func (e *UploadError) Is(target error) bool { return target == ErrUpload }
func (e *UploadError) StatusCode() int {
	switch e.Reason {
	case UploadInvalidType:
		return http.StatusUnsupportedMediaType
	case UploadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadGateway
	}
}

// EmailSendError reports a rejection or transport failure from the email API.
type EmailSendError struct {
	Err error
}

func (e *EmailSendError) Error() string {
	return fmt.Sprintf("Failed to send email: %v", e.Err)
}
func (e *EmailSendError) Unwrap() error        { return e.Err }
func (e *EmailSendError) StatusCode() int      { return http.StatusBadGateway }
func (e *EmailSendError) Is(target error) bool { return target == ErrEmailSend }
