package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindState         Kind = "state"
	KindNotFound      Kind = "not_found"
)

// Error is a user-facing domain error. Operations that return one leave the store unchanged.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches another *Error with the same Kind and Code, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

var (
	// ErrEmailRequired is returned when login is attempted without an email.
	ErrEmailRequired = Validation("EMAIL_REQUIRED", "email is required")
	// ErrTitleAuthorRequired is returned when a listing is saved without title or author.
	ErrTitleAuthorRequired = Validation("TITLE_AUTHOR_REQUIRED", "title and author are required")
	// ErrInvalidCondition is returned for an unknown listing condition.
	ErrInvalidCondition = Validation("INVALID_CONDITION", "condition must be one of NEW, GOOD, USED, WORN")
	// ErrTooManyImages is returned when a listing carries more than three images.
	ErrTooManyImages = Validation("TOO_MANY_IMAGES", "a listing can have at most 3 images")
	// ErrInvalidScore is returned when a rating value is outside 1..5.
	ErrInvalidScore = Validation("INVALID_SCORE", "rating values must be between 1 and 5")
	// ErrInvalidContactMethod is returned for an unknown preferred contact method.
	ErrInvalidContactMethod = Validation("INVALID_CONTACT_METHOD", "preferred method must be EMAIL, PHONE or empty")

	// ErrOwnListing is returned when a user requests a swap on their own listing.
	ErrOwnListing = Authorization("OWN_LISTING", "you own this listing")
	// ErrNotListingOwner is returned when a non-owner edits a listing or responds to a swap.
	ErrNotListingOwner = Authorization("NOT_LISTING_OWNER", "only the listing owner can do this")
	// ErrNotRequester is returned when someone other than the requester cancels a swap.
	ErrNotRequester = Authorization("NOT_REQUESTER", "only the requester can cancel")
	// ErrNotParticipant is returned when an outsider touches a swap.
	ErrNotParticipant = Authorization("NOT_PARTICIPANT", "only swap participants can do this")

	// ErrListingUnavailable is returned when requesting a listing that is not available.
	ErrListingUnavailable = State("LISTING_UNAVAILABLE", "listing not available")
	// ErrDuplicateRequest is returned when the requester already has an active request for the listing.
	ErrDuplicateRequest = State("DUPLICATE_REQUEST", "you already have a request for this listing")
	// ErrInvalidTransition is returned when the swap status does not permit the action.
	ErrInvalidTransition = State("INVALID_TRANSITION", "swap status does not permit this action")

	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = NotFound("USER_NOT_FOUND", "user not found")
	// ErrBookNotFound is returned when a book id does not resolve.
	ErrBookNotFound = NotFound("BOOK_NOT_FOUND", "book not found")
	// ErrListingNotFound is returned when a listing id does not resolve.
	ErrListingNotFound = NotFound("LISTING_NOT_FOUND", "listing not found")
	// ErrSwapNotFound is returned when a swap id does not resolve.
	ErrSwapNotFound = NotFound("SWAP_NOT_FOUND", "swap not found")
)

// Validation builds a validation error.
func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// Authorization builds an authorization error.
func Authorization(code, message string) *Error {
	return &Error{Kind: KindAuthorization, Code: code, Message: message}
}

// State builds a state error.
func State(code, message string) *Error {
	return &Error{Kind: KindState, Code: code, Message: message}
}

// NotFound builds a not-found error.
func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// KindOf returns the Kind of err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var e *Error
	if !errors.As(err, &e) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
	switch e.Kind {
	case KindValidation:
		return NewHTTPError(http.StatusBadRequest, e.Message, e.Code)
	case KindAuthorization:
		return NewHTTPError(http.StatusForbidden, e.Message, e.Code)
	case KindState:
		return NewHTTPError(http.StatusConflict, e.Message, e.Code)
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, e.Message, e.Code)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
