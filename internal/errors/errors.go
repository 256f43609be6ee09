package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNoToken is returned when a protected request carries no token.
	ErrNoToken = errors.New("No token. authorization denied")
	// ErrInvalidToken is returned when the presented token fails verification.
	ErrInvalidToken = errors.New("Token is not valid")
	// ErrUserAlreadyExists is returned when registering an email that is taken.
	ErrUserAlreadyExists = errors.New("User already exist")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("Invalid Credential")
	// ErrPostNotFound is returned for a missing post or a malformed post id.
	ErrPostNotFound = errors.New("Post not found")
	// ErrNotAuthorized is returned when the caller does not own the resource.
	ErrNotAuthorized = errors.New("User not authorized")
	// ErrAlreadyLiked is returned when the caller already liked the post.
	ErrAlreadyLiked = errors.New("Post already liked")
	// ErrNotLiked is returned when unliking a post the caller never liked.
	ErrNotLiked = errors.New("Post has not yet been liked")
	// ErrCommentNotFound is returned when the comment is not on the post.
	ErrCommentNotFound = errors.New("Comment does not exist")
	// ErrProfileNotFound is returned when the user has no profile.
	ErrProfileNotFound = errors.New("There is no profile for this user")
	// ErrExperienceNotFound is returned when the experience entry is not on the profile.
	ErrExperienceNotFound = errors.New("Experience not found")
	// ErrEducationNotFound is returned when the education entry is not on the profile.
	ErrEducationNotFound = errors.New("Education not found")
)

// ErrorMessage is a single entry of an ErrorResponse.
type ErrorMessage struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ErrorResponse is the {errors:[{msg}]} body shape.
type ErrorResponse struct {
	Errors []ErrorMessage `json:"errors"`
}

// MessageResponse is the {msg} body shape.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ValidationError lists every request field that failed validation.
type ValidationError struct {
	Fields []ErrorMessage
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Msg
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(param, msg string) *ValidationError {
	return &ValidationError{Fields: []ErrorMessage{{Msg: msg, Param: param}}}
}

// HTTPError represents an HTTP error with status code and response body.
type HTTPError struct {
	StatusCode int
	Body       interface{}
}

func (e *HTTPError) Error() string {
	return http.StatusText(e.StatusCode)
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, body interface{}) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Body:       body,
	}
}

func errorsBody(msg string) ErrorResponse {
	return ErrorResponse{Errors: []ErrorMessage{{Msg: msg}}}
}

// ServerError is the body returned for every unclassified failure.
var ServerError = errorsBody("Server error")

// IsClassified reports whether err maps to a fixed client-facing response.
func IsClassified(err error) bool {
	return MapErrorToHTTP(err).StatusCode != http.StatusInternalServerError
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return NewHTTPError(http.StatusBadRequest, ErrorResponse{Errors: verr.Fields})
	}

	switch {
	case errors.Is(err, ErrNoToken), errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, errorsBody(err.Error()))
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, errorsBody(ErrUserAlreadyExists.Error()))
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, errorsBody(ErrInvalidCredentials.Error()))
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, MessageResponse{Msg: ErrPostNotFound.Error()})
	case errors.Is(err, ErrNotAuthorized):
		return NewHTTPError(http.StatusUnauthorized, MessageResponse{Msg: ErrNotAuthorized.Error()})
	case errors.Is(err, ErrAlreadyLiked):
		return NewHTTPError(http.StatusBadRequest, MessageResponse{Msg: ErrAlreadyLiked.Error()})
	case errors.Is(err, ErrNotLiked):
		return NewHTTPError(http.StatusBadRequest, MessageResponse{Msg: ErrNotLiked.Error()})
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, MessageResponse{Msg: ErrCommentNotFound.Error()})
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusBadRequest, MessageResponse{Msg: ErrProfileNotFound.Error()})
	case errors.Is(err, ErrExperienceNotFound):
		return NewHTTPError(http.StatusNotFound, MessageResponse{Msg: ErrExperienceNotFound.Error()})
	case errors.Is(err, ErrEducationNotFound):
		return NewHTTPError(http.StatusNotFound, MessageResponse{Msg: ErrEducationNotFound.Error()})
	default:
		return NewHTTPError(http.StatusInternalServerError, ServerError)
	}
}
