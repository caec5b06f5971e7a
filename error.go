package gutencore

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic enough for a caller to branch on without
// string matching, while mapping cleanly onto the failure modes of the
// pipeline: network fetches, page parsing, model responses, and anchor
// location.
const (
	EINVALID     = "invalid"          // validation failed
	ENOTFOUND    = "not_found"        // entity does not exist
	EINTERNAL    = "internal"         // internal error
	EFETCH       = "fetch_failed"     // network fetch failed or asset missing
	EPARSE       = "parse_failed"     // expected field missing from scraped page
	EMODEL       = "model_response"   // model output empty or malformed
	EANCHOR      = "anchor_not_found" // anchor string absent from source text
	EANCHORORDER = "anchor_order"     // end anchor not found after start anchor
)

// Error represents an application-specific error. Errors can be unwrapped
// to find the first wrapped *Error in a chain.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("gutencore error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}
