package workflow

import (
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
)

// User-visible messages.
const (
	MsgLoginFieldsRequired = "Please enter both username and password."
	MsgAllFieldsRequired   = "Please fill in all fields."
	MsgPasswordMismatch    = "Passwords do not match."
	MsgInvalidCredentials  = "Invalid username or password."
	MsgUnavailable         = "Service unavailable. Please try again later."
)

var (
	// ErrAuthentication means the backend rejected the credentials. It never
	// says whether the user exists.
	ErrAuthentication = errors.New("authentication failed")

	// ErrUnavailable means the backend could not be reached or did not answer
	// in time, even after retries.
	ErrUnavailable = errors.New("verification unavailable")

	// ErrSubmissionPending is returned for a submit issued while another one
	// is still in flight on the same form.
	ErrSubmissionPending = errors.New("submission already in progress")
)

// ValidationError is a local rejection the user can fix immediately.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Kind is the closed set of submission results.
type Kind int

const (
	KindSuccess Kind = iota
	KindValidation
	KindAuthentication
	KindUnavailable
	KindPending
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindValidation:
		return "validation_error"
	case KindAuthentication:
		return "authentication_error"
	case KindPending:
		return "pending"
	default:
		return "unavailable"
	}
}

// KindOf maps any error returned by the workflow onto a Kind. Unknown errors
// count as KindUnavailable.
func KindOf(err error) Kind {
	var ve *ValidationError
	switch {
	case err == nil:
		return KindSuccess
	case errors.As(err, &ve):
		return KindValidation
	case errors.Is(err, ErrSubmissionPending):
		return KindPending
	case errors.Is(err, ErrAuthentication):
		return KindAuthentication
	default:
		return KindUnavailable
	}
}

// Message is the single line a surface shows for err. Success and a pending
// no-op show nothing.
func Message(err error) string {
	var ve *ValidationError
	switch KindOf(err) {
	case KindSuccess, KindPending:
		return ""
	case KindValidation:
		errors.As(err, &ve)
		return ve.Reason
	case KindAuthentication:
		return MsgInvalidCredentials
	default:
		return MsgUnavailable
	}
}

// isTransient reports whether a backend error is worth another attempt.
func isTransient(err error) bool {
	return !errors.Is(err, client.ErrUnauthorized) && !errors.Is(err, client.ErrAlreadyExists)
}
