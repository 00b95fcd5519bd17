package checkout

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrSubmitInFlight = errors.New("checkout: submission already in progress")
	ErrInvalid        = errors.New("checkout: form has errors")
	ErrClosed         = errors.New("checkout: flow closed")
)

const (
	msgConnection = "Unable to reach the server. Please check your internet connection and try again."
	msgBadRequest = "Please check your details and try again."
	msgRelogin    = "Your session has expired. Please log in again to continue."
	msgServer     = "Something went wrong on our side. Please try again later."
	msgGeneric    = "Enrollment failed. Please try again."
)

// SubmitError is every failed submission: transport errors have Status 0.
type SubmitError struct {
	Status  int
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("checkout: transport: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("checkout: status %d: %s", e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("checkout: status %d: %v", e.Status, e.Err)
	default:
		return fmt.Sprintf("checkout: status %d", e.Status)
	}
}

func (e *SubmitError) Unwrap() error { return e.Err }

// FailureMessage is the single alert shown to the learner for a failed submission.
func FailureMessage(err error) string {
	var se *SubmitError
	if !errors.As(err, &se) {
		return msgGeneric
	}
	switch {
	case se.Status == 0:
		return msgConnection
	case se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden:
		return msgRelogin
	case se.Status >= http.StatusInternalServerError:
		return msgServer
	case se.Status == http.StatusBadRequest:
		if m := strings.TrimSpace(se.Message); m != "" {
			return m
		}
		return msgBadRequest
	default:
		if m := strings.TrimSpace(se.Message); m != "" {
			return m
		}
		return msgGeneric
	}
}
