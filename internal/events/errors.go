package events

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedEventType = errors.New("unsupported event type")
	ErrEventNotFound        = errors.New("event payload not found")
	ErrInvalidRepository    = errors.New("invalid repository")

	// payload shape
	ErrMissingIssue       = errors.New("payload has no issue")
	ErrMissingComment     = errors.New("payload has no comment")
	ErrMissingPullRequest = errors.New("payload has no pull_request")
	ErrMissingReview      = errors.New("payload has no review")
)

// PayloadError reports a runner event that could not be turned into an
// invocation context.
type PayloadError struct {
	Stage string // check, read, decode or validate
	Event string
	Path  string // payload file, empty when not involved
	Err   error
}

func (e *PayloadError) Error() string {
	msg := fmt.Sprintf("%s event: %s: %v", e.Event, e.Stage, e.Err)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	return msg
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

func unsupportedEvent(event string) error {
	return &PayloadError{Stage: "check", Event: event, Err: ErrUnsupportedEventType}
}

func readFailed(event, path string, err error) error {
	return &PayloadError{Stage: "read", Event: event, Path: path, Err: err}
}

func decodeFailed(event string, err error) error {
	return &PayloadError{Stage: "decode", Event: event, Err: err}
}

func missingField(event string, sentinel error) error {
	return &PayloadError{Stage: "validate", Event: event, Err: sentinel}
}
