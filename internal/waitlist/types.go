// Package waitlist implements the waitlist signup controller: it validates a
// name/email pair, relays it to the form-collection endpoint and tracks the
// outcome of each attempt.
package waitlist

import (
	"context"
	"errors"
)

// FormInput is the user-editable content of the signup form.
type FormInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Empty reports whether both fields are blank.
func (f FormInput) Empty() bool {
	return f.Name == "" && f.Email == ""
}

// Status is the lifecycle state of a signup attempt.
type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the status as its lowercase name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Kind classifies a notification for display.
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Notification is an ephemeral user-facing message.
type Notification struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var (
	// MissingInformation is emitted when the name or email is blank.
	MissingInformation = Notification{
		Kind:        KindError,
		Title:       "Missing Information",
		Description: "Please enter both your name and email address.",
	}
	// Joined is emitted when the endpoint accepted the signup.
	Joined = Notification{
		Kind:        KindSuccess,
		Title:       "You're In!",
		Description: "Thanks for joining the waitlist. We'll be in touch soon.",
	}
	// SubmissionFailed is emitted for any transport or upstream failure.
	SubmissionFailed = Notification{
		Kind:        KindError,
		Title:       "Submission Failed",
		Description: "Something went wrong. Please try again later.",
	}
)

// ErrMissingInformation is returned by Validate when a required field is blank.
var ErrMissingInformation = errors.New("waitlist: name and email are required")

// Validate checks the input for required fields. Email format is not checked.
func Validate(input FormInput) error {
	if input.Name == "" || input.Email == "" {
		return ErrMissingInformation
	}
	return nil
}

// Submitter delivers a signup to the form-collection endpoint. A nil error
// means the endpoint accepted it.
type Submitter interface {
	Submit(ctx context.Context, input FormInput) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, input FormInput) error

func (f SubmitterFunc) Submit(ctx context.Context, input FormInput) error {
	return f(ctx, input)
}

// Sink receives notifications. The controller does not retain them.
type Sink interface {
	Notify(Notification)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Notification)

func (f SinkFunc) Notify(n Notification) {
	f(n)
}

// Outcome classifies a single Submit call.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeInvalid   Outcome = "invalid"
	// OutcomeIgnored is a call made while another submission was in flight.
	OutcomeIgnored Outcome = "ignored"
)

// Result describes what one Submit call did. Notification is what that call
// emitted, nil for an ignored call.
type Result struct {
	Status       Status
	Outcome      Outcome
	Notification *Notification
}

// Notifications returns the call's notification as a slice.
func (r Result) Notifications() []Notification {
	if r.Notification == nil {
		return nil
	}
	return []Notification{*r.Notification}
}

// State is a point-in-time copy of the controller fields.
type State struct {
	Input  FormInput `json:"input"`
	Status Status    `json:"status"`
}
