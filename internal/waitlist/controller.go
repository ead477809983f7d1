package waitlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const logCategory = "waitlist"

// ErrNoSubmitter is reported when a controller was built without a Submitter.
var ErrNoSubmitter = errors.New("waitlist: no submitter configured")

// Logger is the subset of the structured logger used by the controller.
type Logger interface {
	Info(category, message string, fields map[string]any)
	Error(category, message string, err error, fields map[string]any)
}

// Controller tracks one visitor's signup form. It is safe for concurrent use;
// at most one submission is in flight at a time.
type Controller struct {
	submitter Submitter
	sink      Sink
	logger    Logger

	mu        sync.Mutex
	input     FormInput
	status    Status
	observers map[int]func(State)
	nextObs   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used to record failed submissions.
func WithLogger(l Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController builds an Idle controller with empty input. A nil sink
// discards notifications.
func NewController(submitter Submitter, sink Sink, opts ...Option) *Controller {
	c := &Controller{
		submitter: submitter,
		sink:      sink,
		status:    Idle,
		observers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status returns the current submission status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Input returns the current form values.
func (c *Controller) Input() FormInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Snapshot returns the input and status read together.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Edit replaces the form values. It refuses (returns false) while a
// submission is in flight.
func (c *Controller) Edit(input FormInput) bool {
	c.mu.Lock()
	if c.status == Submitting {
		c.mu.Unlock()
		return false
	}
	c.input = input
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
	return true
}

// Observe registers fn to be called with the new state after every change.
// The returned function removes the observer.
func (c *Controller) Observe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Submit validates input and, when it is complete, relays it through the
// Submitter exactly once. It blocks until the attempt resolves and returns
// the resulting status. A call made while another submission is in flight is
// ignored and reports Submitting.
//
// Submit never returns an error: every failure ends in a notification and a
// transition to Failed.
func (c *Controller) Submit(ctx context.Context, input FormInput) Status {
	return c.Attempt(ctx, input).Status
}

// Attempt is Submit reporting how the call was classified and the
// notification it emitted. The classification is made under the same lock
// that guards the re-entry check.
func (c *Controller) Attempt(ctx context.Context, input FormInput) Result {
	c.mu.Lock()
	if c.status == Submitting {
		c.mu.Unlock()
		return Result{Status: Submitting, Outcome: OutcomeIgnored}
	}
	c.input = input

	if err := Validate(input); err != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.publish(snap)
		return c.finish(snap.Status, OutcomeInvalid, MissingInformation)
	}

	c.status = Submitting
	submitting := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(submitting)

	err := c.deliver(ctx, input)

	c.mu.Lock()
	if err != nil {
		c.status = Failed
	} else {
		c.status = Succeeded
		c.input = FormInput{}
	}
	final := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(final)

	if err != nil {
		c.logFailure(input, err)
		return c.finish(Failed, OutcomeFailed, SubmissionFailed)
	}
	if c.logger != nil {
		c.logger.Info(logCategory, "waitlist signup accepted", map[string]any{
			"email_domain": emailDomain(input.Email),
		})
	}
	return c.finish(Succeeded, OutcomeSucceeded, Joined)
}

func (c *Controller) finish(status Status, outcome Outcome, n Notification) Result {
	c.notify(n)
	return Result{Status: status, Outcome: outcome, Notification: &n}
}

// deliver runs the submitter, converting a panic into an error so the
// terminal transition always happens.
func (c *Controller) deliver(ctx context.Context, input FormInput) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("waitlist: submitter panicked: %v", r)
		}
	}()
	if c.submitter == nil {
		return ErrNoSubmitter
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return c.submitter.Submit(ctx, input)
}

func (c *Controller) snapshotLocked() State {
	return State{Input: c.input, Status: c.status}
}

func (c *Controller) publish(state State) {
	c.mu.Lock()
	observers := make([]func(State), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}

func (c *Controller) notify(n Notification) {
	if c.sink == nil {
		return
	}
	c.sink.Notify(n)
}

func (c *Controller) logFailure(input FormInput, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Error(logCategory, "waitlist submission failed", err, map[string]any{
		"email_domain": emailDomain(input.Email),
	})
}

// emailDomain returns the lower-cased part after the last @, or "".
func emailDomain(email string) string {
	if at := strings.LastIndex(email, "@"); at >= 0 && at < len(email)-1 {
		return strings.ToLower(email[at+1:])
	}
	return ""
}
