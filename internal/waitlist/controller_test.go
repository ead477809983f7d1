package waitlist

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type stubSubmitter struct {
	mu      sync.Mutex
	calls   []FormInput
	err     error
	panicV  any
	started chan struct{}
	release chan struct{}
}

func (s *stubSubmitter) Submit(ctx context.Context, input FormInput) error {
	s.mu.Lock()
	s.calls = append(s.calls, input)
	s.mu.Unlock()
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	if s.panicV != nil {
		panic(s.panicV)
	}
	return s.err
}

func (s *stubSubmitter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Notification
}

func (r *recordingSink) Notify(n Notification) {
	r.mu.Lock()
	r.events = append(r.events, n)
	r.mu.Unlock()
}

func (r *recordingSink) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.events...)
}

type recordingLogger struct {
	mu     sync.Mutex
	errors []error
	infos  []string
}

func (l *recordingLogger) Info(category, message string, fields map[string]any) {
	l.mu.Lock()
	l.infos = append(l.infos, message)
	l.mu.Unlock()
}

func (l *recordingLogger) Error(category, message string, err error, fields map[string]any) {
	l.mu.Lock()
	l.errors = append(l.errors, err)
	l.mu.Unlock()
}

var alex = FormInput{Name: "Alex", Email: "alex@example.com"}

func TestSubmitValidationGate(t *testing.T) {
	cases := []struct {
		name  string
		input FormInput
	}{
		{"both empty", FormInput{}},
		{"missing name", FormInput{Email: "alex@example.com"}},
		{"missing email", FormInput{Name: "Alex"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := &stubSubmitter{}
			sink := &recordingSink{}
			c := NewController(sub, sink)

			var seen []Status
			c.Observe(func(s State) { seen = append(seen, s.Status) })

			got := c.Submit(context.Background(), tc.input)
			if got != Idle || c.Status() != Idle {
				t.Fatalf("expected status to stay idle, got %s / %s", got, c.Status())
			}
			if sub.callCount() != 0 {
				t.Fatalf("expected no network call, got %d", sub.callCount())
			}
			for _, s := range seen {
				if s == Submitting {
					t.Fatalf("status must never become submitting on invalid input")
				}
			}
			events := sink.all()
			if len(events) != 1 || events[0] != MissingInformation {
				t.Fatalf("expected one missing-information notification, got %+v", events)
			}
			if c.Input() != tc.input {
				t.Fatalf("expected input to reflect last entry, got %+v", c.Input())
			}
		})
	}
}

func TestSubmitValidationAfterFailureKeepsFailed(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("boom")}
	c := NewController(sub, nil)
	if got := c.Submit(context.Background(), alex); got != Failed {
		t.Fatalf("expected failed, got %s", got)
	}
	if got := c.Submit(context.Background(), FormInput{Name: "Alex"}); got != Failed {
		t.Fatalf("expected invalid resubmit to leave status failed, got %s", got)
	}
	if sub.callCount() != 1 {
		t.Fatalf("expected a single network call, got %d", sub.callCount())
	}
}

func TestSubmitSuccessClearsInput(t *testing.T) {
	sub := &stubSubmitter{}
	sink := &recordingSink{}
	logger := &recordingLogger{}
	c := NewController(sub, sink, WithLogger(logger))

	if got := c.Submit(context.Background(), alex); got != Succeeded {
		t.Fatalf("expected succeeded, got %s", got)
	}
	state := c.Snapshot()
	if state.Status != Succeeded {
		t.Fatalf("expected succeeded status, got %s", state.Status)
	}
	if state.Input != (FormInput{}) {
		t.Fatalf("expected input to be cleared, got %+v", state.Input)
	}
	if len(sub.calls) != 1 || sub.calls[0] != alex {
		t.Fatalf("expected payload %+v, got %+v", alex, sub.calls)
	}
	events := sink.all()
	if len(events) != 1 || events[0] != Joined {
		t.Fatalf("expected joined notification, got %+v", events)
	}
	if len(logger.errors) != 0 {
		t.Fatalf("expected no error logs, got %v", logger.errors)
	}
}

func TestSubmitFailurePreservesInput(t *testing.T) {
	cases := []struct {
		name string
		sub  *stubSubmitter
	}{
		{"rejection", &stubSubmitter{err: errors.New("status 422")}},
		{"transport error", &stubSubmitter{err: context.DeadlineExceeded}},
		{"panic", &stubSubmitter{panicV: "connection reset"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &recordingSink{}
			logger := &recordingLogger{}
			c := NewController(tc.sub, sink, WithLogger(logger))

			if got := c.Submit(context.Background(), alex); got != Failed {
				t.Fatalf("expected failed, got %s", got)
			}
			state := c.Snapshot()
			if state.Status != Failed || state.Input != alex {
				t.Fatalf("expected failed with input preserved, got %+v", state)
			}
			events := sink.all()
			if len(events) != 1 || events[0] != SubmissionFailed {
				t.Fatalf("expected submission-failed notification, got %+v", events)
			}
			if len(logger.errors) != 1 {
				t.Fatalf("expected failure to be logged once, got %d", len(logger.errors))
			}
		})
	}
}

func TestSubmitWithoutSubmitterFails(t *testing.T) {
	c := NewController(nil, nil)
	if got := c.Submit(context.Background(), alex); got != Failed {
		t.Fatalf("expected failed, got %s", got)
	}
}

func TestSubmitTerminalTransitionExactlyOnce(t *testing.T) {
	outcomes := map[string]*stubSubmitter{
		"success":   {},
		"rejection": {err: errors.New("rejected")},
		"panic":     {panicV: errors.New("exploded")},
	}
	for name, sub := range outcomes {
		t.Run(name, func(t *testing.T) {
			c := NewController(sub, nil)
			var transitions []Status
			c.Observe(func(s State) { transitions = append(transitions, s.Status) })

			c.Submit(context.Background(), alex)

			if len(transitions) != 2 {
				t.Fatalf("expected submitting then terminal state, got %v", transitions)
			}
			if transitions[0] != Submitting {
				t.Fatalf("expected first transition to submitting, got %v", transitions)
			}
			if last := transitions[1]; last != Succeeded && last != Failed {
				t.Fatalf("expected terminal state, got %v", transitions)
			}
			if c.Status() == Submitting {
				t.Fatalf("status stuck at submitting")
			}
		})
	}
}

func TestSubmitIgnoresReentrantCalls(t *testing.T) {
	sub := &stubSubmitter{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	sink := &recordingSink{}
	c := NewController(sub, sink)

	done := make(chan Status, 1)
	go func() {
		done <- c.Submit(context.Background(), alex)
	}()
	<-sub.started

	if got := c.Submit(context.Background(), FormInput{Name: "Sam", Email: "sam@example.com"}); got != Submitting {
		t.Fatalf("expected re-entrant submit to report submitting, got %s", got)
	}
	if c.Edit(FormInput{Name: "changed"}) {
		t.Fatalf("expected edit to be refused while submitting")
	}
	state := c.Snapshot()
	if state.Status != Submitting || state.Input != alex {
		t.Fatalf("expected in-flight state to be untouched, got %+v", state)
	}
	if len(sink.all()) != 0 {
		t.Fatalf("expected no notifications before the attempt resolves")
	}

	close(sub.release)
	if got := <-done; got != Succeeded {
		t.Fatalf("expected first submit to succeed, got %s", got)
	}
	if sub.callCount() != 1 {
		t.Fatalf("expected exactly one network call, got %d", sub.callCount())
	}
	if len(sink.all()) != 1 {
		t.Fatalf("expected one notification, got %+v", sink.all())
	}
}

func TestAttemptOutcomes(t *testing.T) {
	cases := []struct {
		name    string
		sub     *stubSubmitter
		input   FormInput
		outcome Outcome
		status  Status
		note    Notification
	}{
		{"invalid", &stubSubmitter{}, FormInput{Name: "Alex"}, OutcomeInvalid, Idle, MissingInformation},
		{"succeeded", &stubSubmitter{}, alex, OutcomeSucceeded, Succeeded, Joined},
		{"failed", &stubSubmitter{err: errors.New("down")}, alex, OutcomeFailed, Failed, SubmissionFailed},
		{"panicked", &stubSubmitter{panicV: "boom"}, alex, OutcomeFailed, Failed, SubmissionFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &recordingSink{}
			c := NewController(tc.sub, sink)
			res := c.Attempt(context.Background(), tc.input)
			if res.Outcome != tc.outcome || res.Status != tc.status {
				t.Fatalf("expected %s/%s, got %+v", tc.outcome, tc.status, res)
			}
			if res.Notification == nil || *res.Notification != tc.note {
				t.Fatalf("expected notification %+v, got %+v", tc.note, res.Notification)
			}
			if got := res.Notifications(); len(got) != 1 || got[0] != tc.note {
				t.Fatalf("unexpected notifications %+v", got)
			}
			if events := sink.all(); len(events) != 1 || events[0] != tc.note {
				t.Fatalf("expected the sink to see the same notification, got %+v", events)
			}
		})
	}
}

func TestAttemptAfterInFlightSubmitResolvesIsNotIgnored(t *testing.T) {
	sub := &stubSubmitter{
		started: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	c := NewController(sub, nil)

	first := make(chan Result, 1)
	go func() {
		first <- c.Attempt(context.Background(), alex)
	}()
	<-sub.started

	ignored := c.Attempt(context.Background(), alex)
	if ignored.Outcome != OutcomeIgnored || ignored.Status != Submitting || ignored.Notification != nil {
		t.Fatalf("expected ignored call with no notification, got %+v", ignored)
	}

	// A caller that saw Submitting earlier but arrives after the first call
	// resolved is a real second submission.
	seen := c.Status()
	close(sub.release)
	if res := <-first; res.Outcome != OutcomeSucceeded || *res.Notification != Joined {
		t.Fatalf("expected first call to succeed with its own notification, got %+v", res)
	}
	second := c.Attempt(context.Background(), alex)
	if seen != Submitting {
		t.Fatalf("expected the earlier read to see submitting, got %s", seen)
	}
	if second.Outcome != OutcomeSucceeded || second.Notification == nil || *second.Notification != Joined {
		t.Fatalf("expected second call to be reported as sent, got %+v", second)
	}
	if sub.callCount() != 2 {
		t.Fatalf("expected two network calls, got %d", sub.callCount())
	}
}

func TestEditAndResubmitAfterFailure(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("down")}
	c := NewController(sub, nil)
	c.Submit(context.Background(), alex)

	fixed := FormInput{Name: "Alex", Email: "alex@example.org"}
	if !c.Edit(fixed) {
		t.Fatalf("expected edit to be allowed after failure")
	}
	sub.err = nil
	if got := c.Submit(context.Background(), c.Input()); got != Succeeded {
		t.Fatalf("expected resubmission to succeed, got %s", got)
	}
	if sub.calls[1] != fixed {
		t.Fatalf("expected edited payload, got %+v", sub.calls[1])
	}
}

func TestObserveCancel(t *testing.T) {
	c := NewController(&stubSubmitter{}, nil)
	count := 0
	cancel := c.Observe(func(State) { count++ })
	c.Edit(alex)
	cancel()
	c.Edit(FormInput{})
	if count != 1 {
		t.Fatalf("expected one observed change, got %d", count)
	}
}

func TestStatusString(t *testing.T) {
	want := map[Status]string{
		Idle:       "idle",
		Submitting: "submitting",
		Succeeded:  "succeeded",
		Failed:     "failed",
		Status(42): "unknown",
	}
	for status, label := range want {
		if got := status.String(); got != label {
			t.Fatalf("status %d: expected %q, got %q", int(status), label, got)
		}
	}
}
