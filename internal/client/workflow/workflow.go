// Package workflow runs one credential submission: local validation, an
// asynchronous call to the verification backend and the resulting outcome.
//
// A Workflow belongs to exactly one form.Form. Per submission it moves
//
//	Idle -> Validating -> RejectedLocally
//	Idle -> Validating -> Pending -> Succeeded | RejectedRemotely
//
// and Pending is the only state that waits. While Pending the form's submit
// trigger is disabled and further submits are no-ops.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/form"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StatePending
	StateSucceeded
	StateRejectedLocally
	StateRejectedRemotely
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateRejectedLocally:
		return "rejected_locally"
	case StateRejectedRemotely:
		return "rejected_remotely"
	default:
		return "idle"
	}
}

// Outcome is the single value delivered per submission.
type Outcome struct {
	Err      error
	Username string
	Token    string
}

func (o Outcome) Kind() Kind {
	return KindOf(o.Err)
}

// Options tune the remote phase.
//
//   - RequestTimeout bounds each backend attempt; zero means no bound.
//   - RetryAttempts is the total number of attempts for transient failures
//     (at least one is always made).
//   - RetryDelay is the base backoff between attempts.
//   - OnSuccess runs once per successful submission, before the outcome is
//     delivered.
type Options struct {
	RequestTimeout time.Duration
	RetryAttempts  uint
	RetryDelay     time.Duration
	OnSuccess      func(username, token string)
	Logger         logging.Logger
}

type Workflow struct {
	mu       sync.Mutex
	state    State
	form     *form.Form
	verifier client.Verifier
	opts     Options
	logger   logging.Logger
}

func New(f *form.Form, v client.Verifier, opts Options) *Workflow {
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Workflow{
		form:     f,
		verifier: v,
		opts:     opts,
		logger:   logger.With("module", "workflow"),
	}
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) Form() *form.Form {
	return w.form
}

// Submit validates the form and, if that passes, verifies the credentials in
// the background. The returned channel yields exactly one Outcome and is then
// closed. Cancelling ctx abandons an in-flight verification.
func (w *Workflow) Submit(ctx context.Context) <-chan Outcome {
	out := make(chan Outcome, 1)

	w.mu.Lock()
	if w.state == StatePending {
		w.mu.Unlock()
		out <- Outcome{Err: ErrSubmissionPending}
		close(out)
		return out
	}

	w.state = StateValidating
	mode := w.form.Mode()
	creds := w.form.Credentials()

	if err := Validate(creds, mode); err != nil {
		w.state = StateRejectedLocally
		w.mu.Unlock()

		w.form.SetError(Message(err))
		w.logger.Debug(ctx, "submission rejected locally", "mode", mode, "reason", err.Error())
		out <- Outcome{Err: err, Username: creds.Username}
		close(out)
		return out
	}

	w.form.BeginSubmit()
	w.state = StatePending
	w.mu.Unlock()

	w.logger.Info(ctx, "submission pending", "mode", mode, "username", creds.Username)

	go func() {
		defer close(out)

		token, err := w.verify(ctx, mode, creds)

		w.mu.Lock()
		if err == nil {
			w.state = StateSucceeded
		} else {
			w.state = StateRejectedRemotely
		}
		w.mu.Unlock()

		w.form.EndSubmit(Message(err))
		w.logger.Info(ctx, "submission resolved", "mode", mode, "username", creds.Username, "outcome", KindOf(err).String())

		if err == nil && w.opts.OnSuccess != nil {
			w.opts.OnSuccess(creds.Username, token)
		}
		out <- Outcome{Err: err, Username: creds.Username, Token: token}
	}()

	return out
}

// SubmitWait is Submit followed by waiting for the outcome.
func (w *Workflow) SubmitWait(ctx context.Context) Outcome {
	return <-w.Submit(ctx)
}

// verify runs the remote phase with retries for transient failures and maps
// the final error onto ErrAuthentication or ErrUnavailable.
func (w *Workflow) verify(ctx context.Context, mode form.Mode, creds form.Credentials) (string, error) {
	registrar, canRegister := w.verifier.(client.Registrar)
	needsRegister := mode == form.ModeSignUp && canRegister

	var token string
	err := retry.Do(
		func() error {
			actx, cancel := w.attemptContext(ctx)
			defer cancel()

			if needsRegister {
				if err := registrar.Register(actx, creds.Username, creds.Password); err != nil {
					return err
				}
				needsRegister = false
			}

			t, err := w.verifier.Verify(actx, creds.Username, creds.Password)
			if err != nil {
				return err
			}
			token = t
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(w.opts.RetryAttempts),
		retry.Delay(w.opts.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			w.logger.Warn(ctx, "verification attempt failed", "attempt", n+1, "error", err)
		}),
	)

	switch {
	case err == nil:
		return token, nil
	case !isTransient(err):
		return "", fmt.Errorf("%w: %w", ErrAuthentication, err)
	case errors.Is(err, context.Canceled):
		return "", fmt.Errorf("%w: submission cancelled: %w", ErrUnavailable, err)
	default:
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

func (w *Workflow) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.opts.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, w.opts.RequestTimeout)
}
