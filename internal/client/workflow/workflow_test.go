package workflow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

// scriptedVerifier returns errs[i] on the i-th call (nil once exhausted).
type scriptedVerifier struct {
	mu    sync.Mutex
	calls int
	errs  []error
	token string
	users []string
}

func (v *scriptedVerifier) Verify(_ context.Context, username, _ string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.users = append(v.users, username)
	i := v.calls
	v.calls++
	if i < len(v.errs) && v.errs[i] != nil {
		return "", v.errs[i]
	}
	return v.token, nil
}

func (v *scriptedVerifier) Calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calls
}

// gatedVerifier blocks until release is closed or ctx ends.
type gatedVerifier struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func newGatedVerifier() *gatedVerifier {
	return &gatedVerifier{entered: make(chan struct{}, 8), release: make(chan struct{})}
}

func (g *gatedVerifier) Verify(ctx context.Context, _, _ string) (string, error) {
	g.calls.Add(1)
	g.entered <- struct{}{}
	select {
	case <-g.release:
		return "tok", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type registeringVerifier struct {
	scriptedVerifier
	registerErrs []error
	registered   []string
}

func (r *registeringVerifier) Register(_ context.Context, username, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := len(r.registered)
	r.registered = append(r.registered, username)
	if i < len(r.registerErrs) {
		return r.registerErrs[i]
	}
	return nil
}

func newLoginForm(user, pass string) *form.Form {
	f := form.New(form.ModeLogin)
	f.SetUsername(user)
	f.SetPassword(pass)
	return f
}

func newSignUpForm(user, pass, confirm string) *form.Form {
	f := form.New(form.ModeSignUp)
	f.SetUsername(user)
	f.SetPassword(pass)
	f.SetConfirmation(confirm)
	return f
}

func waitOutcome(t *testing.T, ch <-chan Outcome) Outcome {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return Outcome{}
	}
}

// ---- validation ----

func TestSubmit_ValidationShortCircuits(t *testing.T) {
	tests := []struct {
		name string
		form *form.Form
		want string
	}{
		{name: "login empty username", form: newLoginForm("", "password123"), want: MsgLoginFieldsRequired},
		{name: "login empty password", form: newLoginForm("admin", ""), want: MsgLoginFieldsRequired},
		{name: "login both empty", form: newLoginForm("", ""), want: MsgLoginFieldsRequired},
		{name: "signup missing confirmation", form: newSignUpForm("admin", "password123", ""), want: MsgAllFieldsRequired},
		{name: "signup missing username", form: newSignUpForm("", "a", "a"), want: MsgAllFieldsRequired},
		{name: "signup missing all and mismatch", form: newSignUpForm("", "a", ""), want: MsgAllFieldsRequired},
		{name: "signup mismatch", form: newSignUpForm("admin", "password123", "password124"), want: MsgPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &scriptedVerifier{}
			w := New(tt.form, v, Options{})

			o := waitOutcome(t, w.Submit(context.Background()))

			var ve *ValidationError
			require.ErrorAs(t, o.Err, &ve)
			assert.Equal(t, tt.want, ve.Reason)
			assert.Equal(t, KindValidation, o.Kind())
			assert.Equal(t, 0, v.Calls(), "backend must not be called")
			assert.Equal(t, StateRejectedLocally, w.State())
			assert.Equal(t, tt.want, tt.form.Error())
			assert.False(t, tt.form.Submitting())
		})
	}
}

func TestValidate_SignUpPassesWithMatchingFields(t *testing.T) {
	require.NoError(t, Validate(form.Credentials{Username: "a", Password: "b", Confirmation: "b"}, form.ModeSignUp))
	require.NoError(t, Validate(form.Credentials{Username: "a", Password: "b"}, form.ModeLogin))
}

// ---- remote phase ----

func TestSubmit_DemoBackend_SuccessAfterDelay(t *testing.T) {
	f := newLoginForm("admin", "password123")

	var successes []string
	w := New(f, client.NewDemoVerifier(30*time.Millisecond), Options{
		OnSuccess: func(username, _ string) { successes = append(successes, username) },
	})

	start := time.Now()
	ch := w.Submit(context.Background())
	assert.Equal(t, StatePending, w.State())
	assert.True(t, f.Submitting())

	o := waitOutcome(t, ch)
	require.NoError(t, o.Err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, KindSuccess, o.Kind())
	assert.Equal(t, "admin", o.Username)
	assert.Equal(t, []string{"admin"}, successes)
	assert.Equal(t, StateSucceeded, w.State())
	assert.False(t, f.Submitting())
	assert.Empty(t, f.Error())

	_, open := <-ch
	assert.False(t, open, "channel is closed after the single outcome")
}

func TestSubmit_DemoBackend_WrongPair(t *testing.T) {
	f := newLoginForm("admin", "wrong")
	called := false
	w := New(f, client.NewDemoVerifier(0), Options{OnSuccess: func(string, string) { called = true }})

	o := w.SubmitWait(context.Background())
	require.ErrorIs(t, o.Err, ErrAuthentication)
	assert.Equal(t, KindAuthentication, o.Kind())
	assert.Equal(t, MsgInvalidCredentials, f.Error())
	assert.Equal(t, StateRejectedRemotely, w.State())
	assert.False(t, called)
}

func TestSubmit_SecondSubmitWhilePendingIsNoop(t *testing.T) {
	f := newLoginForm("admin", "password123")
	g := newGatedVerifier()
	w := New(f, g, Options{})

	first := w.Submit(context.Background())
	<-g.entered

	second := waitOutcome(t, w.Submit(context.Background()))
	require.ErrorIs(t, second.Err, ErrSubmissionPending)
	assert.Equal(t, KindPending, second.Kind())
	assert.Empty(t, Message(second.Err))
	assert.Equal(t, int32(1), g.calls.Load(), "no second backend call")
	assert.True(t, f.Submitting())
	assert.Equal(t, StatePending, w.State())

	close(g.release)
	o := waitOutcome(t, first)
	require.NoError(t, o.Err)
	assert.Equal(t, "tok", o.Token)

	// once resolved the trigger is enabled again
	again := waitOutcome(t, w.Submit(context.Background()))
	require.NoError(t, again.Err)
	assert.Equal(t, int32(2), g.calls.Load())
}

func TestSubmit_RetriesTransientFailures(t *testing.T) {
	v := &scriptedVerifier{errs: []error{client.ErrUnavailable, errors.New("connection reset")}, token: "jwt"}
	w := New(newLoginForm("admin", "password123"), v, Options{RetryAttempts: 3, RetryDelay: time.Millisecond})

	o := w.SubmitWait(context.Background())
	require.NoError(t, o.Err)
	assert.Equal(t, "jwt", o.Token)
	assert.Equal(t, 3, v.Calls())
}

func TestSubmit_DoesNotRetryCredentialFailures(t *testing.T) {
	v := &scriptedVerifier{errs: []error{client.ErrUnauthorized}}
	w := New(newLoginForm("admin", "nope"), v, Options{RetryAttempts: 5, RetryDelay: time.Millisecond})

	o := w.SubmitWait(context.Background())
	require.ErrorIs(t, o.Err, ErrAuthentication)
	require.ErrorIs(t, o.Err, client.ErrUnauthorized)
	assert.Equal(t, 1, v.Calls())
}

func TestSubmit_ExhaustedRetriesAreUnavailable(t *testing.T) {
	v := &scriptedVerifier{errs: []error{client.ErrUnavailable, client.ErrUnavailable}}
	f := newLoginForm("admin", "password123")
	w := New(f, v, Options{RetryAttempts: 2, RetryDelay: time.Millisecond})

	o := w.SubmitWait(context.Background())
	require.ErrorIs(t, o.Err, ErrUnavailable)
	assert.Equal(t, KindUnavailable, o.Kind())
	assert.Equal(t, 2, v.Calls())
	assert.Equal(t, MsgUnavailable, f.Error())
}

func TestSubmit_RequestTimeoutBoundsPending(t *testing.T) {
	g := newGatedVerifier()
	w := New(newLoginForm("admin", "password123"), g, Options{RequestTimeout: 20 * time.Millisecond})

	o := waitOutcome(t, w.Submit(context.Background()))
	require.ErrorIs(t, o.Err, ErrUnavailable)
	require.ErrorIs(t, o.Err, context.DeadlineExceeded)
	assert.Equal(t, StateRejectedRemotely, w.State())
}

func TestSubmit_CancelAbandonsVerification(t *testing.T) {
	g := newGatedVerifier()
	f := newLoginForm("admin", "password123")
	w := New(f, g, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	ch := w.Submit(ctx)
	<-g.entered
	cancel()

	o := waitOutcome(t, ch)
	assert.Equal(t, KindUnavailable, o.Kind())
	assert.False(t, f.Submitting())
}

func TestSubmit_SignUpRegistersThenVerifies(t *testing.T) {
	v := &registeringVerifier{scriptedVerifier: scriptedVerifier{token: "jwt"}}
	w := New(newSignUpForm("alice", "s3cret!pass", "s3cret!pass"), v, Options{})

	o := w.SubmitWait(context.Background())
	require.NoError(t, o.Err)
	assert.Equal(t, []string{"alice"}, v.registered)
	assert.Equal(t, 1, v.Calls())
}

func TestSubmit_SignUpDoesNotReRegisterOnRetry(t *testing.T) {
	v := &registeringVerifier{scriptedVerifier: scriptedVerifier{errs: []error{client.ErrUnavailable}}}
	w := New(newSignUpForm("alice", "pw", "pw"), v, Options{RetryAttempts: 2, RetryDelay: time.Millisecond})

	o := w.SubmitWait(context.Background())
	require.NoError(t, o.Err)
	assert.Equal(t, []string{"alice"}, v.registered)
	assert.Equal(t, 2, v.Calls())
}

func TestSubmit_SignUpTakenUsernameIsAuthenticationError(t *testing.T) {
	v := &registeringVerifier{registerErrs: []error{client.ErrAlreadyExists}}
	w := New(newSignUpForm("admin", "pw", "pw"), v, Options{RetryAttempts: 3})

	o := w.SubmitWait(context.Background())
	require.ErrorIs(t, o.Err, ErrAuthentication)
	assert.Equal(t, 0, v.Calls())
}

func TestSubmit_SignUpWithoutRegistrarOnlyVerifies(t *testing.T) {
	w := New(newSignUpForm("admin", "password123", "password123"), client.NewDemoVerifier(0), Options{})
	require.NoError(t, w.SubmitWait(context.Background()).Err)
}

// ---- error taxonomy ----

func TestKindOfAndMessage(t *testing.T) {
	tests := []struct {
		err  error
		kind Kind
		msg  string
	}{
		{nil, KindSuccess, ""},
		{&ValidationError{Reason: MsgPasswordMismatch}, KindValidation, MsgPasswordMismatch},
		{ErrAuthentication, KindAuthentication, MsgInvalidCredentials},
		{ErrUnavailable, KindUnavailable, MsgUnavailable},
		{errors.New("anything else"), KindUnavailable, MsgUnavailable},
		{ErrSubmissionPending, KindPending, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, KindOf(tt.err), "%v", tt.err)
		assert.Equal(t, tt.msg, Message(tt.err), "%v", tt.err)
	}
}

func TestStateAndKindStrings(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "rejected_remotely", StateRejectedRemotely.String())
	assert.Equal(t, "authentication_error", KindAuthentication.String())
}
