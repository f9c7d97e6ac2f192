// Package form holds the state of one login / sign-up form instance: the
// entered values, visibility toggles and the transient flags a surface needs
// to render it. Every instance owns its state; there is nothing global.
package form

import (
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/strength"
)

// Mode selects which fields the form collects and which rules apply.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignUp Mode = "signup"
)

// ParseMode maps "login" / "signup" onto a Mode. ok is false for anything else.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLogin, ModeSignUp:
		return Mode(s), true
	}
	return "", false
}

// Credentials is a point-in-time copy of the entered values.
type Credentials struct {
	Username     string
	Password     string
	Confirmation string
}

// State is a read-only snapshot used by renderers.
type State struct {
	Mode               Mode
	Username           string
	ShowPassword       bool
	ShowConfirmation   bool
	Submitting         bool
	Error              string
	Strength           strength.Rating
	TooltipVisible     bool
	HasPassword        bool
	HasConfirmation    bool
	PasswordMasked     string
	ConfirmationMasked string
}

// Form is safe for concurrent use.
type Form struct {
	mu sync.RWMutex

	mode         Mode
	username     string
	password     string
	confirmation string

	showPassword     bool
	showConfirmation bool

	submitting     bool
	errMsg         string
	rating         strength.Rating
	tooltipVisible bool
}

func New(mode Mode) *Form {
	if _, ok := ParseMode(string(mode)); !ok {
		mode = ModeLogin
	}
	return &Form{mode: mode}
}

func (f *Form) Mode() Mode {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.mode
}

// SetMode switches between login and sign-up and clears any shown error.
func (f *Form) SetMode(mode Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = mode
	f.errMsg = ""
}

func (f *Form) SetUsername(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.username = v
}

// SetPassword stores the password and recomputes its strength rating.
func (f *Form) SetPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.password = v
	f.rating = strength.Classify(v)
}

func (f *Form) SetConfirmation(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmation = v
}

func (f *Form) TogglePasswordVisibility() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showPassword = !f.showPassword
	return f.showPassword
}

func (f *Form) ToggleConfirmationVisibility() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showConfirmation = !f.showConfirmation
	return f.showConfirmation
}

func (f *Form) PasswordVisible() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.showPassword
}

func (f *Form) ConfirmationVisible() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.showConfirmation
}

func (f *Form) ShowTooltip() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tooltipVisible = true
}

func (f *Form) HideTooltip() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tooltipVisible = false
}

// Tooltip returns the strength hint, or "" when the tooltip is hidden or
// there is no password yet.
func (f *Form) Tooltip() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.tooltipVisible {
		return ""
	}
	return f.rating.Tooltip()
}

func (f *Form) Strength() strength.Rating {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.rating
}

func (f *Form) Credentials() Credentials {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return Credentials{Username: f.username, Password: f.password, Confirmation: f.confirmation}
}

func (f *Form) Submitting() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.submitting
}

func (f *Form) Error() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.errMsg
}

// SetError shows msg without touching the submitting flag. Used for
// locally rejected submissions.
func (f *Form) SetError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errMsg = msg
}

// BeginSubmit disables the submit trigger. It returns false, changing
// nothing, when a submission is already in flight.
func (f *Form) BeginSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return false
	}
	f.submitting = true
	f.errMsg = ""
	return true
}

// EndSubmit re-enables the trigger and sets the error display; an empty msg
// clears it.
func (f *Form) EndSubmit(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	f.errMsg = msg
}

// Reset clears the entered values and flags but keeps the mode.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.username, f.password, f.confirmation = "", "", ""
	f.showPassword, f.showConfirmation = false, false
	f.submitting, f.tooltipVisible = false, false
	f.errMsg = ""
	f.rating = strength.None
}

func (f *Form) Snapshot() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return State{
		Mode:               f.mode,
		Username:           f.username,
		ShowPassword:       f.showPassword,
		ShowConfirmation:   f.showConfirmation,
		Submitting:         f.submitting,
		Error:              f.errMsg,
		Strength:           f.rating,
		TooltipVisible:     f.tooltipVisible,
		HasPassword:        f.password != "",
		HasConfirmation:    f.confirmation != "",
		PasswordMasked:     mask(f.password, f.showPassword),
		ConfirmationMasked: mask(f.confirmation, f.showConfirmation),
	}
}

func mask(v string, visible bool) string {
	if visible {
		return v
	}
	out := make([]rune, 0, len(v))
	for range v {
		out = append(out, '•')
	}
	return string(out)
}
