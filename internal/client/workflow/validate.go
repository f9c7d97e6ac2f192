package workflow

import "github.com/dmitrijs2005/gophauth/internal/client/form"

// Validate applies the local rules for mode in order and returns the first
// failure as a *ValidationError.
func Validate(c form.Credentials, mode form.Mode) error {
	switch mode {
	case form.ModeSignUp:
		if c.Username == "" || c.Password == "" || c.Confirmation == "" {
			return &ValidationError{Reason: MsgAllFieldsRequired}
		}
		if c.Password != c.Confirmation {
			return &ValidationError{Reason: MsgPasswordMismatch}
		}
	default:
		if c.Username == "" || c.Password == "" {
			return &ValidationError{Reason: MsgLoginFieldsRequired}
		}
	}
	return nil
}
