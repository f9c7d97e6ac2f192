package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/form"
	"github.com/dmitrijs2005/gophauth/internal/client/session"
	"github.com/dmitrijs2005/gophauth/internal/client/workflow"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText, getVisibleSecret, getPassword and getConfirmation are
// indirections used to facilitate testing. They can be swapped in tests.
var (
	getSimpleText    = GetSimpleText
	getVisibleSecret = GetVisibleSecret
	getPassword      = GetPassword
	getConfirmation  = GetConfirmation
)

// progressInterval is how often a dot is printed while a submission is pending.
var progressInterval = 300 * time.Millisecond

// Login reads username and password and submits them in login mode.
func (a *App) Login(ctx context.Context) error {
	return a.submit(ctx, form.ModeLogin)
}

// SignUp reads username, password and confirmation and submits them in
// sign-up mode.
func (a *App) SignUp(ctx context.Context) error {
	return a.submit(ctx, form.ModeSignUp)
}

func (a *App) submit(ctx context.Context, mode form.Mode) error {
	a.form.SetMode(mode)

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	a.form.SetUsername(username)

	password, err := a.readSecret(a.form.PasswordVisible(), "Enter password", getPassword)
	if err != nil {
		return err
	}
	a.form.SetPassword(string(password))
	common.WipeByteArray(password)

	a.form.ShowTooltip()
	if tip := a.form.Tooltip(); tip != "" {
		fmt.Fprintln(a.out, tip)
	}
	a.form.HideTooltip()

	if mode == form.ModeSignUp {
		confirmation, err := a.readSecret(a.form.ConfirmationVisible(), "Confirm password", getConfirmation)
		if err != nil {
			return err
		}
		a.form.SetConfirmation(string(confirmation))
		common.WipeByteArray(confirmation)
	}

	outcome := a.await(a.workflow.Submit(ctx))

	if outcome.Err != nil {
		fmt.Fprintln(a.out, workflow.Message(outcome.Err))
		a.logger.Debug(ctx, "submission failed", "mode", mode, "kind", outcome.Kind().String())
		return outcome.Err
	}

	a.form.Reset()
	fmt.Fprintln(a.out, session.DashboardTitle)
	fmt.Fprintln(a.out, session.DashboardMessage)
	return nil
}

func (a *App) readSecret(visible bool, prompt string, hidden func(r *bufio.Reader, w io.Writer) ([]byte, error)) ([]byte, error) {
	if visible {
		return getVisibleSecret(a.reader, prompt, a.out)
	}
	return hidden(a.reader, a.out)
}

// await prints a dot every progressInterval until the outcome arrives.
func (a *App) await(ch <-chan workflow.Outcome) workflow.Outcome {
	fmt.Fprint(a.out, "Verifying")
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case o := <-ch:
			fmt.Fprintln(a.out)
			return o
		case <-ticker.C:
			fmt.Fprint(a.out, ".")
		}
	}
}

// Reveal toggles echo for the password, or for the confirmation when target
// is "confirm".
func (a *App) Reveal(_ context.Context, target string) error {
	var shown bool
	field := "Password"
	if target == "confirm" {
		field = "Confirmation"
		shown = a.form.ToggleConfirmationVisibility()
	} else {
		shown = a.form.TogglePasswordVisibility()
	}

	if shown {
		fmt.Fprintf(a.out, "%s will be shown while typing\n", field)
	} else {
		fmt.Fprintf(a.out, "%s will be hidden while typing\n", field)
	}
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	fmt.Fprintf(a.out, "Logged in as %s\n", a.session.Username())
	if exp := a.session.ExpiresAt(); !exp.IsZero() {
		fmt.Fprintf(a.out, "Session expires at %s\n", exp.Format(time.RFC3339))
	}
	return nil
}

// Logout ends the session and returns to an empty entry form.
func (a *App) Logout(ctx context.Context) error {
	user := a.session.Username()
	a.session.Logout()
	a.form.Reset()
	a.logger.Info(ctx, "logged out", "username", user)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
