package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return fmt.Sprintf("(%s)", a.session.Username())
	}
	return fmt.Sprintf("(%s)", a.form.Mode())
}

// Root greets the user and runs the REPL on the app's input until exit.
// Commands and prompts share a.reader, so scripted input is consumed in
// order.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to gophauth CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
