// Package cli provides the interactive gophauth terminal client.
//
// It wires configuration, a verification backend and one entry form into a
// REPL. The commands on offer depend on which view the session selects:
//
//	entry form:  login, signup, reveal [confirm], help, exit
//	dashboard:   whoami, logout, help, exit
//
// Passwords are read without echo unless revealed. While a submission is
// pending a progress indicator is printed and the REPL accepts nothing else.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
