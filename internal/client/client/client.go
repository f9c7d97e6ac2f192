package client

import "context"

// Verifier checks a credential pair. On success it returns an access token,
// which may be empty for backends that do not issue one.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (string, error)
}

// Registrar is implemented by backends that can create accounts.
type Registrar interface {
	Register(ctx context.Context, username, password string) error
}
