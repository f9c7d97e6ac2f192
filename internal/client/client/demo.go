package client

import (
	"context"
	"crypto/subtle"
	"time"
)

// The single pair the demo backend accepts.
const (
	DemoUsername = "admin"
	DemoPassword = "password123"
)

// DefaultDemoDelay is how long the demo backend pretends to work.
const DefaultDemoDelay = 2 * time.Second

// DemoVerifier stands in for a real identity store: after Delay it compares
// the pair against DemoUsername / DemoPassword.
type DemoVerifier struct {
	Delay time.Duration
}

func NewDemoVerifier(delay time.Duration) *DemoVerifier {
	return &DemoVerifier{Delay: delay}
}

func (d *DemoVerifier) Verify(ctx context.Context, username, password string) (string, error) {
	if d.Delay > 0 {
		timer := time.NewTimer(d.Delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(DemoUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(DemoPassword)) == 1
	if !userOK || !passOK {
		return "", ErrUnauthorized
	}
	return "", nil
}
