// Package models holds the server's persisted records.
package models

import "time"

// User is an account. The password never reaches the server: only the salt
// the client derived its key with and the verifier of that key are stored.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
