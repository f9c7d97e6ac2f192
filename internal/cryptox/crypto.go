// Package cryptox implements the salted-verifier scheme shared by the
// verification client and server: the client derives a key from the password
// and a per-user salt, and only a hash of that key crosses the wire.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the length of freshly generated per-user salts.
	SaltSize = 32
	keySize  = 32
)

// DeriveKey stretches password with argon2id under salt.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// MakeVerifier hashes a derived key into the value stored by the server.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// VerifierFor is DeriveKey followed by MakeVerifier.
func VerifierFor(password []byte, salt []byte) []byte {
	return MakeVerifier(DeriveKey(password, salt))
}

// Equal compares two verifiers in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
