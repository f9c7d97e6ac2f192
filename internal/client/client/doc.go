// Package client contains the verification backends the credential workflow
// talks to.
//
// # Overview
//
//  1. A transport-agnostic contract: Verifier (check a username / password
//     pair) and the optional Registrar (create an account first).
//  2. DemoVerifier, which waits a fixed interval and accepts exactly one
//     literal pair.
//  3. GRPCClient, which speaks gophauth.VerificationService using the
//     salted-verifier scheme from cryptox, so the raw password never leaves
//     the process.
//
// # Error Handling
//
// Backends report conditions as sentinel errors that callers match with
// errors.Is: ErrUnauthorized, ErrAlreadyExists, ErrUnavailable. Anything else
// is a transport failure.
//
// All operations accept context.Context and honor cancellation.
package client
