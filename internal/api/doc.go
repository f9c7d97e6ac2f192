// Package api is the wire contract between the verification client and
// server: the gophauth.VerificationService descriptor, typed request and
// response values, and a thin client stub.
//
// Messages travel as google.protobuf.Struct (and google.protobuf.Empty), so
// the service needs no generated code. Byte fields are base64 (std encoding)
// strings inside the Struct.
//
// Methods
//
//	Register(username, salt, verifier) -> Empty       AlreadyExists on duplicates
//	GetSalt(username)                  -> {salt}      stable fake salt for unknown users
//	Login(username, verifier)          -> {access_token}
//	Ping()                             -> {status}
package api
