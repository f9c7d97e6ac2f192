package client

import (
	"fmt"
	"time"
)

// Backend names.
const (
	BackendDemo = "demo"
	BackendGRPC = "grpc"
)

// NewBackend builds the verifier named by backend. The returned close func
// releases its connection and is never nil.
func NewBackend(backend, endpointURL, caFile string, demoDelay time.Duration) (Verifier, func() error, error) {
	switch backend {
	case BackendDemo, "":
		return NewDemoVerifier(demoDelay), func() error { return nil }, nil
	case BackendGRPC:
		c, err := NewGRPCClient(endpointURL, caFile)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}
}
