package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/api"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader carries a per-call id so server logs can be correlated.
const RequestIDHeader = "x-request-id"

// verificationAPI is the subset of api.VerificationClient used here.
type verificationAPI interface {
	Register(ctx context.Context, req api.RegisterRequest, opts ...grpc.CallOption) error
	GetSalt(ctx context.Context, req api.GetSaltRequest, opts ...grpc.CallOption) (api.GetSaltResponse, error)
	Login(ctx context.Context, req api.LoginRequest, opts ...grpc.CallOption) (api.LoginResponse, error)
	Ping(ctx context.Context, opts ...grpc.CallOption) (api.PingResponse, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      verificationAPI
}

// NewGRPCClient prepares a client for endpointURL. With a non-empty caFile the
// channel uses TLS verified against that CA; otherwise it is plaintext.
// grpc.NewClient connects lazily, so an unreachable server surfaces on the
// first call as ErrUnavailable.
func NewGRPCClient(endpointURL, caFile string) (*GRPCClient, error) {
	creds := insecure.NewCredentials()
	if caFile != "" {
		tlsCreds, err := credentials.NewClientTLSFromFile(caFile, "")
		if err != nil {
			return nil, fmt.Errorf("load CA: %w", err)
		}
		creds = tlsCreds
	}

	conn, err := grpc.NewClient(endpointURL,
		grpc.WithTransportCredentials(creds),
		grpc.WithUnaryInterceptor(requestIDInterceptor),
	)
	if err != nil {
		return nil, err
	}

	return &GRPCClient{endpointURL: endpointURL, conn: conn, client: api.NewVerificationClient(conn)}, nil
}

func requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, uuid.NewString())
	return invoker(ctx, method, req, reply, cc, opts...)
}

// Verify fetches the user's salt, derives the verifier locally and logs in
// with it. The returned token is the server-issued JWT.
func (s *GRPCClient) Verify(ctx context.Context, username, password string) (string, error) {
	salt, err := s.client.GetSalt(ctx, api.GetSaltRequest{Username: username})
	if err != nil {
		return "", s.mapError(err)
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	resp, err := s.client.Login(ctx, api.LoginRequest{
		Username: username,
		Verifier: cryptox.VerifierFor(pw, salt.Salt),
	})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.AccessToken, nil
}

// Register creates an account with a fresh random salt.
func (s *GRPCClient) Register(ctx context.Context, username, password string) error {
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	err := s.client.Register(ctx, api.RegisterRequest{
		Username: username,
		Salt:     salt,
		Verifier: cryptox.VerifierFor(pw, salt),
	})
	return s.mapError(err)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx)
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != api.StatusOK {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied, codes.ResourceExhausted:
		return ErrUnauthorized
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
