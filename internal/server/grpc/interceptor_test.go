package grpc

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestRequestID(t *testing.T) {
	assert.Empty(t, requestID(context.Background()))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(requestIDHeader, "req-42"))
	assert.Equal(t, "req-42", requestID(ctx))
}

func TestLoggingInterceptor_LogsMethodAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	s := NewGRPCServer("", logging.New(&buf, "json", "debug"), &fakeUser{}, "", "")

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(requestIDHeader, "req-7"))
	info := &grpc.UnaryServerInfo{FullMethod: "/gophauth.VerificationService/Login"}

	resp, err := s.loggingInterceptor(ctx, nil, info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	})
	require.Nil(t, resp)
	require.Equal(t, codes.Unauthenticated, status.Code(err))

	out := buf.String()
	assert.Contains(t, out, `"method":"/gophauth.VerificationService/Login"`)
	assert.Contains(t, out, `"request_id":"req-7"`)
	assert.Contains(t, out, `"code":"Unauthenticated"`)
}

func TestRecoveryInterceptor_TurnsPanicIntoInternal(t *testing.T) {
	s := newServer(&fakeUser{})
	info := &grpc.UnaryServerInfo{FullMethod: "/x/Y"}

	_, err := s.recoveryInterceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		panic("boom")
	})
	require.Equal(t, codes.Internal, status.Code(err))
}

func TestRecoveryInterceptor_PassesResult(t *testing.T) {
	s := newServer(&fakeUser{})
	info := &grpc.UnaryServerInfo{FullMethod: "/x/Y"}

	resp, err := s.recoveryInterceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
