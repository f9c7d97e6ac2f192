// Package grpc exposes the user service as gophauth.VerificationService.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophauth/internal/api"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// userSvc is the subset of services.UserService the transport needs.
type userSvc interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (string, error)
}

type GRPCServer struct {
	address     string
	users       userSvc
	logger      logging.Logger
	tlsCertFile string
	tlsKeyFile  string
}

var _ api.VerificationServer = (*GRPCServer)(nil)

// NewGRPCServer builds a server bound to address. With both certFile and
// keyFile set, Run serves TLS.
func NewGRPCServer(address string, l logging.Logger, us userSvc, certFile, keyFile string) *GRPCServer {
	return &GRPCServer{
		address:     address,
		logger:      l.With("module", "grpc_server"),
		users:       us,
		tlsCertFile: certFile,
		tlsKeyFile:  keyFile,
	}
}

func (s *GRPCServer) newServer() (*grpc.Server, error) {
	opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(s.recoveryInterceptor, s.loggingInterceptor)}

	if s.tlsCertFile != "" && s.tlsKeyFile != "" {
		creds, err := credentials.NewServerTLSFromFile(s.tlsCertFile, s.tlsKeyFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.Creds(creds))
	}

	srv := grpc.NewServer(opts...)
	api.RegisterVerificationServer(srv, s)
	return srv, nil
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv, err := s.newServer()
	if err != nil {
		_ = lis.Close()
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String(), "tls", s.tlsCertFile != "")

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
