package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/api"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req api.RegisterRequest) error {
	s.logger.Info(ctx, "Registration request", "username", req.Username)

	if _, err := s.users.Register(ctx, req.Username, req.Salt, req.Verifier); err != nil {
		return s.mapError(ctx, err)
	}

	return nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req api.GetSaltRequest) (api.GetSaltResponse, error) {
	salt, err := s.users.GetSalt(ctx, req.Username)
	if err != nil {
		return api.GetSaltResponse{}, s.mapError(ctx, err)
	}

	return api.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error) {
	token, err := s.users.Login(ctx, req.Username, req.Verifier)
	if err != nil {
		return api.LoginResponse{}, s.mapError(ctx, err)
	}

	return api.LoginResponse{AccessToken: token}, nil
}

func (s *GRPCServer) Ping(ctx context.Context) (api.PingResponse, error) {
	return api.PingResponse{Status: api.StatusOK}, nil
}

// mapError turns service errors into status codes. Internal details are
// logged, never sent.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, "username, salt and verifier are required")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "user already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrorLockedOut):
		return status.Error(codes.ResourceExhausted, "too many failed attempts")
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
