package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "gophauth.VerificationService"

const (
	MethodRegister = "/" + ServiceName + "/Register"
	MethodGetSalt  = "/" + ServiceName + "/GetSalt"
	MethodLogin    = "/" + ServiceName + "/Login"
	MethodPing     = "/" + ServiceName + "/Ping"
)

// VerificationServer is implemented by the server transport.
type VerificationServer interface {
	Register(ctx context.Context, req RegisterRequest) error
	GetSalt(ctx context.Context, req GetSaltRequest) (GetSaltResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Ping(ctx context.Context) (PingResponse, error)
}

// RegisterVerificationServer attaches srv to a gRPC server.
func RegisterVerificationServer(s grpc.ServiceRegistrar, srv VerificationServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VerificationServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: registerHandler},
		{MethodName: "GetSalt", Handler: getSaltHandler},
		{MethodName: "Login", Handler: loginHandler},
		{MethodName: "Ping", Handler: pingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophauth/verification",
}

// unary runs call directly or through the server interceptor chain, the same
// way generated handlers do.
func unary(ctx context.Context, srv any, in any, method string, interceptor grpc.UnaryServerInterceptor,
	call func(ctx context.Context, req any) (any, error)) (any, error) {
	if interceptor == nil {
		return call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
	return interceptor(ctx, in, info, call)
}

func invalid(err error) error {
	return status.Error(codes.InvalidArgument, err.Error())
}

func registerHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	return unary(ctx, srv, in, MethodRegister, interceptor, func(ctx context.Context, req any) (any, error) {
		r, err := parseRegisterRequest(req.(*structpb.Struct))
		if err != nil {
			return nil, invalid(err)
		}
		if err := srv.(VerificationServer).Register(ctx, r); err != nil {
			return nil, err
		}
		return &emptypb.Empty{}, nil
	})
}

func getSaltHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	return unary(ctx, srv, in, MethodGetSalt, interceptor, func(ctx context.Context, req any) (any, error) {
		r, err := parseGetSaltRequest(req.(*structpb.Struct))
		if err != nil {
			return nil, invalid(err)
		}
		resp, err := srv.(VerificationServer).GetSalt(ctx, r)
		if err != nil {
			return nil, err
		}
		return resp.toStruct()
	})
}

func loginHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	return unary(ctx, srv, in, MethodLogin, interceptor, func(ctx context.Context, req any) (any, error) {
		r, err := parseLoginRequest(req.(*structpb.Struct))
		if err != nil {
			return nil, invalid(err)
		}
		resp, err := srv.(VerificationServer).Login(ctx, r)
		if err != nil {
			return nil, err
		}
		return resp.toStruct()
	})
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	return unary(ctx, srv, in, MethodPing, interceptor, func(ctx context.Context, _ any) (any, error) {
		resp, err := srv.(VerificationServer).Ping(ctx)
		if err != nil {
			return nil, err
		}
		return resp.toStruct()
	})
}
