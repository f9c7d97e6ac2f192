package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// VerificationClient calls gophauth.VerificationService over cc.
type VerificationClient struct {
	cc grpc.ClientConnInterface
}

func NewVerificationClient(cc grpc.ClientConnInterface) *VerificationClient {
	return &VerificationClient{cc: cc}
}

func (c *VerificationClient) Register(ctx context.Context, req RegisterRequest, opts ...grpc.CallOption) error {
	in, err := req.toStruct()
	if err != nil {
		return err
	}
	return c.cc.Invoke(ctx, MethodRegister, in, new(emptypb.Empty), opts...)
}

func (c *VerificationClient) GetSalt(ctx context.Context, req GetSaltRequest, opts ...grpc.CallOption) (GetSaltResponse, error) {
	in, err := req.toStruct()
	if err != nil {
		return GetSaltResponse{}, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodGetSalt, in, out, opts...); err != nil {
		return GetSaltResponse{}, err
	}
	return parseGetSaltResponse(out)
}

func (c *VerificationClient) Login(ctx context.Context, req LoginRequest, opts ...grpc.CallOption) (LoginResponse, error) {
	in, err := req.toStruct()
	if err != nil {
		return LoginResponse{}, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodLogin, in, out, opts...); err != nil {
		return LoginResponse{}, err
	}
	return parseLoginResponse(out)
}

func (c *VerificationClient) Ping(ctx context.Context, opts ...grpc.CallOption) (PingResponse, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodPing, &emptypb.Empty{}, out, opts...); err != nil {
		return PingResponse{}, err
	}
	return parsePingResponse(out)
}
