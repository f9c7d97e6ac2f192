package api

import (
	"encoding/base64"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldUsername    = "username"
	fieldSalt        = "salt"
	fieldVerifier    = "verifier"
	fieldAccessToken = "access_token"
	fieldStatus      = "status"
)

// StatusOK is the Ping status of a healthy server.
const StatusOK = "OK"

type RegisterRequest struct {
	Username string
	Salt     []byte
	Verifier []byte
}

type GetSaltRequest struct {
	Username string
}

type GetSaltResponse struct {
	Salt []byte
}

type LoginRequest struct {
	Username string
	Verifier []byte
}

type LoginResponse struct {
	AccessToken string
}

type PingResponse struct {
	Status string
}

func (r RegisterRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldUsername: r.Username,
		fieldSalt:     encode(r.Salt),
		fieldVerifier: encode(r.Verifier),
	})
}

func parseRegisterRequest(s *structpb.Struct) (RegisterRequest, error) {
	salt, err := bytesField(s, fieldSalt)
	if err != nil {
		return RegisterRequest{}, err
	}
	verifier, err := bytesField(s, fieldVerifier)
	if err != nil {
		return RegisterRequest{}, err
	}
	return RegisterRequest{Username: stringField(s, fieldUsername), Salt: salt, Verifier: verifier}, nil
}

func (r GetSaltRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldUsername: r.Username})
}

func parseGetSaltRequest(s *structpb.Struct) (GetSaltRequest, error) {
	return GetSaltRequest{Username: stringField(s, fieldUsername)}, nil
}

func (r GetSaltResponse) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldSalt: encode(r.Salt)})
}

func parseGetSaltResponse(s *structpb.Struct) (GetSaltResponse, error) {
	salt, err := bytesField(s, fieldSalt)
	if err != nil {
		return GetSaltResponse{}, err
	}
	return GetSaltResponse{Salt: salt}, nil
}

func (r LoginRequest) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldUsername: r.Username,
		fieldVerifier: encode(r.Verifier),
	})
}

func parseLoginRequest(s *structpb.Struct) (LoginRequest, error) {
	verifier, err := bytesField(s, fieldVerifier)
	if err != nil {
		return LoginRequest{}, err
	}
	return LoginRequest{Username: stringField(s, fieldUsername), Verifier: verifier}, nil
}

func (r LoginResponse) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldAccessToken: r.AccessToken})
}

func parseLoginResponse(s *structpb.Struct) (LoginResponse, error) {
	return LoginResponse{AccessToken: stringField(s, fieldAccessToken)}, nil
}

func (r PingResponse) toStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldStatus: r.Status})
}

func parsePingResponse(s *structpb.Struct) (PingResponse, error) {
	return PingResponse{Status: stringField(s, fieldStatus)}, nil
}

func encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func stringField(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

func bytesField(s *structpb.Struct, name string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(stringField(s, name))
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", name, err)
	}
	return b, nil
}
