// Package authrpc описывает gRPC-сервис credentials.v1.CredentialService.
//
// Сообщения передаются как google.protobuf.Struct, поэтому сервису не нужен
// сгенерированный код: дескриптор и обработчики описаны здесь вручную.
package authrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName полное имя gRPC-сервиса.
const ServiceName = "credentials.v1.CredentialService"

// Имена методов сервиса.
const (
	MethodAuthenticate    = "Authenticate"
	MethodValidateSession = "ValidateSession"
	MethodRevokeSession   = "RevokeSession"
	MethodLookupAccount   = "LookupAccount"
	MethodCreateAccount   = "CreateAccount"
)

// Поля сообщений.
const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldToken     = "token"
	FieldValid     = "valid"
	FieldAccountID = "account_id"
	FieldFound     = "found"
)

// CredentialServer серверная сторона сервиса.
type CredentialServer interface {
	Authenticate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ValidateSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	RevokeSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	LookupAccount(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CreateAccount(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// FullMethod возвращает путь метода для Invoke и интерсепторов.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type call func(CredentialServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, fn call) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return fn(srv.(CredentialServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return fn(srv.(CredentialServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc дескриптор для grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CredentialServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodAuthenticate, Handler: unary(MethodAuthenticate, CredentialServer.Authenticate)},
		{MethodName: MethodValidateSession, Handler: unary(MethodValidateSession, CredentialServer.ValidateSession)},
		{MethodName: MethodRevokeSession, Handler: unary(MethodRevokeSession, CredentialServer.RevokeSession)},
		{MethodName: MethodLookupAccount, Handler: unary(MethodLookupAccount, CredentialServer.LookupAccount)},
		{MethodName: MethodCreateAccount, Handler: unary(MethodCreateAccount, CredentialServer.CreateAccount)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "credentials/v1/credentials.proto",
}

// Register регистрирует реализацию сервиса на сервере.
func Register(s grpc.ServiceRegistrar, srv CredentialServer) {
	s.RegisterService(&ServiceDesc, srv)
}
