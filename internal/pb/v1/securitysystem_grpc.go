// Package pb holds the gRPC service descriptor of the security-system API.
//
// Messages are protobuf well-known types, so only the service glue lives
// here; it mirrors what protoc-gen-go-grpc emits for
// api/securitysystem/v1/securitysystem.proto.
package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Full method names.
const (
	ServiceName = "securitysystem.v1.SecuritySystemService"

	SecuritySystemService_GetStatus_FullMethodName       = "/" + ServiceName + "/GetStatus"
	SecuritySystemService_GetCurrentState_FullMethodName = "/" + ServiceName + "/GetCurrentState"
	SecuritySystemService_GetTargetState_FullMethodName  = "/" + ServiceName + "/GetTargetState"
	SecuritySystemService_SetTargetState_FullMethodName  = "/" + ServiceName + "/SetTargetState"
	SecuritySystemService_GetSwitchOn_FullMethodName     = "/" + ServiceName + "/GetSwitchOn"
	SecuritySystemService_SetSwitchOn_FullMethodName     = "/" + ServiceName + "/SetSwitchOn"
)

// ActorMetadataKey carries "user@host" of the caller on write requests.
const ActorMetadataKey = "x-security-actor"

// SecuritySystemServiceClient is the client API for SecuritySystemService.
type SecuritySystemServiceClient interface {
	GetStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetCurrentState(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	GetTargetState(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	SetTargetState(
		ctx context.Context,
		in *wrapperspb.StringValue,
		opts ...grpc.CallOption,
	) (*wrapperspb.StringValue, error)
	GetSwitchOn(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	SetSwitchOn(ctx context.Context, in *wrapperspb.BoolValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type securitySystemServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSecuritySystemServiceClient creates a client bound to cc.
//
//nolint:ireturn // Generated-style constructor returns the client interface.
func NewSecuritySystemServiceClient(cc grpc.ClientConnInterface) SecuritySystemServiceClient {
	return &securitySystemServiceClient{cc}
}

func (c *securitySystemServiceClient) GetStatus(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SecuritySystemService_GetStatus_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *securitySystemServiceClient) GetCurrentState(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, SecuritySystemService_GetCurrentState_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *securitySystemServiceClient) GetTargetState(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, SecuritySystemService_GetTargetState_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *securitySystemServiceClient) SetTargetState(
	ctx context.Context,
	in *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, SecuritySystemService_SetTargetState_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *securitySystemServiceClient) GetSwitchOn(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, SecuritySystemService_GetSwitchOn_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *securitySystemServiceClient) SetSwitchOn(
	ctx context.Context,
	in *wrapperspb.BoolValue,
	opts ...grpc.CallOption,
) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, SecuritySystemService_SetSwitchOn_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// SecuritySystemServiceServer is the server API for SecuritySystemService.
// Implementations must embed UnimplementedSecuritySystemServiceServer.
type SecuritySystemServiceServer interface {
	GetStatus(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	GetCurrentState(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error)
	GetTargetState(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error)
	SetTargetState(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	GetSwitchOn(ctx context.Context, in *emptypb.Empty) (*wrapperspb.BoolValue, error)
	SetSwitchOn(ctx context.Context, in *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error)
	mustEmbedUnimplementedSecuritySystemServiceServer()
}

// UnimplementedSecuritySystemServiceServer must be embedded for forward compatibility.
type UnimplementedSecuritySystemServiceServer struct{}

func (UnimplementedSecuritySystemServiceServer) GetStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStatus not implemented")
}

func (UnimplementedSecuritySystemServiceServer) GetCurrentState(
	context.Context,
	*emptypb.Empty,
) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCurrentState not implemented")
}

func (UnimplementedSecuritySystemServiceServer) GetTargetState(
	context.Context,
	*emptypb.Empty,
) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTargetState not implemented")
}

func (UnimplementedSecuritySystemServiceServer) SetTargetState(
	context.Context,
	*wrapperspb.StringValue,
) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method SetTargetState not implemented")
}

func (UnimplementedSecuritySystemServiceServer) GetSwitchOn(
	context.Context,
	*emptypb.Empty,
) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSwitchOn not implemented")
}

func (UnimplementedSecuritySystemServiceServer) SetSwitchOn(
	context.Context,
	*wrapperspb.BoolValue,
) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method SetSwitchOn not implemented")
}

func (UnimplementedSecuritySystemServiceServer) mustEmbedUnimplementedSecuritySystemServiceServer() {}

// RegisterSecuritySystemServiceServer registers srv on s.
func RegisterSecuritySystemServiceServer(s grpc.ServiceRegistrar, srv SecuritySystemServiceServer) {
	s.RegisterService(&SecuritySystemService_ServiceDesc, srv)
}

func unaryHandler[In any, Out any](
	method string,
	call func(srv SecuritySystemServiceServer, ctx context.Context, in *In) (*Out, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(In)
		if err := dec(in); err != nil {
			return nil, err
		}

		server, _ := srv.(SecuritySystemServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			typed, _ := req.(*In)

			return call(server, ctx, typed)
		}

		return interceptor(ctx, in, info, handler)
	}
}

// SecuritySystemService_ServiceDesc is the grpc.ServiceDesc for SecuritySystemService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by gRPC convention.
var SecuritySystemService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SecuritySystemServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetStatus",
			Handler: unaryHandler(SecuritySystemService_GetStatus_FullMethodName,
				func(s SecuritySystemServiceServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
					return s.GetStatus(ctx, in)
				}),
		},
		{
			MethodName: "GetCurrentState",
			Handler: unaryHandler(SecuritySystemService_GetCurrentState_FullMethodName,
				func(s SecuritySystemServiceServer, ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error) {
					return s.GetCurrentState(ctx, in)
				}),
		},
		{
			MethodName: "GetTargetState",
			Handler: unaryHandler(SecuritySystemService_GetTargetState_FullMethodName,
				func(s SecuritySystemServiceServer, ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error) {
					return s.GetTargetState(ctx, in)
				}),
		},
		{
			MethodName: "SetTargetState",
			Handler: unaryHandler(SecuritySystemService_SetTargetState_FullMethodName,
				func(
					s SecuritySystemServiceServer,
					ctx context.Context,
					in *wrapperspb.StringValue,
				) (*wrapperspb.StringValue, error) {
					return s.SetTargetState(ctx, in)
				}),
		},
		{
			MethodName: "GetSwitchOn",
			Handler: unaryHandler(SecuritySystemService_GetSwitchOn_FullMethodName,
				func(s SecuritySystemServiceServer, ctx context.Context, in *emptypb.Empty) (*wrapperspb.BoolValue, error) {
					return s.GetSwitchOn(ctx, in)
				}),
		},
		{
			MethodName: "SetSwitchOn",
			Handler: unaryHandler(SecuritySystemService_SetSwitchOn_FullMethodName,
				func(s SecuritySystemServiceServer, ctx context.Context, in *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error) {
					return s.SetSwitchOn(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/securitysystem/v1/securitysystem.proto",
}
