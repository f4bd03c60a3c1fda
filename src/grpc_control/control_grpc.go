package grpc_control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "campaignpulse.control.v1.DashboardControl"

const (
	methodGetSnapshot = "/" + ServiceName + "/GetSnapshot"
	methodForceTick   = "/" + ServiceName + "/ForceTick"
	methodGetStatus   = "/" + ServiceName + "/GetStatus"
)

// -----------------------------------------------------------------------------
// Server side
// -----------------------------------------------------------------------------

// DashboardControlServer is the control surface exposed over gRPC. Messages
// are protobuf well-known types so no generated code is needed.
type DashboardControlServer interface {
	GetSnapshot(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ForceTick(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterDashboardControlServer attaches srv to s.
func RegisterDashboardControlServer(s grpc.ServiceRegistrar, srv DashboardControlServer) {
	s.RegisterService(&DashboardControlServiceDesc, srv)
}

type unaryMethod func(DashboardControlServer, context.Context, *emptypb.Empty) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(emptypb.Empty)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DashboardControlServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(DashboardControlServer), ctx, req.(*emptypb.Empty))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// DashboardControlServiceDesc describes the service for grpc.Server.
var DashboardControlServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSnapshot",
			Handler: unaryHandler(methodGetSnapshot, func(s DashboardControlServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
				return s.GetSnapshot(ctx, in)
			}),
		},
		{
			MethodName: "ForceTick",
			Handler: unaryHandler(methodForceTick, func(s DashboardControlServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
				return s.ForceTick(ctx, in)
			}),
		},
		{
			MethodName: "GetStatus",
			Handler: unaryHandler(methodGetStatus, func(s DashboardControlServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
				return s.GetStatus(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "campaignpulse/control/v1/control.proto",
}

// -----------------------------------------------------------------------------
// Client side
// -----------------------------------------------------------------------------

type DashboardControlClient struct {
	cc grpc.ClientConnInterface
}

func NewDashboardControlClient(cc grpc.ClientConnInterface) *DashboardControlClient {
	return &DashboardControlClient{cc: cc}
}

func (c *DashboardControlClient) GetSnapshot(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodGetSnapshot, opts...)
}

func (c *DashboardControlClient) ForceTick(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodForceTick, opts...)
}

func (c *DashboardControlClient) GetStatus(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, methodGetStatus, opts...)
}

func (c *DashboardControlClient) invoke(ctx context.Context, method string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
