// Package lifetrackv1 defines the lifetrack.v1.Lifetrack gRPC service.
//
// The service is described directly in Go over protobuf well-known types
// (emptypb, wrapperspb, structpb), so it needs no code generation step.
// Composite payloads are structpb.Struct values built and parsed by the
// helpers in messages.go.
package lifetrackv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "lifetrack.v1.Lifetrack"

const (
	Lifetrack_Ping_FullMethodName    = "/lifetrack.v1.Lifetrack/Ping"
	Lifetrack_Spawn_FullMethodName   = "/lifetrack.v1.Lifetrack/Spawn"
	Lifetrack_Destroy_FullMethodName = "/lifetrack.v1.Lifetrack/Destroy"
	Lifetrack_Doom_FullMethodName    = "/lifetrack.v1.Lifetrack/Doom"
	Lifetrack_IsAlive_FullMethodName = "/lifetrack.v1.Lifetrack/IsAlive"
	Lifetrack_Track_FullMethodName   = "/lifetrack.v1.Lifetrack/Track"
	Lifetrack_Untrack_FullMethodName = "/lifetrack.v1.Lifetrack/Untrack"
	Lifetrack_Clear_FullMethodName   = "/lifetrack.v1.Lifetrack/Clear"
	Lifetrack_List_FullMethodName    = "/lifetrack.v1.Lifetrack/List"
)

// LifetrackClient is the client API for the Lifetrack service.
type LifetrackClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	// Spawn takes a SpawnRequest struct and returns a SpawnResponse struct.
	Spawn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Destroy(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*emptypb.Empty, error)
	// Doom flags an object as destroying without delivering a delete
	// notification.
	Doom(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*emptypb.Empty, error)
	IsAlive(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	// Track and Untrack take a TrackRequest struct.
	Track(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Untrack(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	Clear(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
	// List returns one Record struct per tracked object.
	List(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type lifetrackClient struct {
	cc grpc.ClientConnInterface
}

func NewLifetrackClient(cc grpc.ClientConnInterface) LifetrackClient {
	return &lifetrackClient{cc}
}

func invoke[Resp any, PResp interface {
	*Resp
	proto.Message
}](ctx context.Context, cc grpc.ClientConnInterface, method string, in proto.Message, opts []grpc.CallOption) (PResp, error) {
	out := PResp(new(Resp))
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *lifetrackClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invoke[wrapperspb.StringValue](ctx, c.cc, Lifetrack_Ping_FullMethodName, in, opts)
}

func (c *lifetrackClient) Spawn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, Lifetrack_Spawn_FullMethodName, in, opts)
}

func (c *lifetrackClient) Destroy(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, Lifetrack_Destroy_FullMethodName, in, opts)
}

func (c *lifetrackClient) Doom(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, Lifetrack_Doom_FullMethodName, in, opts)
}

func (c *lifetrackClient) IsAlive(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	return invoke[wrapperspb.BoolValue](ctx, c.cc, Lifetrack_IsAlive_FullMethodName, in, opts)
}

func (c *lifetrackClient) Track(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, Lifetrack_Track_FullMethodName, in, opts)
}

func (c *lifetrackClient) Untrack(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, Lifetrack_Untrack_FullMethodName, in, opts)
}

func (c *lifetrackClient) Clear(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, Lifetrack_Clear_FullMethodName, in, opts)
}

func (c *lifetrackClient) List(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, Lifetrack_List_FullMethodName, in, opts)
}

// LifetrackServer is the server API for the Lifetrack service. Embed
// UnimplementedLifetrackServer for forward compatibility.
type LifetrackServer interface {
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Spawn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Destroy(context.Context, *wrapperspb.UInt64Value) (*emptypb.Empty, error)
	Doom(context.Context, *wrapperspb.UInt64Value) (*emptypb.Empty, error)
	IsAlive(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BoolValue, error)
	Track(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Untrack(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Clear(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	List(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
}

type UnimplementedLifetrackServer struct{}

func (UnimplementedLifetrackServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedLifetrackServer) Spawn(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Spawn not implemented")
}
func (UnimplementedLifetrackServer) Destroy(context.Context, *wrapperspb.UInt64Value) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Destroy not implemented")
}
func (UnimplementedLifetrackServer) Doom(context.Context, *wrapperspb.UInt64Value) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Doom not implemented")
}
func (UnimplementedLifetrackServer) IsAlive(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method IsAlive not implemented")
}
func (UnimplementedLifetrackServer) Track(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Track not implemented")
}
func (UnimplementedLifetrackServer) Untrack(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Untrack not implemented")
}
func (UnimplementedLifetrackServer) Clear(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Clear not implemented")
}
func (UnimplementedLifetrackServer) List(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method List not implemented")
}

func RegisterLifetrackServer(s grpc.ServiceRegistrar, srv LifetrackServer) {
	s.RegisterService(&Lifetrack_ServiceDesc, srv)
}

// unary adapts a LifetrackServer method to grpc.MethodHandler.
func unary[Req any, PReq interface {
	*Req
	proto.Message
}, Resp proto.Message](fullMethod string, call func(LifetrackServer, context.Context, PReq) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(LifetrackServer)
		if interceptor == nil {
			resp, err := call(s, ctx, in)
			return resp, err
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			resp, err := call(s, ctx, req.(PReq))
			return resp, err
		})
	}
}

var Lifetrack_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LifetrackServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary[emptypb.Empty](Lifetrack_Ping_FullMethodName, LifetrackServer.Ping)},
		{MethodName: "Spawn", Handler: unary[structpb.Struct](Lifetrack_Spawn_FullMethodName, LifetrackServer.Spawn)},
		{MethodName: "Destroy", Handler: unary[wrapperspb.UInt64Value](Lifetrack_Destroy_FullMethodName, LifetrackServer.Destroy)},
		{MethodName: "Doom", Handler: unary[wrapperspb.UInt64Value](Lifetrack_Doom_FullMethodName, LifetrackServer.Doom)},
		{MethodName: "IsAlive", Handler: unary[wrapperspb.UInt64Value](Lifetrack_IsAlive_FullMethodName, LifetrackServer.IsAlive)},
		{MethodName: "Track", Handler: unary[structpb.Struct](Lifetrack_Track_FullMethodName, LifetrackServer.Track)},
		{MethodName: "Untrack", Handler: unary[structpb.Struct](Lifetrack_Untrack_FullMethodName, LifetrackServer.Untrack)},
		{MethodName: "Clear", Handler: unary[emptypb.Empty](Lifetrack_Clear_FullMethodName, LifetrackServer.Clear)},
		{MethodName: "List", Handler: unary[emptypb.Empty](Lifetrack_List_FullMethodName, LifetrackServer.List)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/lifetrack/v1",
}
