package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	lifetrackv1 "lifetrack/api/lifetrack/v1"
	"lifetrack/internal/config"
	"lifetrack/internal/heap"
	"lifetrack/internal/tracker"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// service implements the Lifetrack gRPC service over a sandbox heap and the
// tracker observing it.
type service struct {
	lifetrackv1.UnimplementedLifetrackServer

	heap    *heap.Heap
	tracker *tracker.Tracker
	log     *slog.Logger
}

// newService builds the heap, subscribes a tracker to it and applies the
// configured rules.
func newService(cfg config.Config, logger *slog.Logger) (*service, error) {
	h := heap.New()

	opts := []tracker.Option{
		tracker.WithReservedName(cfg.ReservedName),
		tracker.WithLogger(logger),
	}
	if cfg.RootType != "" {
		root, ok := h.Class(cfg.RootType)
		if !ok {
			return nil, fmt.Errorf("root type %q: %w", cfg.RootType, heap.ErrUnknownClass)
		}
		opts = append(opts, tracker.WithRootType(root.ID))
	}
	tr := tracker.New(h, opts...)

	for _, name := range cfg.TrackTypes {
		c, ok := h.Class(name)
		if !ok {
			tr.Close()
			return nil, fmt.Errorf("track type %q: %w", name, heap.ErrUnknownClass)
		}
		tr.RegisterTrackedType(c.ID)
	}
	for _, pattern := range cfg.TrackNames {
		tr.RegisterTrackedName(pattern)
	}

	return &service{heap: h, tracker: tr, log: logger}, nil
}

// close shuts the heap down, which makes the tracker's listeners detach
// themselves. Closing the tracker afterwards is a no-op.
func (s *service) close() {
	s.heap.Shutdown()
	s.tracker.Close()
}

func (s *service) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("pong"), nil
}

func (s *service) Spawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sr, err := lifetrackv1.ParseSpawnRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if strings.TrimSpace(sr.Class) == "" {
		return nil, status.Error(codes.InvalidArgument, "class is required")
	}

	obj, err := s.heap.Spawn(sr.Class, sr.Name)
	if err != nil {
		return nil, heapStatus(err)
	}
	s.log.Debug("spawned object", "handle", obj.Handle(), "class", sr.Class, "name", sr.Name)
	return lifetrackv1.SpawnResponse{
		Handle: uint64(obj.Handle()),
		Slot:   obj.Slot(),
	}.Proto(), nil
}

func (s *service) Destroy(ctx context.Context, req *wrapperspb.UInt64Value) (*emptypb.Empty, error) {
	h, err := handleOf(req)
	if err != nil {
		return nil, err
	}
	if err := s.heap.Destroy(h); err != nil {
		return nil, heapStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *service) Doom(ctx context.Context, req *wrapperspb.UInt64Value) (*emptypb.Empty, error) {
	h, err := handleOf(req)
	if err != nil {
		return nil, err
	}
	if err := s.heap.BeginDestroy(h); err != nil {
		return nil, heapStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *service) IsAlive(ctx context.Context, req *wrapperspb.UInt64Value) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(s.tracker.IsAlive(tracker.Handle(req.GetValue()))), nil
}

func (s *service) Track(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	target, typ, err := s.trackTarget(req)
	if err != nil {
		return nil, err
	}
	if target.Kind == lifetrackv1.KindType {
		s.tracker.RegisterTrackedType(typ)
	} else {
		s.tracker.RegisterTrackedName(target.Pattern)
	}
	return &emptypb.Empty{}, nil
}

func (s *service) Untrack(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	target, typ, err := s.trackTarget(req)
	if err != nil {
		return nil, err
	}
	if target.Kind == lifetrackv1.KindType {
		s.tracker.UnregisterTrackedType(typ)
	} else {
		s.tracker.UnregisterTrackedName(target.Pattern)
	}
	return &emptypb.Empty{}, nil
}

func (s *service) Clear(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.tracker.ClearAllTracking()
	return &emptypb.Empty{}, nil
}

func (s *service) List(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	recs := s.tracker.Records()
	out := make([]lifetrackv1.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, lifetrackv1.Record{
			Handle:        uint64(r.Handle),
			Name:          r.Name,
			Flags:         uint32(r.Flags),
			Slot:          r.Slot,
			Valid:         r.Valid,
			TrackedAtUnix: r.TrackedAt.Unix(),
		})
	}
	return lifetrackv1.RecordList(out), nil
}

// trackTarget parses a track request and resolves a type name to its class.
func (s *service) trackTarget(req *structpb.Struct) (lifetrackv1.TrackRequest, tracker.TypeID, error) {
	target, err := lifetrackv1.ParseTrackRequest(req)
	if err != nil {
		return target, 0, status.Error(codes.InvalidArgument, err.Error())
	}
	if target.Pattern == "" {
		return target, 0, status.Errorf(codes.InvalidArgument, "%s pattern must not be empty", target.Kind)
	}
	if target.Kind != lifetrackv1.KindType {
		return target, 0, nil
	}
	c, ok := s.heap.Class(target.Pattern)
	if !ok {
		return target, 0, status.Errorf(codes.NotFound, "class %q not found", target.Pattern)
	}
	return target, c.ID, nil
}

func handleOf(req *wrapperspb.UInt64Value) (tracker.Handle, error) {
	if req.GetValue() == 0 {
		return 0, status.Error(codes.InvalidArgument, "handle must be provided")
	}
	return tracker.Handle(req.GetValue()), nil
}

func heapStatus(err error) error {
	switch {
	case errors.Is(err, heap.ErrUnknownClass), errors.Is(err, heap.ErrUnknownObject):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, heap.ErrShutdown):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Errorf(codes.Internal, "heap: %v", err)
	}
}
