package app

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	lifetrackv1 "lifetrack/api/lifetrack/v1"
	"lifetrack/internal/tracker"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestAppListDaemonNotRunning(t *testing.T) {
	stubDaemon(t, false, nil)
	app := New(Options{})
	_, err := app.List(context.Background(), time.Second)
	if err == nil || err.Error() != "daemon is not running" {
		t.Fatalf("expected daemon not running error, got %v", err)
	}
}

func TestAppListDialError(t *testing.T) {
	stubDaemon(t, true, func(ctx context.Context) (lifetrackv1.LifetrackClient, io.Closer, error) {
		return nil, nil, errors.New("dial failed")
	})
	app := New(Options{})
	_, err := app.List(context.Background(), time.Second)
	if err == nil || err.Error() != "connect to daemon: dial failed" {
		t.Fatalf("expected dial error, got %v", err)
	}
}

func TestAppListSuccess(t *testing.T) {
	stubDaemon(t, true, clientFor(func(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error {
		if method != lifetrackv1.Lifetrack_List_FullMethodName {
			t.Fatalf("unexpected method %s", method)
		}
		resp := reply.(*structpb.ListValue)
		resp.Values = lifetrackv1.RecordList([]lifetrackv1.Record{
			{
				Handle:        0x7f0000010040,
				Name:          "BP_mainPlayer_C_0",
				Flags:         uint32(tracker.FlagPublic),
				Slot:          3,
				Valid:         true,
				TrackedAtUnix: 100,
			},
		}).Values
		return nil
	}))

	app := New(Options{})
	objs, err := app.List(context.Background(), 750*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(objs) != 1 {
		t.Fatalf("unexpected objects: %+v", objs)
	}
	obj := objs[0]
	if obj.HandleString() != "0x7f0000010040" || obj.Name != "BP_mainPlayer_C_0" || obj.Slot != 3 || !obj.Valid {
		t.Fatalf("unexpected object: %+v", obj)
	}
	if obj.Flags != tracker.FlagPublic || obj.TrackedAt.Unix() != 100 {
		t.Fatalf("unexpected flags or timestamp: %+v", obj)
	}
}

func TestAppListMalformedRecord(t *testing.T) {
	stubDaemon(t, true, clientFor(func(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error {
		resp := reply.(*structpb.ListValue)
		resp.Values = []*structpb.Value{structpb.NewStringValue("oops")}
		return nil
	}))

	app := New(Options{})
	_, err := app.List(context.Background(), time.Second)
	if err == nil || err.Error() != "decode list response: record 0: record must be a struct" {
		t.Fatalf("expected decode error, got %v", err)
	}
}
