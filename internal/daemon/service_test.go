package daemon

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	lifetrackv1 "lifetrack/api/lifetrack/v1"
	"lifetrack/internal/config"
	"lifetrack/internal/heap"
	"lifetrack/internal/tracker"
)

func testConfig() config.Config {
	return config.Config{
		RootType:     heap.ClassGameModeBase,
		ReservedName: tracker.DefaultReservedName,
		LogLevel:     "info",
	}
}

func newTestService(t *testing.T, cfg config.Config) *service {
	t.Helper()
	svc, err := newService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(svc.close)
	return svc
}

func spawn(t *testing.T, svc *service, class, name string) uint64 {
	t.Helper()
	resp, err := svc.Spawn(context.Background(), lifetrackv1.SpawnRequest{Class: class, Name: name}.Proto())
	require.NoError(t, err)
	out, err := lifetrackv1.ParseSpawnResponse(resp)
	require.NoError(t, err)
	return out.Handle
}

func alive(t *testing.T, svc *service, h uint64) bool {
	t.Helper()
	resp, err := svc.IsAlive(context.Background(), wrapperspb.UInt64(h))
	require.NoError(t, err)
	return resp.GetValue()
}

func requireCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, status.Code(err), err.Error())
}

func TestNewServiceRejectsUnknownClasses(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := testConfig()
	cfg.RootType = "Nope"
	_, err := newService(cfg, logger)
	assert.ErrorIs(t, err, heap.ErrUnknownClass)

	cfg = testConfig()
	cfg.TrackTypes = []string{heap.ClassPawn, "Vehicle"}
	_, err = newService(cfg, logger)
	assert.ErrorIs(t, err, heap.ErrUnknownClass)
}

func TestServiceLifecycle(t *testing.T) {
	cfg := testConfig()
	cfg.TrackTypes = []string{heap.ClassPawn}
	svc := newTestService(t, cfg)
	ctx := context.Background()

	gm := spawn(t, svc, heap.ClassGameMode, "GameMode_0")
	pawn := spawn(t, svc, heap.ClassCharacter, "Hero")
	player := spawn(t, svc, heap.ClassActor, "BP_mainPlayer_C_0")
	rock := spawn(t, svc, heap.ClassActor, "Rock_3")

	assert.True(t, alive(t, svc, gm))
	assert.True(t, alive(t, svc, pawn))
	assert.True(t, alive(t, svc, player))
	assert.False(t, alive(t, svc, rock))

	list, err := svc.List(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	recs, err := lifetrackv1.ParseRecordList(list)
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	_, err = svc.Destroy(ctx, wrapperspb.UInt64(pawn))
	require.NoError(t, err)
	assert.False(t, alive(t, svc, pawn))

	// Doom skips the delete notification, so eviction happens on the next query.
	_, err = svc.Doom(ctx, wrapperspb.UInt64(gm))
	require.NoError(t, err)
	assert.Equal(t, 2, svc.tracker.Len())
	assert.False(t, alive(t, svc, gm))
	assert.Equal(t, 1, svc.tracker.Len())
}

func TestServiceTrackUntrack(t *testing.T) {
	svc := newTestService(t, testConfig())
	ctx := context.Background()

	_, err := svc.Track(ctx, lifetrackv1.TrackRequest{Kind: lifetrackv1.KindName, Pattern: "Boss"}.Proto())
	require.NoError(t, err)
	_, err = svc.Track(ctx, lifetrackv1.TrackRequest{Kind: lifetrackv1.KindType, Pattern: heap.ClassController}.Proto())
	require.NoError(t, err)

	boss := spawn(t, svc, heap.ClassActor, "Boss_Dragon")
	pc := spawn(t, svc, heap.ClassPlayerController, "PC_0")
	assert.True(t, alive(t, svc, boss))
	assert.True(t, alive(t, svc, pc))
	assert.ElementsMatch(t, []string{"Boss"}, svc.tracker.TrackedNames())

	_, err = svc.Untrack(ctx, lifetrackv1.TrackRequest{Kind: lifetrackv1.KindName, Pattern: "Boss"}.Proto())
	require.NoError(t, err)
	assert.True(t, alive(t, svc, boss), "untracking does not evict")
	assert.False(t, alive(t, svc, spawn(t, svc, heap.ClassActor, "Boss_Two")))

	_, err = svc.Clear(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Empty(t, svc.tracker.TrackedTypes())
	assert.False(t, alive(t, svc, pc))
	assert.Zero(t, svc.tracker.Len())
}

func TestServiceErrors(t *testing.T) {
	svc := newTestService(t, testConfig())
	ctx := context.Background()

	_, err := svc.Spawn(ctx, lifetrackv1.SpawnRequest{Class: " ", Name: "x"}.Proto())
	requireCode(t, err, codes.InvalidArgument)
	_, err = svc.Spawn(ctx, lifetrackv1.SpawnRequest{Class: "Nope", Name: "x"}.Proto())
	requireCode(t, err, codes.NotFound)

	_, err = svc.Destroy(ctx, wrapperspb.UInt64(0))
	requireCode(t, err, codes.InvalidArgument)
	_, err = svc.Destroy(ctx, wrapperspb.UInt64(0xdead))
	requireCode(t, err, codes.NotFound)
	_, err = svc.Doom(ctx, wrapperspb.UInt64(0xdead))
	requireCode(t, err, codes.NotFound)

	_, err = svc.Track(ctx, lifetrackv1.TrackRequest{Kind: lifetrackv1.KindName, Pattern: ""}.Proto())
	requireCode(t, err, codes.InvalidArgument)
	_, err = svc.Track(ctx, lifetrackv1.TrackRequest{Kind: "tag", Pattern: "x"}.Proto())
	requireCode(t, err, codes.InvalidArgument)
	_, err = svc.Untrack(ctx, lifetrackv1.TrackRequest{Kind: lifetrackv1.KindType, Pattern: "Nope"}.Proto())
	requireCode(t, err, codes.NotFound)

	assert.False(t, alive(t, svc, 0))

	svc.heap.Shutdown()
	_, err = svc.Spawn(ctx, lifetrackv1.SpawnRequest{Class: heap.ClassActor, Name: "late"}.Proto())
	requireCode(t, err, codes.Unavailable)
}

func TestServiceOverGRPC(t *testing.T) {
	svc := newTestService(t, testConfig())

	ln := bufconn.Listen(1 << 16)
	srv := grpc.NewServer()
	lifetrackv1.RegisterLifetrackServer(srv, svc)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return ln.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := lifetrackv1.NewLifetrackClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "pong", pong.GetValue())

	resp, err := client.Spawn(ctx, lifetrackv1.SpawnRequest{Class: heap.ClassGameMode, Name: "GM"}.Proto())
	require.NoError(t, err)
	spawned, err := lifetrackv1.ParseSpawnResponse(resp)
	require.NoError(t, err)

	ok, err := client.IsAlive(ctx, wrapperspb.UInt64(spawned.Handle))
	require.NoError(t, err)
	assert.True(t, ok.GetValue())

	list, err := client.List(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	recs, err := lifetrackv1.ParseRecordList(list)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, spawned.Handle, recs[0].Handle)
	assert.Equal(t, "GM", recs[0].Name)
	assert.True(t, recs[0].Valid)

	_, err = client.Destroy(ctx, wrapperspb.UInt64(spawned.Handle))
	require.NoError(t, err)
	ok, err = client.IsAlive(ctx, wrapperspb.UInt64(spawned.Handle))
	require.NoError(t, err)
	assert.False(t, ok.GetValue())

	_, err = client.Destroy(ctx, wrapperspb.UInt64(spawned.Handle))
	assert.Equal(t, codes.NotFound, status.Code(err))
}
