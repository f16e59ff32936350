package daemon

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	lifetrackv1 "lifetrack/api/lifetrack/v1"
)

func TestSocketPathPrecedence(t *testing.T) {
	t.Setenv("LIFETRACK_SOCKET", "")
	t.Setenv("LIFETRACK_RUNTIME_DIR", "/var/tmp/lt")
	assert.Equal(t, "/var/tmp/lt/"+SocketBaseName, SocketPath())
	assert.Equal(t, "/var/tmp/lt/lifetrack.pid", PIDPath())

	t.Setenv("LIFETRACK_SOCKET", "/custom/x.sock")
	assert.Equal(t, "/custom/x.sock", SocketPath())
}

func TestStartDaemonServesAndCleansUp(t *testing.T) {
	dir, err := os.MkdirTemp("", "lt")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	snap := filepath.Join(dir, "snap", "records.json")
	t.Setenv("LIFETRACK_SOCKET", "")
	t.Setenv("LIFETRACK_RUNTIME_DIR", dir)
	t.Setenv("LIFETRACK_SNAPSHOT_PATH", snap)
	t.Setenv("LIFETRACK_LOG_LEVEL", "error")

	srv, err := StartDaemon("")
	require.NoError(t, err)
	closed := false
	t.Cleanup(func() {
		if !closed {
			_ = srv.Close()
		}
	})

	pid, err := RunningPID()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, conn, err := DialSocket(ctx, SocketPath())
	require.NoError(t, err)

	pong, err := client.Ping(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "pong", pong.GetValue())

	resp, err := client.Spawn(ctx, lifetrackv1.SpawnRequest{Class: "GameMode", Name: "GM"}.Proto())
	require.NoError(t, err)
	spawned, err := lifetrackv1.ParseSpawnResponse(resp)
	require.NoError(t, err)
	ok, err := client.IsAlive(ctx, wrapperspb.UInt64(spawned.Handle))
	require.NoError(t, err)
	assert.True(t, ok.GetValue())
	require.NoError(t, conn.Close())

	require.NoError(t, srv.Close())
	closed = true
	require.NoError(t, srv.Close(), "close is idempotent")

	_, err = os.Stat(SocketPath())
	assert.True(t, os.IsNotExist(err), "socket removed")
	_, err = os.Stat(PIDPath())
	assert.True(t, os.IsNotExist(err), "pid file removed")

	data, err := os.ReadFile(snap)
	require.NoError(t, err)
	var dump struct {
		Version int `json:"version"`
		Records []struct {
			Name string `json:"name"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(data, &dump))
	assert.Equal(t, 1, dump.Version)
	require.Len(t, dump.Records, 1)
	assert.Equal(t, "GM", dump.Records[0].Name)
}

func TestStartDaemonRejectsBadConfig(t *testing.T) {
	dir, err := os.MkdirTemp("", "lt")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	t.Setenv("LIFETRACK_SOCKET", "")
	t.Setenv("LIFETRACK_RUNTIME_DIR", dir)
	t.Setenv("LIFETRACK_TRACK_TYPES", "Vehicle")

	_, err = StartDaemon("")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Vehicle"), err.Error())

	_, err = os.Stat(SocketPath())
	assert.True(t, os.IsNotExist(err), "no socket left behind")
}

func TestStopRunningDaemonWithoutPIDFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "lt")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	t.Setenv("LIFETRACK_SOCKET", "")
	t.Setenv("LIFETRACK_RUNTIME_DIR", dir)

	assert.NoError(t, StopRunningDaemon(false))

	require.NoError(t, WritePID(os.Getpid()))
	err = StopRunningDaemon(false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to stop current process")
	assert.Equal(t, strconv.Itoa(os.Getpid())+"\n", mustRead(t, PIDPath()))
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}
