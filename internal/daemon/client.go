package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"

	lifetrackv1 "lifetrack/api/lifetrack/v1"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
)

// Dial opens a gRPC connection to the daemon over SocketPath.
func Dial(ctx context.Context) (lifetrackv1.LifetrackClient, *grpc.ClientConn, error) {
	return DialSocket(ctx, SocketPath())
}

// DialSocket connects to a daemon listening on the UNIX socket at path and
// blocks until the connection is ready or ctx expires.
func DialSocket(ctx context.Context, path string) (lifetrackv1.LifetrackClient, *grpc.ClientConn, error) {
	// The target is only a label; the dialer always goes to path.
	conn, err := grpc.NewClient(
		"passthrough:///lifetrack",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", path)
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	conn.Connect()
	if err := waitForReady(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("dial %s: %w", path, err)
	}
	return lifetrackv1.NewLifetrackClient(conn), conn, nil
}

func waitForReady(ctx context.Context, conn *grpc.ClientConn) error {
	for {
		state := conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New("grpc connection is shut down")
		}
		if conn.WaitForStateChange(ctx, state) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("grpc connection stuck in state %s", state)
	}
}
