package app

import (
	"context"
	"fmt"
	"time"

	lifetrackv1 "lifetrack/api/lifetrack/v1"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

// IsAlive asks the daemon's tracker whether handle is tracked and not being
// destroyed. A null handle is simply not alive.
func (a *App) IsAlive(ctx context.Context, handle uint64, timeout time.Duration) (bool, error) {
	var alive bool
	err := a.withClient(ctx, timeout, func(ctx context.Context, client lifetrackv1.LifetrackClient) error {
		resp, err := client.IsAlive(ctx, wrapperspb.UInt64(handle))
		if err != nil {
			return fmt.Errorf("daemon is-alive RPC failed: %w", err)
		}
		alive = resp.GetValue()
		return nil
	})
	return alive, err
}
