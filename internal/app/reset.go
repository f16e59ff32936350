package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	lifetrackv1 "lifetrack/api/lifetrack/v1"

	"google.golang.org/protobuf/types/known/emptypb"
)

// ResetParams configures the reset command.
type ResetParams struct {
	Timeout   time.Duration
	Confirmed bool
}

// Reset drops every tracked record and rule on the daemon.
func (a *App) Reset(ctx context.Context, params ResetParams) error {
	if !params.Confirmed {
		return errors.New(`destructive command: confirmation required`)
	}

	return a.withClient(ctx, params.Timeout, func(ctx context.Context, client lifetrackv1.LifetrackClient) error {
		if _, err := client.Clear(ctx, &emptypb.Empty{}); err != nil {
			return fmt.Errorf("daemon clear RPC failed: %w", err)
		}
		return nil
	})
}
