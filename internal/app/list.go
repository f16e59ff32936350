package app

import (
	"context"
	"fmt"
	"time"

	lifetrackv1 "lifetrack/api/lifetrack/v1"

	"google.golang.org/protobuf/types/known/emptypb"
)

// List fetches every record the daemon's tracker holds, ordered by address.
func (a *App) List(ctx context.Context, timeout time.Duration) ([]Object, error) {
	var objs []Object
	err := a.withClient(ctx, timeout, func(ctx context.Context, client lifetrackv1.LifetrackClient) error {
		resp, err := client.List(ctx, &emptypb.Empty{})
		if err != nil {
			return fmt.Errorf("daemon list RPC failed: %w", err)
		}
		recs, err := lifetrackv1.ParseRecordList(resp)
		if err != nil {
			return fmt.Errorf("decode list response: %w", err)
		}
		objs = make([]Object, 0, len(recs))
		for _, r := range recs {
			objs = append(objs, objectFromRecord(r))
		}
		return nil
	})
	return objs, err
}
