package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lifetrackv1 "lifetrack/api/lifetrack/v1"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

// SpawnParams describes an object to create in the daemon's heap.
type SpawnParams struct {
	Class   string
	Name    string
	Timeout time.Duration
}

// SpawnResult identifies the created object.
type SpawnResult struct {
	Handle uint64
	Slot   int32
}

// Spawn creates an object in the daemon's heap.
func (a *App) Spawn(ctx context.Context, params SpawnParams) (SpawnResult, error) {
	var result SpawnResult
	class := strings.TrimSpace(params.Class)
	if class == "" {
		return result, errors.New("class must not be empty")
	}

	err := a.withClient(ctx, params.Timeout, func(ctx context.Context, client lifetrackv1.LifetrackClient) error {
		resp, err := client.Spawn(ctx, lifetrackv1.SpawnRequest{Class: class, Name: params.Name}.Proto())
		if err != nil {
			return fmt.Errorf("daemon spawn RPC failed: %w", err)
		}
		out, err := lifetrackv1.ParseSpawnResponse(resp)
		if err != nil {
			return fmt.Errorf("decode spawn response: %w", err)
		}
		result = SpawnResult(out)
		return nil
	})
	return result, err
}

// DestroyParams selects an object to tear down.
type DestroyParams struct {
	Handle uint64
	// NoNotify only flags the object as destroying; no delete notification
	// is delivered, so trackers notice on their next liveness query.
	NoNotify bool
	Timeout  time.Duration
}

// Destroy tears an object down in the daemon's heap.
func (a *App) Destroy(ctx context.Context, params DestroyParams) error {
	if params.Handle == 0 {
		return errors.New("handle must not be null")
	}

	return a.withClient(ctx, params.Timeout, func(ctx context.Context, client lifetrackv1.LifetrackClient) error {
		req := wrapperspb.UInt64(params.Handle)
		if params.NoNotify {
			if _, err := client.Doom(ctx, req); err != nil {
				return fmt.Errorf("daemon doom RPC failed: %w", err)
			}
			return nil
		}
		if _, err := client.Destroy(ctx, req); err != nil {
			return fmt.Errorf("daemon destroy RPC failed: %w", err)
		}
		return nil
	})
}
