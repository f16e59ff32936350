package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	lifetrackv1 "lifetrack/api/lifetrack/v1"
)

// TrackParams names a tracking rule to add or remove.
type TrackParams struct {
	// Kind is lifetrackv1.KindType or lifetrackv1.KindName.
	Kind    string
	Pattern string
	Timeout time.Duration
}

func (p TrackParams) request() (lifetrackv1.TrackRequest, error) {
	if p.Kind != lifetrackv1.KindType && p.Kind != lifetrackv1.KindName {
		return lifetrackv1.TrackRequest{}, fmt.Errorf("unknown rule kind %q", p.Kind)
	}
	// Name patterns are substrings matched verbatim, so only emptiness is
	// rejected here.
	if p.Pattern == "" {
		return lifetrackv1.TrackRequest{}, errors.New("pattern must not be empty")
	}
	return lifetrackv1.TrackRequest{Kind: p.Kind, Pattern: p.Pattern}, nil
}

// Track registers a tracked type or name on the daemon.
func (a *App) Track(ctx context.Context, params TrackParams) error {
	req, err := params.request()
	if err != nil {
		return err
	}
	return a.withClient(ctx, params.Timeout, func(ctx context.Context, client lifetrackv1.LifetrackClient) error {
		if _, err := client.Track(ctx, req.Proto()); err != nil {
			return fmt.Errorf("daemon track RPC failed: %w", err)
		}
		return nil
	})
}

// Untrack removes a tracked type or name. Existing records stay.
func (a *App) Untrack(ctx context.Context, params TrackParams) error {
	req, err := params.request()
	if err != nil {
		return err
	}
	return a.withClient(ctx, params.Timeout, func(ctx context.Context, client lifetrackv1.LifetrackClient) error {
		if _, err := client.Untrack(ctx, req.Proto()); err != nil {
			return fmt.Errorf("daemon untrack RPC failed: %w", err)
		}
		return nil
	})
}
