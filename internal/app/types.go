package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	lifetrackv1 "lifetrack/api/lifetrack/v1"
	"lifetrack/internal/tracker"
)

// Object mirrors one tracked record held by the daemon.
type Object struct {
	Handle    uint64
	Name      string
	Flags     tracker.Flags
	Slot      int32
	Valid     bool
	TrackedAt time.Time
}

// HandleString renders the handle the way the CLI accepts it back.
func (o Object) HandleString() string {
	return lifetrackv1.FormatHandle(o.Handle)
}

func objectFromRecord(r lifetrackv1.Record) Object {
	return Object{
		Handle:    r.Handle,
		Name:      r.Name,
		Flags:     tracker.Flags(r.Flags),
		Slot:      r.Slot,
		Valid:     r.Valid,
		TrackedAt: time.Unix(r.TrackedAtUnix, 0),
	}
}

// ParseHandle parses a handle given on the command line.
func ParseHandle(s string) (uint64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, errors.New("handle must not be empty")
	}
	h, err := lifetrackv1.ParseHandle(s)
	if err != nil {
		return 0, fmt.Errorf("invalid handle %q", s)
	}
	if h == 0 {
		return 0, errors.New("handle must not be null")
	}
	return h, nil
}
