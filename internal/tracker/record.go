package tracker

import "time"

// Record is the snapshot taken when an object starts being tracked.
// It is never refreshed: Name and Flags describe the object at creation.
type Record struct {
	Handle    Handle    `json:"handle"`
	Valid     bool      `json:"valid"`
	Name      string    `json:"name"`
	Address   uintptr   `json:"address"`
	Flags     Flags     `json:"flags"`
	Slot      int32     `json:"slot"`       // host slot index, not interpreted
	TrackedAt time.Time `json:"tracked_at"` // when the create notification was handled
}
