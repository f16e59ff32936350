package heap

import (
	"sync/atomic"

	"lifetrack/internal/tracker"
)

// Object is a heap-resident instance. Name and class are fixed at spawn;
// flags change atomically so readers never need the heap lock.
type Object struct {
	handle tracker.Handle
	slot   int32
	class  *Class
	name   string

	flags      atomic.Uint32
	destroying atomic.Bool
}

var _ tracker.Object = (*Object)(nil)

func (o *Object) Handle() tracker.Handle { return o.handle }
func (o *Object) Slot() int32            { return o.slot }
func (o *Object) Class() *Class          { return o.class }
func (o *Object) Name() string           { return o.name }

func (o *Object) Flags() tracker.Flags {
	return tracker.Flags(o.flags.Load())
}

// SetFlags ors mask into the object's flags.
func (o *Object) SetFlags(mask tracker.Flags) {
	o.flags.Or(uint32(mask))
}

// ClearFlags removes mask from the object's flags.
func (o *Object) ClearFlags(mask tracker.Flags) {
	o.flags.And(^uint32(mask))
}

func (o *Object) IsA(t tracker.TypeID) bool {
	return o.class.IsChildOf(t)
}
