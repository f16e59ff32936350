package tracker

import "sync/atomic"

// createListener forwards host creation events into the tracker.
type createListener struct {
	t        *Tracker
	detached atomic.Bool
}

func (l *createListener) OnCreated(h Handle, slot int32) {
	l.t.handleCreated(h, slot)
}

// OnShutdown is sent by the host when its object array is torn down.
func (l *createListener) OnShutdown() {
	l.detach()
}

func (l *createListener) detach() {
	if !l.detached.CompareAndSwap(false, true) {
		return
	}
	if l.t.host != nil {
		l.t.host.RemoveCreateListener(l)
	}
}

// deleteListener forwards host destruction events into the tracker. It
// never touches the object itself, only the handle.
type deleteListener struct {
	t        *Tracker
	detached atomic.Bool
}

func (l *deleteListener) OnDeleted(h Handle, _ int32) {
	l.t.handleDeleted(h)
}

func (l *deleteListener) OnShutdown() {
	l.detach()
}

func (l *deleteListener) detach() {
	if !l.detached.CompareAndSwap(false, true) {
		return
	}
	if l.t.host != nil {
		l.t.host.RemoveDeleteListener(l)
	}
}
