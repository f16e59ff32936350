package tracker

import (
	"log/slog"
	"strconv"
	"sync"
)

// Tracker is a threadsafe registry of live host objects.
// One lock guards the live map and both rule sets; every operation is a
// short synchronous critical section and none of them calls back into
// listener registration while holding it.
type Tracker struct {
	mu    sync.RWMutex
	live  map[Handle]Record
	types map[TypeID]struct{}
	names strset

	host         Host
	rootType     TypeID
	reservedName string
	log          *slog.Logger

	create *createListener
	del    *deleteListener
}

// New builds a tracker and subscribes it to host's create and delete
// notifications. A nil host yields a detached tracker that never sees
// objects; it is only useful in tests.
func New(host Host, opts ...Option) *Tracker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tracker{
		live:         make(map[Handle]Record),
		types:        make(map[TypeID]struct{}),
		names:        make(strset),
		host:         host,
		rootType:     o.rootType,
		reservedName: o.reservedName,
		log:          o.logger,
	}
	t.create = &createListener{t: t}
	t.del = &deleteListener{t: t}

	if host != nil {
		host.AddCreateListener(t.create)
		host.AddDeleteListener(t.del)
	}
	return t
}

// Close unsubscribes from the host. It is safe to call more than once and
// after the host has already shut its channels down.
func (t *Tracker) Close() {
	t.create.detach()
	t.del.detach()
}

// RegisterTrackedType adds typ to the set of types whose new instances
// (including instances of derived types) are tracked.
func (t *Tracker) RegisterTrackedType(typ TypeID) {
	if typ == 0 {
		t.log.Warn("attempted to register null type")
		return
	}
	t.mu.Lock()
	t.types[typ] = struct{}{}
	t.mu.Unlock()

	t.log.Debug("registered tracked type", "type", t.typeName(typ))
}

// UnregisterTrackedType removes typ from the match set. Objects already
// tracked because of typ stay tracked until they are destroyed.
func (t *Tracker) UnregisterTrackedType(typ TypeID) {
	t.mu.Lock()
	delete(t.types, typ)
	t.mu.Unlock()
}

// RegisterTrackedName adds a case-sensitive substring matched against the
// names of newly created objects. The empty string is rejected.
func (t *Tracker) RegisterTrackedName(pattern string) {
	if pattern == "" {
		t.log.Warn("attempted to register empty name pattern")
		return
	}
	t.mu.Lock()
	t.names.add(pattern)
	t.mu.Unlock()

	t.log.Debug("registered tracked name pattern", "pattern", pattern)
}

// UnregisterTrackedName removes pattern from the match set without
// evicting objects it already matched.
func (t *Tracker) UnregisterTrackedName(pattern string) {
	t.mu.Lock()
	delete(t.names, pattern)
	t.mu.Unlock()
}

// ClearAllTracking drops every record and both rule sets. The built-in
// root type and reserved name still apply afterwards.
func (t *Tracker) ClearAllTracking() {
	t.mu.Lock()
	t.live = make(map[Handle]Record)
	t.types = make(map[TypeID]struct{})
	t.names = make(strset)
	t.mu.Unlock()

	t.log.Debug("cleared all object tracking")
}

// IsAlive reports whether h is tracked and its object has not begun
// destruction. The host flags are re-read on every call. A tracked object
// found to be destroying is evicted before false is returned, so a missed
// delete notification heals itself on the next query.
//
// Unknown handles and destroyed ones are indistinguishable.
func (t *Tracker) IsAlive(h Handle) bool {
	if h.IsNull() {
		return false
	}

	t.mu.RLock()
	alive, stale := t.checkLocked(h)
	t.mu.RUnlock()
	if !stale {
		return alive
	}

	// Re-evaluate under the write lock: a delete or create notification
	// may have landed in between.
	t.mu.Lock()
	defer t.mu.Unlock()
	alive, stale = t.checkLocked(h)
	if stale {
		delete(t.live, h)
		t.log.Debug("evicted object that began destruction", "handle", h)
	}
	return alive
}

// checkLocked must run with t.mu held in either mode. stale is true when a
// record exists but its object has begun destruction.
func (t *Tracker) checkLocked(h Handle) (alive, stale bool) {
	rec, ok := t.live[h]
	if !ok {
		return false, false
	}
	obj, ok := t.resolve(h)
	if !ok {
		return false, false
	}
	if obj.Flags().Has(FlagBeginDestroyed) {
		return false, true
	}
	return rec.Valid, false
}

// Len returns the number of tracked records.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.live)
}

// Lookup returns the record for h without consulting the object itself.
func (t *Tracker) Lookup(h Handle) (Record, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.live[h]
	return rec, ok
}

func (t *Tracker) handleCreated(h Handle, slot int32) {
	if h.IsNull() {
		return
	}
	obj, ok := t.resolve(h)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	name, match := t.shouldTrackLocked(obj)
	if !match {
		return
	}
	if name == "" {
		name = obj.Name()
	}
	// Last write wins if the host reused a handle we never saw deleted.
	t.live[h] = Record{
		Handle:    h,
		Valid:     true,
		Name:      name,
		Address:   uintptr(h),
		Flags:     obj.Flags(),
		Slot:      slot,
		TrackedAt: now(),
	}
}

func (t *Tracker) handleDeleted(h Handle) {
	t.mu.Lock()
	delete(t.live, h)
	t.mu.Unlock()
}

func (t *Tracker) resolve(h Handle) (Object, bool) {
	if t.host == nil {
		return nil, false
	}
	obj, ok := t.host.Resolve(h)
	if !ok || obj == nil {
		return nil, false
	}
	return obj, true
}

func (t *Tracker) typeName(typ TypeID) string {
	if n, ok := t.host.(TypeNamer); ok {
		if name := n.TypeName(typ); name != "" {
			return name
		}
	}
	return "type#" + strconv.FormatUint(uint64(typ), 10)
}
