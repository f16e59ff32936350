// Package heap is an in-memory object system with the same notification
// model as a game engine's global object array. It is the host the daemon
// and the tests run the tracker against.
package heap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"lifetrack/internal/tracker"
)

var (
	// ErrUnknownClass is returned when spawning or defining against a class
	// that was never defined.
	ErrUnknownClass = errors.New("unknown class")
	// ErrUnknownObject is returned for handles that are not resident or are
	// already being destroyed.
	ErrUnknownObject = errors.New("unknown object")
	// ErrShutdown is returned once Shutdown has been called.
	ErrShutdown = errors.New("heap is shut down")
)

const (
	baseAddress = 0x7f0000010000
	objectAlign = 0x40
)

// Heap owns objects and notifies listeners as they are created and destroyed.
// Resolve and the Object accessors never take the heap lock, and listeners
// are always invoked with no heap lock held.
type Heap struct {
	mu       sync.Mutex
	classes  map[tracker.TypeID]*Class
	byName   map[string]*Class
	nextType tracker.TypeID
	slots    []tracker.Handle
	free     []int32
	nextAddr uintptr
	shutdown bool

	objects sync.Map // tracker.Handle -> *Object

	lmu     sync.Mutex
	creates []tracker.CreateListener
	deletes []tracker.DeleteListener
}

var (
	_ tracker.Host      = (*Heap)(nil)
	_ tracker.TypeNamer = (*Heap)(nil)
)

// New returns a heap with the built-in class tree defined.
func New() *Heap {
	h := &Heap{
		classes:  make(map[tracker.TypeID]*Class),
		byName:   make(map[string]*Class),
		nextType: 1,
		nextAddr: baseAddress,
	}
	for _, bc := range builtinClasses {
		if _, err := h.Define(bc.name, bc.parent); err != nil {
			panic(err)
		}
	}
	return h
}

// Define adds a class deriving from parent. An empty parent defines a root
// class. Redefining an existing name with the same parent returns the
// existing class.
func (h *Heap) Define(name, parent string) (*Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("class name must not be empty")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var p *Class
	if parent != "" {
		p = h.byName[parent]
		if p == nil {
			return nil, fmt.Errorf("parent %q: %w", parent, ErrUnknownClass)
		}
	}
	if c, ok := h.byName[name]; ok {
		if c.Parent != p {
			return nil, fmt.Errorf("class %q already defined with a different parent", name)
		}
		return c, nil
	}

	c := &Class{ID: h.nextType, Name: name, Parent: p}
	h.nextType++
	h.classes[c.ID] = c
	h.byName[name] = c
	return c, nil
}

// Class looks up a class by name.
func (h *Heap) Class(name string) (*Class, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.byName[name]
	return c, ok
}

// Classes returns every defined class ordered by ID.
func (h *Heap) Classes() []*Class {
	h.mu.Lock()
	out := make([]*Class, 0, len(h.classes))
	for _, c := range h.classes {
		out = append(out, c)
	}
	h.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TypeName implements tracker.TypeNamer.
func (h *Heap) TypeName(t tracker.TypeID) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.classes[t]; ok {
		return c.Name
	}
	return ""
}

// Spawn allocates an object of the named class and notifies create
// listeners before returning.
func (h *Heap) Spawn(class, name string) (*Object, error) {
	h.mu.Lock()
	if h.shutdown {
		h.mu.Unlock()
		return nil, ErrShutdown
	}
	c, ok := h.byName[class]
	if !ok {
		h.mu.Unlock()
		return nil, fmt.Errorf("class %q: %w", class, ErrUnknownClass)
	}

	handle := tracker.Handle(h.nextAddr)
	h.nextAddr += objectAlign

	var slot int32
	if n := len(h.free); n > 0 {
		slot = h.free[n-1]
		h.free = h.free[:n-1]
		h.slots[slot] = handle
	} else {
		slot = int32(len(h.slots))
		h.slots = append(h.slots, handle)
	}

	obj := &Object{handle: handle, slot: slot, class: c, name: name}
	h.objects.Store(handle, obj)
	h.mu.Unlock()

	for _, l := range h.createListeners() {
		l.OnCreated(handle, slot)
	}
	return obj, nil
}

// BeginDestroy marks the object as destroying without notifying anyone.
// It models an engine that has started teardown but not yet delivered, or
// dropped, the delete notification.
func (h *Heap) BeginDestroy(handle tracker.Handle) error {
	obj, ok := h.Lookup(handle)
	if !ok {
		return fmt.Errorf("%s: %w", handle, ErrUnknownObject)
	}
	obj.SetFlags(tracker.FlagBeginDestroyed)
	return nil
}

// Destroy tears the object down: it flags it, notifies delete listeners,
// then frees its slot. Concurrent calls for one handle destroy it once.
func (h *Heap) Destroy(handle tracker.Handle) error {
	obj, ok := h.Lookup(handle)
	if !ok || !obj.destroying.CompareAndSwap(false, true) {
		return fmt.Errorf("%s: %w", handle, ErrUnknownObject)
	}
	obj.SetFlags(tracker.FlagBeginDestroyed)

	for _, l := range h.deleteListeners() {
		l.OnDeleted(handle, obj.slot)
	}

	obj.SetFlags(tracker.FlagFinishDestroyed)
	h.mu.Lock()
	h.objects.Delete(handle)
	if int(obj.slot) < len(h.slots) && h.slots[obj.slot] == handle {
		h.slots[obj.slot] = 0
		h.free = append(h.free, obj.slot)
	}
	h.mu.Unlock()
	return nil
}

// Lookup returns the resident object for handle.
func (h *Heap) Lookup(handle tracker.Handle) (*Object, bool) {
	v, ok := h.objects.Load(handle)
	if !ok {
		return nil, false
	}
	return v.(*Object), true
}

// Resolve implements tracker.Host. Objects stay resolvable until Destroy
// has finished notifying delete listeners.
func (h *Heap) Resolve(handle tracker.Handle) (tracker.Object, bool) {
	obj, ok := h.Lookup(handle)
	if !ok {
		return nil, false
	}
	return obj, true
}

// Len returns the number of resident objects.
func (h *Heap) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.slots) - len(h.free)
}

// Shutdown stops the heap and sends OnShutdown to every listener. Listeners
// are expected to deregister themselves; later registrations are ignored.
func (h *Heap) Shutdown() {
	h.mu.Lock()
	if h.shutdown {
		h.mu.Unlock()
		return
	}
	h.shutdown = true
	h.mu.Unlock()

	creates, deletes := h.createListeners(), h.deleteListeners()
	for _, l := range creates {
		l.OnShutdown()
	}
	for _, l := range deletes {
		l.OnShutdown()
	}
}

func (h *Heap) isShutdown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shutdown
}

// --- listener channels ---

func (h *Heap) AddCreateListener(l tracker.CreateListener) {
	if l == nil || h.isShutdown() {
		return
	}
	h.lmu.Lock()
	defer h.lmu.Unlock()
	for _, cur := range h.creates {
		if cur == l {
			return
		}
	}
	h.creates = append(h.creates, l)
}

func (h *Heap) RemoveCreateListener(l tracker.CreateListener) {
	h.lmu.Lock()
	defer h.lmu.Unlock()
	for i, cur := range h.creates {
		if cur == l {
			h.creates = append(h.creates[:i:i], h.creates[i+1:]...)
			return
		}
	}
}

func (h *Heap) AddDeleteListener(l tracker.DeleteListener) {
	if l == nil || h.isShutdown() {
		return
	}
	h.lmu.Lock()
	defer h.lmu.Unlock()
	for _, cur := range h.deletes {
		if cur == l {
			return
		}
	}
	h.deletes = append(h.deletes, l)
}

func (h *Heap) RemoveDeleteListener(l tracker.DeleteListener) {
	h.lmu.Lock()
	defer h.lmu.Unlock()
	for i, cur := range h.deletes {
		if cur == l {
			h.deletes = append(h.deletes[:i:i], h.deletes[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of registered create and delete listeners.
func (h *Heap) ListenerCount() (creates, deletes int) {
	h.lmu.Lock()
	defer h.lmu.Unlock()
	return len(h.creates), len(h.deletes)
}

func (h *Heap) createListeners() []tracker.CreateListener {
	h.lmu.Lock()
	defer h.lmu.Unlock()
	return append([]tracker.CreateListener(nil), h.creates...)
}

func (h *Heap) deleteListeners() []tracker.DeleteListener {
	h.lmu.Lock()
	defer h.lmu.Unlock()
	return append([]tracker.DeleteListener(nil), h.deletes...)
}
