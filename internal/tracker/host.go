package tracker

import "fmt"

// Handle is an opaque, non-owning identity of a host object. It is stable
// for the lifetime of the object and may be reused by the host afterwards.
// The zero Handle is null.
type Handle uintptr

// IsNull reports whether h denotes no object.
func (h Handle) IsNull() bool { return h == 0 }

func (h Handle) String() string { return fmt.Sprintf("0x%x", uintptr(h)) }

// TypeID identifies a host type. Zero is invalid.
type TypeID uint64

// Flags is the host-defined object flag bitset.
type Flags uint32

const (
	FlagPublic Flags = 1 << iota
	FlagStandalone
	FlagTransient
	FlagClassDefaultObject
	FlagArchetypeObject
	FlagNeedLoad
	FlagNeedPostLoad
	FlagPendingKill
	// FlagBeginDestroyed is set by the host once teardown of an object has
	// started. An object carrying it is never reported alive.
	FlagBeginDestroyed
	FlagFinishDestroyed
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{FlagPublic, "Public"},
	{FlagStandalone, "Standalone"},
	{FlagTransient, "Transient"},
	{FlagClassDefaultObject, "ClassDefaultObject"},
	{FlagArchetypeObject, "ArchetypeObject"},
	{FlagNeedLoad, "NeedLoad"},
	{FlagNeedPostLoad, "NeedPostLoad"},
	{FlagPendingKill, "PendingKill"},
	{FlagBeginDestroyed, "BeginDestroyed"},
	{FlagFinishDestroyed, "FinishDestroyed"},
}

// Has reports whether every bit of mask is set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

func (f Flags) String() string {
	if f == 0 {
		return "None"
	}
	out := ""
	for _, fn := range flagNames {
		if f&fn.f == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += fn.name
		f &^= fn.f
	}
	if f != 0 {
		if out != "" {
			out += "|"
		}
		out += fmt.Sprintf("0x%x", uint32(f))
	}
	return out
}

// Object is the richer view of a host object the tracker introspects.
// Implementations must be cheap, non-blocking reads of resident state: the
// tracker calls them while holding its lock.
type Object interface {
	Flags() Flags
	Name() string
	// IsA reports whether the object's runtime type is, or derives from, t.
	IsA(t TypeID) bool
}

// CreateListener receives object creation notifications.
type CreateListener interface {
	OnCreated(h Handle, slot int32)
	OnShutdown()
}

// DeleteListener receives object destruction notifications. The object may
// already be partially torn down when OnDeleted runs.
type DeleteListener interface {
	OnDeleted(h Handle, slot int32)
	OnShutdown()
}

// Host is the external object system the tracker observes.
type Host interface {
	AddCreateListener(CreateListener)
	RemoveCreateListener(CreateListener)
	AddDeleteListener(DeleteListener)
	RemoveDeleteListener(DeleteListener)

	// Resolve reinterprets a handle as an Object. ok is false when the
	// handle does not denote an object the tracker can introspect.
	Resolve(h Handle) (obj Object, ok bool)
}

// TypeNamer is optionally implemented by a Host to label types in logs and
// snapshots.
type TypeNamer interface {
	TypeName(t TypeID) string
}
