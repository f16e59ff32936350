package tracker

import "strings"

// shouldTrackLocked applies the matching rules in order, stopping at the
// first hit:
//
//  1. the object is-a the root type
//  2. the object is-a any registered type
//  3. the name contains the reserved substring
//  4. the name contains any registered substring
//
// The name is only read once type rules fail and is returned so the caller
// does not read it twice. Must run with t.mu held.
func (t *Tracker) shouldTrackLocked(obj Object) (name string, match bool) {
	if t.rootType != 0 && obj.IsA(t.rootType) {
		return "", true
	}
	for typ := range t.types {
		if obj.IsA(typ) {
			return "", true
		}
	}

	name = obj.Name()
	if t.reservedName != "" && strings.Contains(name, t.reservedName) {
		return name, true
	}
	return name, t.names.containedIn(name)
}
