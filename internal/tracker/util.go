package tracker

import (
	"sort"
	"strings"
	"time"
)

type strset map[string]struct{}

func (s strset) add(v string) {
	s[v] = struct{}{}
}

func (s strset) has(v string) bool {
	_, ok := s[v]
	return ok
}

// containedIn reports whether any member is a substring of name.
func (s strset) containedIn(name string) bool {
	for p := range s {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func (s strset) sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func now() time.Time {
	return time.Now().UTC()
}
