// Package tabs holds the editor theme's open-tab state.
//
// A Set is owned by exactly one model and mutated only from its Update
// loop. Every operation is total: unknown or unopened kinds are ignored
// rather than reported.
package tabs

import "strings"

// Kind identifies one of the fixed views that can be opened as a tab.
type Kind string

const (
	Internships Kind = "internships"
	Projects    Kind = "projects"
	Blog        Kind = "blog"
)

// All is the canonical universe of tab kinds, in display order.
var All = []Kind{Internships, Projects, Blog}

var labels = map[Kind]string{
	Internships: "Internships",
	Projects:    "Projects",
	Blog:        "Blog",
}

// Label returns the human readable tab title.
func (k Kind) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// Valid reports whether k belongs to the universe.
func (k Kind) Valid() bool {
	_, ok := labels[k]
	return ok
}

// ParseKind matches s against kind names and labels, case-insensitively.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range All {
		if s == string(k) || s == strings.ToLower(k.Label()) {
			return k, true
		}
	}
	return "", false
}

// Tab is one open view. Kind is its only identity.
type Tab struct {
	Kind Kind
}

// Set is the ordered list of open tabs plus the active one. The zero value
// is an empty set showing the home view.
type Set struct {
	tabs   []Tab
	active Kind // "" means home
}

// Tabs returns a copy of the open tabs in insertion order.
func (s *Set) Tabs() []Tab {
	out := make([]Tab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

// Len returns the number of open tabs.
func (s *Set) Len() int { return len(s.tabs) }

// Active returns the active kind, or false when the home view is showing.
func (s *Set) Active() (Kind, bool) {
	if s.active == "" {
		return "", false
	}
	return s.active, true
}

// IsOpen reports whether a tab of kind k is open.
func (s *Set) IsOpen(k Kind) bool {
	return s.indexOf(k) >= 0
}

// Open activates k, appending it first if it is not already open.
func (s *Set) Open(k Kind) {
	if !k.Valid() {
		return
	}
	if !s.IsOpen(k) {
		s.tabs = append(s.tabs, Tab{Kind: k})
	}
	s.active = k
}

// Close removes k. When k was active the tab now sitting at its old index
// (clamped to the last tab) becomes active; an empty set falls back to home.
func (s *Set) Close(k Kind) {
	idx := s.indexOf(k)
	if idx < 0 {
		return
	}
	next := make([]Tab, 0, len(s.tabs)-1)
	next = append(next, s.tabs[:idx]...)
	next = append(next, s.tabs[idx+1:]...)
	s.tabs = next

	if s.active != k {
		return
	}
	if len(s.tabs) == 0 {
		s.active = ""
		return
	}
	s.active = s.tabs[min(idx, len(s.tabs)-1)].Kind
}

// SetActive activates k only if it is open.
func (s *Set) SetActive(k Kind) {
	if s.IsOpen(k) {
		s.active = k
	}
}

// Cycle activates the tab delta positions away from the active one,
// wrapping at either end.
func (s *Set) Cycle(delta int) {
	if len(s.tabs) < 2 {
		return
	}
	cur := s.indexOf(s.active)
	if cur < 0 {
		cur = 0
	}
	n := len(s.tabs)
	s.active = s.tabs[((cur+delta)%n+n)%n].Kind
}

// OpenKinds returns the open kinds in tab order.
func (s *Set) OpenKinds() []Kind {
	out := make([]Kind, 0, len(s.tabs))
	for _, t := range s.tabs {
		out = append(out, t.Kind)
	}
	return out
}

// Unopened returns the universe minus the open kinds, in universe order.
func (s *Set) Unopened() []Kind {
	out := make([]Kind, 0, len(All))
	for _, k := range All {
		if !s.IsOpen(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s *Set) indexOf(k Kind) int {
	for i, t := range s.tabs {
		if t.Kind == k {
			return i
		}
	}
	return -1
}
