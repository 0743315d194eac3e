package registry

import (
	"codeberg.org/miketth/wise/pkg/geometry"
)

// WindowHandle identifies an OS window. It is owned by the bridge and may go
// stale at any time; the registry never assumes it is still valid.
type WindowHandle string

type Application struct {
	BundleID string
	Core     bool
}

type LayoutState struct {
	Directive geometry.Directive
	Floating  bool
}

type Entry struct {
	Handle WindowHandle
	App    Application
	State  LayoutState
}

// EffectivelyFloating reports whether reconciliation must leave the window
// alone. Non-core windows always float.
func (e *Entry) EffectivelyFloating() bool {
	return !e.App.Core || e.State.Floating
}

type Registry struct {
	entries map[WindowHandle]*Entry
	order   []WindowHandle
}

func New() *Registry {
	return &Registry{
		entries: make(map[WindowHandle]*Entry),
	}
}

// Upsert inserts a new entry with the default layout state. If the handle is
// already tracked the existing entry is returned untouched and created is false.
func (r *Registry) Upsert(handle WindowHandle, app Application) (entry *Entry, created bool) {
	if existing, ok := r.entries[handle]; ok {
		return existing, false
	}

	entry = &Entry{
		Handle: handle,
		App:    app,
		State:  LayoutState{Directive: geometry.FullScreen},
	}
	r.entries[handle] = entry
	r.order = append(r.order, handle)

	return entry, true
}

func (r *Registry) Remove(handle WindowHandle) {
	if _, ok := r.entries[handle]; !ok {
		return
	}
	delete(r.entries, handle)

	for i, h := range r.order {
		if h == handle {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registry) Find(handle WindowHandle) (*Entry, bool) {
	entry, ok := r.entries[handle]
	return entry, ok
}

// AllCore returns the entries of core applications in insertion order.
func (r *Registry) AllCore() []*Entry {
	out := make([]*Entry, 0, len(r.order))
	for _, h := range r.order {
		if entry := r.entries[h]; entry.App.Core {
			out = append(out, entry)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.entries)
}
