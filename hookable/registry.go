package hookable

import (
	"sort"

	"github.com/milk9111/grapplinghook/hook"
)

// Registry hands out handles for hookables. The hook only ever holds a
// handle, so removing an object simply makes its handle stop resolving.
type Registry struct {
	next  hook.TargetID
	items map[hook.TargetID]Hookable
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[hook.TargetID]Hookable)}
}

// Add registers h and returns its handle. Handles are never reused.
func (r *Registry) Add(h Hookable) hook.TargetID {
	if h == nil {
		return 0
	}
	r.next++
	r.items[r.next] = h
	return r.next
}

func (r *Registry) Remove(id hook.TargetID) {
	delete(r.items, id)
}

// Target implements hook.Targets.
func (r *Registry) Target(id hook.TargetID) (hook.Target, bool) {
	h, ok := r.items[id]
	if !ok {
		return nil, false
	}
	return h, true
}

func (r *Registry) Get(id hook.TargetID) (Hookable, bool) {
	h, ok := r.items[id]
	return h, ok
}

// IDs returns the live handles in ascending order.
func (r *Registry) IDs() []hook.TargetID {
	ids := make([]hook.TargetID, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *Registry) Len() int { return len(r.items) }

// Update advances every hookable by dt.
func (r *Registry) Update(dt float64) {
	for _, id := range r.IDs() {
		r.items[id].Update(dt)
	}
}
