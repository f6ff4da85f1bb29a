package object

import "iter"

// Registry owns every live entity, grouped by kind in insertion order.
//
// Destroy only marks the entity; its slot is compacted lazily once no
// traversal is running, which keeps removal O(1) amortized and makes it
// safe to destroy entities while ranging over All.
type Registry struct {
	lists     [numRegisteredKinds][]*Entity
	live      [numRegisteredKinds]int
	dead      [numRegisteredKinds]int
	nextID    uint64
	iterating int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// Spawn registers a copy of e and returns the handle to the live entity.
func (r *Registry) Spawn(e Entity) *Entity {
	if e.Kind < 0 || int(e.Kind) >= numRegisteredKinds {
		panic("object: cannot register kind " + e.Kind.String())
	}
	ent := &e
	ent.id = r.nextID
	ent.destroyed = false
	r.nextID++

	r.lists[e.Kind] = append(r.lists[e.Kind], ent)
	r.live[e.Kind]++
	return ent
}

// Destroy removes the entity from play and stops its fire timer.
// Destroying nil, an unregistered or an already destroyed entity is a no-op.
func (r *Registry) Destroy(e *Entity) {
	if e == nil || e.destroyed || e.id == 0 {
		return
	}
	e.destroyed = true
	if e.fire != nil {
		e.fire.Stop()
		e.fire = nil
	}

	r.live[e.Kind]--
	r.dead[e.Kind]++
	r.maybeCompact(e.Kind)
}

// All yields the live entities of a kind in insertion order.
// Entities destroyed during the traversal are skipped; entities spawned
// during the traversal are not visited.
func (r *Registry) All(kind Kind) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		if kind < 0 || int(kind) >= numRegisteredKinds {
			return
		}
		r.iterating++
		defer func() {
			r.iterating--
			if r.iterating == 0 {
				r.compactAll()
			}
		}()

		list := r.lists[kind]
		for _, e := range list {
			if e.destroyed {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Snapshot returns the live entities of a kind as a new slice.
func (r *Registry) Snapshot(kind Kind) []*Entity {
	out := make([]*Entity, 0, r.Count(kind))
	for e := range r.All(kind) {
		out = append(out, e)
	}
	return out
}

// Last returns the most recently spawned live entity of a kind, or nil.
func (r *Registry) Last(kind Kind) *Entity {
	if kind < 0 || int(kind) >= numRegisteredKinds {
		return nil
	}
	list := r.lists[kind]
	for i := len(list) - 1; i >= 0; i-- {
		if !list[i].destroyed {
			return list[i]
		}
	}
	return nil
}

// Count returns the number of live entities of a kind.
func (r *Registry) Count(kind Kind) int {
	if kind < 0 || int(kind) >= numRegisteredKinds {
		return 0
	}
	return r.live[kind]
}

// Clear destroys every entity, stopping all fire timers.
func (r *Registry) Clear() {
	for k := range r.lists {
		for _, e := range r.lists[k] {
			if !e.destroyed {
				e.destroyed = true
				if e.fire != nil {
					e.fire.Stop()
					e.fire = nil
				}
			}
		}
		r.lists[k] = nil
		r.live[k] = 0
		r.dead[k] = 0
	}
}

// maybeCompact drops destroyed slots once they make up half of a list.
func (r *Registry) maybeCompact(kind Kind) {
	if r.iterating > 0 {
		return
	}
	if r.dead[kind] > 0 && r.dead[kind]*2 >= len(r.lists[kind]) {
		r.compact(kind)
	}
}

func (r *Registry) compactAll() {
	for k := range r.lists {
		r.maybeCompact(Kind(k))
	}
}

func (r *Registry) compact(kind Kind) {
	list := r.lists[kind]
	kept := list[:0] // reuse backing array
	for _, e := range list {
		if !e.destroyed {
			kept = append(kept, e)
		}
	}
	clear(list[len(kept):])
	r.lists[kind] = kept
	r.dead[kind] = 0
}
