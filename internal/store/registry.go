package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry records a registered instance.
type Entry struct {
	UUID      string    `json:"uuid"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type instanceSlot struct {
	entry Entry
	store *InstanceStore
}

// Registry maps opaque instance ids to their stores. A store is created
// lazily on first reference and every later lookup for the same id
// returns it, until Stop releases the mapping. Ids never share state.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]*instanceSlot
}

// NewRegistry creates an empty instance registry.
func NewRegistry() *Registry {
	return &Registry{
		instances: make(map[string]*instanceSlot),
	}
}

// Instance returns the store for id, creating it on first reference.
func (r *Registry) Instance(id string) *InstanceStore {
	r.mu.RLock()
	slot, ok := r.instances[id]
	r.mu.RUnlock()
	if ok {
		return slot.store
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check: another caller may have created it between the locks.
	if slot, ok := r.instances[id]; ok {
		return slot.store
	}
	slot = &instanceSlot{
		entry: Entry{
			UUID:      uuid.New().String(),
			ID:        id,
			CreatedAt: time.Now().UTC(),
		},
		store: NewInstanceStore(id),
	}
	r.instances[id] = slot
	return slot.store
}

// Lookup returns the store for id without creating one.
func (r *Registry) Lookup(id string) (*InstanceStore, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.instances[id]
	if !ok {
		return nil, false
	}
	return slot.store, true
}

// Entry returns the registration record for id.
func (r *Registry) Entry(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slot, ok := r.instances[id]
	if !ok {
		return Entry{}, false
	}
	return slot.entry, true
}

// Stop releases the mapping for id so a later reference starts cold.
// Returns false when the id was never registered.
func (r *Registry) Stop(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.instances[id]; !ok {
		return false
	}
	delete(r.instances, id)
	return true
}

// List returns the registered instance ids in stable order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.instances))
	for id := range r.instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered instances.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instances)
}
